package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bumptrack-be/internal/entities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPictureRouter(svc *stubProfileService, uploadDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewPictureController(svc, uploadDir)
	qrcode := NewQRCodeController(controller, "http://localhost:8080")

	protected := router.Group("/api/v1")
	protected.Use(fakeAuth)
	{
		protected.POST("/pictures", controller.Upload)
		protected.GET("/pictures/:id/file", controller.Serve)
		protected.GET("/pictures/:id/qrcode", qrcode.GenerateQRCode)
	}
	return router
}

func multipartUpload(t *testing.T, filename, date string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)

	require.NoError(t, writer.WriteField("date", date))
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadPicture(t *testing.T) {
	uploadDir := t.TempDir()
	svc := &stubProfileService{
		pic: &entities.Picture{
			ID:   uuid.NewString(),
			URL:  "stored.jpg",
			Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	router := newPictureRouter(svc, uploadDir)

	body, contentType := multipartUpload(t, "belly.jpg", "2026-09-01T00:00:00Z")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pictures", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var pic entities.Picture
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pic))
	assert.NotEmpty(t, pic.ID)

	// The file landed inside the upload root
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".jpg", filepath.Ext(entries[0].Name()))
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := &stubProfileService{}
	router := newPictureRouter(svc, t.TempDir())

	body, contentType := multipartUpload(t, "notes.txt", "2026-09-01T00:00:00Z")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pictures", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadRequiresDate(t *testing.T) {
	svc := &stubProfileService{}
	router := newPictureRouter(svc, t.TempDir())

	body, contentType := multipartUpload(t, "belly.jpg", "not-a-date")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pictures", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServePicture(t *testing.T) {
	uploadDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "stored.jpg"), []byte("image-bytes"), 0o644))

	svc := &stubProfileService{
		pic: &entities.Picture{ID: uuid.NewString(), URL: "stored.jpg", Date: time.Now()},
	}
	router := newPictureRouter(svc, uploadDir)

	rr := doRequest(router, http.MethodGet, "/api/v1/pictures/"+svc.pic.ID+"/file", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image-bytes", rr.Body.String())
}

func TestContainedPathNeutralizesTraversal(t *testing.T) {
	uploadDir := t.TempDir()
	controller := NewPictureController(&stubProfileService{}, uploadDir)

	root, err := filepath.Abs(uploadDir)
	require.NoError(t, err)

	for _, rel := range []string{"../secrets.txt", "a/../../../etc/passwd", "/etc/passwd"} {
		path, err := controller.containedPath(rel)
		if err != nil {
			continue // rejected outright is fine too
		}
		assert.True(t, path == root || strings.HasPrefix(path, root+string(filepath.Separator)),
			"rel %q resolved outside root: %s", rel, path)
	}
}

func TestContainedPathKeepsPlainNames(t *testing.T) {
	uploadDir := t.TempDir()
	controller := NewPictureController(&stubProfileService{}, uploadDir)

	path, err := controller.containedPath("stored.jpg")
	require.NoError(t, err)

	root, err := filepath.Abs(uploadDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "stored.jpg"), path)
}

func TestPictureQRCode(t *testing.T) {
	svc := &stubProfileService{
		pic: &entities.Picture{ID: uuid.NewString(), URL: "stored.jpg", Date: time.Now()},
	}
	router := newPictureRouter(svc, t.TempDir())

	rr := doRequest(router, http.MethodGet, "/api/v1/pictures/"+svc.pic.ID+"/qrcode", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Body.Bytes())
}
