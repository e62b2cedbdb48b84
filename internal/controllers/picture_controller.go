package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"bumptrack-be/internal/entities"
	"bumptrack-be/internal/middleware"
	"bumptrack-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageExts limits uploads to image files
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type PictureController struct {
	profileService service.ProfileService
	uploadDir      string
}

func NewPictureController(profileService service.ProfileService, uploadDir string) *PictureController {
	return &PictureController{
		profileService: profileService,
		uploadDir:      uploadDir,
	}
}

// Upload handles POST /api/v1/pictures - multipart form with a "file" part
// and a "date" field. The file is stored under the upload root with a
// generated name; only that relative name goes into the database.
func (pc *PictureController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "400",
			"message": "file is required",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "400",
			"message": "unsupported file type",
		})
		return
	}

	date, err := time.Parse(time.RFC3339, c.PostForm("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "400",
			"message": "date is required in RFC3339 format",
		})
		return
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(pc.uploadDir, name)); err != nil {
		internalError(c, "save upload", err)
		return
	}

	pic, err := pc.profileService.AddPicture(middleware.UserID(c), name, date)
	if err != nil {
		internalError(c, "add picture", err)
		return
	}

	c.JSON(http.StatusOK, pic)
}

// Serve handles GET /api/v1/pictures/:id/file - streams the file for one
// of the caller's own picture entries. The path on disk is derived from
// the stored entry and checked to stay inside the upload root; the client
// never supplies a path.
func (pc *PictureController) Serve(c *gin.Context) {
	pic, ok := pc.findPicture(c)
	if !ok {
		return
	}

	path, err := pc.containedPath(pic.URL)
	if err != nil {
		internalError(c, "serve picture", err)
		return
	}

	c.File(path)
}

func (pc *PictureController) findPicture(c *gin.Context) (*entities.Picture, bool) {
	entryID, ok := entryIDParam(c)
	if !ok {
		return nil, false
	}

	pic, err := pc.profileService.GetPicture(middleware.UserID(c), entryID)
	if errors.Is(err, service.ErrEntryNotFound) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		internalError(c, "find picture", err)
		return nil, false
	}

	return pic, true
}

// containedPath resolves a stored relative path against the upload root
// and rejects anything that escapes it.
func (pc *PictureController) containedPath(rel string) (string, error) {
	root, err := filepath.Abs(pc.uploadDir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, filepath.Clean("/"+rel))
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", errors.New("picture path escapes upload root")
	}

	return path, nil
}
