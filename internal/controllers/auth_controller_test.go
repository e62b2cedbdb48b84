package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bumptrack-be/internal/models"
	"bumptrack-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerResp *models.AuthResponse
	registerErr  error
	loginResp    *models.AuthResponse
	loginErr     error
}

func (s *stubAuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewAuthController(svc)
	router.POST("/api/v1/auth/register", controller.Register)
	router.POST("/api/v1/auth/login", controller.Login)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRegisterReturnsToken(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		registerResp: &models.AuthResponse{AccessToken: "token-abc"},
	})

	rr := postJSON(router, "/api/v1/auth/register", `{"email":"a@x.com","password":"secret123"}`)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "token-abc", resp.AccessToken)
}

func TestRegisterConflict(t *testing.T) {
	router := newAuthRouter(&stubAuthService{registerErr: service.ErrEmailTaken})

	rr := postJSON(router, "/api/v1/auth/register", `{"email":"a@x.com","password":"secret123"}`)

	require.Equal(t, http.StatusConflict, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "409", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestRegisterInvalidBody(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	// missing password, short password, bad email
	for _, body := range []string{
		`{"email":"a@x.com"}`,
		`{"email":"a@x.com","password":"abc"}`,
		`{"email":"not-an-email","password":"secret123"}`,
	} {
		rr := postJSON(router, "/api/v1/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
	}
}

func TestLoginFailureShapeIsGeneric(t *testing.T) {
	router := newAuthRouter(&stubAuthService{loginErr: service.ErrInvalidCredentials})

	wrongPass := postJSON(router, "/api/v1/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	noUser := postJSON(router, "/api/v1/auth/login", `{"email":"b@x.com","password":"whatever"}`)

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)

	// Both failures must be byte-identical so accounts can't be enumerated
	assert.Equal(t, wrongPass.Body.String(), noUser.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		loginResp: &models.AuthResponse{AccessToken: "token-xyz"},
	})

	rr := postJSON(router, "/api/v1/auth/login", `{"email":"a@x.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "token-xyz", resp.AccessToken)
}
