package controllers

import (
	"errors"
	"log"
	"net/http"

	"bumptrack-be/internal/models"
	"bumptrack-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /api/v1/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "400",
			"message": "invalid request body",
		})
		return
	}

	response, err := ac.authService.Register(&req)
	if errors.Is(err, service.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "409",
			"message": "User already exists",
		})
		return
	}
	if err != nil {
		log.Printf("register failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "400",
			"message": "unable to register",
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/v1/auth/login. Unknown email and wrong password
// produce the same response body.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "401",
			"message": "Username or password is incorrect",
		})
		return
	}

	response, err := ac.authService.Login(&req)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("login failed: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "401",
			"message": "Username or password is incorrect",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
