package controllers

import (
	"errors"
	"log"
	"net/http"

	"bumptrack-be/internal/middleware"
	"bumptrack-be/internal/models"
	"bumptrack-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// GetUser handles GET /api/v1/user - returns the full profile document
func (pc *ProfileController) GetUser(c *gin.Context) {
	doc, err := pc.profileService.GetUser(middleware.UserID(c))
	if err != nil {
		internalError(c, "get user", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// SetDueDate handles POST /api/v1/user/due-date
func (pc *ProfileController) SetDueDate(c *gin.Context) {
	var req models.DueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := pc.profileService.SetDueDate(middleware.UserID(c), req.Date); err != nil {
		internalError(c, "set due date", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "due date added"})
}

// AddAppointment handles POST /api/v1/appointments. The created entry is
// returned so the client learns the id it needs for deletion.
func (pc *ProfileController) AddAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	apt, err := pc.profileService.AddAppointment(middleware.UserID(c), &req)
	if err != nil {
		internalError(c, "add appointment", err)
		return
	}

	c.JSON(http.StatusOK, apt)
}

// DeleteAppointment handles DELETE /api/v1/appointments/:id
func (pc *ProfileController) DeleteAppointment(c *gin.Context) {
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	err := pc.profileService.DeleteAppointment(middleware.UserID(c), entryID)
	if errors.Is(err, service.ErrEntryNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		internalError(c, "delete appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// AddFavoriteName handles POST /api/v1/names
func (pc *ProfileController) AddFavoriteName(c *gin.Context) {
	var req models.FavoriteNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	fav, err := pc.profileService.AddFavoriteName(middleware.UserID(c), &req)
	if err != nil {
		internalError(c, "add favorite name", err)
		return
	}

	c.JSON(http.StatusOK, fav)
}

// DeleteFavoriteName handles DELETE /api/v1/names/:id
func (pc *ProfileController) DeleteFavoriteName(c *gin.Context) {
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	err := pc.profileService.DeleteFavoriteName(middleware.UserID(c), entryID)
	if errors.Is(err, service.ErrEntryNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		internalError(c, "delete favorite name", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// entryIDParam validates the :id route parameter before it reaches the
// database, so a malformed id is a 404 instead of a driver error.
func entryIDParam(c *gin.Context) (string, bool) {
	entryID := c.Param("id")
	if _, err := uuid.Parse(entryID); err != nil {
		notFound(c)
		return "", false
	}
	return entryID, true
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "400",
		"message": "invalid request body",
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "404",
		"message": "entry not found",
	})
}

func internalError(c *gin.Context, op string, err error) {
	log.Printf("%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "500",
		"message": "error",
	})
}
