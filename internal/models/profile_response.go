package models

import (
	"time"

	"bumptrack-be/internal/entities"
)

// UserResponse is the full profile document returned by GET /user. The
// password hash is never part of it.
type UserResponse struct {
	ID           string                  `json:"id"`
	Email        string                  `json:"email"`
	DueDate      *time.Time              `json:"dueDate,omitempty"`
	Appointments []entities.Appointment  `json:"appointments"`
	FavNames     []entities.FavoriteName `json:"favNames"`
	Pictures     []entities.Picture      `json:"pictures"`
}
