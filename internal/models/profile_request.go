package models

import "time"

// DueDateRequest represents the request body for setting the due date
type DueDateRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// AppointmentRequest represents the request body for adding an appointment
type AppointmentRequest struct {
	Title string    `json:"title" binding:"required"`
	Date  time.Time `json:"date" binding:"required"`
}

// FavoriteNameRequest represents the request body for adding a favorite name
type FavoriteNameRequest struct {
	Name string `json:"name" binding:"required"`
	Sex  string `json:"sex" binding:"required"`
}
