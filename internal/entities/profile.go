package entities

import "time"

// Appointment is one entry in a user's appointment list. Entries carry a
// generated id so deletion is unambiguous even when two entries hold the
// same title and date.
type Appointment struct {
	ID    string    `json:"id"` // UUID
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// FavoriteName is one entry in a user's favorite baby names list.
type FavoriteName struct {
	ID   string `json:"id"` // UUID
	Name string `json:"name"`
	Sex  string `json:"sex"`
}

// Picture is one uploaded picture. URL is the path relative to the upload
// root, never an absolute filesystem path.
type Picture struct {
	ID   string    `json:"id"` // UUID
	URL  string    `json:"url"`
	Date time.Time `json:"date"`
}
