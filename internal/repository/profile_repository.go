package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bumptrack-be/internal/entities"
)

// ErrEntryNotFound is returned when a sub-collection entry id does not
// exist for the given user.
var ErrEntryNotFound = errors.New("entry not found")

// ProfileRepository handles the user's sub-collections: appointments,
// favorite names and pictures. Adds append a new row with a generated id;
// deletes remove exactly the row named by id, scoped to the owning user.
type ProfileRepository interface {
	AddAppointment(userID, title string, date time.Time) (*entities.Appointment, error)
	DeleteAppointment(userID, entryID string) error
	ListAppointments(userID string) ([]entities.Appointment, error)

	AddFavoriteName(userID, name, sex string) (*entities.FavoriteName, error)
	DeleteFavoriteName(userID, entryID string) error
	ListFavoriteNames(userID string) ([]entities.FavoriteName, error)

	AddPicture(userID, url string, date time.Time) (*entities.Picture, error)
	FindPicture(userID, entryID string) (*entities.Picture, error)
	ListPictures(userID string) ([]entities.Picture, error)
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// AddAppointment appends an appointment entry. Duplicate titles and dates
// are allowed; each insert gets its own id.
func (r *profileRepository) AddAppointment(userID, title string, date time.Time) (*entities.Appointment, error) {
	query := `
		INSERT INTO appointments (user_id, title, date)
		VALUES ($1, $2, $3)
		RETURNING id, title, date
	`

	var apt entities.Appointment
	err := r.db.QueryRow(query, userID, title, date).Scan(&apt.ID, &apt.Title, &apt.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to add appointment: %w", err)
	}

	return &apt, nil
}

// DeleteAppointment removes one appointment by id
func (r *profileRepository) DeleteAppointment(userID, entryID string) error {
	return r.deleteEntry("appointments", userID, entryID)
}

// ListAppointments returns the user's appointments in insertion order
func (r *profileRepository) ListAppointments(userID string) ([]entities.Appointment, error) {
	query := `
		SELECT id, title, date
		FROM appointments
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	appointments := []entities.Appointment{}
	for rows.Next() {
		var apt entities.Appointment
		if err := rows.Scan(&apt.ID, &apt.Title, &apt.Date); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, apt)
	}

	return appointments, rows.Err()
}

// AddFavoriteName appends a favorite name entry
func (r *profileRepository) AddFavoriteName(userID, name, sex string) (*entities.FavoriteName, error) {
	query := `
		INSERT INTO favorite_names (user_id, name, sex)
		VALUES ($1, $2, $3)
		RETURNING id, name, sex
	`

	var fav entities.FavoriteName
	err := r.db.QueryRow(query, userID, name, sex).Scan(&fav.ID, &fav.Name, &fav.Sex)
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite name: %w", err)
	}

	return &fav, nil
}

// DeleteFavoriteName removes one favorite name by id
func (r *profileRepository) DeleteFavoriteName(userID, entryID string) error {
	return r.deleteEntry("favorite_names", userID, entryID)
}

// ListFavoriteNames returns the user's favorite names in insertion order
func (r *profileRepository) ListFavoriteNames(userID string) ([]entities.FavoriteName, error) {
	query := `
		SELECT id, name, sex
		FROM favorite_names
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite names: %w", err)
	}
	defer rows.Close()

	names := []entities.FavoriteName{}
	for rows.Next() {
		var fav entities.FavoriteName
		if err := rows.Scan(&fav.ID, &fav.Name, &fav.Sex); err != nil {
			return nil, fmt.Errorf("failed to scan favorite name: %w", err)
		}
		names = append(names, fav)
	}

	return names, rows.Err()
}

// AddPicture appends a picture entry pointing at an already-saved file
func (r *profileRepository) AddPicture(userID, url string, date time.Time) (*entities.Picture, error) {
	query := `
		INSERT INTO pictures (user_id, url, date)
		VALUES ($1, $2, $3)
		RETURNING id, url, date
	`

	var pic entities.Picture
	err := r.db.QueryRow(query, userID, url, date).Scan(&pic.ID, &pic.URL, &pic.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to add picture: %w", err)
	}

	return &pic, nil
}

// FindPicture returns one picture entry, enforcing ownership via user_id
func (r *profileRepository) FindPicture(userID, entryID string) (*entities.Picture, error) {
	query := `
		SELECT id, url, date
		FROM pictures
		WHERE user_id = $1 AND id = $2
	`

	var pic entities.Picture
	err := r.db.QueryRow(query, userID, entryID).Scan(&pic.ID, &pic.URL, &pic.Date)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find picture: %w", err)
	}

	return &pic, nil
}

// ListPictures returns the user's pictures in insertion order
func (r *profileRepository) ListPictures(userID string) ([]entities.Picture, error) {
	query := `
		SELECT id, url, date
		FROM pictures
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pictures: %w", err)
	}
	defer rows.Close()

	pictures := []entities.Picture{}
	for rows.Next() {
		var pic entities.Picture
		if err := rows.Scan(&pic.ID, &pic.URL, &pic.Date); err != nil {
			return nil, fmt.Errorf("failed to scan picture: %w", err)
		}
		pictures = append(pictures, pic)
	}

	return pictures, rows.Err()
}

func (r *profileRepository) deleteEntry(table, userID, entryID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND id = $2`, table)

	result, err := r.db.Exec(query, userID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if rows == 0 {
		return ErrEntryNotFound
	}

	return nil
}
