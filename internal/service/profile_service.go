package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bumptrack-be/internal/cache"
	"bumptrack-be/internal/entities"
	"bumptrack-be/internal/models"
	"bumptrack-be/internal/repository"
)

// ErrEntryNotFound mirrors the repository error at the service boundary.
var ErrEntryNotFound = repository.ErrEntryNotFound

// profileCacheTTL bounds staleness if an invalidation is ever missed.
const profileCacheTTL = 5 * time.Minute

// ProfileService defines the business logic for the user's profile
// document: the due date and the appointment/name/picture sub-collections.
// All operations act on the authenticated user's own document.
type ProfileService interface {
	GetUser(userID string) (*models.UserResponse, error)
	SetDueDate(userID string, date time.Time) error

	AddAppointment(userID string, req *models.AppointmentRequest) (*entities.Appointment, error)
	DeleteAppointment(userID, entryID string) error

	AddFavoriteName(userID string, req *models.FavoriteNameRequest) (*entities.FavoriteName, error)
	DeleteFavoriteName(userID, entryID string) error

	AddPicture(userID, url string, date time.Time) (*entities.Picture, error)
	GetPicture(userID, entryID string) (*entities.Picture, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	cache       cache.Cache
	ctx         context.Context
}

// NewProfileService creates a new profile service. cacheClient may be nil;
// reads then always go to the database.
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, cacheClient cache.Cache) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cache:       cacheClient,
		ctx:         context.Background(),
	}
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("user:profile:%s", userID)
}

// GetUser assembles the full profile document, cache-aside.
func (s *profileService) GetUser(userID string) (*models.UserResponse, error) {
	if s.cache != nil {
		var cached models.UserResponse
		err := s.cache.GetJSON(s.ctx, profileCacheKey(userID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("profile cache read failed: %v", err)
		}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	appointments, err := s.profileRepo.ListAppointments(userID)
	if err != nil {
		return nil, err
	}
	names, err := s.profileRepo.ListFavoriteNames(userID)
	if err != nil {
		return nil, err
	}
	pictures, err := s.profileRepo.ListPictures(userID)
	if err != nil {
		return nil, err
	}

	doc := &models.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		DueDate:      user.DueDate,
		Appointments: appointments,
		FavNames:     names,
		Pictures:     pictures,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(s.ctx, profileCacheKey(userID), doc, profileCacheTTL); err != nil {
			log.Printf("profile cache write failed: %v", err)
		}
	}

	return doc, nil
}

// SetDueDate replaces the due date. Repeated calls with the same date are
// no-ops in effect.
func (s *profileService) SetDueDate(userID string, date time.Time) error {
	if err := s.userRepo.UpdateDueDate(userID, date); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// AddAppointment appends an appointment entry and returns it with its id
func (s *profileService) AddAppointment(userID string, req *models.AppointmentRequest) (*entities.Appointment, error) {
	apt, err := s.profileRepo.AddAppointment(userID, req.Title, req.Date)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return apt, nil
}

// DeleteAppointment removes exactly the entry named by id
func (s *profileService) DeleteAppointment(userID, entryID string) error {
	if err := s.profileRepo.DeleteAppointment(userID, entryID); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// AddFavoriteName appends a favorite name entry and returns it with its id
func (s *profileService) AddFavoriteName(userID string, req *models.FavoriteNameRequest) (*entities.FavoriteName, error) {
	fav, err := s.profileRepo.AddFavoriteName(userID, req.Name, req.Sex)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return fav, nil
}

// DeleteFavoriteName removes exactly the entry named by id
func (s *profileService) DeleteFavoriteName(userID, entryID string) error {
	if err := s.profileRepo.DeleteFavoriteName(userID, entryID); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// AddPicture records an already-saved file as a picture entry
func (s *profileService) AddPicture(userID, url string, date time.Time) (*entities.Picture, error) {
	pic, err := s.profileRepo.AddPicture(userID, url, date)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return pic, nil
}

// GetPicture returns one picture entry, enforcing ownership
func (s *profileService) GetPicture(userID, entryID string) (*entities.Picture, error) {
	return s.profileRepo.FindPicture(userID, entryID)
}

func (s *profileService) invalidate(userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(s.ctx, profileCacheKey(userID)); err != nil {
		log.Printf("profile cache invalidation failed: %v", err)
	}
}
