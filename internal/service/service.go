// Package service implements business logic, validation, and
// orchestration between HTTP handlers and the registration store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harshitha-dev/event-booking-portal/internal/model"
	"github.com/harshitha-dev/event-booking-portal/internal/repository"
)

// BookingService orchestrates account and registration operations.
type BookingService struct {
	store    *repository.RegistrationStore
	sessions *SessionManager
}

// New constructs a BookingService with its dependencies.
func New(store *repository.RegistrationStore, sessions *SessionManager) *BookingService {
	return &BookingService{store: store, sessions: sessions}
}

// Register validates the signup payload, checks the password
// confirmation, and creates the account. The confirmation field is
// stripped here; the store never sees it.
func (s *BookingService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserAccount, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !isValidEmail(req.Email) {
		return nil, fmt.Errorf("email is not a valid email address")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}
	req.ConfirmPassword = ""

	user, err := s.store.RegisterUser(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	return user, nil
}

// LoginUser authenticates a user and opens a session for them.
func (s *BookingService) LoginUser(ctx context.Context, req model.LoginRequest) (*model.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, repository.ErrInvalidCredentials
	}

	user, err := s.store.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("user login: %w", err)
	}

	session := s.sessions.Create(model.Session{
		Role:      model.RoleUser,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})

	return session, nil
}

// LoginAdmin authenticates the admin account and opens a session.
func (s *BookingService) LoginAdmin(ctx context.Context, req model.LoginRequest) (*model.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, repository.ErrInvalidCredentials
	}

	admin, err := s.store.LoginAdmin(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("admin login: %w", err)
	}

	session := s.sessions.Create(model.Session{
		Role:  model.RoleAdmin,
		Email: admin.Email,
	})

	return session, nil
}

// Logout discards the session for the given token. Unknown tokens are
// ignored; logout is idempotent.
func (s *BookingService) Logout(token string) {
	s.sessions.Delete(token)
}

// BookEvent validates and records a new event booking for the user.
func (s *BookingService) BookEvent(ctx context.Context, userID int64, req model.BookEventRequest) (*model.Registration, error) {
	req.EventName = strings.TrimSpace(req.EventName)
	req.VenueName = strings.TrimSpace(req.VenueName)
	req.EventDate = strings.TrimSpace(req.EventDate)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if req.EventName == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if req.VenueName == "" {
		return nil, fmt.Errorf("venue name is required")
	}
	if req.EventDate == "" {
		return nil, fmt.Errorf("event date is required")
	}

	reg, err := s.store.BookEvent(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("book event: %w", err)
	}

	return reg, nil
}

// UserRegistrations returns the user's own registrations.
func (s *BookingService) UserRegistrations(ctx context.Context, userID int64) ([]model.Registration, error) {
	return s.store.GetUserRegistrations(ctx, userID)
}

// AllUsers returns every registered account, for the admin dashboard.
func (s *BookingService) AllUsers(ctx context.Context) ([]model.UserAccount, error) {
	return s.store.GetAllUsers(ctx)
}

// AllRegistrations returns every registration with the owner's name
// joined in, for the admin dashboard.
func (s *BookingService) AllRegistrations(ctx context.Context) ([]model.AdminRegistration, error) {
	return s.store.GetAllRegistrations(ctx)
}

// UpdateRegistrationStatus validates the target status and applies it.
// The boolean result mirrors the store contract: false means the id
// did not exist and nothing changed.
func (s *BookingService) UpdateRegistrationStatus(ctx context.Context, registrationID int64, status model.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid status %q", status)
	}

	return s.store.UpdateRegistrationStatus(ctx, registrationID, status)
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
