// Package repository implements the RegistrationStore, the sole
// gateway to the persisted admin, user, and registration collections.
// Each collection is stored as one JSON blob in the storage medium and
// every operation is a full read-modify-write of that blob.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harshitha-dev/event-booking-portal/internal/model"
	"github.com/harshitha-dev/event-booking-portal/internal/storage"
)

// ErrDuplicateUser is returned when registration uses an email that
// already belongs to an account.
var ErrDuplicateUser = errors.New("user with this email already exists")

// ErrInvalidCredentials is returned on any failed login. It does not
// distinguish an unknown email from a wrong password, so callers
// cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Default admin credentials written on first run.
const (
	DefaultAdminEmail    = "harshitha8388@gmail.com"
	DefaultAdminPassword = "123456789"
)

// RegistrationStore owns all reads and writes of the three persisted
// collections. The mutex serializes read-modify-write cycles so the
// store stays consistent when handlers run concurrently.
type RegistrationStore struct {
	mu     sync.Mutex
	medium storage.Store
	lastID int64
}

// New constructs a RegistrationStore over the given medium.
func New(medium storage.Store) *RegistrationStore {
	return &RegistrationStore{medium: medium}
}

// EnsureSeeded writes the default admin account and empty user and
// registration collections on first run. It is idempotent: existing
// data is never overwritten.
func (s *RegistrationStore) EnsureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.medium.Load(ctx, storage.KeyAdmin); errors.Is(err, storage.ErrKeyNotFound) {
		admin := model.AdminAccount{Email: DefaultAdminEmail, Password: DefaultAdminPassword}
		if err := s.save(ctx, storage.KeyAdmin, admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}

	if _, err := s.medium.Load(ctx, storage.KeyUsers); errors.Is(err, storage.ErrKeyNotFound) {
		if err := s.save(ctx, storage.KeyUsers, []model.UserAccount{}); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("check users: %w", err)
	}

	if _, err := s.medium.Load(ctx, storage.KeyRegistrations); errors.Is(err, storage.ErrKeyNotFound) {
		if err := s.save(ctx, storage.KeyRegistrations, []model.Registration{}); err != nil {
			return fmt.Errorf("seed registrations: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("check registrations: %w", err)
	}

	return nil
}

// RegisterUser creates a new user account and a mirrored pending
// registration. It fails with ErrDuplicateUser when the email is
// already taken (case-sensitive comparison).
func (s *RegistrationStore) RegisterUser(ctx context.Context, req model.RegisterRequest) (*model.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.UserAccount
	if err := s.load(ctx, storage.KeyUsers, &users); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == req.Email {
			return nil, ErrDuplicateUser
		}
	}

	now := time.Now().UTC()
	user := model.UserAccount{
		ID:           s.nextID(),
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Mobile:       req.Mobile,
		RegisteredAt: now,
	}
	users = append(users, user)

	if err := s.save(ctx, storage.KeyUsers, users); err != nil {
		return nil, err
	}

	// Signup doubles as the user's first registration entry.
	var regs []model.Registration
	if err := s.load(ctx, storage.KeyRegistrations, &regs); err != nil {
		return nil, err
	}
	regs = append(regs, model.Registration{
		ID:           s.nextID(),
		UserID:       user.ID,
		Mobile:       user.Mobile,
		Status:       model.StatusPending,
		RegisteredAt: now,
	})
	if err := s.save(ctx, storage.KeyRegistrations, regs); err != nil {
		return nil, err
	}

	return &user, nil
}

// LoginUser returns the user whose email and password both match
// exactly, or ErrInvalidCredentials.
func (s *RegistrationStore) LoginUser(ctx context.Context, email, password string) (*model.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.UserAccount
	if err := s.load(ctx, storage.KeyUsers, &users); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			return &users[i], nil
		}
	}

	return nil, ErrInvalidCredentials
}

// LoginAdmin compares the credentials against the seeded admin account.
func (s *RegistrationStore) LoginAdmin(ctx context.Context, email, password string) (*model.AdminAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var admin model.AdminAccount
	if err := s.load(ctx, storage.KeyAdmin, &admin); err != nil {
		return nil, err
	}

	if admin.Email != email || admin.Password != password {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}

// BookEvent appends a new pending registration for the given user.
func (s *RegistrationStore) BookEvent(ctx context.Context, userID int64, req model.BookEventRequest) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var regs []model.Registration
	if err := s.load(ctx, storage.KeyRegistrations, &regs); err != nil {
		return nil, err
	}

	reg := model.Registration{
		ID:           s.nextID(),
		UserID:       userID,
		EventName:    req.EventName,
		VenueName:    req.VenueName,
		EventDate:    req.EventDate,
		Mobile:       req.Mobile,
		Status:       model.StatusPending,
		RegisteredAt: time.Now().UTC(),
	}
	regs = append(regs, reg)

	if err := s.save(ctx, storage.KeyRegistrations, regs); err != nil {
		return nil, err
	}

	return &reg, nil
}

// GetUserRegistrations returns all registrations belonging to userID
// in insertion order.
func (s *RegistrationStore) GetUserRegistrations(ctx context.Context, userID int64) ([]model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var regs []model.Registration
	if err := s.load(ctx, storage.KeyRegistrations, &regs); err != nil {
		return nil, err
	}

	out := make([]model.Registration, 0, len(regs))
	for _, reg := range regs {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}

	return out, nil
}

// GetAllUsers returns the full user collection in insertion order.
func (s *RegistrationStore) GetAllUsers(ctx context.Context) ([]model.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.UserAccount
	if err := s.load(ctx, storage.KeyUsers, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetAllRegistrations returns every registration joined with the
// owning user's name. A registration whose userId matches no account
// gets the "Unknown User" placeholder rather than an error.
func (s *RegistrationStore) GetAllRegistrations(ctx context.Context) ([]model.AdminRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var regs []model.Registration
	if err := s.load(ctx, storage.KeyRegistrations, &regs); err != nil {
		return nil, err
	}

	var users []model.UserAccount
	if err := s.load(ctx, storage.KeyUsers, &users); err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].FullName()
	}

	out := make([]model.AdminRegistration, 0, len(regs))
	for _, reg := range regs {
		name, ok := names[reg.UserID]
		if !ok {
			name = model.UnknownUserName
		}
		out = append(out, model.AdminRegistration{Registration: reg, UserName: name})
	}

	return out, nil
}

// UpdateRegistrationStatus overwrites the status of the registration
// with the given id. It reports false, without error, when the id does
// not exist; no record is touched in that case.
func (s *RegistrationStore) UpdateRegistrationStatus(ctx context.Context, registrationID int64, status model.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var regs []model.Registration
	if err := s.load(ctx, storage.KeyRegistrations, &regs); err != nil {
		return false, err
	}

	for i := range regs {
		if regs[i].ID == registrationID {
			regs[i].Status = status
			if err := s.save(ctx, storage.KeyRegistrations, regs); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// nextID returns a fresh identifier. Ids are millisecond timestamps
// made strictly monotonic so that two operations inside the same
// millisecond cannot collide. Callers must hold s.mu.
func (s *RegistrationStore) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	return id
}

func (s *RegistrationStore) load(ctx context.Context, key string, dst any) error {
	blob, err := s.medium.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

func (s *RegistrationStore) save(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.medium.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	return nil
}
