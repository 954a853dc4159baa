package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitha-dev/event-booking-portal/internal/model"
	"github.com/harshitha-dev/event-booking-portal/internal/repository"
	"github.com/harshitha-dev/event-booking-portal/internal/service"
	"github.com/harshitha-dev/event-booking-portal/internal/storage/memory"
)

func newService(t *testing.T) (*service.BookingService, *service.SessionManager) {
	t.Helper()

	store := repository.New(memory.New())
	require.NoError(t, store.EnsureSeeded(context.Background()))
	sessions := service.NewSessionManager()

	return service.New(store, sessions), sessions
}

func signup() model.RegisterRequest {
	return model.RegisterRequest{
		Email:           "jane@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Jane",
		LastName:        "Doe",
		Mobile:          "9876543210",
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*model.RegisterRequest)
		wantErr string
	}{
		{
			name:    "missing email",
			mutate:  func(r *model.RegisterRequest) { r.Email = "  " },
			wantErr: "email is required",
		},
		{
			name:    "malformed email",
			mutate:  func(r *model.RegisterRequest) { r.Email = "not-an-email" },
			wantErr: "not a valid email",
		},
		{
			name:    "missing password",
			mutate:  func(r *model.RegisterRequest) { r.Password = ""; r.ConfirmPassword = "" },
			wantErr: "password is required",
		},
		{
			name:    "mismatched confirmation",
			mutate:  func(r *model.RegisterRequest) { r.ConfirmPassword = "different" },
			wantErr: "passwords do not match",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(t)
			req := signup()
			tc.mutate(&req)

			_, err := svc.Register(ctx, req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("valid request succeeds and trims whitespace", func(t *testing.T) {
		svc, _ := newService(t)
		req := signup()
		req.Email = "  jane@example.com  "
		req.FirstName = " Jane "

		user, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "Jane", user.FirstName)
	})

	t.Run("duplicate email surfaces the store error", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Register(ctx, signup())
		require.NoError(t, err)

		_, err = svc.Register(ctx, signup())
		assert.ErrorIs(t, err, repository.ErrDuplicateUser)
	})
}

func TestLoginSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("user login opens a user session", func(t *testing.T) {
		svc, sessions := newService(t)
		registered, err := svc.Register(ctx, signup())
		require.NoError(t, err)

		session, err := svc.LoginUser(ctx, model.LoginRequest{Email: "jane@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, session.Role)
		assert.Equal(t, registered.ID, session.UserID)
		assert.NotEmpty(t, session.Token)

		stored, ok := sessions.Get(session.Token)
		require.True(t, ok)
		assert.Equal(t, "Jane", stored.FirstName)
	})

	t.Run("admin login opens an admin session", func(t *testing.T) {
		svc, sessions := newService(t)
		session, err := svc.LoginAdmin(ctx, model.LoginRequest{
			Email:    repository.DefaultAdminEmail,
			Password: repository.DefaultAdminPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, session.Role)
		assert.Zero(t, session.UserID)

		_, ok := sessions.Get(session.Token)
		assert.True(t, ok)
	})

	t.Run("bad credentials open no session", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.LoginUser(ctx, model.LoginRequest{Email: "jane@example.com", Password: "nope"})
		assert.ErrorIs(t, err, repository.ErrInvalidCredentials)

		_, err = svc.LoginAdmin(ctx, model.LoginRequest{Email: repository.DefaultAdminEmail, Password: "nope"})
		assert.ErrorIs(t, err, repository.ErrInvalidCredentials)
	})

	t.Run("blank credentials fail without touching the store", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.LoginUser(ctx, model.LoginRequest{})
		assert.ErrorIs(t, err, repository.ErrInvalidCredentials)
	})

	t.Run("logout discards the session and is idempotent", func(t *testing.T) {
		svc, sessions := newService(t)
		_, err := svc.Register(ctx, signup())
		require.NoError(t, err)
		session, err := svc.LoginUser(ctx, model.LoginRequest{Email: "jane@example.com", Password: "secret"})
		require.NoError(t, err)

		svc.Logout(session.Token)
		_, ok := sessions.Get(session.Token)
		assert.False(t, ok)

		svc.Logout(session.Token)
		svc.Logout("never-existed")
	})
}

func TestBookEventValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	user, err := svc.Register(ctx, signup())
	require.NoError(t, err)

	booking := model.BookEventRequest{
		EventName: "birthday",
		VenueName: "Rooftop Garden",
		EventDate: "2026-12-05",
		Mobile:    "9876543210",
	}

	t.Run("missing fields are rejected", func(t *testing.T) {
		for _, mutate := range []func(*model.BookEventRequest){
			func(r *model.BookEventRequest) { r.EventName = "" },
			func(r *model.BookEventRequest) { r.VenueName = " " },
			func(r *model.BookEventRequest) { r.EventDate = "" },
		} {
			req := booking
			mutate(&req)
			_, err := svc.BookEvent(ctx, user.ID, req)
			assert.Error(t, err)
		}
	})

	t.Run("valid booking is recorded as pending", func(t *testing.T) {
		reg, err := svc.BookEvent(ctx, user.ID, booking)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, reg.Status)

		regs, err := svc.UserRegistrations(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, regs, 2)
	})
}

func TestUpdateRegistrationStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	user, err := svc.Register(ctx, signup())
	require.NoError(t, err)
	regs, err := svc.UserRegistrations(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	t.Run("unknown status is rejected before the store is touched", func(t *testing.T) {
		_, err := svc.UpdateRegistrationStatus(ctx, regs[0].ID, model.Status("archived"))
		assert.Error(t, err)
	})

	t.Run("valid status is applied", func(t *testing.T) {
		updated, err := svc.UpdateRegistrationStatus(ctx, regs[0].ID, model.StatusConfirmed)
		require.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("missing id reports false", func(t *testing.T) {
		updated, err := svc.UpdateRegistrationStatus(ctx, 1, model.StatusConfirmed)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}
