// Package model defines the core domain types for the event booking portal.
package model

import "time"

// Status is the lifecycle state of a registration. Every transition
// between any two states is permitted, including self-transitions;
// there is no terminal state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// AdminAccount is the singleton admin credential pair. It is seeded
// once on first run and never mutated afterward.
type AdminAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserAccount represents a registered portal user. Accounts are
// immutable after creation; there is no update or delete operation.
type UserAccount struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Mobile       string    `json:"mobile"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// FullName returns the user's display name.
func (u *UserAccount) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Registration links a user to one event occurrence with a lifecycle
// status. Registrations are never deleted; only their status changes.
type Registration struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	EventName    string    `json:"eventName"`
	VenueName    string    `json:"venueName"`
	EventDate    string    `json:"eventDate"`
	Mobile       string    `json:"mobile"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// AdminRegistration is a Registration augmented with the owning user's
// display name, as shown on the admin dashboard. UserName is
// "Unknown User" when the userId no longer resolves to an account.
type AdminRegistration struct {
	Registration
	UserName string `json:"userName"`
}

// UnknownUserName is the join fallback for a dangling userId.
const UnknownUserName = "Unknown User"

// Role distinguishes the two kinds of authenticated sessions.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the transient authenticated-identity record, distinct
// from the persisted account data. For admin sessions UserID is zero
// and the name fields are empty.
type Session struct {
	Token     string `json:"-"`
	Role      Role   `json:"role"`
	UserID    int64  `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// RegisterRequest is the signup payload. ConfirmPassword is verified
// and stripped at the boundary; the store never sees it.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Mobile          string `json:"mobile"`
}

// LoginRequest is the payload for both user and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BookEventRequest is the payload for booking a new event.
type BookEventRequest struct {
	EventName string `json:"eventName"`
	VenueName string `json:"venueName"`
	EventDate string `json:"eventDate"`
	Mobile    string `json:"mobile"`
}

// UpdateStatusRequest carries the target status for a registration.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// eventLabels maps internal event-type codes to display labels.
var eventLabels = map[string]string{
	"marriage":    "Marriage Ceremony",
	"birthday":    "Birthday Party",
	"anniversary": "Anniversary Party",
	"meeting":     "Official Meeting",
	"dance":       "Dance Show",
	"custom":      "Custom Event",
}

// EventDisplayName maps an internal event-type code to its display
// label. Unrecognized codes pass through unchanged.
func EventDisplayName(code string) string {
	if label, ok := eventLabels[code]; ok {
		return label
	}
	return code
}
