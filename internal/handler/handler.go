// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harshitha-dev/event-booking-portal/internal/model"
	"github.com/harshitha-dev/event-booking-portal/internal/repository"
	"github.com/harshitha-dev/event-booking-portal/internal/service"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

// BookingHandler holds all HTTP handlers for the booking portal API.
type BookingHandler struct {
	svc      *service.BookingService
	sessions *service.SessionManager
}

// New constructs a BookingHandler.
func New(svc *service.BookingService, sessions *service.SessionManager) *BookingHandler {
	return &BookingHandler{svc: svc, sessions: sessions}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ─── Auth handlers ────────────────────────────────────────────────────────────

// Register handles POST /api/auth/register
// Creates a new user account plus its mirrored pending registration.
func (h *BookingHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			writeError(w, http.StatusConflict, "user with this email already exists")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// LoginUser handles POST /api/auth/login
// Authenticates a user and sets the session cookie.
func (h *BookingHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	session, err := h.svc.LoginUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	setSessionCookie(w, session.Token)
	writeJSON(w, http.StatusOK, session)
}

// LoginAdmin handles POST /api/auth/admin/login
func (h *BookingHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	session, err := h.svc.LoginAdmin(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid admin credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	setSessionCookie(w, session.Token)
	writeJSON(w, http.StatusOK, session)
}

// Logout handles POST /api/auth/logout
// Discards the session and clears the cookie. Always succeeds.
func (h *BookingHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.svc.Logout(cookie.Value)
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/auth/me
// Returns the current session record.
func (h *BookingHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ─── Registration handlers ────────────────────────────────────────────────────

// registrationView is a Registration plus its event display label.
type registrationView struct {
	model.Registration
	EventLabel string `json:"eventLabel"`
}

// ListMyRegistrations handles GET /api/registrations
// Returns the logged-in user's registrations with display labels.
func (h *BookingHandler) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFrom(r.Context())

	regs, err := h.svc.UserRegistrations(r.Context(), session.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}

	views := make([]registrationView, 0, len(regs))
	for _, reg := range regs {
		views = append(views, registrationView{
			Registration: reg,
			EventLabel:   model.EventDisplayName(reg.EventName),
		})
	}

	writeJSON(w, http.StatusOK, views)
}

// BookEvent handles POST /api/registrations
// Books a new event for the logged-in user.
func (h *BookingHandler) BookEvent(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFrom(r.Context())

	var req model.BookEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.svc.BookEvent(r.Context(), session.UserID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

// UpdateStatus handles PUT /api/registrations/{id}/status
// Changes a registration's lifecycle status. Responds 404 when the id
// does not exist; any known status may be set from any other.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}

	var req model.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.svc.UpdateRegistrationStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "registration not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// ─── Admin handlers ───────────────────────────────────────────────────────────

// ListUsers handles GET /api/admin/users
func (h *BookingHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.AllUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if users == nil {
		users = []model.UserAccount{}
	}

	writeJSON(w, http.StatusOK, users)
}

// ListAllRegistrations handles GET /api/admin/registrations
// Returns every registration with the owner's name joined in.
func (h *BookingHandler) ListAllRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.AllRegistrations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}

	if regs == nil {
		regs = []model.AdminRegistration{}
	}

	writeJSON(w, http.StatusOK, regs)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
