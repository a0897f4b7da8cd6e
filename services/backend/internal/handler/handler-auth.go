package backend_handler_http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
	"store-admin/services/backend/internal"
	backend_controller "store-admin/services/backend/internal/controller"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

type Handler_Auth struct {
	controller   *backend_controller.Controller_Auth
	secureCookie bool
}

func NewAuth(controller *backend_controller.Controller_Auth, secureCookie bool) *Handler_Auth {
	return &Handler_Auth{
		controller:   controller,
		secureCookie: secureCookie,
	}
}

func (h *Handler_Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req dmodel.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.controller.Signup(r.Context(), req)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, "User registered successfully!")
	case errors.Is(err, internal.ErrEmailInUse):
		writeMessage(w, http.StatusBadRequest, "Error: Email is already in use!")
	case validation.IsValidation(err):
		writeError(w, err, "User", "signing up")
	default:
		log.Printf("Error signing up: %v", err)
		writeMessage(w, http.StatusBadRequest, "Registration failed: "+err.Error())
	}
}

func (h *Handler_Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req dmodel.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.controller.Login(r.Context(), req)
	if errors.Is(err, internal.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeError(w, err, "User", "logging in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(backend_controller.SessionTTL),
		MaxAge:   int(backend_controller.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, dmodel.LoginResponse{ID: user.ID, Email: user.Email, Role: user.Role})
}

func (h *Handler_Auth) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler_Auth) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.controller.Status(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err, "User", "reading session status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
