package backend_handler_http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
	"store-admin/services/backend/internal"
)

// AddCORSHeaders lets the admin UI call the API from another origin with its session cookie.
// The request origin is echoed back because credentialed requests may not use "*".
func AddCORSHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// CORS preflight request (OPTIONS) handling
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// fieldsResponse is the 400 body for payloads that fail validation.
type fieldsResponse struct {
	Message string                 `json:"message"`
	Fields  validation.FieldErrors `json:"fields"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// encoding the response to JSON
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dmodel.Message{Message: message})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// writeError maps controller errors onto status codes. what names the resource in the 404
// message ("Product" -> "Product not found").
func writeError(w http.ResponseWriter, err error, what string, action string) {
	switch {
	case errors.Is(err, internal.ErrItemNotFound):
		writeMessage(w, http.StatusNotFound, what+" not found")
	case validation.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, fieldsResponse{
			Message: "Validation failed: " + err.Error(),
			Fields:  validation.Fields(err),
		})
	case errors.Is(err, internal.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		log.Printf("Error %s: %v", action, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Health answers the registry's HTTP check.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "%s is healthy", service)
	}
}
