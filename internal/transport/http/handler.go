package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oshokin/authgate/internal/config"
	"github.com/oshokin/authgate/internal/logger"
	"github.com/oshokin/authgate/internal/service/login"
)

// Authenticator performs one login attempt. It is implemented by the login orchestrator.
type Authenticator interface {
	// Attempt runs a complete scripted login and returns exactly one outcome.
	Attempt(ctx context.Context, credential login.Credential) (login.Outcome, error)
}

// loginRequest is the inbound payload of the login endpoint.
type loginRequest struct {
	// Username is the account identifier.
	Username string `json:"username"`
	// Password is the account secret. It is never logged.
	Password string `json:"password"`
}

// loginResponse is the outbound payload of the login endpoint.
type loginResponse struct {
	// Success is true only when the attempt was classified as authenticated.
	Success bool `json:"success"`
	// Message carries the classification diagnostic.
	Message string `json:"message"`
	// Cookies holds the collected session cookies, when any were collected.
	Cookies map[string]string `json:"cookies,omitempty"`
}

// handleLogin decodes the credential, runs the attempt, and maps the outcome.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, loginResponse{
			Success: false,
			Message: "invalid request body",
		})

		return
	}

	outcome, err := s.authenticator.Attempt(ctx, login.Credential{
		Identity: request.Username,
		Secret:   request.Password,
	})
	if err != nil {
		// Only configuration errors escape the orchestrator.
		message := "service is not configured for login attempts"
		if !errors.Is(err, config.ErrMissingControlURL) {
			logger.Errorf(ctx, "Unexpected attempt error: %v", err)

			message = "login attempt failed unexpectedly"
		}

		writeJSON(ctx, w, http.StatusInternalServerError, loginResponse{
			Success: false,
			Message: message,
		})

		return
	}

	writeJSON(ctx, w, http.StatusOK, loginResponse{
		Success: outcome.Status == login.StatusAuthenticated,
		Message: outcome.Reason,
		Cookies: outcome.Cookies,
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Debugf(ctx, "Failed to write response: %v", err)
	}
}
