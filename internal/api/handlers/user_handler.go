package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lmtavares/todo-notes-be/internal/auth"
	"github.com/lmtavares/todo-notes-be/internal/metrics"
	"github.com/lmtavares/todo-notes-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles registration and login.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.Manager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.Manager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// CredentialsPayload defines the structure for register and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration and returns the new user id along
// with a session token.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Register(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCredentials), errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
			writeError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.UserID).Msg("Failed to generate token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	metrics.RegistrationsTotal.Inc()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"userId": user.UserID,
		"token":  token,
	})
}

// Login handles user authentication and token generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Login failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.UserID).Msg("Failed to generate token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
