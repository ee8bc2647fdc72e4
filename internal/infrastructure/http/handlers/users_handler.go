package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
	"github.com/devunionorg/skillsnap/internal/infrastructure/http/middleware"
)

// UsersHandler handles GET /me. Requires JWT auth.
type UsersHandler struct {
	userRepo ports.UserRepository
	log      zerolog.Logger
}

// NewUsersHandler creates a handler for user resource endpoints.
func NewUsersHandler(userRepo ports.UserRepository, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{userRepo: userRepo, log: log}
}

// MeResponse is the JSON shape of an account (no password).
type MeResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	HasProfile bool   `json:"has_profile"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func newUserResponse(u *domain.User) MeResponse {
	return MeResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		HasProfile: u.HasProfile,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

// Me returns the current user from the JWT. Requires AuthValidator middleware.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	if user == nil {
		writeDomainErr(w, h.log, domerrors.NewNotFoundError("user", userID.String()))
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}
