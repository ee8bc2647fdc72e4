package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/application/profile"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
	"github.com/devunionorg/skillsnap/internal/infrastructure/http/middleware"
)

// avatarFormField is the multipart field carrying the avatar image.
const avatarFormField = "image"

// ProfileHandler serves /profiles/{username}, /usernames/{username} and /me/profile.
type ProfileHandler struct {
	users          ports.UserRepository
	get            *profile.GetProfile
	setup          *profile.SetupProfile
	edit           *profile.EditProfile
	del            *profile.DeleteProfile
	checkUsername  *profile.CheckUsername
	maxUploadBytes int64
	validate       *validator.Validate
	log            zerolog.Logger
}

// ProfileHandlerConfig groups the use cases behind the profile routes.
type ProfileHandlerConfig struct {
	Users          ports.UserRepository
	Get            *profile.GetProfile
	Setup          *profile.SetupProfile
	Edit           *profile.EditProfile
	Delete         *profile.DeleteProfile
	CheckUsername  *profile.CheckUsername
	MaxUploadBytes int64
}

func NewProfileHandler(cfg ProfileHandlerConfig, log zerolog.Logger) *ProfileHandler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	return &ProfileHandler{
		users:          cfg.Users,
		get:            cfg.Get,
		setup:          cfg.Setup,
		edit:           cfg.Edit,
		del:            cfg.Delete,
		checkUsername:  cfg.CheckUsername,
		maxUploadBytes: cfg.MaxUploadBytes,
		validate:       validator.New(),
		log:            log,
	}
}

// UsernameAvailable answers {"available": bool}. Malformed usernames are a 400.
func (h *ProfileHandler) UsernameAvailable(w http.ResponseWriter, r *http.Request) {
	ok, err := h.checkUsername.Execute(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": ok})
}

// Public returns a profile by username. A signed-in owner also sees their
// hidden profile, so the bearer token is honoured when present.
func (h *ProfileHandler) Public(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.UserIDFromContext(r.Context())
	p, err := h.get.ByUsername(r.Context(), chi.URLParam(r, "username"), viewer)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(*p))
}

func (h *ProfileHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	p, err := h.get.ByUserID(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(*p))
}

// Setup creates the caller's profile. The contact email defaults to the
// account email.
func (h *ProfileHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var body struct {
		Username string `json:"username" validate:"required,max=32"`
		Name     string `json:"name" validate:"required,max=120"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validationMessage(err))
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	if user == nil {
		writeDomainErr(w, h.log, domerrors.NewNotFoundError("user", userID.String()))
		return
	}
	result, err := h.setup.Execute(r.Context(), profile.SetupProfileInput{
		UserID:   userID,
		Username: body.Username,
		Name:     body.Name,
		Email:    user.Email,
	})
	if err != nil {
		AuditLog(h.log, r, "profile.setup", userID.String(), false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "profile.setup", userID.String(), true, "")
	writeJSON(w, http.StatusCreated, newProfileResponse(result.Profile))
}

// Update applies a batch of edits and saves. Either every edit applies or
// the request fails with nothing saved.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var body struct {
		Edits []profile.Edit `json:"edits" validate:"required,min=1,max=50"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validationMessage(err))
		return
	}
	h.runEdit(w, r, profile.EditProfileInput{UserID: userID, Edits: body.Edits})
}

// UploadAvatar takes a multipart image and runs it through the save
// workflow, which uploads it and stores the resulting URL.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	limit := h.maxUploadBytes + 1<<20 // room for the multipart envelope
	if r.ContentLength > limit {
		writeErr(w, http.StatusRequestEntityTooLarge, "", "image too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "", "image too large")
			return
		}
		writeErr(w, http.StatusBadRequest, "", "invalid multipart body")
		return
	}
	file, _, err := r.FormFile(avatarFormField)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "missing image field")
		return
	}
	defer file.Close()
	image, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "unreadable image")
		return
	}
	if int64(len(image)) > h.maxUploadBytes {
		writeErr(w, http.StatusRequestEntityTooLarge, "", "image too large")
		return
	}
	if len(image) == 0 {
		writeErr(w, http.StatusBadRequest, "", "empty image")
		return
	}
	middleware.ObserveAvatarUpload(len(image))
	h.runEdit(w, r, profile.EditProfileInput{UserID: userID, Image: image})
}

func (h *ProfileHandler) runEdit(w http.ResponseWriter, r *http.Request, input profile.EditProfileInput) {
	result, err := h.edit.Execute(r.Context(), input)
	middleware.RecordProfileSave(saveOutcome(err))
	if err != nil {
		AuditLog(h.log, r, "profile.save", input.UserID.String(), false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "profile.save", input.UserID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": newProfileResponse(result.Profile),
		"keys":    result.Keys,
	})
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if err := h.del.Execute(r.Context(), userID); err != nil {
		AuditLog(h.log, r, "profile.delete", userID.String(), false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "profile.delete", userID.String(), true, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) requireUser(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
	}
	return userID, ok
}
