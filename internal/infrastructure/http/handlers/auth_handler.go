package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/auth"
	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	gateway       ports.AuthGateway
	refresh       *auth.Refresh
	resetPassword *auth.ResetPassword
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAuthHandler(gateway ports.AuthGateway, refresh *auth.Refresh, resetPassword *auth.ResetPassword, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		gateway:       gateway,
		refresh:       refresh,
		resetPassword: resetPassword,
		validate:      validator.New(),
		log:           log,
	}
}

// Signup registers an account. Empty or mismatched passwords are rejected
// by the gateway, not here, so the client sees one message for both.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email           string `json:"email" validate:"max=254"`
		Password        string `json:"password" validate:"max=128"`
		ConfirmPassword string `json:"confirm_password" validate:"max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validationMessage(err))
		return
	}
	user, err := h.gateway.Register(r.Context(), SanitizeEmail(body.Email), body.Password, body.ConfirmPassword)
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.signup", user.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, newUserResponse(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validationMessage(err))
		return
	}
	session, err := h.gateway.Login(r.Context(), SanitizeEmail(body.Email), SanitizePassword(body.Password))
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.login", session.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"expires_in":    session.ExpiresIn,
		"user":          newUserResponse(session.User),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token" validate:"required,max=1024"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validationMessage(err))
		return
	}
	result, err := h.refresh.Execute(r.Context(), auth.RefreshInput{RefreshToken: body.RefreshToken})
	if err != nil {
		AuditLog(h.log, r, "auth.refresh", "", false, err.Error())
		middleware.RecordAuthAttempt("refresh", false)
		writeDomainErr(w, h.log, err)
		return
	}
	middleware.RecordAuthAttempt("refresh", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

// Logout revokes the refresh token in the body. It always answers 204
// unless the token store fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if err := h.gateway.Logout(r.Context(), TruncateRefreshToken(body.RefreshToken)); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.logout", "", true, "")
	w.WriteHeader(http.StatusNoContent)
}

// Session reports whether the bearer token is a live session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	tok, _ := middleware.BearerToken(r)
	writeJSON(w, http.StatusOK, map[string]bool{"logged_in": h.gateway.IsLoggedIn(r.Context(), tok)})
}

// ForgotPassword always answers 202 so the response does not reveal which
// emails are registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validationMessage(err))
		return
	}
	if err := h.gateway.RecoverPassword(r.Context(), SanitizeEmail(body.Email)); err != nil {
		AuditLog(h.log, r, "auth.password_reset.request", "", false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "auth.password_reset.request", "", true, "")
	w.WriteHeader(http.StatusAccepted)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token       string `json:"token" validate:"required,max=256"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validationMessage(err))
		return
	}
	_, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		Token:       body.Token,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		AuditLog(h.log, r, "auth.password_reset", "", false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "auth.password_reset", "", true, "")
	w.WriteHeader(http.StatusNoContent)
}
