package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusRequestEntityTooLarge:
		return ErrCodePayloadTooLarge
	case http.StatusLocked:
		return ErrCodeAccountLocked
	case http.StatusBadGateway:
		return ErrCodeUpstream
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps an application error to a status and error code.
// Gateway failures keep their message verbatim; anything unrecognised is
// logged and hidden behind a generic 500.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	var (
		ve     *domerrors.ValidationError
		locked *domerrors.AccountLockedError
		ge     *domerrors.GatewayError
	)
	switch {
	case errors.As(err, &ve):
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, ve.Error())
	case errors.As(err, &locked):
		w.Header().Set("Retry-After", strconv.Itoa(locked.RetryAfterSeconds))
		writeErr(w, http.StatusLocked, ErrCodeAccountLocked, locked.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrPasswordResetInvalid):
		writeErr(w, http.StatusBadRequest, ErrCodeResetInvalid, err.Error())
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrUserExists):
		writeErr(w, http.StatusConflict, ErrCodeUserExists, err.Error())
	case errors.Is(err, domerrors.ErrUsernameTaken):
		writeErr(w, http.StatusConflict, ErrCodeUsernameTaken, err.Error())
	case errors.Is(err, domerrors.ErrUsernameImmutable):
		writeErr(w, http.StatusConflict, ErrCodeUsernameImmutable, err.Error())
	case errors.Is(err, domerrors.ErrProfileExists):
		writeErr(w, http.StatusConflict, ErrCodeProfileExists, err.Error())
	case errors.Is(err, domerrors.ErrSaveInProgress):
		writeErr(w, http.StatusConflict, ErrCodeSaveInProgress, err.Error())
	case errors.Is(err, domerrors.ErrSessionNotReady):
		writeErr(w, http.StatusServiceUnavailable, ErrCodeUnavailable, err.Error())
	case errors.As(err, &ge):
		log.Error().Err(err).Str("gateway", ge.Gateway).Str("op", ge.Op).Msg("gateway call failed")
		writeErr(w, http.StatusBadGateway, ErrCodeUpstream, ge.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

// saveOutcome labels a save workflow result for metrics.
func saveOutcome(err error) string {
	var (
		ve *domerrors.ValidationError
		ge *domerrors.GatewayError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	case errors.As(err, &ge):
		return "gateway_error"
	case errors.Is(err, domerrors.ErrUsernameTaken), errors.Is(err, domerrors.ErrUsernameImmutable),
		errors.Is(err, domerrors.ErrProfileExists), errors.Is(err, domerrors.ErrSaveInProgress):
		return "conflict"
	case errors.Is(err, domerrors.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
