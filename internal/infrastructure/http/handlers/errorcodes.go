package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeAccountLocked      = "account_locked"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeValidation         = "validation_failed"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeUserExists         = "user_exists"
	ErrCodeUsernameTaken      = "username_taken"
	ErrCodeUsernameImmutable  = "username_immutable"
	ErrCodeProfileExists      = "profile_exists"
	ErrCodeSaveInProgress     = "save_in_progress"
	ErrCodeInvalidToken       = "invalid_token"
	ErrCodeResetInvalid       = "reset_token_invalid"
	ErrCodePayloadTooLarge    = "payload_too_large"
	ErrCodeUpstream           = "upstream_error"
	ErrCodeUnavailable        = "unavailable"
	ErrCodeInternal           = "internal_error"
)
