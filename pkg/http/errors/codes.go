package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"

	// Account errors
	ErrCodeRegistrationFailed = "registration_failed"
	ErrCodeLoginFailed        = "login_failed"
	ErrCodeRefreshFailed      = "refresh_failed"
	ErrCodeResetFailed        = "reset_failed"

	// Attempt errors
	ErrCodeUnknownExamType       = "unknown_exam_type"
	ErrCodeUnknownMode           = "unknown_mode"
	ErrCodeEmptyQuestionBank     = "empty_question_bank"
	ErrCodeAttemptNotFound       = "attempt_not_found"
	ErrCodeAlreadySubmitted      = "already_submitted"
	ErrCodeAttemptCreationFailed = "attempt_creation_failed"
	ErrCodeAnswerSaveFailed      = "answer_save_failed"
	ErrCodeFinalizeFailed        = "finalize_failed"

	// Seeding errors
	ErrCodeSeedFailed = "seed_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"

	// OAuth errors
	ErrCodeOAuthNotConfigured  = "oauth_not_configured"
	ErrCodeOAuthStartFailed    = "oauth_start_failed"
	ErrCodeOAuthCallbackFailed = "oauth_callback_failed"
	ErrCodeOAuthMissingCode    = "missing_code"
	ErrCodeOAuthInvalidState   = "invalid_state"
)
