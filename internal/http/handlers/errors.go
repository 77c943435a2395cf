package handlers

// Stable error codes returned in ErrorResponse.Code. Clients branch on these
// rather than on messages.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeInternal     = "internal_error"

	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeValidation  = "validation_error"
	ErrCodeInvalidID   = "invalid_id"
	ErrCodeActuator    = "actuator_failure"
	ErrCodeSensors     = "sensors_unavailable"
	ErrCodeExportFails = "export_failed"
)
