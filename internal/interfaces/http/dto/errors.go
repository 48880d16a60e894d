package dto

import "net/http"

// Error codes returned to clients, format ERR_<CATEGORY>[_<DETAIL>].
// Domain errors carry shorter internal codes; NormalizeErrorCode maps
// them to these before they leave the API.
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	// validation
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
	ErrCodeValidationRange    = "ERR_VALIDATION_RANGE"

	// authentication and authorization
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	// resources
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	// booking rules
	ErrCodeInvalidState    = "ERR_INVALID_STATE"
	ErrCodeBusinessRule    = "ERR_BUSINESS_RULE"
	ErrCodeRoomUnavailable = "ERR_ROOM_UNAVAILABLE"
	ErrCodeStepIncomplete  = "ERR_STEP_INCOMPLETE"
	ErrCodeSubmitInFlight  = "ERR_SUBMIT_IN_FLIGHT"

	// upstream dependencies
	ErrCodePriceCalculation = "ERR_PRICE_CALCULATION"
	ErrCodeUploadFailed     = "ERR_UPLOAD_FAILED"
	ErrCodeSubmissionFailed = "ERR_SUBMISSION_FAILED"

	// request shape
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus holds the HTTP status each code maps to. Business
// rule violations answer 422 so clients can distinguish them from
// malformed requests; a submission already in flight is a 409 because
// retrying after it finishes can succeed.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:    http.StatusUnprocessableEntity,
	ErrCodeRoomUnavailable: http.StatusUnprocessableEntity,
	ErrCodeStepIncomplete:  http.StatusUnprocessableEntity,
	ErrCodeSubmitInFlight:  http.StatusConflict,

	ErrCodePriceCalculation: http.StatusBadGateway,
	ErrCodeUploadFailed:     http.StatusBadGateway,
	ErrCodeSubmissionFailed: http.StatusInternalServerError,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the status for a code, defaulting to 500 for
// anything unregistered.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping translates the domain layer's codes to the
// client-facing ones above.
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"UNAUTHORIZED":             ErrCodeUnauthorized,
	"FORBIDDEN":                ErrCodeForbidden,
	"CONCURRENCY_CONFLICT":     ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":         ErrCodeValidation,
	"BAD_REQUEST":              ErrCodeBadRequest,
	"INTERNAL_ERROR":           ErrCodeInternal,
	"PRICE_CALCULATION_FAILED": ErrCodePriceCalculation,
	"UPLOAD_FAILED":            ErrCodeUploadFailed,
	"SUBMISSION_FAILED":        ErrCodeSubmissionFailed,
	"ROOM_UNAVAILABLE":         ErrCodeRoomUnavailable,
	"STEP_INCOMPLETE":          ErrCodeStepIncomplete,
	"SUBMIT_IN_FLIGHT":         ErrCodeSubmitInFlight,
	"SESSION_NOT_FOUND":        ErrCodeNotFound,
}

// NormalizeErrorCode maps a domain code to its client-facing form,
// passing through codes that are already normalized or unknown.
func NormalizeErrorCode(code string) string {
	if mapped, ok := LegacyErrorCodeMapping[code]; ok {
		return mapped
	}
	return code
}
