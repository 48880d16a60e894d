package shared

// DomainError is the error type crossing the domain boundary. The code
// is stable and machine-readable; the HTTP layer maps it to a status
// and the message goes to the client verbatim.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches two domain errors by code, so wrapped sentinel errors
// compare the way errors.Is expects.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError builds a domain error with the given code and
// client-facing message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across the bounded contexts.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrPriceCalculation    = NewDomainError("PRICE_CALCULATION_FAILED", "Unable to calculate the booking price")
	ErrUpload              = NewDomainError("UPLOAD_FAILED", "File upload failed")
	ErrSubmission          = NewDomainError("SUBMISSION_FAILED", "Booking submission failed")
	ErrRoomUnavailable     = NewDomainError("ROOM_UNAVAILABLE", "Room is not available for the selected dates")
)
