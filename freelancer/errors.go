package freelancer

import "fmt"

// ErrorKind classifies adapter failures
type ErrorKind int

const (
	// ErrConfig covers malformed constructor options, malformed token maps
	// and unknown symbolic advanced scopes
	ErrConfig ErrorKind = iota
	// ErrInvalidGrant covers unsupported or malformed grant types
	ErrInvalidGrant
	// ErrAPI covers error responses from the Freelancer API
	ErrAPI
	// ErrNoToken is returned when an authenticated request is attempted
	// without an access token set
	ErrNoToken
	// ErrUnknown collapses any other transport or engine failure
	ErrUnknown
)

// CodeUnresolved is the subcode used when the upstream response carries no
// error_code, or carries one outside the known set
const CodeUnresolved = -1

// errorCodes maps the upstream error_code strings to the adapter's numeric
// taxonomy. Read-only after process start.
var errorCodes = map[string]int{
	"INVALID_ATTRIBUTE":   0,
	"MISSING_ATTRIBUTE":   1,
	"INVALID_REQUEST":     2,
	"UNAUTHORIZED":        3,
	"FORBIDDEN":           4,
	"QUOTA_EXCEEDED":      5,
	"CONFLICT":            6,
	"NOT_FOUND":           7,
	"INTERNAL_ERROR":      8,
	"SERVICE_UNAVAILABLE": 9,
}

// Error is the single error type surfaced by the adapter. Lower-level engine
// and transport errors are translated into it before reaching the caller.
type Error struct {
	Kind    ErrorKind
	Code    int // numeric subcode, CodeUnresolved when not mapped
	Message string
	cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Code != CodeUnresolved {
		return fmt.Sprintf("freelancer: %s (code %d)", e.Message, e.Code)
	}
	return "freelancer: " + e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Code: CodeUnresolved, Message: message}
}

func wrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Code: CodeUnresolved, Message: message, cause: cause}
}

// checkResponse inspects a decoded response body for the vendor's error
// shape. A "message" field marks a hard error regardless of HTTP status; the
// sibling "error_code" field, when recognized, resolves the numeric subcode.
func checkResponse(raw map[string]interface{}) error {
	message, ok := raw["message"].(string)
	if !ok {
		return nil
	}

	err := newError(ErrAPI, message)
	if codeName, ok := raw["error_code"].(string); ok {
		if code, known := errorCodes[codeName]; known {
			err.Code = code
		}
	}
	return err
}
