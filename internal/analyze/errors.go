package analyze

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ppiankov/factcheck/internal/llm"
)

// Category identifies the kind of failure surfaced to the user
type Category string

const (
	CategoryConfiguration     Category = "configuration"
	CategoryAuthentication    Category = "authentication"
	CategoryAuthorization     Category = "authorization"
	CategoryRateLimit         Category = "rate_limit"
	CategoryTransport         Category = "transport"
	CategoryMalformedResponse Category = "malformed_response"
	CategoryInvalidVerdict    Category = "invalid_verdict"
	CategoryUnknown           Category = "unknown"
)

// User-facing messages
const (
	MsgMissingAPIKey     = "API key not found. Set the API key for the configured provider."
	MsgInitFailed        = "Failed to initialize AI service. Please check your API key and try again."
	MsgAuthentication    = "API key is invalid. Please check your API key."
	MsgAuthorization     = "API access forbidden. Please ensure your API key has the correct permissions."
	MsgRateLimit         = "API rate limit exceeded. Please wait a moment before trying again."
	MsgTransport         = "Failed to connect to the AI service. Please try again later."
	MsgMalformedResponse = "The AI returned an invalid response format. Please try rephrasing your claim."
	MsgInvalidVerdict    = "The AI returned an unknown verdict: "
	MsgUnknown           = "An unknown error occurred during analysis."
)

// Error is the single error type returned by analysis. Message is safe to
// show to users; Err keeps the underlying cause for logs.
type Error struct {
	Category Category
	Message  string

	// Value is the offending verdict for CategoryInvalidVerdict
	Value string

	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCategory reports whether err is an *Error of the given category
func IsCategory(err error, cat Category) bool {
	var e *Error
	return errors.As(err, &e) && e.Category == cat
}

func newError(cat Category, msg string, cause error) *Error {
	return &Error{Category: cat, Message: msg, Err: cause}
}

func invalidVerdictError(value string) *Error {
	return &Error{
		Category: CategoryInvalidVerdict,
		Message:  MsgInvalidVerdict + value,
		Value:    value,
	}
}

var (
	rateLimitMarkers = []string{"429", "rate limit", "too many requests", "resource_exhausted"}

	// Gemini rejects a bad key with 400 INVALID_ARGUMENT rather than 401
	invalidKeyMarkers = []string{"api_key_invalid", "api key not valid"}
)

func hasMarker(err error, markers []string) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isRateLimited(err error) bool {
	if code, ok := llm.StatusCode(err); ok && code == http.StatusTooManyRequests {
		return true
	}
	return hasMarker(err, rateLimitMarkers)
}

// ClassifyTransport maps a failed provider call to exactly one category
func ClassifyTransport(err error) *Error {
	if err == nil {
		return nil
	}

	code, _ := llm.StatusCode(err)
	switch {
	case code == http.StatusUnauthorized, hasMarker(err, invalidKeyMarkers):
		return newError(CategoryAuthentication, MsgAuthentication, err)
	case code == http.StatusForbidden:
		return newError(CategoryAuthorization, MsgAuthorization, err)
	case isRateLimited(err):
		return newError(CategoryRateLimit, MsgRateLimit, err)
	default:
		return newError(CategoryTransport, MsgTransport, err)
	}
}

// Classify turns an arbitrary error into an *Error. Errors that are already
// classified pass through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if isRateLimited(err) {
		return newError(CategoryRateLimit, MsgRateLimit, err)
	}
	return newError(CategoryUnknown, MsgUnknown, err)
}
