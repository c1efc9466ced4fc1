package llm

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when a hosted provider has no credential
var ErrMissingAPIKey = errors.New("API key is required")

// ErrUnknownProvider is returned for provider names outside the supported set
var ErrUnknownProvider = errors.New("unknown LLM provider")

// StatusError is a non-2xx response from a provider endpoint
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error (%d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

// StatusCode extracts the HTTP status carried by a transport error,
// whichever client library produced it.
func StatusCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, statusErr.StatusCode != 0
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.HTTPStatusCode != 0
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, reqErr.HTTPStatusCode != 0
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode, anthropicErr.StatusCode != 0
	}

	return 0, false
}
