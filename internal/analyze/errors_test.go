package analyze

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ppiankov/factcheck/internal/llm"
)

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
		msg  string
	}{
		{"unauthorized", &llm.StatusError{Provider: "gemini", StatusCode: 401}, CategoryAuthentication, MsgAuthentication},
		{"forbidden", &llm.StatusError{Provider: "gemini", StatusCode: 403}, CategoryAuthorization, MsgAuthorization},
		{"too many requests status", &llm.StatusError{Provider: "gemini", StatusCode: 429}, CategoryRateLimit, MsgRateLimit},
		{"429 in message", errors.New("request failed with code 429"), CategoryRateLimit, MsgRateLimit},
		{"resource exhausted", errors.New("RESOURCE_EXHAUSTED: quota"), CategoryRateLimit, MsgRateLimit},
		{"rate limit phrase", errors.New("Rate limit reached for requests"), CategoryRateLimit, MsgRateLimit},
		{"server error", &llm.StatusError{Provider: "gemini", StatusCode: 500}, CategoryTransport, MsgTransport},
		{"connection refused", errors.New("dial tcp: connection refused"), CategoryTransport, MsgTransport},
		{"deadline", context.DeadlineExceeded, CategoryTransport, MsgTransport},
		{"gemini invalid key", &llm.StatusError{Provider: "gemini", StatusCode: 400, Message: "INVALID_ARGUMENT - API key not valid. Please pass a valid API key."}, CategoryAuthentication, MsgAuthentication},
		{"invalid key reason", errors.New(`{"error":{"code":400,"details":[{"reason":"API_KEY_INVALID"}]}}`), CategoryAuthentication, MsgAuthentication},
		{"bad request", &llm.StatusError{Provider: "gemini", StatusCode: 400, Message: "INVALID_ARGUMENT - bad field"}, CategoryTransport, MsgTransport},
		{"wrapped forbidden", fmt.Errorf("call: %w", &llm.StatusError{StatusCode: 403}), CategoryAuthorization, MsgAuthorization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTransport(tt.err)
			if got.Category != tt.want {
				t.Errorf("Expected category %s, got %s", tt.want, got.Category)
			}
			if got.Message != tt.msg {
				t.Errorf("Expected message %q, got %q", tt.msg, got.Message)
			}
			if !errors.Is(got, tt.err) {
				t.Error("Expected cause to be preserved")
			}
		})
	}
}

func TestClassifyTransport_Nil(t *testing.T) {
	if ClassifyTransport(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestClassify(t *testing.T) {
	existing := invalidVerdictError("PROBABLY_TRUE")
	if got := Classify(fmt.Errorf("wrapped: %w", existing)); got != existing {
		t.Error("Expected classified error to pass through unchanged")
	}

	if got := Classify(errors.New("got 429 from upstream")); got.Category != CategoryRateLimit {
		t.Errorf("Expected rate_limit, got %s", got.Category)
	}

	got := Classify(errors.New("something odd"))
	if got.Category != CategoryUnknown || got.Message != MsgUnknown {
		t.Errorf("Expected unknown error, got %s: %s", got.Category, got.Message)
	}

	if Classify(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestIsCategory(t *testing.T) {
	err := fmt.Errorf("outer: %w", newError(CategoryTransport, MsgTransport, nil))
	if !IsCategory(err, CategoryTransport) {
		t.Error("Expected transport category")
	}
	if IsCategory(err, CategoryUnknown) {
		t.Error("Did not expect unknown category")
	}
	if IsCategory(errors.New("plain"), CategoryTransport) {
		t.Error("Plain errors have no category")
	}
}

func TestInvalidVerdictError_NamesValue(t *testing.T) {
	err := invalidVerdictError("PROBABLY_TRUE")
	if err.Error() != "The AI returned an unknown verdict: PROBABLY_TRUE" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if err.Value != "PROBABLY_TRUE" {
		t.Errorf("Expected value PROBABLY_TRUE, got %s", err.Value)
	}
}
