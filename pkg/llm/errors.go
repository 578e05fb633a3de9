package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingCredential is returned before any network call when the provider has
// no API key. It is not retryable; only the operator can fix it.
var ErrMissingCredential = errors.New("Missing OPENAI_API_KEY environment variable")

// UpstreamError carries a non-2xx completion API response verbatim.
type UpstreamError struct {
	Status     int
	StatusText string
	Body       string
}

func NewUpstreamError(status int, body string) *UpstreamError {
	return &UpstreamError{
		Status:     status,
		StatusText: http.StatusText(status),
		Body:       body,
	}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("OpenAI error: %s", e.StatusText)
}
