package openai

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey indicates no generation-service credential is configured.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY is not set")

// ErrEmptyResponse indicates the service returned no usable text.
var ErrEmptyResponse = errors.New("generation service returned no usable text")

// UpstreamError reports a non-success status or a malformed response from
// the generation service.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("generation request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
