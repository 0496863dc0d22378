package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredential is returned when a client is built without its API key
	ErrNoCredential = errors.New("missing API key")

	// ErrNotAudio is returned when a synthesis endpoint answers with something other than audio
	ErrNotAudio = errors.New("unexpected response format from speech API")
)

// StatusError reports a non-2xx answer from a speech API
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API Error: %d %s", e.Provider, e.Code, e.Body)
}
