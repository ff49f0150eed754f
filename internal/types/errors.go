package types

import (
	"errors"
	"fmt"
)

// ErrAuth marks an expired or invalid upstream session. Fatal: the run
// aborts and the operator must re-export credentials.
var ErrAuth = errors.New("authentication failed")

// ErrRateLimited marks quota exhaustion on the summarization API.
// Recoverable per project: the caller degrades to a fallback summary.
var ErrRateLimited = errors.New("rate limit exceeded")

// ErrGeneration marks a malformed or empty model response. Same fallback
// policy as ErrRateLimited.
var ErrGeneration = errors.New("generation failed")

// PublishError reports a rejected draft creation. Fatal for the run.
type PublishError struct {
	StatusCode int
	Message    string
}

func (e *PublishError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("publish failed: http %d: %s", e.StatusCode, e.Message)
	}
	return "publish failed: " + e.Message
}

// IsAuth reports whether err is (or wraps) an authentication failure.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}
