package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error kinds for a single analysis call. The degrade policy in the
// analyzers decides what to do with them; the calls themselves never
// substitute fallback content.
var (
	// ErrUpstream means the text-generation service could not be reached
	// or refused the request.
	ErrUpstream = errors.New("analyzer: upstream unavailable")

	// ErrMalformedResponse means the service answered but the payload
	// was not the expected JSON.
	ErrMalformedResponse = errors.New("analyzer: malformed response")
)

// classifyCallError folds provider errors into the upstream kind. Every
// provider failure, keyed sentinel or not, means the call cannot yield
// usable content.
func classifyCallError(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// StripCodeFence removes a surrounding markdown code fence, optionally
// tagged "json", from a model response. Unfenced input passes through
// unchanged, so fenced and unfenced payloads parse identically.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return s
	}
	inner := strings.TrimPrefix(parts[1], "json")
	return strings.TrimSpace(inner)
}

// decodeResponse strips any code fence and unmarshals the payload.
func decodeResponse(content string, v any) error {
	payload := StripCodeFence(content)
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
