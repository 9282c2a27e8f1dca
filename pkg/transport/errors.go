package transport

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// AuthError means the backend rejected the credential (401/403). The
// transport has already torn the session down by the time the caller
// sees this; there is nothing to retry.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// ValidationError is a structured field-level rejection (422).
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// ConflictError covers 404 and 409: the entity is gone or already in the
// requested state (deleting an already-deleted item, sharing with a
// nonexistent user). Callers refresh local state to reconcile.
type ConflictError struct {
	StatusCode int
	Message    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// ServerError is any other non-2xx response.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// NetworkError means no response was received (refused, timed out). The
// true outcome of a write is unknown, so the transport never retries it.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsAuth reports whether err is an AuthError.
func AsAuth(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// AsValidation reports whether err is a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsConflict reports whether err is a ConflictError.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Message extracts the user-facing text of any transport error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Network error. Is the server reachable?"
	}
	return err.Error()
}

// extractMessage pulls a readable message out of the backend's error
// envelope: a string detail, the first validation item's msg, a message
// field, or a generic fallback.
func extractMessage(body []byte) string {
	const fallback = "Request failed. Please try again."

	var eb protocol.ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return fallback
	}

	if len(eb.Detail) > 0 {
		var s string
		if json.Unmarshal(eb.Detail, &s) == nil && s != "" {
			return s
		}
		var items []protocol.ValidationItem
		if json.Unmarshal(eb.Detail, &items) == nil && len(items) > 0 && items[0].Msg != "" {
			return items[0].Msg
		}
	}
	if eb.Message != "" {
		return eb.Message
	}
	return fallback
}
