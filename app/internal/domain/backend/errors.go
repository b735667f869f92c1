package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable covers transport failures and responses that could not be decoded.
	ErrUnreachable = errors.New("backend unreachable or returned invalid JSON")
	ErrNotFound    = errors.New("not found")
)

// ServerError is a non-2xx response carrying the backend's own message.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.Status, e.Message)
}

// AsServerError reports whether err carries a ServerError with the given status.
func AsServerError(err error, status int) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) && se.Status == status {
		return se, true
	}
	return nil, false
}
