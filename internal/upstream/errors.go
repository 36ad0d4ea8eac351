// internal/upstream/errors.go
package upstream

import "fmt"

// RequestError covers every way a call to the remote API can fail: the
// request never made it out, or it came back with a non-success status.
// It is displayable but never fatal; the caller keeps its prior state.
type RequestError struct {
	Op      string
	Status  int
	Message string // server-provided message, when the body carried one
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// DisplayMessage returns the server-provided message if there is one,
// else the fallback.
func (e *RequestError) DisplayMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}
