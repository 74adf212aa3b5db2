package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput rejects a user submission that is blank after trimming.
	// The caller should not invoke the transport in this case.
	ErrEmptyInput = errors.New("message is empty")

	// ErrStaleTurn reports an event applied to a turn that is already
	// complete, such as a duplicate end-of-stream frame.
	ErrStaleTurn = errors.New("assistant turn is already complete")

	// ErrUnknownTurn reports an event applied to a turn id that is not in
	// the transcript.
	ErrUnknownTurn = errors.New("unknown turn id")
)

// TransportError is a non-success response or connection failure from the
// backend. It terminates the current turn; retry is the caller's decision.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
