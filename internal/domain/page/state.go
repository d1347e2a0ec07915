package page

import (
	"errors"
	"fmt"
)

// State is the coarse lifecycle of a data-bearing page.
type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

var (
	ErrPageNotReady      = errors.New("page is not ready")
	ErrSubmissionPending = errors.New("a submission of this form is already pending")
	ErrRetryNotAllowed   = errors.New("retry is only allowed from the error state")
	ErrUnknownField      = errors.New("unknown form field")
)

// Sequencer orders the responses of overlapping fetches that target the same
// view state. Callers must serialize access, usually under the page mutex.
type Sequencer struct {
	issued  uint64
	applied uint64
}

// Next tags a new fetch.
func (s *Sequencer) Next() uint64 {
	s.issued++
	return s.issued
}

// Apply reports whether a response tagged seq may overwrite the view state
// and records it as the last applied one. Responses older than the last
// applied one are rejected.
func (s *Sequencer) Apply(seq uint64) bool {
	if seq < s.applied {
		return false
	}
	s.applied = seq
	return true
}

// Stale reports whether seq has already been superseded without recording it.
func (s *Sequencer) Stale(seq uint64) bool {
	return seq < s.applied
}

// ActionError is a failed fetch or mutation together with the message the
// user was notified with.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
