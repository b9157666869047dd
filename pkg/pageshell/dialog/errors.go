package dialog

import (
	"errors"
	"fmt"
)

// ErrPresentationFailed is matched by every error a Queue delivers through a
// rejected future.
var ErrPresentationFailed = errors.New("dialog: presentation failed")

// ErrPosterStopped is the failure behind requests that were waiting for a UI
// loop that has since been stopped.
var ErrPosterStopped = errors.New("dialog: ui loop stopped")

// PresentationError wraps the failure raised while presenting one request.
// It only ever reaches the caller that enqueued that request.
type PresentationError struct {
	Seq uint64 // Enqueue sequence number of the failed request
	Err error  // Failure returned (or panic recovered) from the presenter
}

func (e *PresentationError) Error() string {
	return fmt.Sprintf("dialog: presentation of request %d failed: %v", e.Seq, e.Err)
}

func (e *PresentationError) Unwrap() error {
	return e.Err
}

func (e *PresentationError) Is(target error) bool {
	return target == ErrPresentationFailed
}

// IsPresentationFailed checks if an error came from a failed presentation.
func IsPresentationFailed(err error) bool {
	return errors.Is(err, ErrPresentationFailed)
}
