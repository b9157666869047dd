package navigation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Coordinator operations.
var (
	// ErrNotInitialized indicates Navigate, GoBack or ClearBackStack was
	// called before Initialize.
	ErrNotInitialized = errors.New("navigation: coordinator is not initialized")

	// ErrAlreadyInitialized indicates Initialize was called a second time.
	ErrAlreadyInitialized = errors.New("navigation: coordinator already initialized")

	// ErrUnregisteredDestination indicates a view model that has no
	// navigable registration.
	ErrUnregisteredDestination = errors.New("navigation: destination not registered")

	// ErrCyclicBase indicates a base chain that leads back to the
	// destination being registered.
	ErrCyclicBase = errors.New("navigation: cyclic base chain")
)

// DestinationError carries the operation and view model a navigation error
// refers to. These are configuration errors and are expected to surface to
// developers rather than be recovered from.
type DestinationError struct {
	Op        string      // Operation that failed (e.g., "navigate", "register")
	ViewModel ViewModelID // View model the operation was about
	Base      ViewModelID // Base link at fault, set for register errors
	Err       error       // Underlying sentinel error
}

func (e *DestinationError) Error() string {
	if e.Base != "" {
		return fmt.Sprintf("%v (op=%s view_model=%q base=%q)", e.Err, e.Op, e.ViewModel, e.Base)
	}
	return fmt.Sprintf("%v (op=%s view_model=%q)", e.Err, e.Op, e.ViewModel)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}

// IsUnregistered reports whether err stems from an unknown destination.
func IsUnregistered(err error) bool {
	return errors.Is(err, ErrUnregisteredDestination)
}
