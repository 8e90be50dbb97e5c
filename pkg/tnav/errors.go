package tnav

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/tnav/pkg/tnav/navchan"
	"github.com/BrandonKowalski/tnav/pkg/tnav/router"
)

// Sentinel errors for common conditions.
var (
	// ErrNotRegistered indicates a route has no registered screen.
	ErrNotRegistered = router.ErrNotRegistered

	// ErrAlreadyRunning indicates a host loop is already active.
	ErrAlreadyRunning = router.ErrAlreadyRunning

	// ErrConsumerActive indicates another consumer is draining the intent channel.
	ErrConsumerActive = navchan.ErrConsumerActive

	// ErrUnknownTransition indicates a config names a transition preset that does not exist.
	ErrUnknownTransition = errors.New("unknown transition preset")
)

// InfrastructureError represents a failure outside navigation itself, such as
// an unreadable config file or input device. Expected navigation conditions
// (missing payloads, dropped or stale intents, unknown pop targets) are never
// reported as errors.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "load_config", "open_input")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tnav: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("tnav: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
