package match

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationInvalid is returned when a Match is constructed from bad
// inputs (e.g. a roster under 11 players, an unknown formation name).
type ConfigurationInvalid struct {
	Field  string
	Reason string
}

func (e *ConfigurationInvalid) Error() string {
	return fmt.Sprintf("configuration invalid: %s: %s", e.Field, e.Reason)
}

// NewConfigurationInvalid builds a ConfigurationInvalid wrapped with a stack
// trace via pkg/errors, the same way the rest of the engine attaches context
// to errors it returns across package boundaries.
func NewConfigurationInvalid(field, reason string) error {
	return errors.WithStack(&ConfigurationInvalid{Field: field, Reason: reason})
}

// InvariantViolated signals the tick loop detected a state it must never
// reach (e.g. more than 22 players on pitch, possession held by a sent-off
// player). These are programming errors in the engine, not bad input.
type InvariantViolated struct {
	Invariant string
	Tick      int
	Detail    string
}

func (e *InvariantViolated) Error() string {
	return fmt.Sprintf("invariant violated at tick %d: %s: %s", e.Tick, e.Invariant, e.Detail)
}

// NewInvariantViolated builds an InvariantViolated wrapped with a stack
// trace.
func NewInvariantViolated(invariant string, tick int, detail string) error {
	return errors.WithStack(&InvariantViolated{Invariant: invariant, Tick: tick, Detail: detail})
}
