package draft

import "fmt"

// InsufficientCardsError indicates a source list smaller than the pool the
// settings require.
type InsufficientCardsError struct {
	Required  int
	Available int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("insufficient cards: need %d, have %d", e.Required, e.Available)
}

// ValidationError indicates a malformed action payload, such as a split
// that omits or duplicates cards. The state is left unchanged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// InvalidStateError indicates an action invoked in a phase that does not
// permit it, such as choosing before a split exists.
type InvalidStateError struct {
	Op     string
	Phase  Phase
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not permitted in phase %s: %s", e.Op, e.Phase, e.Reason)
}

// NotFoundError indicates a pile ID that matches neither pile of the
// active pack.
type NotFoundError struct {
	PileID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pile %s not found", e.PileID)
}

// SeedFormatError indicates a seed string that cannot be decoded.
type SeedFormatError struct {
	Reason string
	Err    error
}

func (e *SeedFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed seed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed seed: %s", e.Reason)
}

func (e *SeedFormatError) Unwrap() error { return e.Err }
