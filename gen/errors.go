package gen

import "fmt"

// UnresolvedTypeError is returned when emission references a fully-qualified
// type name that was never registered. Location describes the referencing
// site, e.g. "input type of SayHello".
type UnresolvedTypeError struct {
	Name     string
	Location string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("unknown type reference %s (%s)", e.Name, e.Location)
}

// phase represents the lifecycle state of a Service. Operations called out
// of phase are rejected instead of relying on caller discipline.
type phase int

const (
	phaseConstructed phase = iota
	phaseResolved
	phaseEmitted
)

func (p phase) String() string {
	switch p {
	case phaseConstructed:
		return "constructed"
	case phaseResolved:
		return "resolved"
	case phaseEmitted:
		return "emitted"
	default:
		return "unknown"
	}
}
