package geo

import (
	"errors"
	"fmt"
)

// Error kinds returned by the verification core. Callers match them with
// errors.Is; a legitimate zero-lap result is never one of these.
var (
	ErrEmptyTrack        = errors.New("empty track")
	ErrMalformedCourse   = errors.New("malformed course")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidParameter  = errors.New("invalid parameter")
)

// Error carries one of the kinds above plus the indices it refers to
// (track samples or course waypoints, depending on the kind).
type Error struct {
	Kind    error
	Msg     string
	Indices []int
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, indices []int, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Indices: indices}
}

// Indices returns the indices cited by err, or nil when err is not an *Error.
func Indices(err error) []int {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Indices
	}
	return nil
}
