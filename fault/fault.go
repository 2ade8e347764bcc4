// Package fault classifies the errors that can end a session and maps
// them to process exit codes.
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the class of a fatal error.
type Kind int

// Known error kinds.
const (
	Unknown    Kind = iota
	Startup         // Bad command line arguments.
	IO              // ROM unreadable or empty.
	Load            // The emulation core rejected the ROM image.
	Allocation      // The memory arena could not be allocated.
)

func (k Kind) String() string {
	switch k {
	case Startup:
		return "startup error"
	case IO:
		return "io error"
	case Load:
		return "load error"
	case Allocation:
		return "allocation error"
	}
	return "error"
}

// ExitCode returns the process exit code for errors of this kind.
func (k Kind) ExitCode() int {
	switch k {
	case Startup:
		return 0
	case IO, Load:
		return -1
	}
	return 1
}

// Error is a classified error.
type Error struct {
	Kind Kind
	Err  error
}

// New creates a new, formatted error of the given kind.
func New(kind Kind, f string, argv ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Err:  errors.Errorf(f, argv...),
	}
}

// Wrap classifies err as the given kind, annotated with a formatted message.
// Returns nil if err is nil.
func Wrap(kind Kind, err error, f string, argv ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind: kind,
		Err:  errors.Wrapf(err, f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Cause returns the underlying error. It lets errors.Cause see through e.
func (e *Error) Cause() error {
	return e.Err
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first classified error in err's chain.
// Returns Unknown if err carries no classification.
func KindOf(err error) Kind {
	for err != nil {
		if fe, ok := err.(*Error); ok {
			return fe.Kind
		}
		if u, ok := err.(interface{ Unwrap() error }); ok {
			err = u.Unwrap()
			continue
		}
		if c, ok := err.(interface{ Cause() error }); ok {
			err = c.Cause()
			continue
		}
		return Unknown
	}
	return Unknown
}

// Is returns true if err is classified as the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode returns the exit code for err. A nil error yields 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
