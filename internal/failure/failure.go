// Package failure tags errors with the pipeline stage category that
// produced them, so the entry point can report them uniformly.
package failure

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error by the stage that raised it.
type Kind int

const (
	// Unknown is reported for errors that were never tagged.
	Unknown Kind = iota
	// Config covers bad arguments, flags and config files.
	Config
	// NotFound covers a missing model artifact or image file.
	NotFound
	// Decode covers model deserialization and image decoding.
	Decode
	// Inference covers the forward pass and its output.
	Inference
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case NotFound:
		return "not-found"
	case Decode:
		return "decode"
	case Inference:
		return "inference"
	default:
		return "unknown"
	}
}

// Error is a tagged error. Err always carries a stack trace.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Format prints the wrapped stack trace for %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.Op != "" {
				fmt.Fprintf(s, "%s: ", e.Op)
			}
			fmt.Fprintf(s, "%+v", e.Err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New creates a tagged error from a message.
func New(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: errors.Errorf(format, args...)}
}

// Wrap tags err. A nil err yields nil. If err is already tagged its kind is
// kept, so the innermost classification wins.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return &Error{Kind: tagged.Kind, Op: op, Err: err}
	}
	return &Error{Kind: kind, Op: op, Err: errors.WithStack(err)}
}

// KindOf returns the kind of the outermost tagged error in err's chain.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return Unknown
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// StackTrace returns the innermost stack trace recorded in err's chain, or
// nil when none was recorded.
func StackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	for e := err; e != nil; e = errors.Unwrap(e) {
		if t, ok := e.(stackTracer); ok {
			st = t.StackTrace()
		}
	}
	return st
}

// Is reports whether err was tagged with kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
