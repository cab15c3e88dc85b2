// Package stageerr defines the fatal error kinds raised by the gallery
// pipeline stages. Every kind terminates the run; none are retried.
package stageerr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindPrecondition reports a missing renderer executable or dataset file.
	KindPrecondition Kind = iota + 1
	// KindRenderer reports a renderer invocation that exited with a nonzero status.
	KindRenderer
	// KindFormat reports a page image whose header could not be parsed.
	KindFormat
)

// Sentinel values usable with errors.Is against any *Error of the same kind.
var (
	ErrPrecondition = &Error{Kind: KindPrecondition}
	ErrRenderer     = &Error{Kind: KindRenderer}
	ErrFormat       = &Error{Kind: KindFormat}
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition missing"
	case KindRenderer:
		return "renderer failure"
	case KindFormat:
		return "format error"
	default:
		return "unknown"
	}
}

// Error is a fatal pipeline error carrying enough context for a single
// human-readable message.
type Error struct {
	Kind Kind
	// Op names the stage that failed, e.g. "render" or "discover".
	Op string
	// Path is the file the failure is about, when there is one.
	Path string
	// Status is the renderer exit status for KindRenderer.
	Status int
	// Msg overrides the default message when set.
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg != "" {
		return e.Msg
	}
	switch e.Kind {
	case KindPrecondition:
		return fmt.Sprintf("%s does not exist", e.Path)
	case KindRenderer:
		return fmt.Sprintf("%s terminated with exit status %d", e.Path, e.Status)
	case KindFormat:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("%s: invalid image", e.Path)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so the package sentinels work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Precondition returns a KindPrecondition error for path.
func Precondition(op, path, msg string) error {
	return &Error{Kind: KindPrecondition, Op: op, Path: path, Msg: msg}
}

// RendererFailed returns a KindRenderer error for the executable and status.
func RendererFailed(executable string, status int) error {
	return &Error{Kind: KindRenderer, Op: "render", Path: executable, Status: status}
}

// Format returns a KindFormat error wrapping err for path.
func Format(path string, err error) error {
	return &Error{Kind: KindFormat, Op: "discover", Path: path, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
