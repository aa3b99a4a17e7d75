package printf

import (
	"errors"
	"fmt"
)

var (
	ErrIncomplete      = errors.New("incomplete directive")
	ErrBadVerb         = errors.New("unknown conversion")
	ErrUnsupported     = errors.New("unsupported conversion")
	ErrMissingArgument = errors.New("missing argument")
	ErrArgumentType    = errors.New("wrong argument type")
	ErrRange           = errors.New("width or precision out of range")
	ErrStringMethod    = errors.New("String method failed")
)

// MaxWidth bounds field widths and precisions, whether written in the format
// or taken from a '*' argument.
const MaxWidth = 1 << 20

// Error is returned when a format string or its arguments cannot be formatted.
type Error struct {
	Offset    int    // byte offset of the directive in the format string
	Directive string // directive source text
	Arg       int    // zero-based argument index, or -1
	Msg       string // optional detail
	Err       error  // one of the Err* sentinels
}

func (e *Error) Error() string {
	s := fmt.Sprintf("printf: %v at offset %d (%q)", e.Err, e.Offset, e.Directive)
	if e.Arg >= 0 {
		s += fmt.Sprintf(", argument %d", e.Arg+1)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}
