package printf

import (
	"fmt"
	"io"
	"os"
	"slices"
)

// Append formats according to format and appends the result to dst.
// On error dst is returned unchanged.
func Append(dst []byte, format string, args ...any) ([]byte, error) {
	pieces, err := Parse(format)
	if err != nil {
		return dst, err
	}
	s := &state{buf: dst, args: args}
	for _, p := range pieces {
		if p.Directive == nil {
			s.buf = append(s.buf, p.Literal...)
			continue
		}
		if err := s.format(p.Directive); err != nil {
			return dst, err
		}
	}
	return s.buf, nil
}

// Sprintf formats according to format and returns the resulting string.
func Sprintf(format string, args ...any) (string, error) {
	b, err := Append(nil, format, args...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Fprintf formats according to format and writes to w. Nothing is written
// if formatting fails.
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	b, err := Append(nil, format, args...)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

// Printf formats according to format and writes to standard output.
func Printf(format string, args ...any) (int, error) {
	return Fprintf(os.Stdout, format, args...)
}

// Snprintf formats into buf, truncating if buf is too small, and returns the
// length of the complete output. No terminator is written.
func Snprintf(buf []byte, format string, args ...any) (int, error) {
	b, err := Append(nil, format, args...)
	if err != nil {
		return 0, err
	}
	copy(buf, b)
	return len(b), nil
}

// state carries the output and argument cursor for one formatting call.
type state struct {
	buf  []byte
	args []any
	next int
}

func (s *state) format(d *Directive) error {
	spec := *d
	if d.WidthArg {
		w, err := s.starArg(d, "width")
		if err != nil {
			return err
		}
		if w < 0 {
			spec.Flags |= FlagMinus
			w = -w
		}
		spec.Width = w
		spec.WidthArg = false
	}
	if d.PrecisionArg {
		p, err := s.starArg(d, "precision")
		if err != nil {
			return err
		}
		if p < 0 {
			p = -1
		}
		spec.Precision = p
		spec.PrecisionArg = false
	}

	switch d.Verb {
	case '%':
		s.buf = append(s.buf, '%')
		return nil
	case 'd', 'i', 'u', 'o', 'x', 'X':
		return s.fmtInteger(&spec)
	case 'c', 'C':
		return s.fmtChar(&spec)
	case 's', 'S':
		return s.fmtString(&spec)
	case 'p':
		return s.fmtPointer(&spec)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return s.fmtFloat(&spec)
	}
	return &Error{Offset: d.Offset, Directive: d.Text, Arg: -1, Err: ErrBadVerb}
}

// nextArg consumes the next argument.
func (s *state) nextArg(d *Directive) (any, int, error) {
	if s.next >= len(s.args) {
		return nil, s.next, &Error{Offset: d.Offset, Directive: d.Text, Arg: s.next, Err: ErrMissingArgument}
	}
	i := s.next
	s.next++
	return s.args[i], i, nil
}

// starArg consumes an int argument for a '*' width or precision. A negative
// precision means none was given, so only its positive side is bounded.
func (s *state) starArg(d *Directive, what string) (int, error) {
	v, i, err := s.nextArg(d)
	if err != nil {
		return 0, err
	}
	bits, ok := intBits(v)
	if !ok {
		return 0, typeError(d, i, "'*' wants an int, got %T", v)
	}
	n := int(int32(uint32(bits)))
	if n > MaxWidth || (what == "width" && n < -MaxWidth) {
		return 0, &Error{
			Offset:    d.Offset,
			Directive: d.Text,
			Arg:       i,
			Msg:       fmt.Sprintf("%s %d", what, n),
			Err:       ErrRange,
		}
	}
	return n, nil
}

func typeError(d *Directive, arg int, format string, args ...any) error {
	return &Error{
		Offset:    d.Offset,
		Directive: d.Text,
		Arg:       arg,
		Msg:       fmt.Sprintf(format, args...),
		Err:       ErrArgumentType,
	}
}

// writePadded writes head and body padded out to the directive's width.
// n is the display width of head+body. Zero padding goes between head and body.
func (s *state) writePadded(d *Directive, head, body string, n int, zero bool) {
	pad := d.Width - n
	switch {
	case pad <= 0:
		s.buf = append(s.buf, head...)
		s.buf = append(s.buf, body...)
	case d.Flags.Has(FlagMinus):
		s.buf = append(s.buf, head...)
		s.buf = append(s.buf, body...)
		s.buf = appendRepeat(s.buf, ' ', pad)
	case zero:
		s.buf = append(s.buf, head...)
		s.buf = appendRepeat(s.buf, '0', pad)
		s.buf = append(s.buf, body...)
	default:
		s.buf = appendRepeat(s.buf, ' ', pad)
		s.buf = append(s.buf, head...)
		s.buf = append(s.buf, body...)
	}
}

func appendRepeat(b []byte, c byte, n int) []byte {
	if n <= 0 {
		return b
	}
	start := len(b)
	b = slices.Grow(b, n)[:start+n]
	fill := b[start:]
	fill[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fill[i:], fill[:i])
	}
	return b
}

// sign returns the sign text for a converted number.
func sign(neg bool, f Flags, signed bool) string {
	switch {
	case neg:
		return "-"
	case !signed:
		return ""
	case f.Has(FlagPlus):
		return "+"
	case f.Has(FlagSpace):
		return " "
	}
	return ""
}
