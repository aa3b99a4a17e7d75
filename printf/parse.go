package printf

import "strings"

// Parse splits format into literal text and directives. "%%" is folded into
// the surrounding literal text.
func Parse(format string) ([]Piece, error) {
	var (
		pieces []Piece
		lit    strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, Piece{Literal: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			// copy the whole literal run in one go
			j := strings.IndexByte(format[i:], '%')
			if j < 0 {
				j = len(format) - i
			}
			lit.WriteString(format[i : i+j])
			i += j
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}
		d, err := parseDirective(format, i)
		if err != nil {
			return nil, err
		}
		flush()
		pieces = append(pieces, Piece{Directive: d})
		i += len(d.Text)
	}
	flush()
	return pieces, nil
}

func parseDirective(format string, start int) (*Directive, error) {
	d := &Directive{Precision: -1, Offset: start}
	i := start + 1

	fail := func(err error, msg string) (*Directive, error) {
		end := i
		if end > len(format) {
			end = len(format)
		}
		return nil, &Error{
			Offset:    start,
			Directive: format[start:end],
			Arg:       -1,
			Msg:       msg,
			Err:       err,
		}
	}

	for ; i < len(format); i++ {
		f, ok := flagFor(format[i])
		if !ok {
			break
		}
		d.Flags |= f
	}

	if i < len(format) && format[i] == '*' {
		d.WidthArg = true
		i++
	} else {
		w, n, ok := parseNum(format[i:])
		i += n
		if !ok {
			return fail(ErrRange, "width")
		}
		d.Width = w
	}

	if i < len(format) && format[i] == '.' {
		i++
		if i < len(format) && format[i] == '*' {
			d.PrecisionArg = true
			i++
		} else {
			p, n, ok := parseNum(format[i:])
			i += n
			if !ok {
				return fail(ErrRange, "precision")
			}
			d.Precision = p
		}
	}

	d.Length, i = parseLength(format, i)

	if i >= len(format) {
		return fail(ErrIncomplete, "")
	}
	verb := format[i]
	i++
	switch verb {
	case 'd', 'i', 'u', 'o', 'x', 'X',
		'c', 'C', 's', 'S', 'p',
		'e', 'E', 'f', 'F', 'g', 'G',
		'%':
	case 'n', 'a', 'A':
		return fail(ErrUnsupported, "")
	default:
		return fail(ErrBadVerb, "")
	}
	d.Verb = verb
	d.Text = format[start:i]
	return d, nil
}

func flagFor(c byte) (Flags, bool) {
	for _, fc := range flagChars {
		if fc.char == c {
			return fc.flag, true
		}
	}
	return 0, false
}

// parseNum reads a run of decimal digits. It reports false if the value
// exceeds MaxWidth; the whole run is consumed either way.
func parseNum(s string) (n, width int, ok bool) {
	ok = true
	for width < len(s) && s[width] >= '0' && s[width] <= '9' {
		if ok {
			n = n*10 + int(s[width]-'0')
			if n > MaxWidth {
				n, ok = 0, false
			}
		}
		width++
	}
	return n, width, ok
}

var lengthPrefixes = []struct {
	prefix string
	length Length
}{
	// longest first
	{"I64", LengthI64},
	{"I32", LengthI32},
	{"hh", LengthHH},
	{"ll", LengthLL},
	{"h", LengthH},
	{"l", LengthL},
	{"L", LengthLongDouble},
	{"I", LengthI},
	{"j", LengthJ},
	{"z", LengthZ},
	{"t", LengthT},
}

func parseLength(format string, i int) (Length, int) {
	rest := format[i:]
	for _, lp := range lengthPrefixes {
		if strings.HasPrefix(rest, lp.prefix) {
			return lp.length, i + len(lp.prefix)
		}
	}
	return LengthNone, i
}
