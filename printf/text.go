package printf

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

const nullString = "(null)"

func (s *state) fmtChar(d *Directive) error {
	v, i, err := s.nextArg(d)
	if err != nil {
		return err
	}
	bits, ok := intBits(v)
	if !ok {
		return typeError(d, i, "%%%c wants a character, got %T", d.Verb, v)
	}
	r := rune(int32(uint32(bits)))
	s.writePadded(d, "", string(r), 1, false)
	return nil
}

func (s *state) fmtString(d *Directive) error {
	v, i, err := s.nextArg(d)
	if err != nil {
		return err
	}
	var str string
	switch v := v.(type) {
	case nil:
		str = nullString
	case string:
		str = v
	case []byte:
		str = string(v)
	case []rune:
		str = string(v)
	case fmt.Stringer:
		if str, err = callString(v); err != nil {
			return &Error{Offset: d.Offset, Directive: d.Text, Arg: i, Msg: err.Error(), Err: ErrStringMethod}
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return typeError(d, i, "%%%c wants a string, got %T", d.Verb, v)
		}
		str = rv.String()
	}
	if d.Precision >= 0 {
		str = truncateRunes(str, d.Precision)
	}
	s.writePadded(d, "", str, utf8.RuneCountInString(str), false)
	return nil
}

// callString calls v.String. A nil pointer prints as nullString, and a
// panicking String method is reported as an error.
func callString(v fmt.Stringer) (str string, err error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nullString, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%T: %v", v, r)
		}
	}()
	return v.String(), nil
}

// truncateRunes returns the first n runes of str.
func truncateRunes(str string, n int) string {
	for i := range str {
		if n == 0 {
			return str[:i]
		}
		n--
	}
	return str
}

func (s *state) fmtPointer(d *Directive) error {
	v, i, err := s.nextArg(d)
	if err != nil {
		return err
	}
	bits, ok := pointerBits(v)
	if !ok {
		return typeError(d, i, "%%p wants a pointer, got %T", v)
	}
	digits := strings.ToUpper(strconv.FormatUint(bits, 16))
	if n := 16 - len(digits); n > 0 {
		digits = strings.Repeat("0", n) + digits
	}
	var head string
	if d.Flags.Has(FlagHash) {
		head = "0X"
	}
	s.writePadded(d, head, digits, len(head)+len(digits), false)
	return nil
}

func pointerBits(v any) (uint64, bool) {
	if v == nil {
		return 0, true
	}
	if bits, ok := intBits(v); ok {
		return bits, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		return uint64(rv.Pointer()), true
	}
	return 0, false
}
