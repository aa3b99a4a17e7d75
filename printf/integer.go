package printf

import (
	"bytes"
	"reflect"
	"strconv"
)

// intBits returns the two's-complement bit pattern of an integer argument,
// sign-extended to 64 bits.
func intBits(v any) (uint64, bool) {
	switch v := v.(type) {
	case int:
		return uint64(int64(v)), true
	case int8:
		return uint64(int64(v)), true
	case int16:
		return uint64(int64(v)), true
	case int32:
		return uint64(int64(v)), true
	case int64:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uintptr:
		return uint64(v), true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	}
	return 0, false
}

// truncate keeps the low size bits of v. For signed conversions the result is
// sign-extended back to 64 bits.
func truncate(v uint64, size uint, signed bool) uint64 {
	if size >= 64 {
		return v
	}
	v &= 1<<size - 1
	if signed && v&(1<<(size-1)) != 0 {
		v |= ^uint64(0) << size
	}
	return v
}

func (s *state) fmtInteger(d *Directive) error {
	v, i, err := s.nextArg(d)
	if err != nil {
		return err
	}
	bits, ok := intBits(v)
	if !ok {
		return typeError(d, i, "%%%c wants an integer, got %T", d.Verb, v)
	}

	signed := d.Verb == 'd' || d.Verb == 'i'
	bits = truncate(bits, d.Length.Bits(), signed)
	neg := signed && int64(bits) < 0
	if neg {
		bits = -bits
	}

	base := 10
	switch d.Verb {
	case 'o':
		base = 8
	case 'x', 'X':
		base = 16
	}

	var digits []byte
	if d.Precision != 0 || bits != 0 {
		digits = strconv.AppendUint(digits, bits, base)
	}
	if d.Verb == 'X' {
		digits = bytes.ToUpper(digits)
	}
	if n := d.Precision - len(digits); n > 0 {
		digits = append(appendRepeat(nil, '0', n), digits...)
	}

	var prefix string
	if d.Flags.Has(FlagHash) {
		switch d.Verb {
		case 'x':
			if bits != 0 {
				prefix = "0x"
			}
		case 'X':
			if bits != 0 {
				prefix = "0X"
			}
		case 'o':
			if len(digits) == 0 || digits[0] != '0' {
				digits = append([]byte{'0'}, digits...)
			}
		}
	}

	head := sign(neg, d.Flags, signed) + prefix
	zero := d.Flags.Has(FlagZero) && !d.Flags.Has(FlagMinus) && d.Precision < 0
	s.writePadded(d, head, string(digits), len(head)+len(digits), zero)
	return nil
}
