package printf

import (
	"bytes"
	"math"
	"reflect"
	"strconv"
)

const defaultFloatPrecision = 6

func floatArg(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func (s *state) fmtFloat(d *Directive) error {
	v, i, err := s.nextArg(d)
	if err != nil {
		return err
	}
	f, ok := floatArg(v)
	if !ok {
		return typeError(d, i, "%%%c wants a floating-point number, got %T", d.Verb, v)
	}

	upper := d.Verb == 'E' || d.Verb == 'F' || d.Verb == 'G'
	neg := math.Signbit(f) && !math.IsNaN(f)
	head := sign(neg, d.Flags, true)

	if math.IsInf(f, 0) || math.IsNaN(f) {
		body := "inf"
		if math.IsNaN(f) {
			body = "nan"
		}
		if upper {
			body = string(bytes.ToUpper([]byte(body)))
		}
		s.writePadded(d, head, body, len(head)+len(body), false)
		return nil
	}

	prec := d.Precision
	if prec < 0 {
		prec = defaultFloatPrecision
	}
	hash := d.Flags.Has(FlagHash)
	abs := math.Abs(f)

	var body []byte
	switch d.Verb {
	case 'f', 'F':
		body = strconv.AppendFloat(nil, abs, 'f', prec, 64)
		if prec == 0 && hash {
			body = append(body, '.')
		}
	case 'e', 'E':
		body = strconv.AppendFloat(nil, abs, 'e', prec, 64)
		if prec == 0 && hash {
			body = insertPoint(body)
		}
	case 'g', 'G':
		body = formatShortest(abs, prec, hash)
	}
	if upper {
		body = bytes.ToUpper(body)
	}

	zero := d.Flags.Has(FlagZero) && !d.Flags.Has(FlagMinus)
	s.writePadded(d, head, string(body), len(head)+len(body), zero)
	return nil
}

// formatShortest implements %g: precision is the number of significant
// digits, exponent style is used when the exponent is below -4 or not below
// the precision, and trailing zeros are removed unless hash is set.
func formatShortest(abs float64, prec int, hash bool) []byte {
	if prec == 0 {
		prec = 1
	}
	x := decimalExponent(abs, prec)
	var b []byte
	if x < -4 || x >= prec {
		b = strconv.AppendFloat(nil, abs, 'e', prec-1, 64)
	} else {
		b = strconv.AppendFloat(nil, abs, 'f', prec-1-x, 64)
	}
	if hash {
		if bytes.IndexByte(b, '.') < 0 {
			b = insertPoint(b)
		}
		return b
	}
	return trimFraction(b)
}

// decimalExponent returns the exponent of abs once rounded to prec
// significant digits.
func decimalExponent(abs float64, prec int) int {
	b := strconv.AppendFloat(nil, abs, 'e', prec-1, 64)
	i := bytes.IndexByte(b, 'e')
	x, _ := strconv.Atoi(string(b[i+1:]))
	return x
}

// insertPoint adds a decimal point after the mantissa digits.
func insertPoint(b []byte) []byte {
	i := bytes.IndexByte(b, 'e')
	if i < 0 {
		return append(b, '.')
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, b[:i]...)
	out = append(out, '.')
	return append(out, b[i:]...)
}

// trimFraction drops trailing zeros, and then a trailing point, from the
// mantissa.
func trimFraction(b []byte) []byte {
	mant, exp := b, []byte(nil)
	if i := bytes.IndexByte(b, 'e'); i >= 0 {
		mant, exp = b[:i], b[i:]
	}
	if bytes.IndexByte(mant, '.') < 0 {
		return b
	}
	mant = bytes.TrimRight(mant, "0")
	mant = bytes.TrimSuffix(mant, []byte("."))
	out := make([]byte, 0, len(mant)+len(exp))
	out = append(out, mant...)
	return append(out, exp...)
}
