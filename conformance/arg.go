package conformance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Arg is a typed argument literal, written as "type:value".
type Arg struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

var errUnknownType = errors.New("unknown argument type")

// argTypes maps C-ish type names to decoders. int and long are 32 bits wide.
var argTypes = map[string]func(string) (any, error){
	"int8":    signed(8, func(v int64) any { return int8(v) }),
	"int16":   signed(16, func(v int64) any { return int16(v) }),
	"int32":   signed(32, func(v int64) any { return int32(v) }),
	"int":     signed(32, func(v int64) any { return int32(v) }),
	"long":    signed(32, func(v int64) any { return int32(v) }),
	"int64":   signed(64, func(v int64) any { return v }),
	"uint8":   unsigned(8, func(v uint64) any { return uint8(v) }),
	"uint16":  unsigned(16, func(v uint64) any { return uint16(v) }),
	"uint32":  unsigned(32, func(v uint64) any { return uint32(v) }),
	"uint":    unsigned(32, func(v uint64) any { return uint32(v) }),
	"uint64":  unsigned(64, func(v uint64) any { return v }),
	"pointer": unsigned(64, func(v uint64) any { return uintptr(v) }),
	"float32": parseFloat32,
	"float64": parseFloat64,
	"double":  parseFloat64,
	"char":    parseChar,
	"string":  func(s string) (any, error) { return s, nil },
	"null":    func(string) (any, error) { return nil, nil },
}

func signed(size int, conv func(int64) any) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := parseSigned(s, size)
		if err != nil {
			return nil, err
		}
		return conv(v), nil
	}
}

func unsigned(size int, conv func(uint64) any) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := strconv.ParseUint(s, 0, size)
		if err != nil {
			return nil, err
		}
		return conv(v), nil
	}
}

func parseFloat32(s string) (any, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return nil, err
	}
	return float32(v), nil
}

func parseFloat64(s string) (any, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// parseSigned parses a signed literal of the given size. Literals that only
// fit as unsigned, like 0xffffffd6 for int32, keep their bit pattern.
func parseSigned(s string, size int) (int64, error) {
	v, err := strconv.ParseInt(s, 0, size)
	if err == nil {
		return v, nil
	}
	u, uerr := strconv.ParseUint(s, 0, size)
	if uerr != nil {
		return 0, err
	}
	if size < 64 && u&(1<<(size-1)) != 0 {
		u |= math.MaxUint64 << size
	}
	return int64(u), nil
}

func parseChar(s string) (any, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return nil, err
	}
	return rune(v), nil
}

// ParseArg parses "type:value". Without a known type prefix the type is
// inferred: integers become int32 when they fit and int64 otherwise, other
// numbers become float64, and anything else is a string.
func ParseArg(s string) (Arg, error) {
	if i := strings.IndexByte(s, ':'); i > 0 {
		if _, ok := argTypes[s[:i]]; ok {
			a := Arg{Type: s[:i], Value: s[i+1:]}
			if _, err := a.Decode(); err != nil {
				return Arg{}, err
			}
			return a, nil
		}
	}
	return inferArg(s), nil
}

func inferArg(s string) Arg {
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return Arg{Type: "int32", Value: s}
		}
		return Arg{Type: "int64", Value: s}
	}
	if _, err := strconv.ParseUint(s, 0, 64); err == nil {
		return Arg{Type: "uint64", Value: s}
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return Arg{Type: "float64", Value: s}
	}
	return Arg{Type: "string", Value: s}
}

// Decode converts the literal to the Go value handed to the formatter.
func (a Arg) Decode() (any, error) {
	dec, ok := argTypes[a.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownType, a.Type)
	}
	v, err := dec(a.Value)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", a, err)
	}
	return v, nil
}

func (a Arg) String() string {
	return a.Type + ":" + a.Value
}

// UnmarshalYAML accepts either a "type:value" scalar or a {type, value} map.
func (a *Arg) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseArg(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*a = parsed
		return nil
	case yaml.MappingNode:
		type plain Arg
		var p plain
		if err := n.Decode(&p); err != nil {
			return err
		}
		*a = Arg(p)
		if _, err := a.Decode(); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		return nil
	}
	return fmt.Errorf("line %d: argument must be a scalar or a map", n.Line)
}

// MarshalYAML writes the scalar form.
func (a Arg) MarshalYAML() (any, error) {
	return a.String(), nil
}
