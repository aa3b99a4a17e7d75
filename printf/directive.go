package printf

import (
	"strconv"
	"strings"
)

// Flags is the set of flag characters seen in a directive.
type Flags uint8

const (
	FlagMinus Flags = 1 << iota // '-' left-justify
	FlagPlus                    // '+' always print a sign
	FlagSpace                   // ' ' space in place of '+'
	FlagHash                    // '#' alternate form
	FlagZero                    // '0' zero padding
)

var flagChars = []struct {
	flag Flags
	char byte
}{
	{FlagMinus, '-'},
	{FlagPlus, '+'},
	{FlagSpace, ' '},
	{FlagHash, '#'},
	{FlagZero, '0'},
}

// Has reports whether all of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

func (f Flags) String() string {
	var b strings.Builder
	for _, fc := range flagChars {
		if f.Has(fc.flag) {
			b.WriteByte(fc.char)
		}
	}
	return b.String()
}

// Length is a length modifier. It decides how many bits of an integer
// argument are significant.
type Length uint8

const (
	LengthNone       Length = iota
	LengthHH                // hh
	LengthH                 // h
	LengthL                 // l
	LengthLL                // ll
	LengthLongDouble        // L
	LengthI32               // I32
	LengthI64               // I64
	LengthI                 // I
	LengthJ                 // j
	LengthZ                 // z
	LengthT                 // t
)

var lengthNames = [...]string{
	LengthNone:       "",
	LengthHH:         "hh",
	LengthH:          "h",
	LengthL:          "l",
	LengthLL:         "ll",
	LengthLongDouble: "L",
	LengthI32:        "I32",
	LengthI64:        "I64",
	LengthI:          "I",
	LengthJ:          "j",
	LengthZ:          "z",
	LengthT:          "t",
}

func (l Length) String() string {
	if int(l) < len(lengthNames) {
		return lengthNames[l]
	}
	return "Length(" + strconv.Itoa(int(l)) + ")"
}

// Bits returns the integer width selected by the modifier. long is 32 bits,
// as on LLP64 platforms.
func (l Length) Bits() uint {
	switch l {
	case LengthHH:
		return 8
	case LengthH:
		return 16
	case LengthLL, LengthI64, LengthI, LengthJ, LengthZ, LengthT:
		return 64
	default:
		return 32
	}
}

// Directive is one parsed conversion specification.
type Directive struct {
	Flags        Flags
	Width        int  // 0 when absent
	WidthArg     bool // width comes from a '*' argument
	Precision    int  // -1 when absent
	PrecisionArg bool // precision comes from a '*' argument
	Length       Length
	Verb         byte

	Offset int    // byte offset of the '%' in the format string
	Text   string // source text, including the '%'
}

// HasPrecision reports whether a precision was written, either literally or as '*'.
func (d Directive) HasPrecision() bool {
	return d.Precision >= 0 || d.PrecisionArg
}

// String renders the directive in canonical form: flags in "-+ #0" order.
func (d Directive) String() string {
	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(d.Flags.String())
	if d.WidthArg {
		b.WriteByte('*')
	} else if d.Width > 0 {
		b.WriteString(strconv.Itoa(d.Width))
	}
	if d.PrecisionArg {
		b.WriteString(".*")
	} else if d.Precision >= 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(d.Precision))
	}
	b.WriteString(d.Length.String())
	b.WriteByte(d.Verb)
	return b.String()
}

// Piece is either a literal run of text or a directive.
type Piece struct {
	Literal   string
	Directive *Directive
}

func (p Piece) String() string {
	if p.Directive != nil {
		return p.Directive.String()
	}
	return strings.ReplaceAll(p.Literal, "%", "%%")
}
