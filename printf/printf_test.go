package printf

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type formatTest struct {
	format string
	args   []any
	want   string
}

func runFormatTests(t *testing.T, tests []formatTest) {
	t.Helper()
	for _, tt := range tests {
		got, err := Sprintf(tt.format, tt.args...)
		if err != nil {
			t.Errorf("Sprintf(%q, %v) error = %v", tt.format, tt.args, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Sprintf(%q, %v) mismatch (-want +got):\n%s", tt.format, tt.args, diff)
		}
	}
}

func TestHexLower(t *testing.T) {
	neg := int32(-42)
	pos := int32(0x1234ab)
	l := int64(0x1234567887654321)

	runFormatTests(t, []formatTest{
		{"foo %x", []any{pos}, "foo 1234ab"},
		{"foo %lx", []any{pos}, "foo 1234ab"},
		{"foo %hx", []any{pos}, "foo 34ab"},
		{"foo %Lx", []any{pos}, "foo 1234ab"},
		{"foo %I64x", []any{l}, "foo 1234567887654321"},
		{"foo %7x", []any{pos}, "foo  1234ab"},
		{"foo %-7x", []any{pos}, "foo 1234ab "},
		{"foo %.1x", []any{pos}, "foo 1234ab"},
		{"foo %.7x", []any{pos}, "foo 01234ab"},
		{"foo %07x", []any{pos}, "foo 01234ab"},
		{"foo %#x", []any{pos}, "foo 0x1234ab"},
		{"foo %+x", []any{pos}, "foo 1234ab"},
		{"foo % x", []any{pos}, "foo 1234ab"},
		{"foo %+x", []any{neg}, "foo ffffffd6"},
		{"foo % x", []any{neg}, "foo ffffffd6"},
	})
}

func TestIntegers(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"%d", []any{1193131}, "1193131"},
		{"%i", []any{-42}, "-42"},
		{"%hd", []any{0x1234ab}, "13483"},
		{"%hhd", []any{0xff}, "-1"},
		{"%hhu", []any{-1}, "255"},
		{"%+d", []any{1193131}, "+1193131"},
		{"% d", []any{1193131}, " 1193131"},
		{"%+ d", []any{7}, "+7"},
		{"%08d", []any{-42}, "-0000042"},
		{"%-8d|", []any{-42}, "-42     |"},
		{"%.5d", []any{-42}, "-00042"},
		{"%08.5d", []any{-42}, "  -00042"},
		{"%+.0d", []any{0}, "+"},
		{"%.0x", []any{0}, ""},
		{"%u", []any{-42}, "4294967254"},
		{"%I64u", []any{int64(-1)}, "18446744073709551615"},
		{"%lld", []any{int64(math.MinInt64)}, "-9223372036854775808"},
		{"%d", []any{int64(0x100000005)}, "5"},
		{"%o", []any{1193131}, "4432253"},
		{"%#o", []any{1193131}, "04432253"},
		{"%#.0o", []any{0}, "0"},
		{"%o", []any{-42}, "37777777726"},
		{"%X", []any{1193131}, "1234AB"},
		{"%#X", []any{1193131}, "0X1234AB"},
		{"%#x", []any{0}, "0"},
		{"%#010x", []any{0x1234ab}, "0x001234ab"},
		{"%x", []any{uint8(200)}, "c8"},
		{"%zx", []any{uint64(math.MaxUint64)}, "ffffffffffffffff"},
	})
}

type myInt int16

func TestNamedIntegerTypes(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"%d", []any{myInt(-3)}, "-3"},
		{"%x", []any{myInt(-1)}, "ffffffff"},
	})
}

func TestStarArguments(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"%*x|", []any{7, 0x1234ab}, " 1234ab|"},
		{"%*x|", []any{-7, 0x1234ab}, "1234ab |"},
		{"%.*x", []any{7, 0x1234ab}, "01234ab"},
		{"%.*x", []any{-1, 0x1234ab}, "1234ab"},
		{"%*.*s|", []any{6, 3, "hello"}, "   hel|"},
	})
}

type ptrStringer struct{ name string }

func (p *ptrStringer) String() string { return p.name }

type valueStringer struct{ name string }

func (v valueStringer) String() string { return v.name }

type panicStringer struct{}

func (panicStringer) String() string { panic("boom") }

func TestCharsAndStrings(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"%c", []any{'A'}, "A"},
		{"%5c|", []any{'A'}, "    A|"},
		{"%-3c|", []any{'é'}, "é  |"},
		{"%s", []any{"hello"}, "hello"},
		{"%10s|", []any{"hello"}, "     hello|"},
		{"%-10s|", []any{"hello"}, "hello     |"},
		{"%.3s", []any{"hello"}, "hel"},
		{"%.2s", []any{"héllo"}, "hé"},
		{"%05s", []any{"ab"}, "   ab"},
		{"%s", []any{[]byte("bytes")}, "bytes"},
		{"%s", []any{nil}, "(null)"},
		{"%S", []any{"wide"}, "wide"},
		{"%s", []any{&ptrStringer{"ptr"}}, "ptr"},
		{"%s", []any{valueStringer{"value"}}, "value"},
		{"%s", []any{(*ptrStringer)(nil)}, "(null)"},
		{"%8s|", []any{(*valueStringer)(nil)}, "  (null)|"},
	})
}

func TestPointers(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"%p", []any{uintptr(0x123456)}, "0000000000123456"},
		{"%#p", []any{uintptr(0x123456)}, "0X0000000000123456"},
		{"%20p|", []any{uintptr(0xabc)}, "    0000000000000ABC|"},
		{"%p", []any{nil}, "0000000000000000"},
	})

	x := 1
	got, err := Sprintf("%p", &x)
	require.NoError(t, err)
	require.Len(t, got, 16)
}

func TestFloats(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"%e", []any{123.456}, "1.234560e+02"},
		{"%E", []any{123.456}, "1.234560E+02"},
		{"%f", []any{123.456}, "123.456000"},
		{"%.2f", []any{2.675}, "2.67"},
		{"%#.0f", []any{3.0}, "3."},
		{"%#.0e", []any{3.0}, "3.e+00"},
		{"%g", []any{123.456}, "123.456"},
		{"%g", []any{0.0001}, "0.0001"},
		{"%g", []any{0.00001}, "1e-05"},
		{"%g", []any{1000000.0}, "1e+06"},
		{"%g", []any{100000.0}, "100000"},
		{"%#g", []any{1.5}, "1.50000"},
		{"%#g", []any{100.0}, "100.000"},
		{"%G", []any{0.00001234}, "1.234E-05"},
		{"%.3g", []any{1234567.0}, "1.23e+06"},
		{"%.0g", []any{0.5}, "0.5"},
		{"%.10g", []any{0.1}, "0.1"},
		{"%g", []any{0.0}, "0"},
		{"%010.2f", []any{-3.14159}, "-000003.14"},
		{"%-10.2f|", []any{3.14159}, "3.14      |"},
		{"%+.1e", []any{0.0}, "+0.0e+00"},
		{"%f", []any{math.Copysign(0, -1)}, "-0.000000"},
		{"%e", []any{0.0}, "0.000000e+00"},
		{"%.3e", []any{1e100}, "1.000e+100"},
		{"%f", []any{float32(0.5)}, "0.500000"},
		{"%.1f", []any{3}, "3.0"},
		{"%5.1f", []any{math.Inf(1)}, "  inf"},
		{"%08f", []any{math.Inf(-1)}, "    -inf"},
		{"%+f", []any{math.Inf(1)}, "+inf"},
		{"%F", []any{math.NaN()}, "NAN"},
	})
}

func TestPercent(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"100%%", nil, "100%"},
		{"%%d", nil, "%d"},
		{"%5%", nil, "%"},
		{"%d%%", []any{50}, "50%"},
	})
}

func TestExtraArgumentsIgnored(t *testing.T) {
	got, err := Sprintf("%d", 1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, "1", got)
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		format string
		args   []any
		want   error
		arg    int
	}{
		{"%d", nil, ErrMissingArgument, 0},
		{"%d %d", []any{1}, ErrMissingArgument, 1},
		{"%d", []any{"x"}, ErrArgumentType, 0},
		{"%s", []any{12}, ErrArgumentType, 0},
		{"%f", []any{"1.5"}, ErrArgumentType, 0},
		{"%p", []any{"x"}, ErrArgumentType, 0},
		{"%*d", []any{"w", 1}, ErrArgumentType, 0},
		{"%x %c", []any{1, 2.5}, ErrArgumentType, 1},
		{"%s", []any{panicStringer{}}, ErrStringMethod, 0},
		{"%*d", []any{math.MinInt32, 1}, ErrRange, 0},
		{"%*d", []any{MaxWidth + 1, 1}, ErrRange, 0},
		{"%d %.*f", []any{1, MaxWidth + 1, 1.5}, ErrRange, 1},
	}
	for _, tt := range tests {
		_, err := Sprintf(tt.format, tt.args...)
		if !errors.Is(err, tt.want) {
			t.Errorf("Sprintf(%q) error = %v, want %v", tt.format, err, tt.want)
			continue
		}
		var perr *Error
		require.ErrorAs(t, err, &perr)
		require.Equal(t, tt.arg, perr.Arg, "format %q", tt.format)
	}
}

func TestFprintf(t *testing.T) {
	var buf bytes.Buffer
	n, err := Fprintf(&buf, "foo %#x", 0x1234ab)
	require.NoError(t, err)
	require.Equal(t, len("foo 0x1234ab"), n)
	require.Equal(t, "foo 0x1234ab", buf.String())

	buf.Reset()
	_, err = Fprintf(&buf, "ok %d %d", 1)
	require.ErrorIs(t, err, ErrMissingArgument)
	require.Zero(t, buf.Len(), "partial output written on error")
}

func TestAppend(t *testing.T) {
	dst := []byte("prefix:")
	got, err := Append(dst, "%04x", 0xbeef)
	require.NoError(t, err)
	require.Equal(t, "prefix:beef", string(got))

	got, err = Append(dst, "%q", 1)
	require.Error(t, err)
	require.Equal(t, "prefix:", string(got))
}

func TestSnprintf(t *testing.T) {
	buf := make([]byte, 4)
	n, err := Snprintf(buf, "foo %x", 0x1234ab)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, "foo ", string(buf))

	big := make([]byte, 32)
	n, err = Snprintf(big, "%s", "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", string(big[:n]))
	require.True(t, strings.Trim(string(big[n:]), "\x00") == "")
}

func TestPrintf(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = stdout })

	n, err := Printf("foo %+x", -42)
	os.Stdout = stdout
	require.NoError(t, err)
	require.NoError(t, w.Close())
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "foo ffffffd6", string(got))
	require.Equal(t, len(got), n)
}

func TestMaxWidthPadding(t *testing.T) {
	got, err := Sprintf("%*d|", MaxWidth, 7)
	require.NoError(t, err)
	require.Len(t, got, MaxWidth+1)
	require.Equal(t, strings.Repeat(" ", MaxWidth-1)+"7|", got)

	got, err = Sprintf("%-*x|", -5, 0xab)
	require.NoError(t, err)
	require.Equal(t, "ab   |", got)

	for _, n := range []int{0, 1, 2, 3, 7, 8, 100} {
		b := appendRepeat([]byte("x"), '0', n)
		require.Equal(t, "x"+strings.Repeat("0", n), string(b))
	}
}
