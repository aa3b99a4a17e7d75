// Package printf implements C printf-family formatting with the semantics of
// the platform abstraction layer's C runtime.
//
// A directive has the form
//
//	%[flags][width][.precision][length]verb
//
// Flags are '-', '+', ' ', '#' and '0'. Width and precision may be '*', in
// which case they are taken from the argument list. Length modifiers select
// the integer width: hh (8 bits), h (16), none, l, L and I32 (32), and ll,
// I64, I, j, z and t (64). long is 32 bits wide, as on LLP64 platforms.
//
// Supported verbs are d i u o x X c C s S p e E f F g G and %.
//
// Integer arguments may be any Go integer type. They are reinterpreted as a
// two's-complement bit pattern of the selected width, so
//
//	printf.Sprintf("%x", -42)   // "ffffffd6"
//	printf.Sprintf("%hx", 0x1234ab)  // "34ab"
//
// Unlike package fmt, malformed directives and argument mismatches are
// reported as errors rather than embedded in the output.
package printf
