// palfmt is a tool that formats values with C printf semantics and checks
// the formatter against conformance suites.
//
// With a FORMAT argument palfmt formats the remaining arguments and prints
// the result without a trailing newline. Arguments are typed literals:
//
//	palfmt 'foo %x' int32:0x1234ab
//
// Output:
//
//	foo 1234ab
//
// Without arguments palfmt reads FORMAT<TAB>ARG... lines from stdin and
// prints one formatted line for each.
//
// The -conformance flag runs the built-in suites, plus any in -dir, and
// prints a report:
//
//	palfmt -conformance -suite=hex
//
// Output:
//
//	PASS hex_lower (30/30) Tests the (lowercase) hexadecimal specifier (%x).
//	PASS hex_upper (22/22) Tests the (uppercase) hexadecimal specifier (%X).
//	------------------------------------------------------------------------
//	PASS 2 suites, 52 checks, 0 failed
//
// palfmt exits 0 when everything passes, 1 when formatting or a suite
// fails, and 2 on usage errors.
package main
