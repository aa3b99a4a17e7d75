// Package conformance checks printf output against fixed vectors.
//
// A suite is a txtar archive. The archive comment describes the suite and
// the vectors.yaml member lists its vectors:
//
//	Tests the (lowercase) hexadecimal specifier (%x).
//
//	-- vectors.yaml --
//	- name: short
//	  format: "foo %hx"
//	  args: ["int32:0x1234ab"]
//	  want: "foo 34ab"
//
// Each vector is formatted through every configured Sink and compared
// byte for byte with want (or one of the also alternatives). Any mismatch
// fails the suite.
package conformance
