// Package header parses module interface headers.
//
// A header lists the function imports and exports of a WebAssembly module
// as S-expressions:
//
//	hdr, err := header.Parse(`(header
//		(import "env" "add" (param i32 i32) (result i32))
//		(export "double" (param f64) (result f64)))`)
//
// Signatures hold at most a (param ...) clause followed by a (result ...)
// clause. Only i32, i64, f32 and f64 are accepted; a missing or empty
// result clause means the function returns nothing.
//
// Strings are taken verbatim between double quotes; there are no escapes
// and no comments.
//
// Errors are *errors.Error values: errors.IsLex reports input the scanner
// could not classify, errors.IsSyntax reports a grammar violation. Both
// carry the line and column of the failure.
package header
