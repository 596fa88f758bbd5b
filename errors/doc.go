// Package errors provides structured error types for wash.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Header failures carry the source position; lexical failures add an excerpt of
// the unconsumed input and syntax failures add the expected and actual tokens.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindSyntax).
//		At(3, 14).
//		Mismatch("a string value", "')'").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Lexical(pos.Line, pos.Column, excerpt)
//	err := errors.Syntax(pos.Line, pos.Column, "EOF", "'('")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
