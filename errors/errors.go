package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLex     Phase = "lex"     // scanning header text
	PhaseParse   Phase = "parse"   // header grammar
	PhaseLoad    Phase = "load"    // reading sources from disk
	PhaseExtract Phase = "extract" // wasm binary to header
	PhaseConfig  Phase = "config"  // wash.toml and flags
)

// Kind categorizes the error
type Kind string

const (
	KindLexical      Kind = "lexical"
	KindSyntax       Kind = "syntax"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
	KindUnsupported  Kind = "unsupported"
	KindNotFound     Kind = "not_found"
)

// Error is the structured error type used throughout wash
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Expected string
	Actual   string
	Excerpt  string
	Path     []string
	Line     uint
	Column   uint
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Line > 0 {
		b.WriteString(" at line ")
		b.WriteString(strconv.FormatUint(uint64(e.Line), 10))
		b.WriteString(" column ")
		b.WriteString(strconv.FormatUint(uint64(e.Column), 10))
	}

	sep := ": "
	if e.Detail != "" {
		b.WriteString(sep)
		b.WriteString(e.Detail)
		sep = " - "
	}

	if e.Expected != "" || e.Actual != "" {
		b.WriteString(sep)
		b.WriteString("expected ")
		b.WriteString(e.Expected)
		b.WriteString(", saw ")
		b.WriteString(e.Actual)
	}

	if e.Kind == KindLexical {
		b.WriteString(" '")
		b.WriteString(e.Excerpt)
		b.WriteString("...'")
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the declaration path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// At sets the source position
func (b *Builder) At(line, column uint) *Builder {
	b.err.Line = line
	b.err.Column = column
	return b
}

// Excerpt sets the unconsumed input shown with lexical errors
func (b *Builder) Excerpt(s string) *Builder {
	b.err.Excerpt = s
	return b
}

// Mismatch sets the expected and actual token descriptions
func (b *Builder) Mismatch(expected, actual string) *Builder {
	b.err.Expected = expected
	b.err.Actual = actual
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message, formatted like fmt.Sprintf
func (b *Builder) Detail(format string, args ...any) *Builder {
	b.err.Detail = fmt.Sprintf(format, args...)
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Lexical creates the error reported when the scanner cannot classify input.
func Lexical(line, column uint, excerpt string) *Error {
	return New(PhaseLex, KindLexical).
		At(line, column).
		Excerpt(excerpt).
		Detail("unrecognized input").
		Build()
}

// Syntax creates a token mismatch error
func Syntax(line, column uint, expected, actual string) *Error {
	return New(PhaseParse, KindSyntax).
		At(line, column).
		Mismatch(expected, actual).
		Build()
}

// IsLex reports whether err is, or wraps, a lexical error.
func IsLex(err error) bool {
	return stderrors.Is(err, &Error{Phase: PhaseLex, Kind: KindLexical})
}

// IsSyntax reports whether err is, or wraps, a syntax error.
func IsSyntax(err error) bool {
	return stderrors.Is(err, &Error{Phase: PhaseParse, Kind: KindSyntax})
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Cause(cause).Detail("%s", detail).Build()
}

// Load creates a source loading error
func Load(detail string, cause error) *Error {
	return Wrap(PhaseLoad, KindInvalidData, cause, detail)
}
