// Package ast defines the parsed form of a header document.
package ast

import (
	"fmt"
	"strings"
)

// PrimType is a numeric type usable in param and result lists.
type PrimType byte

const (
	I32 PrimType = iota + 1
	I64
	F32
	F64
)

func (t PrimType) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}
	return fmt.Sprintf("PrimType(%d)", byte(t))
}

func (t PrimType) MarshalText() ([]byte, error) {
	switch t {
	case I32, I64, F32, F64:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("invalid primitive type %d", byte(t))
}

func (t *PrimType) UnmarshalText(b []byte) error {
	p, ok := ParsePrimType(string(b))
	if !ok {
		return fmt.Errorf("unknown primitive type %q", b)
	}
	*t = p
	return nil
}

// ParsePrimType maps a type keyword to its PrimType.
func ParsePrimType(s string) (PrimType, bool) {
	switch s {
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	}
	return 0, false
}

// ResultType is a PrimType or None. The zero value is None.
type ResultType byte

const None ResultType = 0

// Result lifts a primitive type into a result type.
func Result(t PrimType) ResultType {
	return ResultType(t)
}

// Prim returns the primitive type and false when the result is None.
func (r ResultType) Prim() (PrimType, bool) {
	if r == None {
		return 0, false
	}
	return PrimType(r), true
}

func (r ResultType) String() string {
	if r == None {
		return "none"
	}
	return PrimType(r).String()
}

func (r ResultType) MarshalText() ([]byte, error) {
	if r == None {
		return []byte("none"), nil
	}
	return PrimType(r).MarshalText()
}

func (r *ResultType) UnmarshalText(b []byte) error {
	if string(b) == "none" {
		*r = None
		return nil
	}
	var p PrimType
	if err := p.UnmarshalText(b); err != nil {
		return err
	}
	*r = Result(p)
	return nil
}

type Signature struct {
	Params []PrimType `json:"params" msgpack:"params"`
	Result ResultType `json:"result" msgpack:"result"`
}

// String renders the signature as "(i32, i32) -> i32".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	b.WriteString(s.Result.String())
	return b.String()
}

// Equal reports whether two signatures have the same params and result.
func (s Signature) Equal(other Signature) bool {
	if s.Result != other.Result || len(s.Params) != len(other.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != other.Params[i] {
			return false
		}
	}
	return true
}

// Import declares an external binding.
type Import struct {
	Module    string    `json:"module" msgpack:"module"`
	Base      string    `json:"base" msgpack:"base"`
	Signature Signature `json:"signature" msgpack:"signature"`
}

// Export declares an exposed binding.
type Export struct {
	Base      string    `json:"base" msgpack:"base"`
	Signature Signature `json:"signature" msgpack:"signature"`
}

// Header is the root of a parsed document. Imports and exports keep
// their textual order.
type Header struct {
	Imports []Import `json:"imports" msgpack:"imports"`
	Exports []Export `json:"exports" msgpack:"exports"`
}

// Equal reports whether two headers declare the same bindings in the same order.
func (h *Header) Equal(other *Header) bool {
	if h == nil || other == nil {
		return h == other
	}
	if len(h.Imports) != len(other.Imports) || len(h.Exports) != len(other.Exports) {
		return false
	}
	for i, imp := range h.Imports {
		o := other.Imports[i]
		if imp.Module != o.Module || imp.Base != o.Base || !imp.Signature.Equal(o.Signature) {
			return false
		}
	}
	for i, exp := range h.Exports {
		o := other.Exports[i]
		if exp.Base != o.Base || !exp.Signature.Equal(o.Signature) {
			return false
		}
	}
	return true
}
