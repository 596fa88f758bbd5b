package token

import "strings"

type Kind int

const (
	EOF Kind = iota
	Error
	LParen
	RParen
	String

	// keywords
	Header
	Import
	Export
	Param
	Result

	// types
	I32
	I64
	F32
	F64
	None
)

var keywords = map[string]Kind{
	"header": Header,
	"import": Import,
	"export": Export,
	"param":  Param,
	"result": Result,
	"i32":    I32,
	"i64":    I64,
	"f32":    F32,
	"f64":    F64,
	"none":   None,
}

// keywordOrder lists keyword spellings longest first so that a prefix
// match never stops at a shorter keyword.
var keywordOrder = []string{"header", "import", "export", "result", "param", "none", "i32", "i64", "f32", "f64"}

var keywordIndex = func() map[Kind]int {
	m := make(map[Kind]int, len(keywordOrder))
	for i, kw := range keywordOrder {
		m[keywords[kw]] = i
	}
	return m
}()

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Error:
		return "ERROR"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case String:
		return "string"
	}
	if k.IsKeyword() {
		return keywordOrder[keywordIndex[k]]
	}
	return "unknown"
}

// IsKeyword reports whether k is one of the fixed keyword or type tokens.
func (k Kind) IsKeyword() bool {
	return k >= Header && k <= None
}

// IsPrimType reports whether k names a type usable in param/result lists.
func (k Kind) IsPrimType() bool {
	return k >= I32 && k <= F64
}

type Token struct {
	Value string
	Kind  Kind
}

// Text returns the source spelling of the token, or its kind label for
// tokens without one.
func (t Token) Text() string {
	switch t.Kind {
	case LParen:
		return "("
	case RParen:
		return ")"
	case String:
		return `"` + t.Value + `"`
	}
	return t.Kind.String()
}

// Lookup returns the keyword that is a prefix of s, if any.
func Lookup(s string) (Token, bool) {
	for _, kw := range keywordOrder {
		if strings.HasPrefix(s, kw) {
			return Token{Value: kw, Kind: keywords[kw]}, true
		}
	}
	return Token{}, false
}

// Position is a location in the source. Line is 1-based, Column 0-based.
type Position struct {
	Offset uint
	Line   uint
	Column uint
}
