package lexer

import (
	"testing"

	"github.com/wippyai/wash/header/internal/token"
)

func tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Error {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"only_whitespace", " \t\r\n\n  ", []token.Kind{token.EOF}},
		{"parens", "()", []token.Kind{token.LParen, token.RParen, token.EOF}},
		{"header", "(header)", []token.Kind{token.LParen, token.Header, token.RParen, token.EOF}},
		{
			"all_keywords",
			"header import export param result i32 i64 f32 f64 none",
			[]token.Kind{
				token.Header, token.Import, token.Export, token.Param, token.Result,
				token.I32, token.I64, token.F32, token.F64, token.None, token.EOF,
			},
		},
		{"string", `"env"`, []token.Kind{token.String, token.EOF}},
		{"adjacent_keywords", "i32i64", []token.Kind{token.I32, token.I64, token.EOF}},
		{"unknown_identifier", "(foo)", []token.Kind{token.LParen, token.Error}},
		{"keyword_with_suffix", "importx", []token.Kind{token.Import, token.Error}},
		{"unterminated_string", `"env`, []token.Kind{token.Error}},
		{"number", "42", []token.Kind{token.Error}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(tokenize(tt.input))
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestStringLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"simple", `"add"`, "add"},
		{"empty", `""`, ""},
		{"spaces", `"a b"`, "a b"},
		{"no_escapes", `"a\n"`, `a\n`},
		{"backslash_before_quote", `"a\"`, `a\`},
		{"keyword_inside", `"header"`, "header"},
		{"unicode", `"héllo"`, "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			tok := l.Next()
			if tok.Kind != token.String {
				t.Fatalf("got %v, want string", tok.Kind)
			}
			if tok.Value != tt.value {
				t.Errorf("value = %q, want %q", tok.Value, tt.value)
			}
			if l.Next().Kind != token.EOF {
				t.Error("expected EOF after string")
			}
		})
	}
}

func TestPosition(t *testing.T) {
	l := New("(header\n  (import \"m\"")

	steps := []struct {
		kind  token.Kind
		start token.Position
		end   token.Position
	}{
		{token.LParen, token.Position{Offset: 0, Line: 1, Column: 0}, token.Position{Offset: 1, Line: 1, Column: 1}},
		{token.Header, token.Position{Offset: 1, Line: 1, Column: 1}, token.Position{Offset: 7, Line: 1, Column: 7}},
		{token.LParen, token.Position{Offset: 10, Line: 2, Column: 2}, token.Position{Offset: 11, Line: 2, Column: 3}},
		{token.Import, token.Position{Offset: 11, Line: 2, Column: 3}, token.Position{Offset: 17, Line: 2, Column: 9}},
		{token.String, token.Position{Offset: 18, Line: 2, Column: 10}, token.Position{Offset: 21, Line: 2, Column: 13}},
		{token.EOF, token.Position{Offset: 21, Line: 2, Column: 13}, token.Position{Offset: 21, Line: 2, Column: 13}},
	}

	for i, s := range steps {
		tok := l.Next()
		if tok.Kind != s.kind {
			t.Fatalf("step %d: kind %v, want %v", i, tok.Kind, s.kind)
		}
		if l.Start() != s.start {
			t.Errorf("step %d: start %+v, want %+v", i, l.Start(), s.start)
		}
		if l.Position() != s.end {
			t.Errorf("step %d: end %+v, want %+v", i, l.Position(), s.end)
		}
	}
}

func TestNewlineSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  uint
	}{
		{"lf", "\n(", 2},
		{"cr", "\r(", 2},
		{"crlf", "\r\n(", 2},
		{"lf_cr", "\n\r(", 3},
		{"mixed_with_blanks", "\n  \t\r\n \n\t(", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			if tok := l.Next(); tok.Kind != token.LParen {
				t.Fatalf("got %v, want '('", tok.Kind)
			}
			if l.Start().Line != tt.line {
				t.Errorf("line = %d, want %d", l.Start().Line, tt.line)
			}
		})
	}
}

func TestColumnCountsCharacters(t *testing.T) {
	l := New(`"ü" i32`)
	l.Next()
	if got := l.Position(); got.Offset != 4 || got.Column != 3 {
		t.Errorf("after string: %+v, want offset 4 column 3", got)
	}
	l.Next()
	if got := l.Start(); got.Column != 4 {
		t.Errorf("i32 starts at column %d, want 4", got.Column)
	}
}

func TestErrorLeavesPosition(t *testing.T) {
	l := New("(\n   foo bar")
	l.Next()
	tok := l.Next()
	if tok.Kind != token.Error {
		t.Fatalf("got %v, want ERROR", tok.Kind)
	}
	want := token.Position{Offset: 5, Line: 2, Column: 3}
	if l.Position() != want {
		t.Errorf("position %+v, want %+v", l.Position(), want)
	}
	if l.Remaining() != "foo bar" {
		t.Errorf("remaining %q", l.Remaining())
	}

	again := l.Next()
	if again.Kind != token.Error || l.Position() != want {
		t.Error("repeated Next on ERROR should not move")
	}
}

func TestCurrent(t *testing.T) {
	l := New("(header")
	if l.Current().Kind != token.Error {
		t.Errorf("initial current = %v, want ERROR", l.Current().Kind)
	}
	l.Next()
	for i := 0; i < 3; i++ {
		if l.Current().Kind != token.LParen {
			t.Fatalf("current = %v, want '('", l.Current().Kind)
		}
	}
	l.Next()
	if l.Current().Kind != token.Header {
		t.Errorf("current = %v, want header", l.Current().Kind)
	}
}

func TestEOFRepeats(t *testing.T) {
	l := New("  ")
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: got %v, want EOF", i, tok.Kind)
		}
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short", "abc", 10, "abc"},
		{"truncated", "0123456789abcdef", 10, "0123456789"},
		{"runes", "ääääää", 3, "äää"},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			if got := l.Excerpt(tt.n); got != tt.want {
				t.Errorf("Excerpt(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestInputUnmodified(t *testing.T) {
	src := "(header (export \"f\"))"
	l := New(src)
	for l.Next().Kind != token.EOF {
	}
	if l.Input() != src {
		t.Errorf("Input() = %q", l.Input())
	}
	if l.Remaining() != "" {
		t.Errorf("Remaining() = %q, want empty", l.Remaining())
	}
}
