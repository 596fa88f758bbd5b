package header

import (
	stderrors "errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/header/ast"
)

// Integration tests for the public Parse API.
// Grammar details are covered in internal/parser.

const example = `(header
  (import "env" "add" (param i32 i32) (result i32))
  (export "double" (param f64) (result f64)))`

func TestParse(t *testing.T) {
	hdr, err := Parse(example)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(hdr.Imports) != 1 || len(hdr.Exports) != 1 {
		t.Fatalf("got %d imports, %d exports", len(hdr.Imports), len(hdr.Exports))
	}
	imp := hdr.Imports[0]
	if imp.Module != "env" || imp.Base != "add" {
		t.Errorf("import = %s.%s", imp.Module, imp.Base)
	}
	if imp.Signature.String() != "(i32, i32) -> i32" {
		t.Errorf("import signature = %s", imp.Signature)
	}
	exp := hdr.Exports[0]
	if exp.Base != "double" || exp.Signature.String() != "(f64) -> f64" {
		t.Errorf("export = %s %s", exp.Base, exp.Signature)
	}
}

func TestParseCounts(t *testing.T) {
	var b strings.Builder
	b.WriteString("(header\n")
	for i := 0; i < 20; i++ {
		if i%3 == 0 {
			b.WriteString(`  (export "e" (result i64))` + "\n")
		} else {
			b.WriteString(`  (import "m" "i" (param f32))` + "\n")
		}
	}
	b.WriteString(")")

	hdr, err := Parse(b.String())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(hdr.Exports) != 7 || len(hdr.Imports) != 13 {
		t.Errorf("got %d imports, %d exports; want 13, 7", len(hdr.Imports), len(hdr.Exports))
	}
}

// respace rebuilds src with random runs of blanks and newlines between
// tokens. Strings are kept intact.
func respace(rng *rand.Rand, src string) string {
	fill := []string{" ", "\t", "\n", "\r\n", "\r", "  \n\t"}
	var b strings.Builder
	inString := false
	for _, r := range src {
		switch {
		case r == '"':
			inString = !inString
			if inString {
				b.WriteString(fill[rng.Intn(len(fill))])
			}
			b.WriteRune(r)
		case inString:
			b.WriteRune(r)
		case r == ' ' || r == '\n':
			for n := rng.Intn(3) + 1; n > 0; n-- {
				b.WriteString(fill[rng.Intn(len(fill))])
			}
		case r == '(' || r == ')':
			b.WriteString(fill[rng.Intn(len(fill))])
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestParseWhitespaceInsensitive(t *testing.T) {
	want, err := Parse(example)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		src := respace(rng, example)
		got, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", src, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Parse(%q) = %+v, want %+v", src, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		lex     bool
		wantErr string
	}{
		{"bare_identifier", `(header (import foo))`, true, "[lex] lexical at line 1 column 16: unrecognized input 'foo))...'"},
		{"missing_string", `(header (import "m"))`, false, "[parse] syntax at line 1 column 19: expected a string value, saw ')'"},
		{"trailing", `(header) x`, false, "expected EOF, saw ERROR"},
		{"bad_clause", `(header (export "f" (i64)))`, false, "token problem"},
		{"bad_decl", `(header (result))`, false, "token issue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr, err := Parse(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if hdr != nil {
				t.Error("no partial header on failure")
			}
			if errors.IsLex(err) != tt.lex || errors.IsSyntax(err) == tt.lex {
				t.Errorf("wrong error kind: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q missing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "math.wash")
	if err := os.WriteFile(path, []byte(example), 0o644); err != nil {
		t.Fatal(err)
	}

	hdr, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(hdr.Imports) != 1 {
		t.Errorf("imports = %d", len(hdr.Imports))
	}

	_, err = ParseFile(filepath.Join(dir, "missing.wash"))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidData}) {
		t.Errorf("expected load error, got %v", err)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("load error should wrap ErrNotExist: %v", err)
	}

	bad := filepath.Join(dir, "bad.wash")
	if err := os.WriteFile(bad, []byte("(header"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(bad); !errors.IsSyntax(err) {
		t.Errorf("expected syntax error, got %v", err)
	}
}

func TestParseReader(t *testing.T) {
	hdr, err := ParseReader(strings.NewReader(`(header (export "run"))`))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if len(hdr.Exports) != 1 || hdr.Exports[0].Signature.Result != ast.None {
		t.Errorf("unexpected header %+v", hdr)
	}
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))

	if _, err := Parse(example); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if logs.FilterMessage("parsed header").Len() != 1 {
		t.Error("expected summary log entry")
	}
}
