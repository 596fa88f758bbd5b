package header

import (
	"io"
	"os"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/header/ast"
	"github.com/wippyai/wash/header/internal/lexer"
	"github.com/wippyai/wash/header/internal/parser"
)

// Parse parses a complete header document.
func Parse(source string) (*ast.Header, error) {
	p := parser.New(lexer.New(source), Logger())
	return p.Parse()
}

func ParseBytes(source []byte) (*ast.Header, error) {
	return Parse(string(source))
}

func ParseReader(r io.Reader) (*ast.Header, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Load("read header", err)
	}
	return ParseBytes(data)
}

// ParseFile reads and parses the header at path. Parse failures are
// returned as-is; only read failures are wrapped.
func ParseFile(path string) (*ast.Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return ParseBytes(data)
}
