package parser

import (
	"go.uber.org/zap"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/header/ast"
	"github.com/wippyai/wash/header/internal/lexer"
	"github.com/wippyai/wash/header/internal/token"
)

// excerptLen bounds the unconsumed input quoted in lexical errors.
const excerptLen = 10

type Parser struct {
	lex *lexer.Lexer
	log *zap.Logger
}

func New(lex *lexer.Lexer, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{lex: lex, log: log}
}

// Parse consumes the whole token stream. Any lexical or grammar error
// aborts the parse and no partial header is returned.
func (p *Parser) Parse() (*ast.Header, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Header); err != nil {
		return nil, err
	}

	hdr := &ast.Header{}
	for p.lex.Current().Kind == token.LParen {
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.Import:
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			hdr.Imports = append(hdr.Imports, imp)
		case token.Export:
			exp, err := p.parseExport()
			if err != nil {
				return nil, err
			}
			hdr.Exports = append(hdr.Exports, exp)
		default:
			return nil, p.unexpected("token issue", "'import' or 'export'", tok)
		}
	}

	// Trailing content after the closing paren must surface as a
	// mismatch against EOF, so the last advance skips the lexical check.
	if err := p.match(token.RParen); err != nil {
		return nil, err
	}
	p.lex.Next()
	if err := p.match(token.EOF); err != nil {
		return nil, err
	}

	p.log.Debug("parsed header",
		zap.Int("imports", len(hdr.Imports)),
		zap.Int("exports", len(hdr.Exports)))
	return hdr, nil
}

// advance scans the next token, failing on input the lexer cannot classify.
func (p *Parser) advance() (token.Token, error) {
	tok := p.lex.Next()
	if tok.Kind == token.Error {
		pos := p.lex.Position()
		return tok, errors.Lexical(pos.Line, pos.Column, p.lex.Excerpt(excerptLen))
	}
	if ce := p.log.Check(zap.DebugLevel, "token"); ce != nil {
		pos := p.lex.Start()
		ce.Write(zap.String("text", tok.Text()), zap.Uint("line", pos.Line), zap.Uint("column", pos.Column))
	}
	return tok, nil
}

// expect checks the current token, advances past it and returns it.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.lex.Current()
	if err := p.match(kind); err != nil {
		return tok, err
	}
	if _, err := p.advance(); err != nil {
		return tok, err
	}
	return tok, nil
}

func (p *Parser) match(kind token.Kind) error {
	tok := p.lex.Current()
	if tok.Kind == kind {
		return nil
	}
	pos := p.lex.Start()
	return errors.Syntax(pos.Line, pos.Column, describeExpected(kind), describeActual(tok))
}

func (p *Parser) unexpected(detail, expected string, tok token.Token) error {
	pos := p.lex.Start()
	return errors.New(errors.PhaseParse, errors.KindSyntax).
		At(pos.Line, pos.Column).
		Detail("%s", detail).
		Mismatch(expected, describeActual(tok)).
		Build()
}

func describeExpected(kind token.Kind) string {
	if kind == token.String {
		return "a string value"
	}
	return kind.String()
}

func describeActual(tok token.Token) string {
	if tok.Kind == token.String {
		return `the string "` + tok.Value + `"`
	}
	return tok.Kind.String()
}
