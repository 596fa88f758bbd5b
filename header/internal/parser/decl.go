package parser

import (
	"go.uber.org/zap"

	"github.com/wippyai/wash/header/ast"
	"github.com/wippyai/wash/header/internal/token"
)

// parseImport handles: import STRING STRING Signature ')'
// The opening paren has already been consumed.
func (p *Parser) parseImport() (ast.Import, error) {
	if _, err := p.expect(token.Import); err != nil {
		return ast.Import{}, err
	}
	module, err := p.expect(token.String)
	if err != nil {
		return ast.Import{}, err
	}
	base, err := p.expect(token.String)
	if err != nil {
		return ast.Import{}, err
	}
	sig, err := p.parseSignature()
	if err != nil {
		return ast.Import{}, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.Import{}, err
	}

	p.log.Debug("import",
		zap.String("module", module.Value),
		zap.String("base", base.Value),
		zap.Stringer("signature", sig))
	return ast.Import{Module: module.Value, Base: base.Value, Signature: sig}, nil
}

// parseExport handles: export STRING Signature ')'
func (p *Parser) parseExport() (ast.Export, error) {
	if _, err := p.expect(token.Export); err != nil {
		return ast.Export{}, err
	}
	base, err := p.expect(token.String)
	if err != nil {
		return ast.Export{}, err
	}
	sig, err := p.parseSignature()
	if err != nil {
		return ast.Export{}, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.Export{}, err
	}

	p.log.Debug("export",
		zap.String("base", base.Value),
		zap.Stringer("signature", sig))
	return ast.Export{Base: base.Value, Signature: sig}, nil
}

// parseSignature reads up to two clauses. The first may be param or
// result; the second may only be result, and a non-empty second result
// clause replaces whatever the first one set.
func (p *Parser) parseSignature() (ast.Signature, error) {
	var sig ast.Signature

	if p.lex.Current().Kind == token.LParen {
		dir, err := p.advance()
		if err != nil {
			return sig, err
		}
		switch dir.Kind {
		case token.Param:
			if _, err := p.advance(); err != nil {
				return sig, err
			}
			params, err := p.parsePrimTypes()
			if err != nil {
				return sig, err
			}
			sig.Params = params
		case token.Result:
			if err := p.parseResult(&sig); err != nil {
				return sig, err
			}
		default:
			return sig, p.unexpected("token problem", "'param' or 'result'", dir)
		}
		if _, err := p.expect(token.RParen); err != nil {
			return sig, err
		}
	}

	if p.lex.Current().Kind == token.LParen {
		dir, err := p.advance()
		if err != nil {
			return sig, err
		}
		if dir.Kind != token.Result {
			return sig, p.unexpected("token problem", "'result'", dir)
		}
		if err := p.parseResult(&sig); err != nil {
			return sig, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return sig, err
		}
	}

	return sig, nil
}

// parseResult consumes the result keyword and its type list. Only the
// first listed type is kept; an empty list leaves sig.Result unchanged.
func (p *Parser) parseResult(sig *ast.Signature) error {
	if _, err := p.advance(); err != nil {
		return err
	}
	types, err := p.parsePrimTypes()
	if err != nil {
		return err
	}
	if len(types) > 0 {
		sig.Result = ast.Result(types[0])
	}
	return nil
}

// parsePrimTypes reads type keywords until the first token that is not
// one. Keyword tokens carry their canonical spelling.
func (p *Parser) parsePrimTypes() ([]ast.PrimType, error) {
	var types []ast.PrimType
	for {
		tok := p.lex.Current()
		if !tok.Kind.IsPrimType() {
			return types, nil
		}
		t, ok := ast.ParsePrimType(tok.Value)
		if !ok {
			return nil, p.unexpected("token problem", "a type", tok)
		}
		types = append(types, t)
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
}
