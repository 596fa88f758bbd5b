// Package lexer scans header text into tokens on demand.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/wash/header/internal/token"
)

// Lexer is a single-use cursor over one input. It is not safe for
// concurrent use.
type Lexer struct {
	input string
	cur   token.Token
	pos   token.Position
	start token.Position
}

func New(input string) *Lexer {
	return &Lexer{
		input: input,
		cur:   token.Token{Kind: token.Error},
		pos:   token.Position{Line: 1},
		start: token.Position{Line: 1},
	}
}

// Next skips whitespace and newlines, scans the next lexeme and makes it
// the current token. EOF and Error leave the position at the start of
// the offending input.
func (l *Lexer) Next() token.Token {
	l.skipSpace()
	l.start = l.pos

	rest := l.Remaining()
	if rest == "" {
		return l.set(token.Token{Kind: token.EOF})
	}

	switch rest[0] {
	case '(':
		return l.consume(token.Token{Kind: token.LParen}, rest[:1])
	case ')':
		return l.consume(token.Token{Kind: token.RParen}, rest[:1])
	case '"':
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return l.set(token.Token{Kind: token.Error})
		}
		return l.consume(token.Token{Kind: token.String, Value: rest[1 : end+1]}, rest[:end+2])
	}

	if tok, ok := token.Lookup(rest); ok {
		return l.consume(tok, tok.Value)
	}
	return l.set(token.Token{Kind: token.Error})
}

// Current returns the most recently scanned token without advancing.
func (l *Lexer) Current() token.Token {
	return l.cur
}

// Position returns the position just past the last consumed lexeme.
func (l *Lexer) Position() token.Position {
	return l.pos
}

// Start returns the position where the current token begins.
func (l *Lexer) Start() token.Position {
	return l.start
}

// Input returns the original, unmodified source.
func (l *Lexer) Input() string {
	return l.input
}

// Remaining returns the unconsumed suffix of the input.
func (l *Lexer) Remaining() string {
	return l.input[l.pos.Offset:]
}

// Excerpt returns at most n characters of unconsumed input.
func (l *Lexer) Excerpt(n int) string {
	rest := l.Remaining()
	i := 0
	for idx := range rest {
		if i == n {
			return rest[:idx]
		}
		i++
	}
	return rest
}

func (l *Lexer) set(tok token.Token) token.Token {
	l.cur = tok
	return tok
}

func (l *Lexer) consume(tok token.Token, lexeme string) token.Token {
	l.advance(lexeme)
	return l.set(tok)
}

func (l *Lexer) advance(lexeme string) {
	l.pos.Offset += uint(len(lexeme))
	l.pos.Column += uint(utf8.RuneCountInString(lexeme))
}

// skipSpace alternates between blank runs and newline runs until neither
// consumes anything, so indentation after blank lines is handled.
func (l *Lexer) skipSpace() {
	for {
		before := l.pos.Offset
		l.skipBlanks()
		l.skipNewlines()
		if l.pos.Offset == before {
			return
		}
	}
}

func (l *Lexer) skipBlanks() {
	rest := l.Remaining()
	n := 0
	for n < len(rest) && (rest[n] == ' ' || rest[n] == '\t') {
		n++
	}
	if n > 0 {
		l.advance(rest[:n])
	}
}

func (l *Lexer) skipNewlines() {
	for {
		rest := l.Remaining()
		var n int
		switch {
		case strings.HasPrefix(rest, "\r\n"):
			n = 2
		case strings.HasPrefix(rest, "\r"), strings.HasPrefix(rest, "\n"):
			n = 1
		default:
			return
		}
		l.pos.Offset += uint(n)
		l.pos.Line++
		l.pos.Column = 0
	}
}
