package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/term"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/header/ast"
)

const (
	formatPretty  = "pretty"
	formatJSON    = "json"
	formatMsgpack = "msgpack"
)

// document pairs a parsed header with the file it came from.
type document struct {
	Path   string      `json:"path" msgpack:"path"`
	Header *ast.Header `json:"header" msgpack:"header"`
}

// palette holds the colors used for pretty output; all of them are
// disabled when color is off.
type palette struct {
	path    *color.Color
	section *color.Color
	name    *color.Color
	typ     *color.Color
	err     *color.Color
	caret   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		section: color.New(color.FgYellow),
		name:    color.New(color.FgGreen),
		typ:     color.New(color.FgCyan),
		err:     color.New(color.FgRed, color.Bold),
		caret:   color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.path, p.section, p.name, p.typ, p.err, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// useColor resolves auto against whether w is a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeDocuments(w io.Writer, docs []document, format string, pal palette) error {
	switch format {
	case formatPretty:
		for i, doc := range docs {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writePretty(w, doc, pal); err != nil {
				return err
			}
		}
		return nil
	case formatJSON:
		if err := json.MarshalWrite(w, docs, jsontext.Multiline(true), jsontext.WithIndent("  ")); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err := fmt.Fprintln(w)
		return err
	case formatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(docs); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
		return nil
	}
	return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown format %q", format))
}

func writePretty(w io.Writer, doc document, pal palette) error {
	var b strings.Builder
	b.WriteString(pal.path.Sprint(doc.Path))
	b.WriteByte('\n')

	b.WriteString(pal.section.Sprintf("  imports (%d)", len(doc.Header.Imports)))
	b.WriteByte('\n')
	for _, imp := range doc.Header.Imports {
		fmt.Fprintf(&b, "    %s %s\n",
			pal.name.Sprint(imp.Module+"."+imp.Base),
			pal.typ.Sprint(imp.Signature.String()))
	}

	b.WriteString(pal.section.Sprintf("  exports (%d)", len(doc.Header.Exports)))
	b.WriteByte('\n')
	for _, exp := range doc.Header.Exports {
		fmt.Fprintf(&b, "    %s %s\n",
			pal.name.Sprint(exp.Base),
			pal.typ.Sprint(exp.Signature.String()))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeDiagnostic prints err for path. Positioned errors also show the
// offending source line with a caret under the failing column.
func writeDiagnostic(w io.Writer, path string, src []byte, err error, pal palette) {
	fmt.Fprintf(w, "%s: %s %v\n", pal.path.Sprint(path), pal.err.Sprint("error:"), err)

	var e *errors.Error
	if !stderrors.As(err, &e) || e.Line == 0 || src == nil {
		return
	}
	lines := strings.Split(strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(string(src)), "\n")
	if int(e.Line) > len(lines) {
		return
	}
	line := lines[e.Line-1]
	col := int(e.Column)
	if col > len([]rune(line)) {
		col = len([]rune(line))
	}
	indent := strings.Map(func(r rune) rune {
		if r == '\t' {
			return '\t'
		}
		return ' '
	}, string([]rune(line)[:col]))
	fmt.Fprintf(w, "    %s\n    %s%s\n", line, indent, pal.caret.Sprint("^"))
}
