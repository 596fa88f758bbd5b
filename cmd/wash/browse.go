package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wash/header"
	"github.com/wippyai/wash/header/ast"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD866"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	defaultWidth = 80
	minNameWidth = 12
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Browse the imports and exports of a header or wasm module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hdr, err := loadAny(cmd, args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBrowseModel(args[0], hdr), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// loadAny extracts .wasm files and parses everything else as a header.
func loadAny(cmd *cobra.Command, path string) (*ast.Header, error) {
	if strings.EqualFold(filepath.Ext(path), ".wasm") {
		return inspectFile(cmd, path)
	}
	return header.ParseFile(path)
}

type entry struct {
	kind string
	name string
	sig  ast.Signature
}

func entries(hdr *ast.Header) []entry {
	out := make([]entry, 0, len(hdr.Imports)+len(hdr.Exports))
	for _, imp := range hdr.Imports {
		out = append(out, entry{kind: "import", name: imp.Module + "." + imp.Base, sig: imp.Signature})
	}
	for _, exp := range hdr.Exports {
		out = append(out, entry{kind: "export", name: exp.Base, sig: exp.Signature})
	}
	return out
}

type browseModel struct {
	filter   textinput.Model
	filename string
	all      []entry
	visible  []entry
	selected int
	width    int
	showWIT  bool
}

func newBrowseModel(filename string, hdr *ast.Header) *browseModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "name"
	ti.Focus()

	m := &browseModel{
		filter:   ti,
		filename: filename,
		all:      entries(hdr),
		width:    defaultWidth,
	}
	m.applyFilter()
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, e := range m.all {
		if q == "" || strings.Contains(strings.ToLower(e.name), q) {
			m.visible = append(m.visible, e)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil
		case "tab":
			m.showWIT = !m.showWIT
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wash"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("no matching declarations"))
		b.WriteString("\n")
	}

	nameWidth := max(m.width/2, minNameWidth)
	for i, e := range m.visible {
		name := runewidth.FillRight(runewidth.Truncate(e.name, nameWidth, "…"), nameWidth)
		sig := e.sig.String()
		if m.showWIT {
			sig = witSignature(e.sig)
		}
		if i == m.selected {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("> %-6s %s %s", e.kind, name, sig)))
		} else {
			b.WriteString("  " + kindStyle.Render(fmt.Sprintf("%-6s", e.kind)) + " " + nameStyle.Render(name) + " " + typeStyle.Render(sig))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d • ↑/↓ select • type to filter • tab core/WIT types • esc quit", len(m.visible), len(m.all))))
	return b.String()
}

// witSignature renders a signature in WIT syntax, lifting each core
// type to its signed WIT counterpart.
func witSignature(sig ast.Signature) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = fmt.Sprintf("p%d: %s", i, witType(p).WIT(nil, ""))
	}
	s := "func(" + strings.Join(params, ", ") + ")"
	if r, ok := sig.Result.Prim(); ok {
		s += " -> " + witType(r).WIT(nil, "")
	}
	return s
}

func witType(p ast.PrimType) wit.Type {
	switch p {
	case ast.I32:
		return wit.S32{}
	case ast.I64:
		return wit.S64{}
	case ast.F32:
		return wit.F32{}
	default:
		return wit.F64{}
	}
}
