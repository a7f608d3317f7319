package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 50
)

// TerminalUI writes coloured output to a terminal. Each indent level adds
// two spaces.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	au          aurora.Aurora
}

// NewTerminalUI writes to os.Stdout. Colours are on only when stdout is a
// real terminal.
func NewTerminalUI() *TerminalUI {
	return NewTerminalUIWithWriter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// NewTerminalUIWithWriter writes to out. colors forces ANSI colours on or
// off.
func NewTerminalUIWithWriter(out io.Writer, colors bool) *TerminalUI {
	return &TerminalUI{
		out: out,
		au:  aurora.NewAurora(colors),
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	default:
		return t.Text
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.writeLine(u.au.Bold(fmt.Sprintf(format, args...)).String())
}

// Section prints the title between "=" bars with a blank line on each side.
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - runewidth.StringWidth(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", bars-left)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), u.au.Bold(line).String())
}

// KeyValue pads labels to the widest one. Widths ignore ANSI codes so
// styled values line up.
func (u *TerminalUI) KeyValue(rows [][2]string) {
	if len(rows) == 0 {
		return
	}
	maxLabel := 0
	for _, r := range rows {
		if w := visibleWidth(r[0]); w > maxLabel {
			maxLabel = w
		}
	}
	p := u.prefix()
	for _, r := range rows {
		pad := maxLabel - visibleWidth(r[0])
		fmt.Fprintf(u.out, "%s%s%s  %s\n", p, r[0], strings.Repeat(" ", pad), r[1])
	}
}

func (u *TerminalUI) Table(headers []string, rows [][]string) {
	u.TableWithGroups(headers, [][][]string{rows})
}

// TableWithGroups sizes every column over all groups so the groups line up.
// Borders are drawn in a dim lipgloss colour.
func (u *TerminalUI) TableWithGroups(headers []string, groups [][][]string) {
	if len(groups) == 0 {
		return
	}
	t := newTableLayout(headers, groups)
	border := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	lines := []string{t.rule(border, "┌", "┬", "┐")}
	if len(headers) > 0 {
		lines = append(lines, t.row(border, headers), t.rule(border, "├", "┼", "┤"))
	}
	for gi, group := range groups {
		if gi > 0 {
			lines = append(lines, t.rule(border, "├", "┼", "┤"))
		}
		for _, cells := range group {
			lines = append(lines, t.row(border, cells))
		}
	}
	lines = append(lines, t.rule(border, "└", "┴", "┘"))

	p := u.prefix()
	for _, l := range lines {
		fmt.Fprintf(u.out, "%s%s\n", p, l)
	}
}

// tableLayout holds the visible width of each column. Widths ignore ANSI
// codes so styled cells pad correctly.
type tableLayout struct {
	widths []int
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func newTableLayout(headers []string, groups [][][]string) tableLayout {
	ncols := len(headers)
	for _, g := range groups {
		for _, r := range g {
			if len(headers) == 0 && len(r) > ncols {
				ncols = len(r)
			}
		}
	}
	t := tableLayout{widths: make([]int, ncols)}
	t.fit(headers)
	for _, g := range groups {
		for _, r := range g {
			t.fit(r)
		}
	}
	return t
}

func (t tableLayout) fit(cells []string) {
	for i := 0; i < len(t.widths) && i < len(cells); i++ {
		if w := visibleWidth(cells[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
}

func (t tableLayout) rule(border lipgloss.Style, left, mid, right string) string {
	dashes := make([]string, len(t.widths))
	for i, w := range t.widths {
		dashes[i] = strings.Repeat("─", w+2)
	}
	return border.Render(left + strings.Join(dashes, mid) + right)
}

func (t tableLayout) row(border lipgloss.Style, cells []string) string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if pad := w - visibleWidth(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		parts[i] = " " + cell + " "
	}
	bar := border.Render("│")
	return bar + strings.Join(parts, bar) + bar
}

func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		au:          u.au,
	}
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
