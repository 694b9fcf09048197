package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/alnah/go-chat2doc/internal/pipeline"
)

// DefaultTerminalWidth is the wrap width when none is configured.
const DefaultTerminalWidth = 80

// columnsPerInch converts block indents to terminal columns.
const columnsPerInch = 10

// Terminal renders blocks for a terminal. Styling follows the color profile
// of the destination writer: ANSI colors on a TTY, plain text otherwise.
type Terminal struct {
	renderer *lipgloss.Renderer
	width    int

	bold   lipgloss.Style
	rule   lipgloss.Style
	header lipgloss.Style
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithWidth sets the wrap width in columns. Zero or less disables wrapping.
func WithWidth(width int) TerminalOption {
	return func(t *Terminal) {
		t.width = width
	}
}

// WithColorProfile forces a color profile instead of detecting it.
func WithColorProfile(p termenv.Profile) TerminalOption {
	return func(t *Terminal) {
		t.renderer.SetColorProfile(p)
	}
}

// NewTerminal creates a Terminal writing for w.
func NewTerminal(w io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		renderer: lipgloss.NewRenderer(w),
		width:    DefaultTerminalWidth,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.bold = t.renderer.NewStyle().Bold(true)
	t.rule = t.renderer.NewStyle().Foreground(lipgloss.Color("8"))
	t.header = t.renderer.NewStyle().Bold(true).Underline(true)
	return t
}

// PlainText renders blocks without any escape sequences.
func PlainText(blocks []pipeline.Block, width int) []byte {
	t := NewTerminal(io.Discard, WithWidth(width), WithColorProfile(termenv.Ascii))
	return []byte(t.Render(blocks))
}

// Render returns the rendered document. Consecutive list items of one kind
// are kept together; other blocks are separated by a blank line.
func (t *Terminal) Render(blocks []pipeline.Block) string {
	var buf strings.Builder
	for i, b := range blocks {
		isItem := false
		switch blk := b.(type) {
		case pipeline.Title:
			buf.WriteString(t.underlined(blk.Text, "="))
		case pipeline.Heading:
			if blk.Level <= 2 {
				buf.WriteString(t.underlined(blk.Text, "-"))
			} else {
				buf.WriteString(t.bold.Render(blk.Text) + "\n")
			}
		case pipeline.Paragraph:
			buf.WriteString(t.wrap(t.runs(blk.Runs), indentColumns(blk.IndentInches), ""))
		case pipeline.BulletItem:
			isItem = true
			buf.WriteString(t.wrap(t.runs(blk.Runs), indentColumns(blk.IndentInches), "• "))
		case pipeline.NumberedItem:
			isItem = true
			marker := strconv.Itoa(max(blk.Number, 1)) + ". "
			buf.WriteString(t.wrap(t.runs(blk.Runs), indentColumns(blk.IndentInches), marker))
		case pipeline.Table:
			buf.WriteString(t.table(blk))
		case pipeline.KeyValueTable:
			buf.WriteString(t.keyValues(blk))
		case pipeline.Divider:
			char := "─"
			if blk.Heavy {
				char = "═"
			}
			buf.WriteString(t.rule.Render(strings.Repeat(char, t.ruleWidth())) + "\n")
		}

		next := i + 1
		if isItem && next < len(blocks) && sameList(b, blocks[next]) {
			continue
		}
		if next < len(blocks) {
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

func (t *Terminal) underlined(text, char string) string {
	return t.bold.Render(text) + "\n" + strings.Repeat(char, max(runewidth.StringWidth(text), 1)) + "\n"
}

// runs styles each run and joins them.
func (t *Terminal) runs(runs []pipeline.Run) string {
	var out strings.Builder
	for _, r := range runs {
		style := t.renderer.NewStyle().Bold(r.Bold).Italic(r.Italic)
		if r.Color != nil {
			style = style.Foreground(lipgloss.Color(r.Color.Hex()))
		}
		out.WriteString(style.Render(r.Text))
	}
	return out.String()
}

// wrap word-wraps styled text after indent and marker. Continuation lines
// align with the text following the marker.
func (t *Terminal) wrap(text string, indent int, marker string) string {
	hang := indent + runewidth.StringWidth(marker)
	if t.width > 0 && t.width-hang > 0 {
		text = ansi.Wordwrap(text, t.width-hang, "")
	}

	lines := strings.Split(text, "\n")
	var buf strings.Builder
	for i, line := range lines {
		if i == 0 {
			buf.WriteString(strings.Repeat(" ", indent) + marker)
		} else {
			buf.WriteString(strings.Repeat(" ", hang))
		}
		buf.WriteString(line + "\n")
	}
	return buf.String()
}

// table lays out a grid with columns sized to their widest cell.
func (t *Terminal) table(tbl pipeline.Table) string {
	widths := make([]int, len(tbl.HeaderCells))
	for i, cell := range tbl.HeaderCells {
		widths[i] = runewidth.StringWidth(cell)
	}
	for _, row := range tbl.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var buf strings.Builder
	buf.WriteString(t.tableRow(tbl.HeaderCells, widths, t.header))

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("─", w)
	}
	buf.WriteString(t.rule.Render(strings.Join(seps, "─┼─")) + "\n")

	plain := t.renderer.NewStyle()
	for _, row := range tbl.Rows {
		buf.WriteString(t.tableRow(row, widths, plain))
	}
	return buf.String()
}

func (t *Terminal) tableRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = style.Render(cell) + strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
	}
	return strings.TrimRight(strings.Join(parts, t.rule.Render(" │ ")), " ") + "\n"
}

func (t *Terminal) keyValues(kv pipeline.KeyValueTable) string {
	keyWidth := 0
	for _, row := range kv.Rows {
		keyWidth = max(keyWidth, runewidth.StringWidth(row[0]))
	}

	var buf strings.Builder
	for _, row := range kv.Rows {
		pad := strings.Repeat(" ", keyWidth-runewidth.StringWidth(row[0]))
		buf.WriteString(t.bold.Render(row[0]) + pad + "  " + t.bold.Render(row[1]) + "\n")
	}
	return buf.String()
}

func (t *Terminal) ruleWidth() int {
	if t.width > 0 {
		return t.width
	}
	return DefaultTerminalWidth
}

func indentColumns(inches float64) int {
	if inches <= 0 {
		return 0
	}
	return int(inches*columnsPerInch + 0.5)
}
