package pipeline

import (
	"fmt"
	"strings"
)

// RGB is a 24-bit text color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a CSS-style "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Run is a contiguous span of text sharing one style.
// A nil Color means the renderer's default text color.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	SizePt float64
	Color  *RGB
}

// Style is the base style handed to the inline tokenizer.
type Style struct {
	SizePt float64
	Bold   bool
	Italic bool
	Color  *RGB
}

// run builds a Run carrying the style's size and color.
func (s Style) run(text string, bold, italic bool) Run {
	return Run{Text: text, Bold: bold, Italic: italic, SizePt: s.SizePt, Color: s.Color}
}

// Block is one structural unit of the output document.
// The set of implementations is closed: Title, Heading, Paragraph, BulletItem,
// NumberedItem, Table, KeyValueTable and Divider.
type Block interface {
	blockKind() BlockKind
}

// BlockKind identifies a Block implementation.
type BlockKind int

// Block kinds.
const (
	KindTitle BlockKind = iota + 1
	KindHeading
	KindParagraph
	KindBulletItem
	KindNumberedItem
	KindTable
	KindKeyValueTable
	KindDivider
)

var blockKindNames = map[BlockKind]string{
	KindTitle:         "title",
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindBulletItem:    "bullet",
	KindNumberedItem:  "numbered",
	KindTable:         "table",
	KindKeyValueTable: "key-value-table",
	KindDivider:       "divider",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf returns the kind of b.
func KindOf(b Block) BlockKind {
	return b.blockKind()
}

// Title is the document title.
type Title struct {
	Text string
}

// Heading is a section heading. Level is 1, 2 or 3.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of styled text. IndentInches of 0 means no indent.
type Paragraph struct {
	IndentInches float64
	Runs         []Run
}

// BulletItem is an unordered list item.
type BulletItem struct {
	IndentInches float64
	Runs         []Run
}

// NumberedItem is an ordered list item. Number is the ordinal written in the source.
type NumberedItem struct {
	IndentInches float64
	Number       int
	Runs         []Run
}

// Table is a data table. Every row has exactly len(HeaderCells) cells.
type Table struct {
	HeaderCells []string
	Rows        [][]string
}

// KeyValueTable is a two-column table without a header row.
type KeyValueTable struct {
	Rows [][2]string
}

// Divider is a horizontal rule. Heavy rules frame the document,
// light rules separate messages.
type Divider struct {
	Heavy bool
}

func (Title) blockKind() BlockKind         { return KindTitle }
func (Heading) blockKind() BlockKind       { return KindHeading }
func (Paragraph) blockKind() BlockKind     { return KindParagraph }
func (BulletItem) blockKind() BlockKind    { return KindBulletItem }
func (NumberedItem) blockKind() BlockKind  { return KindNumberedItem }
func (Table) blockKind() BlockKind         { return KindTable }
func (KeyValueTable) blockKind() BlockKind { return KindKeyValueTable }
func (Divider) blockKind() BlockKind       { return KindDivider }

// NewTable materializes a header and ragged rows into a fixed-width Table.
// Short rows are padded with empty cells; cells beyond the header width are dropped.
func NewTable(header []string, rows [][]string) Table {
	width := len(header)
	t := Table{
		HeaderCells: append([]string(nil), header...),
		Rows:        make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		fixed := make([]string, width)
		copy(fixed, row)
		t.Rows = append(t.Rows, fixed)
	}
	return t
}

// PlainText concatenates the text of runs.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
