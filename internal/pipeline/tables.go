package pipeline

import (
	"regexp"
	"strings"
)

// separatorCell matches alignment cells like "---", ":--", "--:", ":-:" and empty cells.
var separatorCell = regexp.MustCompile(`^[-:]*$`)

// SegmentKind distinguishes prose from tables in a split message body.
type SegmentKind int

// Segment kinds.
const (
	SegmentText SegmentKind = iota + 1
	SegmentTable
)

// Segment is a chunk of message content: either prose lines or one table.
// Table rows are ragged; NewTable fixes their width.
type Segment struct {
	Kind   SegmentKind
	Text   string     // SegmentText
	Header []string   // SegmentTable
	Rows   [][]string // SegmentTable
}

// TextSegment returns a prose segment.
func TextSegment(text string) Segment {
	return Segment{Kind: SegmentText, Text: text}
}

// TableSegment returns a table segment.
func TableSegment(header []string, rows [][]string) Segment {
	return Segment{Kind: SegmentTable, Header: header, Rows: rows}
}

// SplitTables separates pipe-delimited Markdown tables from surrounding prose.
// Consecutive table lines form one table; separator rows are dropped; the first
// remaining row is the header. Blank lines end the current prose segment.
// Content without any table line comes back as a single text segment.
func SplitTables(content string) []Segment {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if !containsTableLine(lines) {
		return []Segment{TextSegment(content)}
	}

	var (
		segments  []Segment
		textLines []string
		tableRows []string
	)

	flushText := func() {
		if len(textLines) > 0 {
			segments = append(segments, TextSegment(strings.Join(textLines, "\n")))
			textLines = nil
		}
	}
	flushTable := func() {
		if len(tableRows) == 0 {
			return
		}
		if seg, ok := parseTable(tableRows); ok {
			segments = append(segments, seg)
		} else {
			// Only separators: nothing to use as a header, keep it as prose.
			segments = append(segments, TextSegment(strings.Join(tableRows, "\n")))
		}
		tableRows = nil
	}

	for _, line := range lines {
		switch {
		case isTableLine(line):
			flushText()
			tableRows = append(tableRows, line)
		case strings.TrimSpace(line) == "":
			flushTable()
			flushText()
		default:
			flushTable()
			textLines = append(textLines, line)
		}
	}
	flushTable()
	flushText()

	return segments
}

// isTableLine reports whether the trimmed line starts and ends with a pipe.
func isTableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 2 && trimmed[0] == '|' && trimmed[len(trimmed)-1] == '|'
}

func containsTableLine(lines []string) bool {
	for _, line := range lines {
		if isTableLine(line) {
			return true
		}
	}
	return false
}

// parseTable turns raw table lines into header and data rows.
// Returns false when every line is a separator row.
func parseTable(lines []string) (Segment, bool) {
	var (
		header    []string
		rows      [][]string
		hasHeader bool
	)
	for _, line := range lines {
		cells := splitTableRow(line)
		if isSeparatorRow(cells) {
			continue
		}
		if !hasHeader {
			header = cells
			hasHeader = true
			continue
		}
		rows = append(rows, cells)
	}
	if !hasHeader {
		return Segment{}, false
	}
	return TableSegment(header, rows), true
}

// splitTableRow splits "| a | b |" into ["a", "b"].
func splitTableRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	// Leading and trailing pipes produce empty first and last parts.
	parts = parts[1 : len(parts)-1]
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return true
}
