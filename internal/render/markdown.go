package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/alnah/go-chat2doc/internal/pipeline"
)

// Markdown renders blocks as GitHub Flavored Markdown. Colors and font sizes
// have no Markdown equivalent and are dropped; bold and italic are kept.
// Indented blocks are written as block quotes.
func Markdown(blocks []pipeline.Block) []byte {
	var buf strings.Builder

	for i, b := range blocks {
		isItem := false
		switch blk := b.(type) {
		case pipeline.Title:
			buf.WriteString("# " + escapeMarkdown(blk.Text) + "\n")
		case pipeline.Heading:
			buf.WriteString(strings.Repeat("#", clampLevel(blk.Level)+1) + " " + escapeMarkdown(blk.Text) + "\n")
		case pipeline.Paragraph:
			buf.WriteString(quote(blk.IndentInches) + markdownRuns(blk.Runs) + "\n")
		case pipeline.BulletItem:
			isItem = true
			buf.WriteString(quote(blk.IndentInches) + "- " + markdownRuns(blk.Runs) + "\n")
		case pipeline.NumberedItem:
			isItem = true
			buf.WriteString(quote(blk.IndentInches) + strconv.Itoa(max(blk.Number, 1)) + ". " + markdownRuns(blk.Runs) + "\n")
		case pipeline.Table:
			writeMarkdownTable(&buf, blk)
		case pipeline.KeyValueTable:
			for _, row := range blk.Rows {
				buf.WriteString("- **" + escapeMarkdown(row[0]) + "**: " + escapeMarkdown(row[1]) + "\n")
			}
		case pipeline.Divider:
			if blk.Heavy {
				buf.WriteString("***\n")
			} else {
				buf.WriteString("---\n")
			}
		}

		// List items of one kind stay together; everything else is
		// separated by a blank line.
		next := i + 1
		if isItem && next < len(blocks) && sameList(b, blocks[next]) {
			continue
		}
		if next < len(blocks) {
			buf.WriteString("\n")
		}
	}
	return []byte(buf.String())
}

func sameList(a, b pipeline.Block) bool {
	switch x := a.(type) {
	case pipeline.BulletItem:
		y, ok := b.(pipeline.BulletItem)
		return ok && x.IndentInches == y.IndentInches
	case pipeline.NumberedItem:
		y, ok := b.(pipeline.NumberedItem)
		return ok && x.IndentInches == y.IndentInches
	}
	return false
}

func quote(indent float64) string {
	if indent > 0 {
		return "> "
	}
	return ""
}

func writeMarkdownTable(buf *strings.Builder, t pipeline.Table) {
	writeMarkdownRow(buf, t.HeaderCells)
	buf.WriteString("|")
	for range t.HeaderCells {
		buf.WriteString(" --- |")
	}
	buf.WriteString("\n")
	for _, row := range t.Rows {
		writeMarkdownRow(buf, row)
	}
}

func writeMarkdownRow(buf *strings.Builder, cells []string) {
	buf.WriteString("|")
	for _, cell := range cells {
		buf.WriteString(" " + escapeMarkdown(cell) + " |")
	}
	buf.WriteString("\n")
}

// markdownRuns merges adjacent runs with the same emphasis and wraps each
// group in its delimiters. Surrounding whitespace is kept outside the
// delimiters so that they stay left- and right-flanking.
func markdownRuns(runs []pipeline.Run) string {
	var out strings.Builder
	for _, g := range groupRuns(runs) {
		delim := emphasisDelim(g.bold, g.italic)
		text := escapeMarkdown(g.text)
		core := strings.TrimFunc(text, unicode.IsSpace)
		if delim == "" || core == "" {
			out.WriteString(text)
			continue
		}
		lead := text[:strings.Index(text, core)]
		trail := text[len(lead)+len(core):]
		out.WriteString(lead + delim + core + delim + trail)
	}
	return out.String()
}

type runGroup struct {
	text         string
	bold, italic bool
}

func groupRuns(runs []pipeline.Run) []runGroup {
	var groups []runGroup
	for _, r := range runs {
		if n := len(groups); n > 0 && groups[n-1].bold == r.Bold && groups[n-1].italic == r.Italic {
			groups[n-1].text += r.Text
			continue
		}
		groups = append(groups, runGroup{text: r.Text, bold: r.Bold, italic: r.Italic})
	}
	return groups
}

func emphasisDelim(bold, italic bool) string {
	switch {
	case bold && italic:
		return "***"
	case bold:
		return "**"
	case italic:
		return "*"
	default:
		return ""
	}
}

var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`,
		"<", `\<`, ">", `\>`, "|", `\|`, "~", `\~`, "&", `\&`, "$", `\$`,
	)
	// Line starts that would otherwise open a heading, list or quote.
	lineStartMarker = regexp.MustCompile(`^(#|[-+=]|\d+[.)])`)
)

// escapeMarkdown escapes text so that it renders literally.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	if m := lineStartMarker.FindString(s); m != "" {
		return m[:len(m)-1] + `\` + s[len(m)-1:]
	}
	return s
}
