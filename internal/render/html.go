package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"

	"github.com/alnah/go-chat2doc/internal/pipeline"
)

// HTMLOptions configures the HTML page shell.
type HTMLOptions struct {
	Lang  string // html lang attribute
	Title string // <title>; defaults to the document Title block
	CSS   string // inlined stylesheet
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.CSS}}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Lang  string
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// HTML renders blocks as a standalone HTML page.
func HTML(blocks []pipeline.Block, opts HTMLOptions) ([]byte, error) {
	title := opts.Title
	if title == "" {
		title = firstTitle(blocks)
	}

	data := pageData{
		Lang:  opts.Lang,
		Title: title,
		CSS:   template.CSS(opts.CSS), // #nosec G203 -- stylesheet comes from trusted assets
		Body:  template.HTML(HTMLBody(blocks)), // #nosec G203 -- built from escaped text
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering HTML page: %w", err)
	}
	return buf.Bytes(), nil
}

// HTMLBody renders blocks as an HTML fragment. All text is escaped.
// Consecutive list items of the same kind and indent share one list element.
func HTMLBody(blocks []pipeline.Block) string {
	var buf strings.Builder
	var list listState

	for _, b := range blocks {
		switch blk := b.(type) {
		case pipeline.BulletItem:
			list.open(&buf, "ul", blk.IndentInches)
			buf.WriteString("<li>")
			writeRuns(&buf, blk.Runs)
			buf.WriteString("</li>\n")
			continue
		case pipeline.NumberedItem:
			list.open(&buf, "ol", blk.IndentInches)
			if blk.Number > 0 {
				fmt.Fprintf(&buf, `<li value="%d">`, blk.Number)
			} else {
				buf.WriteString("<li>")
			}
			writeRuns(&buf, blk.Runs)
			buf.WriteString("</li>\n")
			continue
		}

		list.close(&buf)

		switch blk := b.(type) {
		case pipeline.Title:
			buf.WriteString(`<h1 class="doc-title">`)
			buf.WriteString(html.EscapeString(blk.Text))
			buf.WriteString("</h1>\n")
		case pipeline.Heading:
			// h1 is reserved for the document title.
			tag := "h" + strconv.Itoa(clampLevel(blk.Level)+1)
			buf.WriteString("<" + tag + ">")
			buf.WriteString(html.EscapeString(blk.Text))
			buf.WriteString("</" + tag + ">\n")
		case pipeline.Paragraph:
			buf.WriteString("<p" + indentAttr(blk.IndentInches) + ">")
			writeRuns(&buf, blk.Runs)
			buf.WriteString("</p>\n")
		case pipeline.Table:
			writeTable(&buf, blk)
		case pipeline.KeyValueTable:
			buf.WriteString(`<table class="meta">` + "\n<tbody>\n")
			for _, row := range blk.Rows {
				buf.WriteString("<tr><td>")
				buf.WriteString(html.EscapeString(row[0]))
				buf.WriteString("</td><td>")
				buf.WriteString(html.EscapeString(row[1]))
				buf.WriteString("</td></tr>\n")
			}
			buf.WriteString("</tbody>\n</table>\n")
		case pipeline.Divider:
			if blk.Heavy {
				buf.WriteString(`<hr class="heavy">` + "\n")
			} else {
				buf.WriteString("<hr>\n")
			}
		}
	}
	list.close(&buf)

	return buf.String()
}

// listState tracks the currently open list element.
type listState struct {
	tag    string
	indent float64
}

func (l *listState) open(buf *strings.Builder, tag string, indent float64) {
	if l.tag == tag && l.indent == indent {
		return
	}
	l.close(buf)
	buf.WriteString("<" + tag + indentAttr(indent) + ">\n")
	l.tag, l.indent = tag, indent
}

func (l *listState) close(buf *strings.Builder) {
	if l.tag == "" {
		return
	}
	buf.WriteString("</" + l.tag + ">\n")
	l.tag, l.indent = "", 0
}

func writeTable(buf *strings.Builder, t pipeline.Table) {
	buf.WriteString("<table>\n<thead>\n<tr>")
	for _, cell := range t.HeaderCells {
		buf.WriteString("<th>")
		buf.WriteString(html.EscapeString(cell))
		buf.WriteString("</th>")
	}
	buf.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range t.Rows {
		buf.WriteString("<tr>")
		for _, cell := range row {
			buf.WriteString("<td>")
			buf.WriteString(html.EscapeString(cell))
			buf.WriteString("</td>")
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("</tbody>\n</table>\n")
}

// writeRuns writes each run as a span carrying its inline style.
func writeRuns(buf *strings.Builder, runs []pipeline.Run) {
	for _, r := range runs {
		style := runCSS(r)
		if style == "" {
			buf.WriteString(html.EscapeString(r.Text))
			continue
		}
		buf.WriteString(`<span style="` + style + `">`)
		buf.WriteString(html.EscapeString(r.Text))
		buf.WriteString("</span>")
	}
}

func runCSS(r pipeline.Run) string {
	var parts []string
	if r.SizePt > 0 {
		parts = append(parts, "font-size:"+strconv.FormatFloat(r.SizePt, 'f', -1, 64)+"pt")
	}
	if r.Bold {
		parts = append(parts, "font-weight:bold")
	}
	if r.Italic {
		parts = append(parts, "font-style:italic")
	}
	if r.Color != nil {
		parts = append(parts, "color:"+r.Color.Hex())
	}
	return strings.Join(parts, ";")
}

func indentAttr(inches float64) string {
	if inches <= 0 {
		return ""
	}
	return ` style="margin-left:` + strconv.FormatFloat(inches, 'f', -1, 64) + `in"`
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 3:
		return 3
	default:
		return level
	}
}

func firstTitle(blocks []pipeline.Block) string {
	for _, b := range blocks {
		if t, ok := b.(pipeline.Title); ok {
			return t.Text
		}
	}
	return ""
}
