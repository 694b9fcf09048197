package render

import (
	"strings"
	"testing"

	"github.com/alnah/go-chat2doc/internal/pipeline"
)

func TestHTMLBody(t *testing.T) {
	t.Parallel()

	blue := pipeline.RGB{R: 33, G: 150, B: 243}

	tests := []struct {
		name   string
		blocks []pipeline.Block
		want   string
	}{
		{
			name:   "title is escaped",
			blocks: []pipeline.Block{pipeline.Title{Text: "A & B"}},
			want:   `<h1 class="doc-title">A &amp; B</h1>` + "\n",
		},
		{
			name:   "heading levels shift below the title",
			blocks: []pipeline.Block{pipeline.Heading{Level: 1, Text: "x"}, pipeline.Heading{Level: 3, Text: "y"}},
			want:   "<h2>x</h2>\n<h4>y</h4>\n",
		},
		{
			name: "styled run",
			blocks: []pipeline.Block{pipeline.Paragraph{Runs: []pipeline.Run{
				{Text: "hi", Bold: true, SizePt: 11, Color: &blue},
			}}},
			want: `<p><span style="font-size:11pt;font-weight:bold;color:#2196f3">hi</span></p>` + "\n",
		},
		{
			name: "unstyled run is bare text",
			blocks: []pipeline.Block{pipeline.Paragraph{Runs: []pipeline.Run{
				{Text: "<b>"},
			}}},
			want: "<p>&lt;b&gt;</p>\n",
		},
		{
			name: "indented paragraph",
			blocks: []pipeline.Block{pipeline.Paragraph{IndentInches: 0.3, Runs: []pipeline.Run{
				{Text: "x", Italic: true},
			}}},
			want: `<p style="margin-left:0.3in"><span style="font-style:italic">x</span></p>` + "\n",
		},
		{
			name: "consecutive bullets share a list",
			blocks: []pipeline.Block{
				pipeline.BulletItem{Runs: []pipeline.Run{{Text: "a"}}},
				pipeline.BulletItem{Runs: []pipeline.Run{{Text: "b"}}},
				pipeline.Paragraph{Runs: []pipeline.Run{{Text: "c"}}},
			},
			want: "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n<p>c</p>\n",
		},
		{
			name: "numbered item keeps its ordinal",
			blocks: []pipeline.Block{
				pipeline.NumberedItem{Number: 3, Runs: []pipeline.Run{{Text: "x"}}},
			},
			want: "<ol>\n" + `<li value="3">x</li>` + "\n</ol>\n",
		},
		{
			name: "list kind change opens a new list",
			blocks: []pipeline.Block{
				pipeline.BulletItem{Runs: []pipeline.Run{{Text: "a"}}},
				pipeline.NumberedItem{Number: 1, Runs: []pipeline.Run{{Text: "b"}}},
			},
			want: "<ul>\n<li>a</li>\n</ul>\n<ol>\n" + `<li value="1">b</li>` + "\n</ol>\n",
		},
		{
			name: "table",
			blocks: []pipeline.Block{pipeline.Table{
				HeaderCells: []string{"h"},
				Rows:        [][]string{{"v&w"}},
			}},
			want: "<table>\n<thead>\n<tr><th>h</th></tr>\n</thead>\n<tbody>\n<tr><td>v&amp;w</td></tr>\n</tbody>\n</table>\n",
		},
		{
			name:   "key value table",
			blocks: []pipeline.Block{pipeline.KeyValueTable{Rows: [][2]string{{"ID", "1"}}}},
			want:   `<table class="meta">` + "\n<tbody>\n<tr><td>ID</td><td>1</td></tr>\n</tbody>\n</table>\n",
		},
		{
			name:   "dividers",
			blocks: []pipeline.Block{pipeline.Divider{Heavy: true}, pipeline.Divider{}},
			want:   `<hr class="heavy">` + "\n<hr>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HTMLBody(tt.blocks); got != tt.want {
				t.Errorf("HTMLBody() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestHTML_Page(t *testing.T) {
	t.Parallel()

	blocks := []pipeline.Block{
		pipeline.Title{Text: "Chat & notes"},
		pipeline.Paragraph{Runs: []pipeline.Run{{Text: "body"}}},
	}

	got, err := HTML(blocks, HTMLOptions{Lang: "it", CSS: "body { margin: 0; }"})
	if err != nil {
		t.Fatalf("HTML() unexpected error: %v", err)
	}
	page := string(got)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="it">`,
		"<title>Chat &amp; notes</title>",
		"body { margin: 0; }",
		"<p>body</p>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML() missing %q in:\n%s", want, page)
		}
	}
}

func TestHTML_ExplicitTitle(t *testing.T) {
	t.Parallel()

	got, err := HTML([]pipeline.Block{pipeline.Title{Text: "ignored"}}, HTMLOptions{Title: "export.json"})
	if err != nil {
		t.Fatalf("HTML() unexpected error: %v", err)
	}
	if !strings.Contains(string(got), "<title>export.json</title>") {
		t.Errorf("HTML() did not use the explicit title:\n%s", got)
	}
}
