package pipeline

import (
	"reflect"
	"testing"
)

func TestSplitTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{
			name:  "empty content",
			input: "",
			want:  nil,
		},
		{
			name:  "no table returns content as one segment",
			input: "line one\n\nline two",
			want:  []Segment{TextSegment("line one\n\nline two")},
		},
		{
			name:  "table between prose",
			input: "intro line\n| A | B |\n|---|---|\n| 1 | 2 |\noutro line",
			want: []Segment{
				TextSegment("intro line"),
				TableSegment([]string{"A", "B"}, [][]string{{"1", "2"}}),
				TextSegment("outro line"),
			},
		},
		{
			name:  "alignment separators",
			input: "| L | C | R |\n|:--|:-:|--:|\n| a | b | c |",
			want: []Segment{
				TableSegment([]string{"L", "C", "R"}, [][]string{{"a", "b", "c"}}),
			},
		},
		{
			name:  "ragged rows are kept as-is",
			input: "| A | B |\n|---|---|\n| 1 |\n| 1 | 2 | 3 |",
			want: []Segment{
				TableSegment([]string{"A", "B"}, [][]string{{"1"}, {"1", "2", "3"}}),
			},
		},
		{
			name:  "header only",
			input: "| A | B |\n|---|---|",
			want: []Segment{
				TableSegment([]string{"A", "B"}, nil),
			},
		},
		{
			name:  "blank lines split prose",
			input: "one\ntwo\n\nthree\n| X |\n| y |",
			want: []Segment{
				TextSegment("one\ntwo"),
				TextSegment("three"),
				TableSegment([]string{"X"}, [][]string{{"y"}}),
			},
		},
		{
			name:  "indented table lines",
			input: "  | A |  \n  | 1 |",
			want: []Segment{
				TableSegment([]string{"A"}, [][]string{{"1"}}),
			},
		},
		{
			name:  "two tables separated by a blank line",
			input: "| A |\n| 1 |\n\n| B |\n| 2 |",
			want: []Segment{
				TableSegment([]string{"A"}, [][]string{{"1"}}),
				TableSegment([]string{"B"}, [][]string{{"2"}}),
			},
		},
		{
			name:  "separator-only region stays prose",
			input: "text\n|---|---|",
			want: []Segment{
				TextSegment("text"),
				TextSegment("|---|---|"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitTables(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTables(%q)\n got: %+v\nwant: %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewTable_PadsAndTruncates(t *testing.T) {
	t.Parallel()

	tbl := NewTable([]string{"A", "B"}, [][]string{{"1"}, {"1", "2", "3"}, {}})

	want := [][]string{{"1", ""}, {"1", "2"}, {"", ""}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %q, want %q", tbl.Rows, want)
	}
	if !reflect.DeepEqual(tbl.HeaderCells, []string{"A", "B"}) {
		t.Errorf("HeaderCells = %q", tbl.HeaderCells)
	}
}
