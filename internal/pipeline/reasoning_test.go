package pipeline

import "testing"

func TestStripReasoning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "no markers trims whitespace",
			input: "  hello world \n",
			want:  "hello world",
		},
		{
			name:  "single pair removed",
			input: "<think>plan the answer</think>The answer is 42.",
			want:  "The answer is 42.",
		},
		{
			name:  "pair spanning newlines",
			input: "<think>\nstep one\nstep two\n</think>\n\nDone.",
			want:  "Done.",
		},
		{
			name:  "multiple pairs",
			input: "A<think>x</think>B<think>y</think>C",
			want:  "ABC",
		},
		{
			name:  "non-greedy match keeps text between pairs",
			input: "<think>a</think> keep <think>b</think>",
			want:  "keep",
		},
		{
			name:  "unterminated marker drops the tail",
			input: "Visible part <think>never closed\nmore",
			want:  "Visible part",
		},
		{
			name:  "end marker without start is left alone",
			input: "text </think> more",
			want:  "text </think> more",
		},
		{
			name:  "only reasoning",
			input: "<think>everything</think>",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StripReasoning(tt.input)
			if got != tt.want {
				t.Errorf("StripReasoning(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
