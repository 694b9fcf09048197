package pipeline

import "strings"

// Reasoning markers emitted by chat models that think out loud.
const (
	ReasoningStart = "<think>"
	ReasoningEnd   = "</think>"
)

// StripReasoning removes every <think>...</think> span from text, newlines included.
// An unterminated <think> drops everything from the marker to the end.
// The result is trimmed of surrounding whitespace.
func StripReasoning(text string) string {
	if !strings.Contains(text, ReasoningStart) {
		return strings.TrimSpace(text)
	}

	var sb strings.Builder
	sb.Grow(len(text))

	rest := text
	for {
		start := strings.Index(rest, ReasoningStart)
		if start < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:start])

		afterStart := rest[start+len(ReasoningStart):]
		end := strings.Index(afterStart, ReasoningEnd)
		if end < 0 {
			break
		}
		rest = afterStart[end+len(ReasoningEnd):]
	}

	return strings.TrimSpace(sb.String())
}
