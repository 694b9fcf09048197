package pipeline

import "strings"

// emphasisRule describes one asterisk delimiter tier.
type emphasisRule struct {
	delim  string
	bold   bool
	italic bool
}

// emphasisRules is the precedence table checked at every '*': the first
// rule whose delimiter opens here and closes later on the line wins.
var emphasisRules = [...]emphasisRule{
	{delim: "***", bold: true, italic: true},
	{delim: "**", bold: true},
	{delim: "*", italic: true},
}

// Tokenize splits a single line into styled runs.
// The line is taken as is: math spans are expected to be normalized by the
// caller. Text outside emphasis keeps the base style; an emphasis span turns
// on the bold/italic flags of its tier and inherits everything else from
// base. Emphasis spans do not nest. Empty input yields no runs.
func Tokenize(text string, base Style) []Run {
	if text == "" {
		return nil
	}

	var runs []Run
	plainStart := 0
	i := 0
	for i < len(text) {
		if text[i] != '*' {
			i++
			continue
		}

		rule, inner, next, ok := matchEmphasis(text, i)
		if !ok {
			i++
			continue
		}

		if plainStart < i {
			runs = append(runs, base.run(text[plainStart:i], base.Bold, base.Italic))
		}
		runs = append(runs, base.run(inner, base.Bold || rule.bold, base.Italic || rule.italic))
		i = next
		plainStart = next
	}

	if plainStart < len(text) {
		runs = append(runs, base.run(text[plainStart:], base.Bold, base.Italic))
	}
	return runs
}

// matchEmphasis tries each rule at position i. On success it returns the rule,
// the enclosed text and the index just past the closing delimiter.
func matchEmphasis(text string, i int) (emphasisRule, string, int, bool) {
	for _, rule := range emphasisRules {
		if !strings.HasPrefix(text[i:], rule.delim) {
			continue
		}
		contentStart := i + len(rule.delim)
		if contentStart >= len(text) {
			continue
		}
		// Content is non-empty: search for the closer after at least one byte.
		end := strings.Index(text[contentStart+1:], rule.delim)
		if end < 0 {
			continue
		}
		contentEnd := contentStart + 1 + end
		return rule, text[contentStart:contentEnd], contentEnd + len(rule.delim), true
	}
	return emphasisRule{}, "", 0, false
}
