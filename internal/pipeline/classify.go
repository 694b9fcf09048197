package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Precompiled line patterns.
var (
	bulletPattern   = regexp.MustCompile(`^[*\-•]\s+(.*)$`)
	numberedPattern = regexp.MustCompile(`^(\d+)[.)]\s+(.*)$`)
)

// maxHeadingLevel caps heading depth; deeper "####" headings collapse to it.
const maxHeadingLevel = 3

// LineStyle carries the caller-supplied presentation for non-heading blocks.
type LineStyle struct {
	Indent float64 // inches, 0 = none
	Base   Style
}

// lineRule is one row of the classification table. match returns the block
// for line, or false to fall through to the next rule.
type lineRule struct {
	name  string
	match func(line string, style LineStyle) (Block, bool)
}

// lineRules is evaluated in order; the paragraph rule always matches.
var lineRules = []lineRule{
	{name: "heading", match: matchHeading},
	{name: "bullet", match: matchBullet},
	{name: "numbered", match: matchNumbered},
	{name: "paragraph", match: matchParagraph},
}

// Classify turns one trimmed line into a Block. It reports false when the
// line carries no text, so callers never emit an empty paragraph or item.
// The line must already be math-normalized (see NormalizeLatex). Headings
// keep plain text with no emphasis; every other kind is tokenized into runs
// with style.Base. The indent applies to paragraphs and list items only.
func Classify(line string, style LineStyle) (Block, bool) {
	for _, rule := range lineRules {
		if b, ok := rule.match(line, style); ok {
			return b, hasContent(b)
		}
	}
	// Unreachable: matchParagraph accepts everything.
	return nil, false
}

// hasContent reports whether b has something to render.
func hasContent(b Block) bool {
	switch b := b.(type) {
	case Heading:
		return b.Text != ""
	case Paragraph:
		return len(b.Runs) > 0
	case BulletItem:
		return len(b.Runs) > 0
	case NumberedItem:
		return len(b.Runs) > 0
	default:
		return b != nil
	}
}

// matchHeading accepts "# ", "## " and "### " (or deeper) prefixes.
func matchHeading(line string, _ LineStyle) (Block, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level == len(line) {
		return nil, false
	}
	r, _ := utf8.DecodeRuneInString(line[level:])
	if !unicode.IsSpace(r) {
		return nil, false
	}
	text := strings.TrimSpace(line[level:])
	return Heading{Level: min(level, maxHeadingLevel), Text: text}, true
}

func matchBullet(line string, style LineStyle) (Block, bool) {
	m := bulletPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return BulletItem{IndentInches: style.Indent, Runs: Tokenize(m[1], style.Base)}, true
}

func matchNumbered(line string, style LineStyle) (Block, bool) {
	m := numberedPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Overflowing ordinals are still list items.
		n = 0
	}
	return NumberedItem{IndentInches: style.Indent, Number: n, Runs: Tokenize(m[2], style.Base)}, true
}

func matchParagraph(line string, style LineStyle) (Block, bool) {
	return Paragraph{IndentInches: style.Indent, Runs: Tokenize(line, style.Base)}, true
}
