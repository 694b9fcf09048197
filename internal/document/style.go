package document

import "github.com/alnah/go-chat2doc/internal/pipeline"

// Role palette.
var (
	UserColor      = pipeline.RGB{R: 33, G: 150, B: 243}
	AssistantColor = pipeline.RGB{R: 76, G: 175, B: 80}
	MutedColor     = pipeline.RGB{R: 158, G: 158, B: 158}
)

// Font sizes in points.
const (
	sizeSection = 14
	sizeRole    = 12
	sizeBody    = 11
	sizeExtra   = 10
	sizeOrdinal = 10
	sizeMeta    = 9
)

// extraIndent is the left indent of pasted extra content, in inches.
const extraIndent = 0.3

// maxNodeRunes is the longest current-node id shown before truncation.
const maxNodeRunes = 20

// Fixed decorations.
const (
	otherRolePrefix = "📋 "
	modelPrefix     = "   📡 "
	timingPrefix    = "⏱️ "
	footerPrefix    = "📄 "
	timestampSep    = " • "
	ellipsis        = "..."
)

var (
	bodyStyle  = pipeline.LineStyle{Base: pipeline.Style{SizePt: sizeBody}}
	extraStyle = pipeline.LineStyle{Indent: extraIndent, Base: pipeline.Style{SizePt: sizeExtra, Italic: true}}
)

func muted() *pipeline.RGB {
	c := MutedColor
	return &c
}
