package document

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-chat2doc/internal/dateutil"
	"github.com/alnah/go-chat2doc/internal/i18n"
	"github.com/alnah/go-chat2doc/internal/pipeline"
	"github.com/alnah/go-chat2doc/internal/transcript"
)

// Options selects the optional parts of a document.
type Options struct {
	ShowDate    bool // timestamp next to each role label
	ShowDivider bool // rules around the document and between messages
	ShowModel   bool // model line under assistant headers
	ShowTimings bool // token and latency line after assistant messages
	ShowNumbers bool // "[n]" ordinal before each role label

	UserLabel      string // blank selects the translated default
	AssistantLabel string // blank selects the translated default
	Language       string // unknown codes use the catalog fallback
}

// Builder turns transcripts into Block sequences. It holds only immutable
// state and is safe for concurrent use.
type Builder struct {
	catalog *i18n.Catalog
	loc     *time.Location
	layout  string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLocation sets the zone timestamps are shown in. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// WithTimestampLayout sets the Go time layout for timestamps.
// Default: the layout of dateutil.DefaultTimestampFormat.
func WithTimestampLayout(layout string) Option {
	return func(b *Builder) {
		if layout != "" {
			b.layout = layout
		}
	}
}

// defaultLayout is "DD/MM/YYYY HH:mm:ss" as a Go layout.
const defaultLayout = "02/01/2006 15:04:05"

// NewBuilder creates a Builder reading labels from catalog.
func NewBuilder(catalog *i18n.Catalog, opts ...Option) *Builder {
	b := &Builder{catalog: catalog, loc: time.Local, layout: defaultLayout}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the full document for t.
func (b *Builder) Build(t *transcript.Transcript, opts Options) []pipeline.Block {
	tr := b.catalog.For(opts.Language)

	blocks := b.header(t.Conversation, tr)
	if opts.ShowDivider {
		blocks = append(blocks, pipeline.Divider{Heavy: true})
	}

	labels := roleLabels{
		user:      labelOr(opts.UserLabel, tr.T(i18n.KeyDefaultUser)),
		assistant: labelOr(opts.AssistantLabel, tr.T(i18n.KeyDefaultAssistant)),
	}
	for i, msg := range t.Messages {
		blocks = append(blocks, b.message(i+1, msg, labels, tr, opts)...)
	}

	if opts.ShowDivider {
		blocks = append(blocks, pipeline.Divider{Heavy: true})
	}
	blocks = append(blocks, pipeline.Paragraph{Runs: []pipeline.Run{{
		Text:   footerPrefix + tr.T(i18n.KeyGeneratedAt),
		Italic: true,
		SizePt: sizeMeta,
		Color:  muted(),
	}}})
	return blocks
}

// header emits the title and the conversation details table.
func (b *Builder) header(conv transcript.Conversation, tr i18n.Translator) []pipeline.Block {
	return []pipeline.Block{
		pipeline.Title{Text: tr.T(i18n.KeyDocTitle)},
		pipeline.Paragraph{Runs: []pipeline.Run{{
			Text:   tr.T(i18n.KeyDocInfo),
			Bold:   true,
			SizePt: sizeSection,
		}}},
		pipeline.KeyValueTable{Rows: [][2]string{
			{tr.T(i18n.KeyConvID), conv.ID},
			{tr.T(i18n.KeyConvName), conv.Name},
			{tr.T(i18n.KeyConvLastMod), b.formatTime(conv.LastModified)},
			{tr.T(i18n.KeyConvNode), truncateNode(conv.CurrentNode)},
		}},
	}
}

type roleLabels struct {
	user      string
	assistant string
}

// message emits one message section, or nothing for skipped messages.
func (b *Builder) message(ordinal int, msg transcript.Message, labels roleLabels, tr i18n.Translator, opts Options) []pipeline.Block {
	if msg.Content == "" && msg.Kind != transcript.TextKind {
		return nil
	}

	isAssistant := msg.Role == transcript.RoleAssistant
	var blocks []pipeline.Block

	blocks = append(blocks, b.messageHeader(ordinal, msg, labels, opts))

	if opts.ShowModel && isAssistant && msg.Model != "" {
		blocks = append(blocks, pipeline.Paragraph{Runs: []pipeline.Run{{
			Text:   modelPrefix + msg.Model,
			Italic: true,
			SizePt: sizeMeta,
			Color:  muted(),
		}}})
	}

	if msg.Content != "" {
		blocks = append(blocks, MessageBody(msg.Content)...)
	}

	if len(msg.Extras) > 0 {
		blocks = append(blocks, pipeline.Paragraph{Runs: []pipeline.Run{{
			Text:   tr.T(i18n.KeyExtraContent),
			Bold:   true,
			SizePt: sizeExtra,
		}}})
		for _, item := range msg.Extras {
			if item.IsPasted() && item.Content != "" {
				blocks = append(blocks, ExtraBody(item.Content)...)
			}
		}
	}

	if opts.ShowTimings && isAssistant && msg.Timings != nil {
		blocks = append(blocks, timingLine(msg.Timings))
	}

	if opts.ShowDivider {
		blocks = append(blocks, pipeline.Divider{})
	}
	return blocks
}

func (b *Builder) messageHeader(ordinal int, msg transcript.Message, labels roleLabels, opts Options) pipeline.Block {
	var runs []pipeline.Run

	if opts.ShowNumbers {
		runs = append(runs, pipeline.Run{
			Text:   fmt.Sprintf("[%d] ", ordinal),
			SizePt: sizeOrdinal,
			Color:  muted(),
		})
	}

	label, color := roleDisplay(msg.Role, labels)
	runs = append(runs, pipeline.Run{Text: label, Bold: true, SizePt: sizeRole, Color: &color})

	if opts.ShowDate {
		runs = append(runs, pipeline.Run{
			Text:   timestampSep + b.formatTime(msg.Timestamp),
			SizePt: sizeMeta,
			Color:  muted(),
		})
	}
	return pipeline.Paragraph{Runs: runs}
}

// roleDisplay returns the label and color for role.
func roleDisplay(role string, labels roleLabels) (string, pipeline.RGB) {
	switch role {
	case transcript.RoleUser:
		return labels.user, UserColor
	case transcript.RoleAssistant:
		return labels.assistant, AssistantColor
	default:
		return otherRolePrefix + strings.ToUpper(role), MutedColor
	}
}

func timingLine(t *transcript.Timings) pipeline.Block {
	text := fmt.Sprintf("Prompt: %s token (%.1fms) | Output: %s token (%.1fms)",
		t.PromptTokens, t.PromptMs, t.OutputTokens, t.OutputMs)
	return pipeline.Paragraph{Runs: []pipeline.Run{
		{Text: timingPrefix, SizePt: sizeMeta},
		{Text: text, SizePt: sizeMeta, Color: muted()},
	}}
}

func (b *Builder) formatTime(e dateutil.EpochMillis) string {
	return dateutil.FormatEpochMillis(e, b.layout, b.loc)
}

// MessageBody converts message content into blocks: reasoning is removed,
// math is normalized, escaped line breaks are expanded, tables are split out
// and every other non-blank line is classified at body size.
func MessageBody(content string) []pipeline.Block {
	return body(pipeline.StripReasoning(content), bodyStyle)
}

// ExtraBody converts pasted extra content into indented italic blocks.
func ExtraBody(content string) []pipeline.Block {
	return body(content, extraStyle)
}

// body normalizes math once, before expanding escapes so that commands such
// as \times or \nu are not read as tab or newline escapes, and before
// splitting lines so that display math may span several of them.
func body(text string, style pipeline.LineStyle) []pipeline.Block {
	var blocks []pipeline.Block
	for _, seg := range pipeline.SplitTables(unescape(pipeline.NormalizeLatex(text))) {
		if seg.Kind == pipeline.SegmentTable {
			blocks = append(blocks, pipeline.NewTable(seg.Header, seg.Rows))
			continue
		}
		for _, line := range strings.Split(seg.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if b, ok := pipeline.Classify(line, style); ok {
				blocks = append(blocks, b)
			}
		}
	}
	return blocks
}

// escapeReplacer expands literal "\n" and "\t" sequences left by exporters
// that double-escape message text.
var escapeReplacer = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

func unescape(s string) string {
	return escapeReplacer.Replace(s)
}

func labelOr(custom, def string) string {
	if c := strings.TrimSpace(custom); c != "" {
		return c
	}
	return def
}

// truncateNode shortens ids longer than maxNodeRunes.
func truncateNode(id string) string {
	if utf8.RuneCountInString(id) <= maxNodeRunes {
		return id
	}
	return string([]rune(id)[:maxNodeRunes]) + ellipsis
}
