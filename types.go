package chat2doc

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-chat2doc/internal/document"
	"github.com/alnah/go-chat2doc/internal/pipeline"
)

// Block vocabulary produced by the document builder.
type (
	Block         = pipeline.Block
	BlockKind     = pipeline.BlockKind
	Run           = pipeline.Run
	RGB           = pipeline.RGB
	Title         = pipeline.Title
	Heading       = pipeline.Heading
	Paragraph     = pipeline.Paragraph
	BulletItem    = pipeline.BulletItem
	NumberedItem  = pipeline.NumberedItem
	Table         = pipeline.Table
	KeyValueTable = pipeline.KeyValueTable
	Divider       = pipeline.Divider
)

// Role palette shared by every renderer.
var (
	UserColor      = document.UserColor
	AssistantColor = document.AssistantColor
	MutedColor     = document.MutedColor
)

// Format is an output document format.
type Format string

// Supported formats.
const (
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// DefaultFormat is used when Input.Format is empty.
const DefaultFormat = FormatPDF

// Formats lists the supported formats in display order.
var Formats = []Format{FormatPDF, FormatHTML, FormatMarkdown, FormatText}

var formatAliases = map[string]Format{
	"pdf":      FormatPDF,
	"html":     FormatHTML,
	"htm":      FormatHTML,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"text":     FormatText,
	"txt":      FormatText,
}

// ParseFormat resolves a format name or file extension (case-insensitive).
// An empty name selects DefaultFormat.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if name == "" {
		return DefaultFormat, nil
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (must be pdf, html, markdown, or text)", ErrUnsupportedFormat, name)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// ContentType returns the MIME type of documents in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Options selects what each document shows.
type Options struct {
	ShowDate    bool // timestamp next to each role label
	ShowDivider bool // rules around the document and between messages
	ShowModel   bool // model line under assistant headers
	ShowTimings bool // token and latency line after assistant messages
	ShowNumbers bool // "[n]" ordinal before each role label

	UserLabel      string // blank selects the translated default
	AssistantLabel string // blank selects the translated default
	Language       string // label language; unknown codes fall back to Italian
}

// DefaultOptions enables every decoration with Italian labels.
func DefaultOptions() Options {
	return Options{
		ShowDate:    true,
		ShowDivider: true,
		ShowModel:   true,
		ShowTimings: true,
		ShowNumbers: true,
		Language:    DefaultLanguage,
	}
}

// toDocumentOptions converts the public Options to internal document.Options.
func toDocumentOptions(o Options) document.Options {
	return document.Options(o)
}

// Input contains conversion parameters.
type Input struct {
	Payload []byte  // exported conversation JSON (required)
	Format  Format  // empty means DefaultFormat
	Options Options // per-document settings
	Title   string  // HTML/PDF page title; defaults to the translated document title
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	Blocks      []Block // intermediate block sequence
	Data        []byte  // rendered document
	Format      Format
	ContentType string
	FileName    string // suggested download name
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout         time.Duration
	assetPath       string
	styleInput      string
	timestampFormat string
	location        *time.Location
	textWidth       int
	pageNumbers     bool
	now             func() time.Time
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page load timeout of the PDF renderer.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("chat2doc: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath overrides embedded styles and locales with files under path.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithStyle selects the HTML/PDF stylesheet. Accepts a style name ("default",
// "compact"), a path to a CSS file, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithTimestampFormat sets how timestamps are written, as a preset name
// (european, iso, us, long) or a token format such as "DD/MM/YYYY HH:mm".
func WithTimestampFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.timestampFormat = format
	}
}

// WithLocation sets the time zone timestamps are shown in. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Converter) {
		c.cfg.location = loc
	}
}

// WithTextWidth sets the wrap width of FormatText output. Zero disables wrapping.
func WithTextWidth(width int) Option {
	return func(c *Converter) {
		c.cfg.textWidth = width
	}
}

// WithPageNumbers toggles the "page/total" footer of PDF output. Default: on.
func WithPageNumbers(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.pageNumbers = enabled
	}
}

// withClock replaces time.Now for output naming.
func withClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}
