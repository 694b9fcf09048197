package chat2doc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-chat2doc/internal/assets"
	"github.com/alnah/go-chat2doc/internal/dateutil"
	"github.com/alnah/go-chat2doc/internal/document"
	"github.com/alnah/go-chat2doc/internal/fileutil"
	"github.com/alnah/go-chat2doc/internal/i18n"
	"github.com/alnah/go-chat2doc/internal/render"
	"github.com/alnah/go-chat2doc/internal/transcript"
)

// DefaultLanguage is the label language used for unknown language codes.
const DefaultLanguage = assets.DefaultLocale

// outputPrefix starts every generated file name.
const outputPrefix = "conversation"

// Compile-time interface implementation checks.
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// Converter turns conversation exports into documents.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter may be used from several goroutines except for PDF output,
// which drives a single browser; use ConverterPool for parallel PDF work.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	catalog      *i18n.Catalog
	builder      *document.Builder
	css          string
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Returns an error if assets cannot be loaded or an option is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:     defaultTimeout,
			styleInput:  assets.DefaultStyleName,
			textWidth:   render.DefaultTerminalWidth,
			pageNumbers: true,
			now:         time.Now,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assetLoader = resolver

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	c.catalog, err = i18n.Load(resolver, DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocalesUnavailable, err)
	}

	layout, err := dateutil.ResolveLayout(c.cfg.timestampFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestampFormat, err)
	}
	c.builder = document.NewBuilder(c.catalog,
		document.WithLocation(c.cfg.location),
		document.WithTimestampLayout(layout),
	)

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert parses the payload, builds the document and renders it.
// The context is used for cancellation and bounds PDF rendering.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := ParseFormat(string(input.Format))
	if err != nil {
		return nil, err
	}

	blocks, err := c.Build(input.Payload, input.Options)
	if err != nil {
		return nil, err
	}

	data, err := c.render(ctx, blocks, format, input)
	if err != nil {
		return nil, err
	}

	return &ConvertResult{
		Blocks:      blocks,
		Data:        data,
		Format:      format,
		ContentType: format.ContentType(),
		FileName:    OutputFileName(format, c.cfg.now()),
	}, nil
}

// Build parses the payload and returns its block sequence without rendering.
func (c *Converter) Build(payload []byte, opts Options) ([]Block, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	t, err := transcript.Parse(payload)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(t, toDocumentOptions(opts)), nil
}

// Languages returns the label languages the converter knows.
func (c *Converter) Languages() []string {
	return c.catalog.Languages()
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

func (c *Converter) render(ctx context.Context, blocks []Block, format Format, input Input) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return render.Markdown(blocks), nil
	case FormatText:
		return render.PlainText(blocks, c.cfg.textWidth), nil
	case FormatHTML, FormatPDF:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	page, err := render.HTML(blocks, render.HTMLOptions{
		Lang:  c.catalog.Resolve(input.Options.Language),
		Title: input.Title,
		CSS:   c.css,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if format == FormatHTML {
		return page, nil
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, string(page), &pdfOptions{PageNumbers: c.cfg.pageNumbers})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.css = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.css = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.css = css
	return nil
}

// fileStampLayout is dateutil.FileStampFormat as a Go layout; the constant
// always parses.
var fileStampLayout, _ = dateutil.ParseDateFormat(dateutil.FileStampFormat)

// OutputFileName returns the suggested name for a document generated at t,
// e.g. "conversation_20260221_192916.pdf".
func OutputFileName(format Format, t time.Time) string {
	return fileutil.StampedName(outputPrefix, t.Format(fileStampLayout), format.Extension())
}
