package chat2doc

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-chat2doc/internal/fileutil"
	"github.com/alnah/go-chat2doc/internal/hints"
	"github.com/alnah/go-chat2doc/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	PageNumbers bool
}

// pageSetup is a paper size with uniform margins, in inches.
type pageSetup struct {
	width, height float64
	margin        float64
	footerMargin  float64 // bottom margin when the page number footer is on
}

// a4 is the page every PDF is printed on.
var a4 = pageSetup{width: 8.27, height: 11.69, margin: 1.0, footerMargin: 1.1}

// footerTemplate is Chrome's native footer; pageNumber and totalPages are
// filled in by the browser.
const footerTemplate = `<div style="font-size: 9px; color: #9e9e9e; width: 100%; text-align: center;">` +
	`<span class="pageNumber"></span>/<span class="totalPages"></span></div>`

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first use when no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	host     hints.Host
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout, host: hints.LocalHost()}
}

// launchSettings picks the browser binary and sandbox mode for h.
// ROD_BROWSER_BIN names a preinstalled browser. The sandbox is off when
// ROD_NO_SANDBOX=1 or when running in a container or CI.
func launchSettings(h hints.Host) (bin string, noSandbox bool) {
	bin = h.Getenv("ROD_BROWSER_BIN")
	noSandbox = h.Getenv("ROD_NO_SANDBOX") == "1" || h.NeedsNoSandbox()
	return bin, noSandbox
}

// ensureBrowser launches and connects to the browser on first use.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	bin, noSandbox := launchSettings(r.host)
	if bin != "" {
		l = l.Bin(bin)
	}
	l = l.NoSandbox(noSandbox)

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close releases browser resources. Chrome helper processes are killed with
// their process group so none outlive the converter.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillTree(pid)
		}
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
// Browser failures are returned as errors, never panics.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	wait, err := loadTimeout(ctx, r.timeout)
	if err != nil {
		return nil, err
	}
	if err := page.Timeout(wait).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := page.Context(ctx).PDF(a4.printOptions(opts != nil && opts.PageNumbers))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// loadTimeout bounds page loading by the context deadline when there is
// one, else by fallback.
func loadTimeout(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// printOptions returns Chrome print settings for p, with the page number
// footer when pageNumbers is set.
func (p pageSetup) printOptions(pageNumbers bool) *proto.PagePrintToPDF {
	bottom := p.margin
	if pageNumbers {
		bottom = p.footerMargin
	}

	out := &proto.PagePrintToPDF{
		PaperWidth:      &p.width,
		PaperHeight:     &p.height,
		MarginTop:       &p.margin,
		MarginBottom:    &bottom,
		MarginLeft:      &p.margin,
		MarginRight:     &p.margin,
		PrintBackground: true,
	}
	if pageNumbers {
		out.DisplayHeaderFooter = true
		out.HeaderTemplate = "<span></span>"
		out.FooterTemplate = footerTemplate
	}
	return out
}

// rodConverter writes the page to a temp file and renders it with a pdfRenderer.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with the production renderer.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF writes htmlContent to a temp file and prints it to an A4 PDF.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
