// Package pdf prints HTML documents to PDF with headless Chrome (go-rod).
package pdf

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-abstracts/internal/fileutil"
	"github.com/alnah/go-abstracts/internal/process"
)

// Sentinel errors for PDF printing.
var (
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
)

// Page size names.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// DefaultTimeout bounds page load and printing.
const DefaultTimeout = 30 * time.Second

// footerMarginExtra makes room for the page number footer.
const footerMarginExtra = 0.25

// paperSizes maps page size names to width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// Options configures the printed page.
type Options struct {
	PageSize    string  // "letter", "a4", "legal"
	Margin      float64 // inches, all sides
	FooterText  string  // shown left of the page number; empty = page number only
	PageNumbers bool
}

// DefaultOptions returns A4 pages, default margins and page numbers.
func DefaultOptions() Options {
	return Options{PageSize: PageSizeA4, Margin: DefaultMargin, PageNumbers: true}
}

// Validate checks page size and margin.
func (o Options) Validate() error {
	if _, ok := paperSizes[strings.ToLower(o.PageSize)]; !ok {
		return fmt.Errorf("%w: %q (must be letter, a4 or legal)", ErrInvalidPageSize, o.PageSize)
	}
	if o.Margin < MinMargin || o.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, o.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// renderer abstracts printing an HTML file so tests can run without a browser.
type renderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts Options) ([]byte, error)
	Close() error
}

// Printer converts HTML documents to PDF bytes.
// Create with NewPrinter and Close when done.
type Printer struct {
	renderer renderer
	opts     Options
}

// NewPrinter validates opts and returns a Printer backed by go-rod.
// The browser starts lazily on the first Print.
func NewPrinter(opts Options, timeout time.Duration) (*Printer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Printer{renderer: &rodRenderer{timeout: timeout}, opts: opts}, nil
}

// Print writes htmlContent to a temp file and prints it.
func (p *Printer) Print(ctx context.Context, htmlContent string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFromFile(ctx, tmpPath, p.opts)
}

// Close releases browser resources.
func (p *Printer) Close() error {
	if p.renderer != nil {
		return p.renderer.Close()
	}
	return nil
}

// rodRenderer implements renderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// Compile-time interface check.
var _ renderer = (*rodRenderer)(nil)

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser in containers
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// CI and containers run without a user namespace sandbox
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.stopLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources. Chrome helper processes are killed with
// the browser's process group so an interrupted run leaves none behind.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.stopLauncher()
	return err
}

func (r *rodRenderer) stopLauncher() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF for the page settings.
func buildPDFOptions(opts Options) *proto.PagePrintToPDF {
	size := paperSizes[strings.ToLower(opts.PageSize)]
	hasFooter := opts.PageNumbers || opts.FooterText != ""

	marginBottom := opts.Margin
	if hasFooter {
		marginBottom += footerMarginExtra
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(size[0]),
		PaperHeight:     floatPtr(size[1]),
		MarginTop:       floatPtr(opts.Margin),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(opts.Margin),
		MarginRight:     floatPtr(opts.Margin),
		PrintBackground: true,
	}

	if hasFooter {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>"
		pdfOpts.FooterTemplate = buildFooterTemplate(opts)
	}

	return pdfOpts
}

// buildFooterTemplate generates Chrome's native footer. Page numbers use the
// pageNumber and totalPages CSS classes Chrome fills in.
func buildFooterTemplate(opts Options) string {
	var parts []string
	if opts.FooterText != "" {
		parts = append(parts, html.EscapeString(opts.FooterText))
	}
	if opts.PageNumbers {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	return fmt.Sprintf(`<div style="font-size: 9px; color: #888; width: 100%%; text-align: center;">%s</div>`,
		strings.Join(parts, " - "))
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
