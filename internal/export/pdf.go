// Package export prints a rendered résumé to a paginated A4 PDF in headless Chrome.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/github-resume/internal/rendering"
)

// A4 paper in inches (210mm x 297mm).
const (
	PaperWidthInches  = 8.27
	PaperHeightInches = 11.69
)

// DefaultTimeout bounds a whole export, browser start-up included.
const DefaultTimeout = 60 * time.Second

// DefaultFileName is used when the résumé has no name.
const DefaultFileName = "resume.pdf"

var whitespace = regexp.MustCompile(`\s+`)

// FileName returns "<Name_With_Underscores>_resume.pdf".
func FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFileName
	}
	return whitespace.ReplaceAllString(name, "_") + "_resume.pdf"
}

// PDFExporter drives headless Chrome through chromedp.
type PDFExporter struct {
	ChromePath string // optional; defaults to the chromedp lookup
	Timeout    time.Duration
	Verbose    bool
}

// NewPDFExporter creates an exporter. CHROME_PATH is honoured when chromePath is empty.
func NewPDFExporter(chromePath string, verbose bool) *PDFExporter {
	if chromePath == "" {
		chromePath = os.Getenv("CHROME_PATH")
	}
	return &PDFExporter{
		ChromePath: chromePath,
		Timeout:    DefaultTimeout,
		Verbose:    verbose,
	}
}

// HasContributionChart reports whether the document embeds the GitHub
// contribution chart image.
func HasContributionChart(html string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc.Find(chartSelector()).Length() > 0, nil
}

func chartSelector() string {
	return fmt.Sprintf(`img[alt=%q]`, rendering.ChartAlt)
}

// Export prints html to PDF bytes. The document is written to a temporary
// directory so relative assets resolve the same way as in a browser.
func (e *PDFExporter) Export(ctx context.Context, html string) ([]byte, error) {
	waitForChart, err := HasContributionChart(html)
	if err != nil {
		return nil, &Error{Message: "invalid document", Cause: err}
	}

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, &Error{Message: "failed to create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &Error{Message: "failed to write document", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if e.Verbose {
		log.Printf("[EXPORT] Printing %s (wait for chart: %v)", htmlPath, waitForChart)
	}

	actions := []chromedp.Action{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if waitForChart {
		actions = append(actions, waitForImage(chartSelector()))
	}

	var pdf []byte
	actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(PaperWidthInches).
			WithPaperHeight(PaperHeightInches).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, &Error{Message: "browser printing failed", Cause: err}
	}

	if e.Verbose {
		log.Printf("[EXPORT] Generated PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

// waitForImage polls until the image has finished loading. A failed load
// counts as finished so a broken chart never blocks the export.
func waitForImage(selector string) chromedp.Action {
	script := fmt.Sprintf(`(() => { const img = document.querySelector(%q); return !img || img.complete; })()`, selector)
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for {
			var done bool
			if err := chromedp.Evaluate(script, &done).Do(ctx); err != nil {
				return fmt.Errorf("failed to check image %s: %w", selector, err)
			}
			if done {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(100 * time.Millisecond):
			}
		}
	})
}

// WriteFile exports html and writes the PDF to path.
func (e *PDFExporter) WriteFile(ctx context.Context, html, path string) error {
	pdf, err := e.Export(ctx, html)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return &Error{Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return nil
}

// Error represents a failed export
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
