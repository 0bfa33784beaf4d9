package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/ribeirogab/portfolio/internal/i18n"
)

// openDetails expands every collapsible card so the printed resume is complete.
const openDetails = `document.querySelectorAll("details").forEach(function (d) { d.open = true; })`

// PDFRenderer prints pages with headless Chrome.
type PDFRenderer struct {
	ChromePath string        // Chrome binary; empty uses the chromedp lookup
	Timeout    time.Duration // per page, including browser start
}

// NewPDFRenderer creates a renderer using CHROME_PATH when it is set.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{ChromePath: os.Getenv("CHROME_PATH"), Timeout: 60 * time.Second}
}

// Render loads url and prints it to an A4 PDF.
func (r *PDFRenderer) Render(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.Timeout)
	defer cancelRun()

	var pdf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(openDetails, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print %s: %w", url, err)
	}
	return pdf, nil
}

// RenderLocales serves h on a loopback port for the duration of the call and
// prints the page of each locale to the file named by dst.
func (r *PDFRenderer) RenderLocales(ctx context.Context, h http.Handler, locales []i18n.Locale, dst func(i18n.Locale) string) ([]string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to listen on loopback: %w", err)
	}

	srv := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("PDF preview server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	base := "http://" + ln.Addr().String()

	var files []string
	for _, l := range locales {
		pdf, err := r.Render(ctx, base+i18n.Prefix(l, "/"))
		if err != nil {
			return files, err
		}

		file := dst(l)
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return files, fmt.Errorf("failed to create directory for %s: %w", file, err)
		}
		if err := os.WriteFile(file, pdf, 0o644); err != nil {
			return files, fmt.Errorf("failed to write %s: %w", file, err)
		}
		log.Printf("Wrote %s (%d bytes)", file, len(pdf))
		files = append(files, file)
	}
	return files, nil
}

