// Package export renders the site to files: a static tree for plain hosting
// and PDF resumes printed by headless Chrome.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ribeirogab/portfolio/internal/i18n"
)

// rootFiles are exported even when no page links to them.
var rootFiles = []string{"/robots.txt", "/sitemap.xml"}

// linkAttrs lists the elements whose same-site references are followed.
var linkAttrs = []struct{ selector, attr string }{
	{"link[href]", "href"},
	{"script[src]", "src"},
	{"img[src]", "src"},
	{"source[src]", "src"},
	{"a[href]", "href"},
}

// BrokenLinkError reports a same-site reference that did not resolve.
type BrokenLinkError struct {
	Page   string
	Link   string
	Status int
}

func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("broken link on %s: %s returned %d", e.Page, e.Link, e.Status)
}

// Builder writes the pages of every locale, and every same-site file they
// reference, under an output directory. Pages are rendered in-process
// through the site handler, so the export matches what the server returns.
type Builder struct {
	handler http.Handler
	locales i18n.Set
	outDir  string

	written map[string]bool
	files   []string
}

// NewBuilder creates a builder exporting h into outDir.
func NewBuilder(h http.Handler, locales i18n.Set, outDir string) *Builder {
	return &Builder{handler: h, locales: locales, outDir: outDir, written: make(map[string]bool)}
}

// Build exports the site and returns the written files, relative to the
// output directory and sorted.
func (b *Builder) Build(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(b.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	type item struct{ path, from string }

	var queue []item
	for _, l := range b.locales.Locales() {
		queue = append(queue, item{path: i18n.Prefix(l, "/")})
	}
	for _, p := range rootFiles {
		queue = append(queue, item{path: p})
	}

	seen := make(map[string]bool)
	for _, it := range queue {
		seen[it.path] = true
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		it := queue[0]
		queue = queue[1:]

		rec, err := b.fetch(ctx, it.path)
		if err != nil {
			return nil, err
		}
		if rec.Code >= http.StatusBadRequest {
			if it.from != "" {
				return nil, &BrokenLinkError{Page: it.from, Link: it.path, Status: rec.Code}
			}
			return nil, fmt.Errorf("failed to export %s: status %d", it.path, rec.Code)
		}
		// Redirects point at pages exported under their own path.
		if rec.Code != http.StatusOK {
			continue
		}

		body := rec.Body.Bytes()
		if err := b.write(it.path, body); err != nil {
			return nil, err
		}

		if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
			continue
		}

		links, err := sameSiteLinks(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", it.path, err)
		}
		for _, link := range links {
			if !seen[link] {
				seen[link] = true
				queue = append(queue, item{path: link, from: it.path})
			}
		}
	}

	if err := b.writeIndex(); err != nil {
		return nil, err
	}

	sort.Strings(b.files)
	log.Printf("Exported %d files to %s", len(b.files), b.outDir)
	return b.files, nil
}

func (b *Builder) fetch(ctx context.Context, p string) (*httptest.ResponseRecorder, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", p, err)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	return rec, nil
}

func (b *Builder) write(p string, data []byte) error {
	rel := OutputPath(p)
	if b.written[rel] {
		return nil
	}

	dst := filepath.Join(b.outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}

	b.written[rel] = true
	b.files = append(b.files, rel)
	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0; url={{.}}">
<link rel="canonical" href="{{.}}">
</head>
<body><a href="{{.}}">{{.}}</a></body>
</html>
`))

// writeIndex writes the root page. Static hosts cannot negotiate, so it sends
// visitors to the default locale.
func (b *Builder) writeIndex() error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, i18n.Prefix(b.locales.Default(), "/")); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return b.write("/", buf.Bytes())
}

// OutputPath maps a request path to its file in the export. Paths without an
// extension become directories with an index.html.
func OutputPath(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "index.html"
	}
	if path.Ext(p) == "" {
		return p + "/index.html"
	}
	return p
}

// sameSiteLinks returns the root-relative references of an HTML document,
// without query or fragment.
func sameSiteLinks(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]bool)
	for _, la := range linkAttrs {
		doc.Find(la.selector).Each(func(_ int, s *goquery.Selection) {
			ref, _ := s.Attr(la.attr)
			if !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
				return
			}
			if i := strings.IndexAny(ref, "?#"); i >= 0 {
				ref = ref[:i]
			}
			if ref == "" || seen[ref] {
				return
			}
			seen[ref] = true
			links = append(links, ref)
		})
	}
	return links, nil
}
