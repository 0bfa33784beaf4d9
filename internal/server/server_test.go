package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ribeirogab/portfolio/internal/config"
	"github.com/ribeirogab/portfolio/internal/dictionary"
	"github.com/ribeirogab/portfolio/internal/i18n"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:            8080,
		DefaultLocale:   "pt",
		SiteURL:         "https://example.test",
		GinMode:         gin.TestMode,
		VisitorLog:      true,
		VisitorSalt:     "salt",
		ResumeDir:       t.TempDir(),
		ShutdownTimeout: time.Second,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	set, err := cfg.Locales()
	require.NoError(t, err)

	loader, err := dictionary.NewLoader(set, dictionary.Content())
	require.NoError(t, err)

	s, err := New(cfg, loader)
	require.NoError(t, err)
	s.visitors.logf = func(string, ...any) {}
	return s
}

func get(t *testing.T, h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestRedirects(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	tests := []struct {
		name     string
		path     string
		language string
		location string
	}{
		{"root english", "/", "en-US,en;q=0.9", "/en"},
		{"root portuguese", "/", "pt-BR", "/pt"},
		{"root without header", "/", "", "/pt"},
		{"unsupported language", "/", "fr-FR", "/pt"},
		{"nested path with query", "/about?ref=x", "en", "/en/about?ref=x"},
		{"unknown locale segment", "/fr", "", "/pt/fr"},
		{"escaped question mark stays in the path", "/a%3Fb=1", "en-US", "/en/a%3Fb=1"},
		{"escaped slash stays in the segment", "/notes%2Fdraft", "en-US", "/en/notes%2Fdraft"},
		{"escaped path with query", "/a%20b?x=1", "en", "/en/a%20b?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.language != "" {
				headers["Accept-Language"] = tt.language
			}
			rec := get(t, h, tt.path, headers)

			assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.Equal(t, "Accept-Language", rec.Header().Get("Vary"))
		})
	}
}

func TestPage_English(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rec := get(t, h, "/en", map[string]string{"Accept-Language": "pt-BR"})
	require.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)

	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "en-US", lang)
	assert.Equal(t, "Gabriel Ribeiro - Software Engineer", doc.Find("title").Text())

	og, _ := doc.Find(`meta[property="og:locale"]`).Attr("content")
	assert.Equal(t, "en_US", og)

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://example.test/en", canonical)

	alternates := map[string]string{}
	doc.Find(`link[rel="alternate"]`).Each(func(_ int, sel *goquery.Selection) {
		alternates[sel.AttrOr("hreflang", "")] = sel.AttrOr("href", "")
	})
	assert.Equal(t, map[string]string{
		"en-US":     "https://example.test/en",
		"pt-BR":     "https://example.test/pt",
		"x-default": "https://example.test/pt",
	}, alternates)

	toggle := doc.Find(".language-toggle")
	assert.Equal(t, "/pt", toggle.AttrOr("href", ""))
	assert.Equal(t, "pt", toggle.AttrOr("data-target", ""))

	cards := doc.Find("#work article.card")
	assert.Equal(t, 4, cards.Length())
	first := cards.First()
	assert.Contains(t, first.Find(".card-title").Text(), "Goomer")
	assert.Equal(t, "Aug 2021 - Present", first.Find(".card-period").Text())
	assert.Equal(t, 3, first.Find("details .card-description li").Length())
	assert.Contains(t, first.AttrOr("style", ""), "0.24s")
	assert.Contains(t, cards.Eq(1).AttrOr("style", ""), "0.29s")
	assert.Equal(t, "View more", first.Find("summary .card-toggle-more").Text())
	assert.Equal(t, "View less", first.Find("summary .card-toggle-less").Text())

	assert.Equal(t, 3, doc.Find("#education article.card").Length())
	assert.Equal(t, 0, doc.Find("#education details").Length())
	assert.Equal(t, 14, doc.Find("#skills li").Length())

	// empty lists hide their sections
	assert.Equal(t, 0, doc.Find("#projects").Length())
	assert.Equal(t, 0, doc.Find("#hackathons").Length())

	assert.Equal(t, "mailto:ribeirogab.dev@gmail.com", doc.Find(".contact-actions a").First().AttrOr("href", ""))
	assert.Equal(t, 0, doc.Find("a[download]").Length())
}

func TestPage_Portuguese(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rec := get(t, h, "/pt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)

	assert.Equal(t, "pt-BR", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "/en", doc.Find(".language-toggle").AttrOr("href", ""))
	assert.Equal(t, "ago de 2021 - o momento", doc.Find("#work .card-period").First().Text())
	assert.Equal(t, "Experiência Profissional", doc.Find("#work h2").Text())
	assert.Equal(t, "Ver mais", doc.Find("#work summary .card-toggle-more").First().Text())
}

func TestPage_JSONLD(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	doc := document(t, get(t, h, "/pt", nil))
	raw := doc.Find(`script[type="application/ld+json"]`).Text()

	var person map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &person))

	assert.Equal(t, "https://schema.org", person["@context"])
	assert.Equal(t, "Person", person["@type"])
	assert.Equal(t, "Gabriel Ribeiro", person["name"])
	assert.Equal(t, "Desenvolvedor de Software", person["jobTitle"])
	assert.Len(t, person["sameAs"], 3)
	assert.Equal(t, "ribeirogab.dev@gmail.com", person["contactPoint"].(map[string]any)["email"])
}

func TestPage_Dock(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	doc := document(t, get(t, h, "/en", nil))

	var hrefs []string
	doc.Find(".dock a.dock-item").Not(".language-toggle").Each(func(_ int, sel *goquery.Selection) {
		hrefs = append(hrefs, sel.AttrOr("href", ""))
	})
	assert.Equal(t, []string{
		"/en",
		"https://github.com/ribeirogab",
		"https://www.linkedin.com/in/ribeirogab/",
		"https://x.com/gbr_osr",
	}, hrefs)
	assert.Equal(t, 1, doc.Find("[data-theme-toggle]").Length())
}

func TestResumePDF(t *testing.T) {
	cfg := testConfig(t)
	h := newTestServer(t, cfg).Handler()

	rec := get(t, h, "/en/resume.pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	pdf := []byte("%PDF-1.4\n%%EOF\n")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ResumeDir, "resume-en.pdf"), pdf, 0o644))

	rec = get(t, h, "/en/resume.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, pdf, rec.Body.Bytes())

	doc := document(t, get(t, h, "/en", nil))
	assert.Equal(t, "/en/resume.pdf", doc.Find("a[download]").AttrOr("href", ""))

	// only the english resume is published
	doc = document(t, get(t, h, "/pt", nil))
	assert.Equal(t, 0, doc.Find("a[download]").Length())
}

func TestNotFound_Localized(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rec := get(t, h, "/en/missing", map[string]string{"Accept-Language": "pt"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := document(t, rec)

	assert.Equal(t, "en-US", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "Page not found", doc.Find("h1").Text())
	assert.Equal(t, "/en", doc.Find("a.button").AttrOr("href", ""))
	assert.Equal(t, "/pt/missing", doc.Find(".language-toggle").AttrOr("href", ""))
	assert.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))

	rec = get(t, h, "/pt/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Página não encontrada", document(t, rec).Find("h1").Text())
}

func TestExemptPaths(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rec := get(t, h, "/robots.txt", map[string]string{"Accept-Language": "en"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://example.test/sitemap.xml\n", rec.Body.String())

	rec = get(t, h, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Equal(t, 2, strings.Count(body, "<url>"))
	assert.Contains(t, body, `<loc>https://example.test/en</loc>`)
	assert.Contains(t, body, `hreflang="pt-BR" href="https://example.test/pt"`)
	assert.Contains(t, body, `hreflang="x-default" href="https://example.test/pt"`)

	rec = get(t, h, "/static/site.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".reveal")

	rec = get(t, h, "/favicon.ico", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

	// exempt but absent: served as-is, never redirected
	rec = get(t, h, "/images/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestAPI(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rec := get(t, h, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, h, "/api/locales", map[string]string{"Accept-Language": "en-GB"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"default":"pt","locales":["en","pt"],"negotiated":"en"}`, rec.Body.String())

	rec = get(t, h, "/api/dictionary/en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, dictionary.ValidateJSON(rec.Body.Bytes()))
	var d dictionary.Dictionary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "View more", d.UI.Common.ViewMore)

	rec = get(t, h, "/api/dictionary/fr", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"dictionary for locale \"fr\" not found"}`, rec.Body.String())

	rec = get(t, h, "/api/nothing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestNotFound_UsesServerMatcher(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	s.rewriter.Matcher.APIPrefixes = []string{"/v2"}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v2/missing", nil)
	s.handleNotFound(c)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, testConfig(t)).Handler()

	rec := get(t, h, "/api/health", map[string]string{requestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	rec = get(t, h, "/api/health", nil)
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)
}

func TestVisitorLog(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	h := s.Handler()

	var lines []string
	s.visitors.logf = func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	get(t, h, "/en", nil)
	get(t, h, "/pt", map[string]string{"DNT": "1"})
	get(t, h, "/static/site.css", nil)
	get(t, h, "/api/health", nil)
	get(t, h, "/", nil)
	get(t, h, "/en/missing", nil)

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "path=/en locale=en")
	assert.Contains(t, lines[0], "visitor="+s.visitors.HashIP("192.0.2.1"))
	assert.NotContains(t, lines[0], "192.0.2.1")
}

func TestVisitorLog_Disabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.VisitorLog = false
	s := newTestServer(t, cfg)

	called := false
	s.visitors.logf = func(string, ...any) { called = true }

	get(t, s.Handler(), "/en", nil)
	assert.False(t, called)
}

func TestHashIP(t *testing.T) {
	v := NewVisitorLog("one", i18n.DefaultMatcher())
	w := NewVisitorLog("two", i18n.DefaultMatcher())

	assert.Len(t, v.HashIP("10.0.0.1"), 16)
	assert.Equal(t, v.HashIP("10.0.0.1"), v.HashIP("10.0.0.1"))
	assert.NotEqual(t, v.HashIP("10.0.0.1"), v.HashIP("10.0.0.2"))
	assert.NotEqual(t, v.HashIP("10.0.0.1"), w.HashIP("10.0.0.1"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&dictionary.UnsupportedLocaleError{Locale: "fr"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrapped: %w", &dictionary.UnsupportedLocaleError{Locale: "fr"})))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&dictionary.ParityError{}))
}
