package server

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ribeirogab/portfolio/internal/i18n"
)

func (s *Server) handlePage(c *gin.Context) {
	locale, ok := s.locales.Lookup(c.Param("lang"))
	if !ok {
		s.handleNotFound(c)
		return
	}

	page, err := s.page(locale, c.Request.URL.Path)
	if err != nil {
		log.Printf("Error rendering page for locale %s: %v", locale, err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.HTML(http.StatusOK, "page.html", page)
}

func (s *Server) handleNotFound(c *gin.Context) {
	path := c.Request.URL.Path
	if s.rewriter.Matcher.IsAPI(path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	locale, ok := LocaleFrom(c)
	if !ok {
		locale = s.locales.Default()
	}

	page, err := s.page(locale, path)
	if err != nil {
		log.Printf("Error rendering not found page for locale %s: %v", locale, err)
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	page.Meta.Title = page.Dict.UI.Common.NotFoundTitle + " | " + page.Dict.Resume.Name
	page.Meta.Robots = "noindex"

	c.HTML(http.StatusNotFound, "notfound.html", page)
}

func (s *Server) page(locale i18n.Locale, path string) (Page, error) {
	d, err := s.loader.Load(string(locale))
	if err != nil {
		return Page{}, err
	}
	return NewPage(d, locale, s.locales, path, PageOptions{
		SiteURL:   s.cfg.SiteURL,
		ResumeURL: s.resumeURL(locale),
	}), nil
}

func (s *Server) resumePath(locale i18n.Locale) string {
	return s.cfg.ResumePath(string(locale))
}

// resumeURL returns the download link of the locale's PDF, or "" when none is published.
func (s *Server) resumeURL(locale i18n.Locale) string {
	info, err := os.Stat(s.resumePath(locale))
	if err != nil || info.IsDir() {
		return ""
	}
	return i18n.Prefix(locale, "/resume.pdf")
}

func (s *Server) handleResumePDF(c *gin.Context) {
	locale, ok := s.locales.Lookup(c.Param("lang"))
	if !ok || s.resumeURL(locale) == "" {
		s.handleNotFound(c)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(s.resumePath(locale))
}

func (s *Server) handleFavicon(c *gin.Context) {
	data, err := fs.ReadFile(Static(), "favicon.svg")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", data)
}

func (s *Server) handleRobots(c *gin.Context) {
	c.String(http.StatusOK, Robots(s.cfg.SiteURL))
}

func (s *Server) handleSitemap(c *gin.Context) {
	data, err := Sitemap(s.cfg.SiteURL, s.locales)
	if err != nil {
		log.Printf("Error building sitemap: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLocales(c *gin.Context) {
	negotiated, ok := LocaleFrom(c)
	if !ok {
		negotiated = s.locales.Negotiate(c.GetHeader("Accept-Language"))
	}
	c.JSON(http.StatusOK, gin.H{
		"default":    s.locales.Default(),
		"locales":    s.locales.Locales(),
		"negotiated": negotiated,
	})
}

func (s *Server) handleDictionary(c *gin.Context) {
	d, err := s.loader.Load(c.Param("locale"))
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Error loading dictionary: %v", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

// Robots returns the robots.txt body: everything is crawlable.
func Robots(siteURL string) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", siteURL)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string             `xml:"loc"`
	Alternates []sitemapXHTMLLink `xml:"xhtml:link"`
}

type sitemapXHTMLLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Sitemap lists one URL per locale, each carrying hreflang alternates for
// every locale plus x-default.
func Sitemap(siteURL string, set i18n.Set) ([]byte, error) {
	var alternates []sitemapXHTMLLink
	for _, l := range set.Locales() {
		alternates = append(alternates, sitemapXHTMLLink{
			Rel:      "alternate",
			HrefLang: l.HTMLLang(),
			Href:     siteURL + i18n.Prefix(l, "/"),
		})
	}
	alternates = append(alternates, sitemapXHTMLLink{
		Rel:      "alternate",
		HrefLang: "x-default",
		Href:     siteURL + i18n.Prefix(set.Default(), "/"),
	})

	urlset := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, l := range set.Locales() {
		urlset.URLs = append(urlset.URLs, sitemapURL{
			Loc:        siteURL + i18n.Prefix(l, "/"),
			Alternates: alternates,
		})
	}

	out, err := xml.MarshalIndent(urlset, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	var b strings.Builder
	b.WriteString(xml.Header)
	b.Write(out)
	b.WriteString("\n")
	return []byte(b.String()), nil
}
