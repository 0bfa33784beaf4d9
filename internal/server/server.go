// Package server provides the HTTP front end of the site: locale routing,
// page rendering, SEO files and the JSON API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ribeirogab/portfolio/internal/config"
	"github.com/ribeirogab/portfolio/internal/dictionary"
	"github.com/ribeirogab/portfolio/internal/i18n"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("server: embedded static assets missing: " + err.Error())
	}
	return sub
}

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	locales    i18n.Set
	rewriter   i18n.Rewriter
	loader     *dictionary.Loader
	visitors   *VisitorLog
	engine     *gin.Engine
	httpServer *http.Server
}

// New creates a server serving the dictionaries of the loader.
func New(cfg *config.Config, loader *dictionary.Loader) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	locales := loader.Locales()
	rw := i18n.NewRewriter(locales)
	s := &Server{
		cfg:      cfg,
		locales:  locales,
		rewriter: rw,
		loader:   loader,
		visitors: NewVisitorLog(cfg.VisitorSalt, rw.Matcher),
		engine:   gin.New(),
	}

	if err := s.engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.Use(gin.Recovery(), requestIDMiddleware(), requestLogger(), localeMiddleware(s.rewriter))
	if cfg.VisitorLog {
		s.engine.Use(s.visitors.Middleware())
	}

	s.routes()

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() {
	r := s.engine

	r.StaticFS("/static", http.FS(Static()))
	r.GET("/favicon.ico", s.handleFavicon)
	r.GET("/favicon.svg", s.handleFavicon)
	r.GET("/robots.txt", s.handleRobots)
	r.GET("/sitemap.xml", s.handleSitemap)

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/locales", s.handleLocales)
	api.GET("/dictionary/:locale", s.handleDictionary)

	r.GET("/:lang", s.handlePage)
	r.GET("/:lang/resume.pdf", s.handleResumePDF)

	r.NoRoute(s.handleNotFound)
}

// Handler returns the HTTP handler, for tests and the static export.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens until ctx is cancelled, then drains in-flight requests for
// at most the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		log.Printf("Server starting on %s (default locale %s)", s.httpServer.Addr, s.locales.Default())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"tel": telURL,
	}).ParseFS(templatesFS, "templates/*.html")
}

// telURL builds a tel: link. html/template rejects the scheme, so only digits
// and a leading plus sign are kept.
func telURL(number string) template.URL {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, number)
	return template.URL("tel:" + digits)
}
