package i18n

import (
	"path"
	"strings"
)

// Matcher decides which request paths are never locale-prefixed.
// Paths are matched exactly, by prefix, or by file extension. Paths under an
// API prefix are always handled by the middleware and never rewritten,
// whatever their extension.
type Matcher struct {
	Paths       []string // exact paths, e.g. "/robots.txt"
	Prefixes    []string // path prefixes ending in "/", e.g. "/static/"
	Extensions  []string // lower-case extensions without the dot
	APIPrefixes []string // namespaces evaluated by the middleware but never prefixed
}

// DefaultMatcher returns the exemption rules for the site: well-known root
// files, the embedded asset prefix and static file extensions (.json is not
// one of them).
func DefaultMatcher() Matcher {
	return Matcher{
		Paths: []string{
			"/robots.txt",
			"/sitemap.xml",
			"/favicon.ico",
			"/favicon.svg",
			"/site.webmanifest",
		},
		Prefixes: []string{"/static/"},
		Extensions: []string{
			"html", "htm", "css", "js",
			"jpg", "jpeg", "webp", "png", "gif", "svg",
			"ttf", "woff", "woff2", "ico",
			"csv", "doc", "docx", "xls", "xlsx", "zip",
			"webmanifest",
		},
		APIPrefixes: []string{"/api"},
	}
}

// IsAPI reports whether p lies in an API namespace ("/api" or "/api/...").
func (m Matcher) IsAPI(p string) bool {
	for _, prefix := range m.APIPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// Exempt reports whether p is a static or internal path that must be served
// as-is. API paths are not exempt; callers check IsAPI separately.
func (m Matcher) Exempt(p string) bool {
	if m.IsAPI(p) {
		return false
	}
	for _, exact := range m.Paths {
		if p == exact {
			return true
		}
	}
	for _, prefix := range m.Prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
	if ext == "" {
		return false
	}
	for _, e := range m.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// HasPrefix reports whether the first segment of p is a supported locale,
// compared exactly: "/en" and "/en/..." match, "/english" and "/EN" do not.
func (s Set) HasPrefix(p string) bool {
	_, ok := s.PrefixOf(p)
	return ok
}

// PrefixOf returns the locale carried by the first segment of p.
func (s Set) PrefixOf(p string) (Locale, bool) {
	if !strings.HasPrefix(p, "/") {
		return "", false
	}
	segment, _, _ := strings.Cut(p[1:], "/")
	return s.Lookup(segment)
}

// SwitchPath replaces the leading locale segment of p. Paths that do not start
// with from are prefixed with to instead.
func SwitchPath(p string, from, to Locale) string {
	prefix := "/" + string(from)
	if p == prefix {
		return "/" + string(to)
	}
	if rest, ok := strings.CutPrefix(p, prefix+"/"); ok {
		return "/" + string(to) + "/" + rest
	}
	return Prefix(to, p)
}

// Prefix prepends the locale segment to p. The root path maps to "/{locale}".
func Prefix(l Locale, p string) string {
	if p == "" || p == "/" {
		return "/" + string(l)
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "/" + string(l) + p
}

// Action is what the locale middleware does with a request.
type Action int

const (
	// PassThrough serves the request unchanged.
	PassThrough Action = iota
	// Redirect sends the client to Decision.Target.
	Redirect
)

// Decision is the outcome of Rewriter.Rewrite.
type Decision struct {
	Action Action
	// Locale is the locale the request is served in: the path prefix when
	// present, otherwise the negotiated one.
	Locale Locale
	// Target is the redirect location including the query string. Empty on pass-through.
	Target string
}

// Rewriter applies locale prefixes to request paths.
type Rewriter struct {
	Locales Set
	Matcher Matcher
}

// NewRewriter returns a Rewriter over the set using the default exemption rules.
func NewRewriter(locales Set) Rewriter {
	return Rewriter{Locales: locales, Matcher: DefaultMatcher()}
}

// Rewrite decides whether a request path needs a locale prefix. Prefixed,
// exempt and API paths pass through; anything else is redirected to
// "/{locale}{path}" with the query string preserved. Rewriting a rewritten
// path is a no-op.
func (rw Rewriter) Rewrite(p, rawQuery, acceptLanguage string) Decision {
	if l, ok := rw.Locales.PrefixOf(p); ok {
		return Decision{Action: PassThrough, Locale: l}
	}

	locale := rw.Locales.Negotiate(acceptLanguage)
	if rw.Matcher.IsAPI(p) || rw.Matcher.Exempt(p) {
		return Decision{Action: PassThrough, Locale: locale}
	}

	target := Prefix(locale, p)
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return Decision{Action: Redirect, Locale: locale, Target: target}
}
