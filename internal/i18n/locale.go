// Package i18n resolves which locale a request is served in: Accept-Language
// negotiation, locale path prefixes and the redirect decision for unprefixed paths.
package i18n

import (
	"fmt"
	"strings"
)

// Locale identifies a language/content variant of the site.
type Locale string

const (
	EN Locale = "en"
	PT Locale = "pt"
)

// Supported returns every locale the site ships content for, in display order.
func Supported() []Locale {
	return []Locale{EN, PT}
}

// HTMLLang returns the value used for the <html lang> attribute and hreflang links.
func (l Locale) HTMLLang() string {
	switch l {
	case PT:
		return "pt-BR"
	default:
		return "en-US"
	}
}

// OGLocale returns the OpenGraph locale (underscore form).
func (l Locale) OGLocale() string {
	return strings.ReplaceAll(l.HTMLLang(), "-", "_")
}

// Name returns the display name of the locale in its own language.
func (l Locale) Name() string {
	switch l {
	case PT:
		return "Português"
	default:
		return "English"
	}
}

// Flag returns the emoji shown on the language toggle.
func (l Locale) Flag() string {
	switch l {
	case PT:
		return "🇧🇷"
	default:
		return "🇺🇸"
	}
}

// Set is the closed set of locales the site serves plus its default.
// The zero value is not usable; build one with NewSet.
type Set struct {
	locales []Locale
	def     Locale
}

// NewSet builds a Set from the supported locales and the default.
// The default must be one of the supported locales.
func NewSet(def Locale, locales ...Locale) (Set, error) {
	if len(locales) == 0 {
		return Set{}, fmt.Errorf("locale set is empty")
	}
	seen := make(map[Locale]bool, len(locales))
	for _, l := range locales {
		if l == "" {
			return Set{}, fmt.Errorf("locale set contains an empty locale")
		}
		if seen[l] {
			return Set{}, fmt.Errorf("locale %q listed twice", l)
		}
		seen[l] = true
	}
	if !seen[def] {
		return Set{}, fmt.Errorf("default locale %q is not one of %v", def, locales)
	}
	return Set{locales: append([]Locale(nil), locales...), def: def}, nil
}

// MustNewSet is like NewSet but panics on error. Intended for tests and fixed tables.
func MustNewSet(def Locale, locales ...Locale) Set {
	s, err := NewSet(def, locales...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the fallback locale.
func (s Set) Default() Locale {
	return s.def
}

// Locales returns a copy of the supported locales.
func (s Set) Locales() []Locale {
	return append([]Locale(nil), s.locales...)
}

// Lookup returns the supported locale whose key equals v exactly.
func (s Set) Lookup(v string) (Locale, bool) {
	for _, l := range s.locales {
		if string(l) == v {
			return l, true
		}
	}
	return "", false
}

// Contains reports whether v is a supported locale key.
func (s Set) Contains(v string) bool {
	_, ok := s.Lookup(v)
	return ok
}

// Other returns the locale the language toggle switches to: the next locale
// in the set, wrapping around. With {en, pt} this swaps the two.
func (s Set) Other(l Locale) Locale {
	for i, cur := range s.locales {
		if cur == l {
			return s.locales[(i+1)%len(s.locales)]
		}
	}
	return s.def
}
