package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Negotiate picks the supported locale that best satisfies an Accept-Language
// header. Tags are tried by descending quality, ties keeping header order; a
// tag matches a locale exactly or through its primary language subtag
// (pt-BR -> pt). Malformed entries are skipped on their own. An empty or
// unmatched header yields the default locale.
func (s Set) Negotiate(acceptLanguage string) Locale {
	for _, tag := range parseAcceptLanguage(acceptLanguage) {
		if l, ok := s.match(tag); ok {
			return l
		}
	}
	return s.def
}

// parseAcceptLanguage returns the acceptable tags of a header ordered by
// quality. Each entry is parsed separately so one bad entry does not discard
// the rest; entries with q=0 ("not acceptable") are dropped.
func parseAcceptLanguage(header string) []language.Tag {
	type weighted struct {
		tag language.Tag
		q   float32
	}

	var entries []weighted
	for _, entry := range strings.Split(header, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tags, weights, err := language.ParseAcceptLanguage(entry)
		if err != nil || len(tags) != 1 || weights[0] <= 0 {
			continue
		}
		entries = append(entries, weighted{tag: tags[0], q: weights[0]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].q > entries[j].q
	})

	tags := make([]language.Tag, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	return tags
}

func (s Set) match(tag language.Tag) (Locale, bool) {
	if tag == language.Und {
		return "", false
	}
	if l, ok := s.Lookup(strings.ToLower(tag.String())); ok {
		return l, true
	}

	// Base guesses a language for tags like und-BR; only take it when it was stated.
	base, confidence := tag.Base()
	if confidence != language.Exact {
		return "", false
	}
	return s.Lookup(base.String())
}
