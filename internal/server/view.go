package server

import (
	"encoding/json"
	"html/template"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ribeirogab/portfolio/internal/dictionary"
	"github.com/ribeirogab/portfolio/internal/i18n"
)

// Reveal animation timing: sections fade in one step apart, items inside a
// section a smaller step apart.
const (
	revealStep     = 0.04
	revealItemStep = 0.05
)

// Section order drives the reveal delay of each block.
const (
	stepHero       = 1
	stepAbout      = 3
	stepSummary    = 4
	stepWorkTitle  = 5
	stepWork       = 6
	stepEduTitle   = 7
	stepEducation  = 8
	stepSkillTitle = 9
	stepSkills     = 10
	stepProjTitle  = 11
	stepProjects   = 12
	stepHackTitle  = 13
	stepHackathons = 14
	stepContact    = 16
)

// sameAsNetworks are the social profiles listed in the structured data.
var sameAsNetworks = []string{"GitHub", "LinkedIn", "X"}

// RevealDelay returns the CSS animation delay of item idx in the block revealed at step n.
func RevealDelay(n, idx int) string {
	d := revealStep*float64(n) + revealItemStep*float64(idx)
	return strconv.FormatFloat(d, 'f', 2, 64) + "s"
}

// PageOptions carries the request-independent inputs of a page.
type PageOptions struct {
	SiteURL   string // absolute, without trailing slash
	ResumeURL string // empty when no PDF is published for the locale
}

// Page is the view model rendered by the page and not-found templates.
type Page struct {
	Locale     i18n.Locale
	HTMLLang   string
	Dict       *dictionary.Dictionary
	Meta       Meta
	Toggle     Toggle
	Dock       []DockItem
	Reveal     Reveal
	Work       []Card
	Education  []Card
	Skills     []Skill
	Projects   []ProjectCard
	Hackathons []HackathonCard
	ResumeURL  string
	HomeURL    string
	JSONLD     template.JS
}

// Meta feeds the document head.
type Meta struct {
	Title              string
	Description        string
	Keywords           string
	ApplicationName    string
	Author             string
	Canonical          string
	OGLocale           string
	OGTitle            string
	OGDescription      string
	TwitterTitle       string
	TwitterDescription string
	TwitterHandle      string
	Classification     string
	Robots             string
	Alternates         []Alternate
}

// Alternate is an hreflang link to the same page in another locale.
type Alternate struct {
	HrefLang string
	Href     string
}

// Toggle is the language switch. It always points at the other locale.
type Toggle struct {
	Label      string
	Href       string
	Target     i18n.Locale
	TargetName string
	Flag       string
}

// DockItem is an icon link in the navigation dock.
type DockItem struct {
	Href     string
	Icon     string
	Label    string
	External bool
}

// Reveal holds the delays of the section headers.
type Reveal struct {
	Hero, About, Summary, WorkTitle, EduTitle, SkillTitle, ProjTitle, HackTitle, Contact string
}

// Card is a resume entry (work or education).
type Card struct {
	Title       string
	Subtitle    string
	Href        string
	LogoURL     string
	Initial     string
	Period      string
	Location    string
	Badges      []string
	Links       []dictionary.Link
	Description []string
	Delay       string

	// ViewMore and ViewLess label the closed and open states of an
	// expandable card.
	ViewMore, ViewLess string
}

// Expandable reports whether the card has a description to reveal.
func (c Card) Expandable() bool {
	return len(c.Description) > 0
}

// Skill is a skill badge.
type Skill struct {
	Name  string
	Delay string
}

type ProjectCard struct {
	dictionary.Project
	Delay string
}

type HackathonCard struct {
	dictionary.Hackathon
	Delay string
}

// NewPage builds the view model for a locale. path is the request path and
// only affects the language toggle target.
func NewPage(d *dictionary.Dictionary, locale i18n.Locale, set i18n.Set, path string, opts PageOptions) Page {
	other := set.Other(locale)
	r := d.Resume
	ui := d.UI

	p := Page{
		Locale:    locale,
		HTMLLang:  locale.HTMLLang(),
		Dict:      d,
		Meta:      newMeta(d, locale, set, opts.SiteURL),
		ResumeURL: opts.ResumeURL,
		HomeURL:   i18n.Prefix(locale, "/"),
		Toggle: Toggle{
			Label:      ui.Common.ToggleLanguage,
			Href:       i18n.SwitchPath(path, locale, other),
			Target:     other,
			TargetName: other.Name(),
			Flag:       other.Flag(),
		},
		Reveal: Reveal{
			Hero:       RevealDelay(stepHero, 0),
			About:      RevealDelay(stepAbout, 0),
			Summary:    RevealDelay(stepSummary, 0),
			WorkTitle:  RevealDelay(stepWorkTitle, 0),
			EduTitle:   RevealDelay(stepEduTitle, 0),
			SkillTitle: RevealDelay(stepSkillTitle, 0),
			ProjTitle:  RevealDelay(stepProjTitle, 0),
			HackTitle:  RevealDelay(stepHackTitle, 0),
			Contact:    RevealDelay(stepContact, 0),
		},
	}

	p.Dock = newDock(r, locale)

	for i, w := range r.Work {
		p.Work = append(p.Work, Card{
			Title:       w.Company,
			Subtitle:    w.Title,
			Href:        w.Href,
			LogoURL:     w.LogoURL,
			Initial:     initial(w.Company),
			Period:      dictionary.Period(w.Start, w.End, ui.Common.Present),
			Location:    w.Location,
			Badges:      w.Badges,
			Links:       w.Links,
			Description: w.Description,
			Delay:       RevealDelay(stepWork, i),
			ViewMore:    ui.Common.ViewMore,
			ViewLess:    ui.Common.ViewLess,
		})
	}

	for i, e := range r.Education {
		p.Education = append(p.Education, Card{
			Title:    e.School,
			Subtitle: e.Degree,
			Href:     e.Href,
			LogoURL:  e.LogoURL,
			Initial:  initial(e.School),
			Period:   dictionary.Period(e.Start, e.End, ui.Common.Present),
			Delay:    RevealDelay(stepEducation, i),
		})
	}

	for i, s := range r.Skills {
		p.Skills = append(p.Skills, Skill{Name: s, Delay: RevealDelay(stepSkills, i)})
	}

	for i, pr := range r.Projects {
		p.Projects = append(p.Projects, ProjectCard{Project: pr, Delay: RevealDelay(stepProjects, i)})
	}

	for i, h := range r.Hackathons {
		p.Hackathons = append(p.Hackathons, HackathonCard{Hackathon: h, Delay: RevealDelay(stepHackathons, i)})
	}

	p.JSONLD = personJSONLD(d)
	return p
}

func newMeta(d *dictionary.Dictionary, locale i18n.Locale, set i18n.Set, siteURL string) Meta {
	m := d.UI.Metadata
	name := d.Resume.Name

	meta := Meta{
		Title:              name + " - " + m.Title,
		Description:        m.Description,
		Keywords:           strings.Join(d.UI.Keywords, ", "),
		ApplicationName:    m.ApplicationName,
		Author:             name,
		Canonical:          siteURL + i18n.Prefix(locale, "/"),
		OGLocale:           locale.OGLocale(),
		OGTitle:            m.OGTitle,
		OGDescription:      m.OGDescription,
		TwitterTitle:       m.TwitterTitle,
		TwitterDescription: m.TwitterDescription,
		TwitterHandle:      m.TwitterHandle,
		Classification:     d.UI.Person.Classification,
		Robots:             "index, follow",
	}

	for _, l := range set.Locales() {
		meta.Alternates = append(meta.Alternates, Alternate{
			HrefLang: l.HTMLLang(),
			Href:     siteURL + i18n.Prefix(l, "/"),
		})
	}
	meta.Alternates = append(meta.Alternates, Alternate{
		HrefLang: "x-default",
		Href:     siteURL + i18n.Prefix(set.Default(), "/"),
	})

	return meta
}

func newDock(r dictionary.Resume, locale i18n.Locale) []DockItem {
	var items []DockItem
	for _, n := range r.Navbar {
		href := n.Href
		if strings.HasPrefix(href, "/") {
			href = i18n.Prefix(locale, href)
		}
		items = append(items, DockItem{Href: href, Icon: n.Icon, Label: n.Label})
	}
	for _, s := range r.Contact.Social {
		if !s.Navbar {
			continue
		}
		items = append(items, DockItem{Href: s.URL, Icon: s.Icon, Label: s.Name, External: true})
	}
	return items
}

type jsonLDOrganization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type jsonLDContactPoint struct {
	Type        string `json:"@type"`
	Email       string `json:"email"`
	ContactType string `json:"contactType"`
}

type jsonLDPerson struct {
	Context      string             `json:"@context"`
	Type         string             `json:"@type"`
	Name         string             `json:"name"`
	URL          string             `json:"url"`
	Description  string             `json:"description"`
	JobTitle     string             `json:"jobTitle"`
	WorksFor     jsonLDOrganization `json:"worksFor"`
	KnowsAbout   []string           `json:"knowsAbout"`
	SameAs       []string           `json:"sameAs"`
	ContactPoint jsonLDContactPoint `json:"contactPoint"`
}

// personJSONLD renders the schema.org Person block. encoding/json escapes
// <, > and &, so the output is safe inside a script element.
func personJSONLD(d *dictionary.Dictionary) template.JS {
	r := d.Resume
	person := jsonLDPerson{
		Context:     "https://schema.org",
		Type:        "Person",
		Name:        r.Name,
		URL:         r.URL,
		Description: r.Description,
		JobTitle:    d.UI.Person.JobTitle,
		WorksFor:    jsonLDOrganization{Type: "Organization", Name: d.UI.Person.WorksFor},
		KnowsAbout:  d.UI.Person.KnowsAbout,
		SameAs:      []string{},
		ContactPoint: jsonLDContactPoint{
			Type:        "ContactPoint",
			Email:       r.Contact.Email,
			ContactType: "professional",
		},
	}

	for _, network := range sameAsNetworks {
		for _, s := range r.Contact.Social {
			if s.Name == network && s.URL != "" {
				person.SameAs = append(person.SameAs, s.URL)
			}
		}
	}

	out, err := json.Marshal(person)
	if err != nil {
		// Only strings and slices of strings; cannot fail.
		panic(err)
	}
	return template.JS(out)
}

// initial returns the upper-cased first letter, shown when an entry has no logo.
func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
