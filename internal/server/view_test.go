package server

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ribeirogab/portfolio/internal/dictionary"
	"github.com/ribeirogab/portfolio/internal/i18n"
)

func loadDictionary(t *testing.T, set i18n.Set, locale i18n.Locale) *dictionary.Dictionary {
	t.Helper()
	loader, err := dictionary.NewLoader(set, dictionary.Content())
	require.NoError(t, err)
	d, err := loader.Load(string(locale))
	require.NoError(t, err)
	return d
}

func TestRevealDelay(t *testing.T) {
	tests := []struct {
		n, idx int
		want   string
	}{
		{1, 0, "0.04s"},
		{5, 0, "0.20s"},
		{6, 0, "0.24s"},
		{6, 1, "0.29s"},
		{8, 2, "0.42s"},
		{10, 13, "1.05s"},
		{16, 0, "0.64s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RevealDelay(tt.n, tt.idx))
	}
}

func TestNewPage_Toggle(t *testing.T) {
	set := i18n.MustNewSet(i18n.PT, i18n.Supported()...)
	d := loadDictionary(t, set, i18n.EN)

	tests := []struct {
		path string
		want string
	}{
		{"/en", "/pt"},
		{"/en/about/me", "/pt/about/me"},
		{"/", "/pt"},
	}
	for _, tt := range tests {
		p := NewPage(d, i18n.EN, set, tt.path, PageOptions{SiteURL: "https://example.test"})
		assert.Equal(t, tt.want, p.Toggle.Href, tt.path)
		assert.Equal(t, i18n.PT, p.Toggle.Target)
		assert.Equal(t, "Português", p.Toggle.TargetName)
		assert.Equal(t, "Toggle language", p.Toggle.Label)
	}
}

func TestNewPage_Cards(t *testing.T) {
	set := i18n.MustNewSet(i18n.PT, i18n.Supported()...)
	d := loadDictionary(t, set, i18n.PT)

	p := NewPage(d, i18n.PT, set, "/pt", PageOptions{SiteURL: "https://example.test"})

	require.Len(t, p.Work, 4)
	assert.Equal(t, "Goomer", p.Work[0].Title)
	assert.Equal(t, "G", p.Work[0].Initial)
	assert.Equal(t, "ago de 2021 - o momento", p.Work[0].Period)
	assert.True(t, p.Work[0].Expandable())
	assert.Equal(t, "jul de 2020 - ago de 2021", p.Work[2].Period)

	require.Len(t, p.Education, 3)
	assert.False(t, p.Education[0].Expandable())
	assert.Equal(t, "0.32s", p.Education[0].Delay)

	assert.Empty(t, p.Projects)
	assert.Empty(t, p.Hackathons)
	assert.Empty(t, p.ResumeURL)
	assert.Equal(t, "/pt", p.HomeURL)
}

func TestNewPage_ProjectsAndHackathons(t *testing.T) {
	set := i18n.MustNewSet(i18n.PT, i18n.Supported()...)
	d := *loadDictionary(t, set, i18n.EN)
	d.Resume.Projects = []dictionary.Project{{
		Title:        "Portfolio",
		Href:         "https://example.test/portfolio",
		Dates:        "2024",
		Description:  "Bilingual resume site",
		Technologies: []string{"Go", "gin"},
		Links:        []dictionary.Link{{Type: "Source", Href: "https://github.com/example/portfolio", Icon: "github"}},
	}}
	d.Resume.Hackathons = []dictionary.Hackathon{{
		Title:       "Hack Night",
		Dates:       "March 2023",
		Location:    "São Paulo",
		Description: "Built a <b>bot</b>",
	}}

	p := NewPage(&d, i18n.EN, set, "/en", PageOptions{SiteURL: "https://example.test"})
	require.Len(t, p.Projects, 1)
	require.Len(t, p.Hackathons, 1)
	assert.Equal(t, "0.48s", p.Projects[0].Delay)
	assert.Equal(t, "0.56s", p.Hackathons[0].Delay)

	tmpl, err := parseTemplates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "page.html", p))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	project := doc.Find("#projects article.project")
	require.Equal(t, 1, project.Length())
	assert.Equal(t, "Portfolio", project.Find("h3").Text())
	assert.Equal(t, "https://example.test/portfolio", project.Find("h3 a").AttrOr("href", ""))
	assert.Contains(t, project.AttrOr("style", ""), "0.48s")
	assert.Equal(t, 2, project.Find(".technologies li").Length())
	assert.Equal(t, "https://github.com/example/portfolio", project.Find(".card-links a").AttrOr("href", ""))
	assert.Equal(t, 1, project.Find(".card-links svg").Length())

	hackathon := doc.Find("#hackathons .timeline li")
	require.Equal(t, 1, hackathon.Length())
	assert.Equal(t, "Hack Night", hackathon.Find("h3").Text())
	assert.Equal(t, "São Paulo", hackathon.Find(".hackathon-location").Text())
	assert.Equal(t, 0, hackathon.Find("b").Length())
	assert.Contains(t, hackathon.Text(), "Built a <b>bot</b>")
	assert.Equal(t, 0, hackathon.Find(".card-links").Length())
}

func TestNewPage_Meta(t *testing.T) {
	set := i18n.MustNewSet(i18n.EN, i18n.Supported()...)
	d := loadDictionary(t, set, i18n.PT)

	p := NewPage(d, i18n.PT, set, "/pt", PageOptions{SiteURL: "https://example.test"})

	assert.Equal(t, "pt-BR", p.HTMLLang)
	assert.Equal(t, "Gabriel Ribeiro - Engenheiro de Software", p.Meta.Title)
	assert.Equal(t, "pt_BR", p.Meta.OGLocale)
	assert.Equal(t, "https://example.test/pt", p.Meta.Canonical)
	assert.Equal(t, []Alternate{
		{HrefLang: "en-US", Href: "https://example.test/en"},
		{HrefLang: "pt-BR", Href: "https://example.test/pt"},
		{HrefLang: "x-default", Href: "https://example.test/en"},
	}, p.Meta.Alternates)
	assert.Contains(t, p.Meta.Keywords, "Desenvolvedor Backend, ")
}

func TestPersonJSONLD_EscapesMarkup(t *testing.T) {
	set := i18n.MustNewSet(i18n.EN, i18n.Supported()...)
	d := *loadDictionary(t, set, i18n.EN)
	d.Resume.Description = "</script><script>alert(1)</script>"

	out := string(personJSONLD(&d))
	assert.NotContains(t, out, "</script>")
	assert.Contains(t, out, `\u003c/script\u003e`)
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "É", initial("étec"))
	assert.Equal(t, "F", initial("  FIAP"))
	assert.Equal(t, "", initial(""))
}
