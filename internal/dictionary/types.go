// Package dictionary provides the localized content bundles rendered by the site.
//
// Every locale decodes into the same Dictionary type, so the Go type is the
// schema all bundles share. Loading additionally rejects unknown keys, missing
// required values and key structures that differ between locales.
package dictionary

// Dictionary is the full set of strings and resume content for one locale.
type Dictionary struct {
	Resume Resume `yaml:"resume" json:"resume"`
	UI     UI     `yaml:"ui" json:"ui"`
}

// Resume holds the facts shown on the page.
type Resume struct {
	Name         string      `yaml:"name" json:"name" validate:"required"`
	Initials     string      `yaml:"initials" json:"initials" validate:"required,max=3"`
	URL          string      `yaml:"url" json:"url" validate:"required,url"`
	Location     string      `yaml:"location" json:"location" validate:"required"`
	LocationLink string      `yaml:"location_link" json:"location_link" validate:"omitempty,url"`
	Description  string      `yaml:"description" json:"description" validate:"required"`
	Summary      string      `yaml:"summary" json:"summary" validate:"required"`
	AvatarURL    string      `yaml:"avatar_url" json:"avatar_url"`
	Skills       []string    `yaml:"skills" json:"skills" validate:"min=1,dive,required"`
	Navbar       []NavItem   `yaml:"navbar" json:"navbar" validate:"dive"`
	Contact      Contact     `yaml:"contact" json:"contact"`
	Work         []Work      `yaml:"work" json:"work" validate:"dive"`
	Education    []Education `yaml:"education" json:"education" validate:"dive"`
	Projects     []Project   `yaml:"projects" json:"projects" validate:"dive"`
	Hackathons   []Hackathon `yaml:"hackathons" json:"hackathons" validate:"dive"`
}

// NavItem is an entry of the bottom navigation dock.
type NavItem struct {
	Href  string `yaml:"href" json:"href" validate:"required"`
	Icon  string `yaml:"icon" json:"icon" validate:"required"`
	Label string `yaml:"label" json:"label" validate:"required"`
}

// Contact holds the ways to reach the site owner.
type Contact struct {
	Email  string   `yaml:"email" json:"email" validate:"required,email"`
	Tel    string   `yaml:"tel" json:"tel"`
	Social []Social `yaml:"social" json:"social" validate:"dive"`
}

// Social is a profile link. Navbar links also show up in the dock.
type Social struct {
	Name   string `yaml:"name" json:"name" validate:"required"`
	URL    string `yaml:"url" json:"url" validate:"required"`
	Icon   string `yaml:"icon" json:"icon" validate:"required"`
	Navbar bool   `yaml:"navbar" json:"navbar"`
}

// Link is an outbound link badge on a card.
type Link struct {
	Type string `yaml:"type" json:"type" validate:"required"`
	Href string `yaml:"href" json:"href" validate:"required,url"`
	Icon string `yaml:"icon" json:"icon"`
}

// Work is one position held. An empty End means the position is current.
type Work struct {
	Company     string   `yaml:"company" json:"company" validate:"required"`
	Href        string   `yaml:"href" json:"href" validate:"omitempty,url"`
	Badges      []string `yaml:"badges" json:"badges"`
	Location    string   `yaml:"location" json:"location" validate:"required"`
	Title       string   `yaml:"title" json:"title" validate:"required"`
	LogoURL     string   `yaml:"logo_url" json:"logo_url"`
	Start       string   `yaml:"start" json:"start" validate:"required"`
	End         string   `yaml:"end" json:"end"`
	Links       []Link   `yaml:"links" json:"links" validate:"dive"`
	Description []string `yaml:"description" json:"description" validate:"min=1,dive,required"`
}

// Education is one school attended. An empty End means it is in progress.
type Education struct {
	School  string `yaml:"school" json:"school" validate:"required"`
	Href    string `yaml:"href" json:"href" validate:"omitempty,url"`
	Degree  string `yaml:"degree" json:"degree" validate:"required"`
	LogoURL string `yaml:"logo_url" json:"logo_url"`
	Start   string `yaml:"start" json:"start" validate:"required"`
	End     string `yaml:"end" json:"end"`
}

// Project is a showcased side project.
type Project struct {
	Title        string   `yaml:"title" json:"title" validate:"required"`
	Href         string   `yaml:"href" json:"href" validate:"omitempty,url"`
	Dates        string   `yaml:"dates" json:"dates" validate:"required"`
	Active       bool     `yaml:"active" json:"active"`
	Description  string   `yaml:"description" json:"description" validate:"required"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	Links        []Link   `yaml:"links" json:"links" validate:"dive"`
	Image        string   `yaml:"image" json:"image"`
	Video        string   `yaml:"video" json:"video"`
}

// Hackathon is a hackathon participation.
type Hackathon struct {
	Title       string `yaml:"title" json:"title" validate:"required"`
	Dates       string `yaml:"dates" json:"dates" validate:"required"`
	Location    string `yaml:"location" json:"location" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
	Image       string `yaml:"image" json:"image"`
	MLH         string `yaml:"mlh" json:"mlh"`
	Win         string `yaml:"win" json:"win"`
	Links       []Link `yaml:"links" json:"links" validate:"dive"`
}

// UI holds interface strings.
type UI struct {
	Metadata   Metadata       `yaml:"metadata" json:"metadata"`
	Keywords   []string       `yaml:"keywords" json:"keywords" validate:"min=1,dive,required"`
	Navigation Navigation     `yaml:"navigation" json:"navigation"`
	Hero       Hero           `yaml:"hero" json:"hero"`
	About      Section        `yaml:"about" json:"about"`
	Work       Section        `yaml:"work" json:"work"`
	Education  Section        `yaml:"education" json:"education"`
	Skills     Section        `yaml:"skills" json:"skills"`
	Projects   SectionHeader  `yaml:"projects" json:"projects"`
	Hackathons SectionHeader  `yaml:"hackathons" json:"hackathons"`
	Contact    ContactStrings `yaml:"contact" json:"contact"`
	Common     Common         `yaml:"common" json:"common"`
	Person     PersonStrings  `yaml:"person" json:"person"`
}

// Metadata feeds the <head> of the page.
type Metadata struct {
	Title              string `yaml:"title" json:"title" validate:"required"`
	Description        string `yaml:"description" json:"description" validate:"required"`
	ApplicationName    string `yaml:"application_name" json:"application_name" validate:"required"`
	OGTitle            string `yaml:"og_title" json:"og_title" validate:"required"`
	OGDescription      string `yaml:"og_description" json:"og_description" validate:"required"`
	TwitterTitle       string `yaml:"twitter_title" json:"twitter_title" validate:"required"`
	TwitterDescription string `yaml:"twitter_description" json:"twitter_description" validate:"required"`
	TwitterHandle      string `yaml:"twitter_handle" json:"twitter_handle"`
}

type Navigation struct {
	Home string `yaml:"home" json:"home" validate:"required"`
}

type Hero struct {
	Greeting    string `yaml:"greeting" json:"greeting" validate:"required"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
}

type Section struct {
	Title string `yaml:"title" json:"title" validate:"required"`
}

type SectionHeader struct {
	Title       string `yaml:"title" json:"title" validate:"required"`
	Subtitle    string `yaml:"subtitle" json:"subtitle" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
}

type ContactStrings struct {
	Title       string         `yaml:"title" json:"title" validate:"required"`
	Description string         `yaml:"description" json:"description" validate:"required"`
	Actions     ContactActions `yaml:"actions" json:"actions"`
}

type ContactActions struct {
	Email    string `yaml:"email" json:"email" validate:"required"`
	Download string `yaml:"download" json:"download" validate:"required"`
}

// Common holds strings shared by several components.
type Common struct {
	ViewMore       string `yaml:"view_more" json:"view_more" validate:"required"`
	ViewLess       string `yaml:"view_less" json:"view_less" validate:"required"`
	Present        string `yaml:"present" json:"present" validate:"required"`
	Location       string `yaml:"location" json:"location" validate:"required"`
	ToggleLanguage string `yaml:"toggle_language" json:"toggle_language" validate:"required"`
	ToggleTheme    string `yaml:"toggle_theme" json:"toggle_theme" validate:"required"`
	NotFoundTitle  string `yaml:"not_found_title" json:"not_found_title" validate:"required"`
	NotFoundBody   string `yaml:"not_found_body" json:"not_found_body" validate:"required"`
	BackHome       string `yaml:"back_home" json:"back_home" validate:"required"`
}

// PersonStrings feeds the JSON-LD Person block.
type PersonStrings struct {
	JobTitle       string   `yaml:"job_title" json:"job_title" validate:"required"`
	WorksFor       string   `yaml:"works_for" json:"works_for" validate:"required"`
	KnowsAbout     []string `yaml:"knows_about" json:"knows_about" validate:"min=1,dive,required"`
	Classification string   `yaml:"classification" json:"classification" validate:"required"`
}

// Period formats a date range, falling back to present for open-ended ranges.
func Period(start, end, present string) string {
	if end == "" {
		end = present
	}
	return start + " - " + end
}
