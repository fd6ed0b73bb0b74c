// Package sitemap assembles, writes and validates sitemap-protocol XML for
// the Scene Still site.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/scenestill/internal/people"
)

// Namespace is the sitemap protocol 0.9 XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// DateLayout is the lastmod format used for generated entries.
const DateLayout = "2006-01-02"

// MaxURLs is the protocol limit for one sitemap file.
const MaxURLs = 50000

// ChangeFreq is how often a page is expected to change.
type ChangeFreq string

const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// Valid reports whether f is one of the protocol values.
func (f ChangeFreq) Valid() bool {
	switch f {
	case ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
		ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return true
	}
	return false
}

// Priority is a crawl priority in [0.0, 1.0], written with one decimal.
type Priority float64

// MarshalText renders 1 as "1.0" and 0.9 as "0.9".
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%.1f", float64(p))), nil
}

// Entry is one <url> element.
type Entry struct {
	XMLName    xml.Name   `xml:"url"`
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod"`
	ChangeFreq ChangeFreq `xml:"changefreq"`
	Priority   Priority   `xml:"priority"`
}

// Page is a fixed site page relative to the base URL.
type Page struct {
	Path       string
	ChangeFreq ChangeFreq
	Priority   Priority
}

// StaticPages are always listed first.
func StaticPages() []Page {
	return []Page{
		{Path: "/", ChangeFreq: ChangeFreqWeekly, Priority: 1.0},
		{Path: "/about", ChangeFreq: ChangeFreqMonthly, Priority: 0.8},
		{Path: "/color_extractor", ChangeFreq: ChangeFreqMonthly, Priority: 0.8},
		{Path: "/cast_crew", ChangeFreq: ChangeFreqWeekly, Priority: 0.7},
	}
}

// Per-resource page settings.
const (
	FilmChangeFreq   = ChangeFreqMonthly
	FilmPriority     = Priority(0.9)
	PersonChangeFreq = ChangeFreqMonthly
	PersonPriority   = Priority(0.7)
)

// MovieURL returns {base}/film.html?id={id}.
func MovieURL(baseURL, movieID string) string {
	return fmt.Sprintf("%s/film.html?id=%s", baseURL, movieID)
}

// PersonURL returns {base}/person.html?name={name}&role={role} with both
// values percent-encoded (space becomes %20).
func PersonURL(baseURL, name string, role people.Role) string {
	return fmt.Sprintf("%s/person.html?name=%s&role=%s", baseURL, Quote(name), Quote(string(role)))
}

// Quote percent-encodes s leaving only unreserved characters and '/'.
func Quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// Sitemap is the assembled document, grouped by section.
type Sitemap struct {
	Static []Entry
	Films  []Entry
	People []Entry
}

// Len is 4 + films + people.
func (s *Sitemap) Len() int {
	return len(s.Static) + len(s.Films) + len(s.People)
}

// Build assembles static pages, then one entry per movie in input order,
// then one entry per person in registry order. Every lastmod is runDate.
func Build(baseURL string, runDate time.Time, movieIDs []string, persons []people.Person) *Sitemap {
	lastmod := runDate.Format(DateLayout)
	sm := &Sitemap{}

	for _, page := range StaticPages() {
		sm.Static = append(sm.Static, Entry{
			Loc:        baseURL + page.Path,
			LastMod:    lastmod,
			ChangeFreq: page.ChangeFreq,
			Priority:   page.Priority,
		})
	}

	for _, id := range movieIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		sm.Films = append(sm.Films, Entry{
			Loc:        MovieURL(baseURL, id),
			LastMod:    lastmod,
			ChangeFreq: FilmChangeFreq,
			Priority:   FilmPriority,
		})
	}

	for _, p := range persons {
		sm.People = append(sm.People, Entry{
			Loc:        PersonURL(baseURL, p.Name, p.Role),
			LastMod:    lastmod,
			ChangeFreq: PersonChangeFreq,
			Priority:   PersonPriority,
		})
	}

	return sm
}
