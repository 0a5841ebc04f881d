// Package model contains domain models passed between layers.
package model

import (
	"net/url"
	"strings"
)

// FieldDefault is the value of every optional fight field that is absent
// from the source markup. Fields are never null or omitted.
const FieldDefault = ""

// Fight is a single matchup extracted from an event page.
// Both fighter names are non-empty for every Fight produced by the extractor.
type Fight struct {
	WeightDivision  string `json:"weight_division"`
	Fighter1Name    string `json:"fighter1_name"`
	Fighter2Name    string `json:"fighter2_name"`
	Fighter1Rank    string `json:"fighter1_rank"`
	Fighter2Rank    string `json:"fighter2_rank"`
	Fighter1Country string `json:"fighter1_country"`
	Fighter2Country string `json:"fighter2_country"`
	Fighter1Odds    string `json:"fighter1_odds"`
	Fighter2Odds    string `json:"fighter2_odds"`
	EventDate       string `json:"event_date"`
}

// Complete reports whether both corners are named.
func (f Fight) Complete() bool {
	return f.Fighter1Name != "" && f.Fighter2Name != ""
}

// EventPage is one crawled event and the fights found on it.
type EventPage struct {
	Slug   string
	URL    string
	Fights []Fight
}

// Catalog maps an event slug to its fights in document order.
type Catalog map[string][]Fight

// Add stores the page when it carries at least one fight. It reports whether
// the page was stored.
func (c Catalog) Add(p EventPage) bool {
	if len(p.Fights) == 0 || p.Slug == "" {
		return false
	}
	c[p.Slug] = p.Fights
	return true
}

// Fights returns the total number of fights across all events.
func (c Catalog) Fights() int {
	n := 0
	for _, fights := range c {
		n += len(fights)
	}
	return n
}

// SlugFromURL returns the trailing path segment of raw followed by its query
// and fragment, so pages that differ only by query get distinct slugs. A
// trailing slash on the path is ignored.
func SlugFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return lastSegment(raw)
	}
	slug := lastSegment(u.Path)
	if u.RawQuery != "" {
		slug += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		slug += "#" + u.EscapedFragment()
	}
	return slug
}

func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
