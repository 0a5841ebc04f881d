// Package markup is the only place that knows how the source site structures
// its HTML. Every class name, element kind and path marker the crawler
// depends on is declared here; the rest of the code queries documents through
// these constants and helpers.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/okian/fightcard/internal/domain/model"
)

// Listing and navigation.
const (
	// EventPathMarker identifies links into event pages.
	EventPathMarker = "/event/"
	// AnchorSelector matches every link that carries an href.
	AnchorSelector = "a[href]"
	// PagerSelector is the region holding the pagination links.
	PagerSelector = "div.pager__nav"
	// NextLinkSelector and PreviousLinkSelector are looked up inside the pager.
	NextLinkSelector     = "a.next"
	PreviousLinkSelector = "a.previous"
)

// Event page.
const (
	// FightBlockMarker is matched as a substring of the class attribute, so
	// nested c-listing-fight__* wrappers are matched as blocks too; the
	// extractor relies on pair deduplication to collapse them.
	FightBlockMarker      = "c-listing-fight"
	FightBlockSelector    = `div[class*="` + FightBlockMarker + `"]`
	DivisionSelector      = ".c-listing-fight__class-text"
	CornerNameSelector    = ".c-listing-fight__corner-name"
	CornerRankSelector    = ".c-listing-fight__corner-rank"
	CornerCountrySelector = ".c-listing-fight__corner-country"
	OddsSelector          = "span.c-listing-fight__odds-amount"
	EventDateSelector     = "div.c-hero__headline-suffix"
)

// Corner indexes.
const (
	RedCorner  = 0
	BlueCorner = 1
)

// Text returns the whitespace-collapsed text of the first element in sel, or
// model.FieldDefault when sel is empty.
func Text(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return model.FieldDefault
	}
	return clean(sel.First().Text())
}

// TextAt returns the cleaned text of the i-th element in sel, or
// model.FieldDefault when there is no element at i.
func TextAt(sel *goquery.Selection, i int) string {
	if sel == nil || i < 0 || i >= sel.Length() {
		return model.FieldDefault
	}
	return clean(sel.Eq(i).Text())
}

// Href returns the trimmed href of the first element in sel.
func Href(sel *goquery.Selection) (string, bool) {
	if sel == nil || sel.Length() == 0 {
		return "", false
	}
	href, ok := sel.First().Attr("href")
	href = strings.TrimSpace(href)
	return href, ok && href != ""
}

// IsEventLink reports whether href points into an event page.
func IsEventLink(href string) bool {
	return strings.Contains(href, EventPathMarker)
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
