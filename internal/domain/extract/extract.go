// Package extract turns the markup of one event page into fight records.
package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/okian/fightcard/internal/domain/dedupe"
	"github.com/okian/fightcard/internal/domain/markup"
	"github.com/okian/fightcard/internal/domain/model"
	"github.com/okian/fightcard/pkg/logger"
	"github.com/okian/fightcard/pkg/metrics"
)

// minCorners is the number of named corners a block needs to be a fight.
const minCorners = 2

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for per-page summaries.
func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// Extractor parses event pages. It holds no per-page state and is safe to
// reuse across pages and goroutines.
type Extractor struct {
	logger logger.Logger
}

// New constructs an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{logger: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses r as HTML and returns its fights. It fails only when r
// cannot be read as a document.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) ([]model.Fight, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return e.ExtractDocument(ctx, doc), nil
}

// ExtractDocument returns the fights of doc in document order. Blocks with
// fewer than two named corners are skipped and never reach deduplication;
// a block whose unordered name pair was already seen on this page is dropped.
//
// The block selector also matches the wrapper divs inside a fight listing.
// Those nested matches are still read, but only outermost blocks count
// towards the malformed and duplicate tallies.
func (e *Extractor) ExtractDocument(ctx context.Context, doc *goquery.Document) []model.Fight {
	// The date belongs to the page, not to any block.
	eventDate := markup.Text(doc.Find(markup.EventDateSelector))

	seen := dedupe.NewInMemoryDeduper()
	fights := make([]model.Fight, 0)
	malformed, duplicates := 0, 0

	doc.Find(markup.FightBlockSelector).Each(func(_ int, block *goquery.Selection) {
		outer := block.ParentsFiltered(markup.FightBlockSelector).Length() == 0

		names := block.Find(markup.CornerNameSelector)
		if names.Length() < minCorners {
			if outer {
				malformed++
			}
			return
		}
		red := markup.TextAt(names, markup.RedCorner)
		blue := markup.TextAt(names, markup.BlueCorner)
		fight := buildFight(block, red, blue, eventDate)
		if !fight.Complete() {
			if outer {
				malformed++
			}
			return
		}

		if seen.SeenAndRecord(ctx, dedupe.PairKey(fight.Fighter1Name, fight.Fighter2Name)) {
			if outer {
				duplicates++
			}
			return
		}

		fights = append(fights, fight)
	})

	metrics.RecordFightsExtracted(len(fights))
	for i := 0; i < malformed; i++ {
		metrics.RecordBlockDropped(metrics.ReasonMalformed)
	}
	for i := 0; i < duplicates; i++ {
		metrics.RecordBlockDropped(metrics.ReasonDuplicate)
	}

	e.logger.Debug(ctx, "extracted fights",
		logger.Int("fights", len(fights)),
		logger.Int("malformed", malformed),
		logger.Int("duplicates", duplicates),
		logger.String("event_date", eventDate),
	)
	return fights
}

func buildFight(block *goquery.Selection, red, blue, eventDate string) model.Fight {
	ranks := block.Find(markup.CornerRankSelector)
	countries := block.Find(markup.CornerCountrySelector)
	odds := block.Find(markup.OddsSelector)

	return model.Fight{
		WeightDivision:  markup.Text(block.Find(markup.DivisionSelector)),
		Fighter1Name:    red,
		Fighter2Name:    blue,
		Fighter1Rank:    markup.TextAt(ranks, markup.RedCorner),
		Fighter2Rank:    markup.TextAt(ranks, markup.BlueCorner),
		Fighter1Country: markup.TextAt(countries, markup.RedCorner),
		Fighter2Country: markup.TextAt(countries, markup.BlueCorner),
		Fighter1Odds:    markup.TextAt(odds, markup.RedCorner),
		Fighter2Odds:    markup.TextAt(odds, markup.BlueCorner),
		EventDate:       eventDate,
	}
}
