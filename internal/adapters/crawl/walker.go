package crawl

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/okian/fightcard/internal/domain/markup"
	"github.com/okian/fightcard/internal/domain/model"
	"github.com/okian/fightcard/pkg/logger"
	"github.com/okian/fightcard/pkg/metrics"
)

// Walker follows the listing's next links from a seed URL.
type Walker struct {
	fetcher  Fetcher
	resolver resolver
	delay    time.Duration
	logger   logger.Logger
}

// NewWalker constructs a Walker.
func NewWalker(f Fetcher, opts ...Option) *Walker {
	o := newOptions(opts)
	return &Walker{
		fetcher:  f,
		resolver: newResolver(o.baseURL),
		delay:    o.delay,
		logger:   o.logger,
	}
}

// Walk returns every URL discovered from seed in discovery order: each
// fetched page plus the next and previous links of its pager that were not
// yet fetched. Only next links are followed. The walk ends on a missing
// pager, a missing next link, a next link already fetched, a fetch failure
// or a cancelled ctx; none of these is an error.
func (w *Walker) Walk(ctx context.Context, seed string) []string {
	frontier := model.NewFrontier()
	if seed == "" {
		return frontier.Discovered()
	}

	current := seed
	for !frontier.Visited(current) {
		page, err := w.fetcher.Fetch(ctx, metrics.KindListing, current)
		if err != nil {
			w.logger.Warn(ctx, "walk stopped on fetch failure",
				logger.String("url", current),
				logger.Int("discovered", len(frontier.Discovered())),
				logger.Error(err),
			)
			break
		}
		frontier.Visit(current)

		next, follow := w.step(ctx, frontier, current, page.Body)
		if !follow {
			break
		}
		if err := Wait(ctx, w.delay); err != nil {
			break
		}
		if next == "" {
			// Pager absent: the loop guard stops the walk.
			continue
		}
		current = next
	}

	urls := frontier.Discovered()
	metrics.UpdateWalkSize(len(urls))
	w.logger.Info(ctx, "walk finished",
		logger.Int("visited", frontier.VisitedCount()),
		logger.Int("discovered", len(urls)),
	)
	return urls
}

// step reads the pager of one fetched page, records its neighbours and
// decides whether the walk continues. follow is false when the walk must stop
// right away; an empty next with follow true means the page had no pager.
func (w *Walker) step(ctx context.Context, frontier *model.Frontier, current string, body []byte) (next string, follow bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		w.logger.Warn(ctx, "listing page unreadable", logger.String("url", current), logger.Error(err))
		return "", false
	}

	pager := doc.Find(markup.PagerSelector).First()
	if pager.Length() == 0 {
		w.logger.Debug(ctx, "no pager", logger.String("url", current))
		return "", true
	}

	nextLink := pager.Find(markup.NextLinkSelector)
	prevLink := pager.Find(markup.PreviousLinkSelector)
	for _, link := range []*goquery.Selection{nextLink, prevLink} {
		href, ok := markup.Href(link)
		if !ok {
			continue
		}
		if u := w.resolver.resolve(current, href); !frontier.Visited(u) {
			frontier.Discover(u)
		}
	}

	nextHref, hasNext := markup.Href(nextLink)
	if hasNext {
		next = w.resolver.resolve(current, nextHref)
	}
	if !hasNext || frontier.Visited(next) {
		return "", false
	}
	return next, true
}
