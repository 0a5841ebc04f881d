package crawl

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/okian/fightcard/internal/domain/markup"
	"github.com/okian/fightcard/pkg/logger"
	"github.com/okian/fightcard/pkg/metrics"
)

// Locator finds the starting URL of a crawl on the landing page.
type Locator struct {
	fetcher  Fetcher
	resolver resolver
	logger   logger.Logger
}

// NewLocator constructs a Locator. Only WithBaseURL and WithLogger apply.
func NewLocator(f Fetcher, opts ...Option) *Locator {
	o := newOptions(opts)
	return &Locator{
		fetcher:  f,
		resolver: newResolver(o.baseURL),
		logger:   o.logger,
	}
}

// Seed returns the first event link on landingURL in document order. Any
// failure, including an unreachable page, reports ("", false).
func (l *Locator) Seed(ctx context.Context, landingURL string) (string, bool) {
	page, err := l.fetcher.Fetch(ctx, metrics.KindLanding, landingURL)
	if err != nil {
		l.logger.Warn(ctx, "landing page fetch failed",
			logger.String("url", landingURL),
			logger.Error(err),
		)
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		l.logger.Warn(ctx, "landing page unreadable", logger.String("url", landingURL), logger.Error(err))
		return "", false
	}

	var seed string
	doc.Find(markup.AnchorSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := markup.Href(a)
		if !ok || !markup.IsEventLink(href) {
			return true
		}
		seed = l.resolver.resolve(landingURL, href)
		return false
	})

	if seed == "" {
		l.logger.Warn(ctx, "no event link on landing page", logger.String("url", landingURL))
		return "", false
	}
	l.logger.Debug(ctx, "seed located", logger.String("seed", seed))
	return seed, true
}
