// Package crawl finds the first upcoming event on the landing page and walks
// the paginated listing from there.
package crawl

import (
	"context"
	"time"

	"github.com/okian/fightcard/internal/adapters/fetch"
	"github.com/okian/fightcard/pkg/logger"
)

// DefaultDelay is the pause after every successful page fetch.
const DefaultDelay = time.Second

// Fetcher retrieves one page.
type Fetcher interface {
	Fetch(ctx context.Context, kind, rawURL string) (*fetch.Page, error)
}

type options struct {
	baseURL string
	delay   time.Duration
	logger  logger.Logger
}

// Option configures a Locator or a Walker.
type Option func(*options)

// WithBaseURL sets the origin that root-relative hrefs resolve against.
func WithBaseURL(base string) Option {
	return func(o *options) {
		if base != "" {
			o.baseURL = base
		}
	}
}

// WithDelay sets the pause after every successful fetch. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		delay:  DefaultDelay,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Wait blocks for d or until ctx is done, whichever comes first. It returns
// ctx.Err() when interrupted.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
