// Package service assembles crawls into event catalogs for the HTTP API and
// the CLI.
package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fightcard/internal/adapters/crawl"
	"github.com/okian/fightcard/internal/adapters/fetch"
	"github.com/okian/fightcard/internal/config"
	"github.com/okian/fightcard/internal/domain/extract"
	"github.com/okian/fightcard/internal/domain/model"
	"github.com/okian/fightcard/pkg/logger"
	"github.com/okian/fightcard/pkg/metrics"
)

// Crawl modes used in metrics and stats.
const (
	ModeBulk   = "bulk"
	ModeSingle = "single"
)

// Crawl results used in metrics and stats.
const (
	ResultOK        = "ok"
	ResultNotFound  = "not_found"
	ResultFailed    = "fetch_failed"
	ResultCancelled = "cancelled"
)

// CrawlSummary describes the most recent crawl.
type CrawlSummary struct {
	ID         string    `json:"crawl_id"`
	Mode       string    `json:"mode"`
	Result     string    `json:"result"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Seed       string    `json:"seed,omitempty"`
	URLs       int       `json:"urls"`
	Events     int       `json:"events"`
	Fights     int       `json:"fights"`
}

// Service runs bulk and single-event crawls. Every call builds its own
// frontier and catalog; only the stats snapshot is shared.
type Service struct {
	mu sync.RWMutex

	fetcher   crawl.Fetcher
	extractor *extract.Extractor

	// Configuration
	baseURL    string
	landingURL string
	eventPath  string
	delay      time.Duration

	// Stats
	crawls    map[string]int64
	lastCrawl *CrawlSummary

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the page fetcher.
func WithFetcher(f crawl.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithExtractor sets the fight extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithBaseURL sets the site origin. The landing URL follows it unless set
// explicitly with WithLandingURL.
func WithBaseURL(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithLandingURL sets the page the seed is searched on.
func WithLandingURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.landingURL = u
		}
	}
}

// WithEventPath sets the path prefix of single event pages.
func WithEventPath(p string) Option {
	return func(s *Service) {
		if p != "" {
			s.eventPath = p
		}
	}
}

// WithDelay sets the pause after every successful page fetch.
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		baseURL:   config.DefaultBaseURL,
		eventPath: config.DefaultEventPath,
		delay:     time.Duration(config.DefaultRequestDelayMS) * time.Millisecond,
		crawls:    make(map[string]int64),
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.landingURL == "" {
		s.landingURL = s.baseURL + config.DefaultEventsPath
	}
	if s.fetcher == nil {
		s.fetcher = fetch.New(fetch.WithLogger(s.logger.Named("fetch")))
	}
	if s.extractor == nil {
		s.extractor = extract.New(extract.WithLogger(s.logger.Named("extract")))
	}
	return s
}

// Events crawls every upcoming event reachable from the landing page. The
// catalog may be empty; it only fails when no seed exists or ctx ends.
func (s *Service) Events(ctx context.Context) (model.Catalog, error) {
	sum := s.begin(ModeBulk)
	log := s.logger.With(logger.String("crawl_id", sum.ID))
	log.Info(ctx, "bulk crawl started", logger.String("landing", s.landingURL))

	seed, ok := crawl.NewLocator(s.fetcher,
		crawl.WithBaseURL(s.baseURL),
		crawl.WithLogger(log.Named("seed")),
	).Seed(ctx, s.landingURL)
	if !ok {
		s.finish(ctx, log, sum, ResultNotFound)
		return nil, ErrNoEvents
	}
	sum.Seed = seed

	urls := crawl.NewWalker(s.fetcher,
		crawl.WithBaseURL(s.baseURL),
		crawl.WithDelay(s.delay),
		crawl.WithLogger(log.Named("walker")),
	).Walk(ctx, seed)
	sum.URLs = len(urls)

	catalog := make(model.Catalog)
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		page, err := s.fetcher.Fetch(ctx, metrics.KindEvent, u)
		if err != nil {
			log.Warn(ctx, "event page skipped",
				logger.String("url", u),
				logger.String("class", string(fetch.ClassOf(err))),
				logger.Error(err),
			)
			continue
		}
		fights, err := s.extractor.Extract(ctx, bytes.NewReader(page.Body))
		if err != nil {
			log.Warn(ctx, "event page unreadable", logger.String("url", u), logger.Error(err))
		} else {
			addPage(ctx, log, catalog, model.EventPage{Slug: model.SlugFromURL(u), URL: u, Fights: fights})
		}
		if crawl.Wait(ctx, s.delay) != nil {
			break
		}
	}

	sum.Events = len(catalog)
	sum.Fights = catalog.Fights()
	if err := ctx.Err(); err != nil {
		s.finish(ctx, log, sum, ResultCancelled)
		return nil, err
	}

	metrics.UpdateCatalogSize(len(catalog))
	s.finish(ctx, log, sum, ResultOK)
	return catalog, nil
}

// Event crawls a single event page by its slug.
func (s *Service) Event(ctx context.Context, id string) (model.Catalog, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	sum := s.begin(ModeSingle)
	log := s.logger.With(logger.String("crawl_id", sum.ID), logger.String("event", id))

	u := s.baseURL + s.eventPath + id
	sum.Seed = u
	sum.URLs = 1

	page, err := s.fetcher.Fetch(ctx, metrics.KindEvent, u)
	if err != nil {
		log.Warn(ctx, "event fetch failed", logger.String("class", string(fetch.ClassOf(err))), logger.Error(err))
		s.finish(ctx, log, sum, ResultFailed)
		return nil, fmt.Errorf("%w: %w", ErrFetchEvent, err)
	}

	fights, err := s.extractor.Extract(ctx, bytes.NewReader(page.Body))
	if err != nil {
		s.finish(ctx, log, sum, ResultFailed)
		return nil, fmt.Errorf("%w: %w", ErrFetchEvent, err)
	}

	catalog := make(model.Catalog, 1)
	if !addPage(ctx, log, catalog, model.EventPage{Slug: id, URL: u, Fights: fights}) {
		s.finish(ctx, log, sum, ResultNotFound)
		return nil, ErrNoFights
	}

	sum.Events = 1
	sum.Fights = len(fights)
	s.finish(ctx, log, sum, ResultOK)
	return catalog, nil
}

func (s *Service) begin(mode string) *CrawlSummary {
	return &CrawlSummary{
		ID:        uuid.NewString(),
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

func (s *Service) finish(ctx context.Context, log logger.Logger, sum *CrawlSummary, result string) {
	took := time.Since(sum.StartedAt)
	sum.Result = result
	sum.DurationMs = took.Milliseconds()

	metrics.RecordCrawl(sum.Mode, result)
	if sum.Mode == ModeBulk {
		metrics.RecordCrawlDuration(float64(sum.DurationMs))
	}

	s.mu.Lock()
	s.crawls[sum.Mode+"_"+result]++
	s.lastCrawl = sum
	s.mu.Unlock()

	log.Info(ctx, "crawl finished",
		logger.String("mode", sum.Mode),
		logger.String("result", result),
		logger.Int("urls", sum.URLs),
		logger.Int("events", sum.Events),
		logger.Int("fights", sum.Fights),
		logger.Duration("took", took),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	crawls := make(map[string]int64, len(s.crawls))
	for k, v := range s.crawls {
		crawls[k] = v
	}

	stats := map[string]interface{}{
		"base_url":    s.baseURL,
		"landing_url": s.landingURL,
		"delay_ms":    s.delay.Milliseconds(),
		"crawls":      crawls,
	}
	if s.lastCrawl != nil {
		last := *s.lastCrawl
		stats["last_crawl"] = last
	}
	return stats
}

// NewFromConfig builds a Service whose fetcher, paths and delay follow cfg.
// Extra options are applied last.
func NewFromConfig(cfg *config.Config, l logger.Logger, opts ...Option) *Service {
	if l == nil {
		l = logger.Nop()
	}
	base := []Option{
		WithLogger(l),
		WithBaseURL(cfg.BaseURL),
		WithLandingURL(cfg.LandingURL()),
		WithEventPath(cfg.EventPath),
		WithDelay(cfg.RequestDelay()),
		WithFetcher(fetch.New(
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithTimeout(cfg.RequestTimeout()),
			fetch.WithLogger(l.Named("fetch")),
		)),
	}
	return New(append(base, opts...)...)
}

// addPage stores p in catalog and counts it. Pages without fights are left out.
func addPage(ctx context.Context, log logger.Logger, catalog model.Catalog, p model.EventPage) bool {
	if !catalog.Add(p) {
		log.Debug(ctx, "event page has no fights", logger.String("url", p.URL))
		return false
	}
	metrics.RecordEventCataloged()
	log.Debug(ctx, "event cataloged",
		logger.String("slug", p.Slug),
		logger.String("url", p.URL),
		logger.Int("fights", len(p.Fights)),
	)
	return true
}
