package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/helpers"
	"spacedata/launchharvest/logger"
	"spacedata/launchharvest/pkg/errors"
	"spacedata/launchharvest/services/cache"
)

// blockKey marks the source as rate limited; while set, no requests go out.
const blockKey = "harvest_fetch_blocked"

// RetryingFetcher wraps page retrieval with bounded exponential backoff.
// Only transport failures (connection, timeout) are retried; HTTP error
// statuses pass through as fetched documents.
type RetryingFetcher struct {
	userAgent   string
	maxRetries  int
	backoffBase time.Duration
	blockTime   time.Duration
	cacheSvc    cache.CacheService
	metrics     *Metrics
	log         *logger.Logger

	sleep func(time.Duration)
}

// NewRetryingFetcher creates a fetcher from the configuration. cacheSvc may
// be nil, in which case rate-limit blocking is disabled.
func NewRetryingFetcher(cfg *config.Config, cacheSvc cache.CacheService, metrics *Metrics) *RetryingFetcher {
	return &RetryingFetcher{
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		blockTime:   cfg.BlockTime,
		cacheSvc:    cacheSvc,
		metrics:     metrics,
		log:         logger.ForScraper(),
		sleep:       time.Sleep,
	}
}

// Fetch retrieves url, retrying transport failures with delays that start
// at the backoff base and double after every failed attempt.
func (f *RetryingFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if f.cacheSvc != nil {
		if _, err := f.cacheSvc.Get(blockKey); err == nil {
			return nil, errors.NewNetwork(url, "requests blocked after rate limiting", nil)
		}
	}

	backoff := f.backoffBase
	var lastErr error

	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, status, err := helpers.FetchUTF8(url, f.userAgent)
		if err != nil {
			lastErr = err
			f.metrics.IncRetries()
			f.metrics.IncError(string(errors.ErrorTypeNetwork))
			f.log.Warn().
				Err(err).
				Str("url", url).
				Int("attempt", attempt).
				Msg("Fetch failed, retrying")

			if attempt < f.maxRetries {
				f.sleep(backoff)
				backoff *= 2
			}
			continue
		}

		if status == http.StatusTooManyRequests && f.cacheSvc != nil {
			if setErr := f.cacheSvc.Set(blockKey, []byte("1"), f.blockTime); setErr != nil {
				f.log.Warn().Err(setErr).Msg("Failed to set rate-limit block key")
			}
			f.log.Warn().
				Str("url", url).
				Dur("block_time", f.blockTime).
				Msg("Source rate limited, blocking further requests")
		}

		doc, err := goquery.NewDocumentFromReader(body)
		if err != nil {
			f.metrics.IncError(string(errors.ErrorTypeParsing))
			return nil, errors.NewParsing(url, "parse HTML", err)
		}
		return doc, nil
	}

	return nil, errors.NewNetwork(url,
		fmt.Sprintf("giving up after %d attempts", f.maxRetries), lastErr)
}
