package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/internal/dataset"
	"spacedata/launchharvest/logger"
)

// repeatCheckMinRecords is how many records must be accumulated before the
// page-repeat stop condition is consulted. Below this the crawl cannot have
// seen a full prior page to compare against.
const repeatCheckMinRecords = 30

// Controller drives the incremental crawl: it pages through the listing,
// applies the stop conditions, and accumulates raw records in document
// order. It never touches the persisted dataset.
type Controller struct {
	fetcher        Fetcher
	extractor      *Extractor
	baseListingURL string
	pageSleep      time.Duration
	metrics        *Metrics
	log            *logger.Logger

	sleep func(time.Duration)
}

// NewController creates a crawl controller.
func NewController(cfg *config.Config, fetcher Fetcher, extractor *Extractor, metrics *Metrics) *Controller {
	return &Controller{
		fetcher:        fetcher,
		extractor:      extractor,
		baseListingURL: cfg.BaseListingURL,
		pageSleep:      cfg.PageSleep,
		metrics:        metrics,
		log:            logger.ForScraper(),
		sleep:          time.Sleep,
	}
}

// Crawl walks listing pages from page 1 until a stop condition fires and
// returns the accumulated raw records, newest first (source order).
//
// Stop conditions, in precedence order, both checked on the freshly parsed
// entry date before the record is built:
//  1. the date equals lastKnown — the dataset is up to date through here;
//  2. once at least repeatCheckMinRecords records exist, the date equals
//     that of the record exactly one page-length back, which means the
//     source is serving its final page over and over.
//
// A listing page that cannot be fetched is skipped, not fatal: the page
// index still advances and the crawl goes on.
func (c *Controller) Crawl(ctx context.Context, lastKnown *time.Time) ([]dataset.RawRecord, error) {
	var accumulated []dataset.RawRecord
	page := 1
	stop := false
	prevPageLen := 0

	for !stop {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Courtesy delay between listing requests
		c.sleep(c.pageSleep)

		url := fmt.Sprintf("%s%d&search=", c.baseListingURL, page)
		c.log.Info().Int("page", page).Msg("Scraping listing page")

		doc, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			c.log.Warn().
				Err(err).
				Int("page", page).
				Msg("Listing page unavailable, moving on")
			page++
			continue
		}
		c.metrics.IncPages()

		cards := doc.Find(ListingCardSelector)
		pageLen := cards.Length()

		cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
			date := c.extractor.EntryDate(card)

			if lastKnown != nil && date != nil && date.Equal(*lastKnown) {
				c.log.Info().
					Time("last_known", *lastKnown).
					Int("page", page).
					Msg("Reached last known launch date, stopping")
				stop = true
				return false
			}

			if len(accumulated) >= repeatCheckMinRecords && prevPageLen > 0 {
				idx := len(accumulated) - prevPageLen
				if idx >= 0 && dataset.DatesEqual(accumulated[idx].Date, date) {
					c.log.Info().
						Int("page", page).
						Msg("Listing page repeats itself, stopping")
					stop = true
					return false
				}
			}

			accumulated = append(accumulated, c.extractor.Extract(ctx, card, date))
			c.metrics.IncRecords()
			prevPageLen = pageLen
			return true
		})

		page++
	}

	return accumulated, nil
}
