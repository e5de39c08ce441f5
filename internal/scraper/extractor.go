package scraper

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/helpers"
	"spacedata/launchharvest/internal/dataset"
	"spacedata/launchharvest/logger"
)

// Selectors for the listing cards and detail pages
const (
	ListingCardSelector  = "div.mdl-cell.mdl-cell--6-col"
	supportingSelector   = "div.mdl-card__supporting-text"
	rocketNameSelector   = "h5.header-style"
	detailBlocksSelector = "div.mdl-cell.mdl-cell--6-col-desktop.mdl-cell--12-col-tablet"
	statusHeadSelector   = "h6.rcorners.status"
)

var (
	imageLinkRegex    = regexp.MustCompile(`url\((.*?)\)`)
	launchIDRegex     = regexp.MustCompile(`\.launch\.a(\d+)`)
	rocketStatusRegex = regexp.MustCompile(`(?i)Status:\s*(\w+)`)
	priceRegex        = regexp.MustCompile(`(?i)Price:\s*\$([\d.]+) million`)
)

// Extractor turns one listing card (plus its detail page) into a RawRecord.
type Extractor struct {
	fetcher          Fetcher
	detailBaseURL    string
	defaultImageLink string
	dateLayouts      []string
	log              *logger.Logger
}

// NewExtractor creates an extractor that resolves detail pages via fetcher.
func NewExtractor(cfg *config.Config, fetcher Fetcher) *Extractor {
	return &Extractor{
		fetcher:          fetcher,
		detailBaseURL:    cfg.DetailBaseURL,
		defaultImageLink: cfg.DefaultImageLink,
		dateLayouts:      cfg.DateFormats,
		log:              logger.ForScraper(),
	}
}

// EntryDate parses the card's launch date (the first non-empty line of the
// supporting-text block). Nil when the block is missing or no layout matches.
func (e *Extractor) EntryDate(card *goquery.Selection) *time.Time {
	lines := helpers.NonEmptyLines(card.Find(supportingSelector).First().Text())
	if len(lines) == 0 {
		return nil
	}
	return dataset.ParseDate(lines[0], e.dateLayouts)
}

// Extract builds the raw record for one card. date is the already-parsed
// entry date. The record is always produced; fields the markup or the detail
// page do not expose stay nil.
func (e *Extractor) Extract(ctx context.Context, card *goquery.Selection, date *time.Time) dataset.RawRecord {
	rec := dataset.RawRecord{
		Organisation: strings.TrimSpace(card.Find("span").First().Text()),
		Detail:       strings.TrimSpace(card.Find(rocketNameSelector).First().Text()),
		Date:         date,
	}

	lines := helpers.NonEmptyLines(card.Find(supportingSelector).First().Text())
	if len(lines) > 0 {
		rec.Location = lines[len(lines)-1]
	}

	style := card.Find("style").First().Text()
	rec.ImageLink = e.imageLink(style)

	if match := launchIDRegex.FindStringSubmatch(style); match != nil {
		detailURL := e.detailBaseURL + match[1]
		doc, err := e.fetcher.Fetch(ctx, detailURL)
		if err != nil {
			// Detail gap: emit the record with nil detail fields
			e.log.Warn().
				Err(err).
				Str("url", detailURL).
				Msg("Detail page unavailable")
			return rec
		}
		e.scanDetail(doc, &rec)
	}

	return rec
}

// imageLink pulls the background-image URL out of the card's style block.
// The site's placeholder rocket image counts as absent.
func (e *Extractor) imageLink(style string) *string {
	match := imageLinkRegex.FindStringSubmatch(style)
	if match == nil {
		return nil
	}
	link := strings.TrimSpace(match[1])
	if link == "" || link == e.defaultImageLink {
		return nil
	}
	return &link
}

// scanDetail reads mission status, rocket status and price off the detail
// page. When several content blocks match a pattern, the last one wins.
func (e *Extractor) scanDetail(doc *goquery.Document, rec *dataset.RawRecord) {
	if head := doc.Find(statusHeadSelector).First(); head.Length() > 0 {
		status := strings.TrimSpace(head.Text())
		if status != "" {
			rec.MissionStatus = &status
		}
	}

	doc.Find(detailBlocksSelector).Each(func(_ int, block *goquery.Selection) {
		text := block.Text()
		if match := rocketStatusRegex.FindStringSubmatch(text); match != nil {
			status := match[1]
			rec.RocketStatus = &status
		}
		if match := priceRegex.FindStringSubmatch(text); match != nil {
			price := match[1]
			rec.Price = &price
		}
	})
}
