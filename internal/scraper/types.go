package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves one URL as a parsed HTML document. An error means the
// page is unavailable (retries exhausted, or requests currently blocked);
// callers decide whether that is fatal. HTTP error statuses are not fetch
// errors: the document is returned and simply lacks the expected elements.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}
