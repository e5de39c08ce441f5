package scraper

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/helpers"
	"spacedata/launchharvest/services/cache"
)

func newTestFetcher(t *testing.T, cacheSvc cache.CacheService) (*RetryingFetcher, *[]time.Duration) {
	t.Helper()
	cfg := config.LoadConfig()
	f := NewRetryingFetcher(&cfg, cacheSvc, nil)

	var delays []time.Duration
	f.sleep = func(d time.Duration) {
		delays = append(delays, d)
	}
	return f, &delays
}

func TestFetchSuccess(t *testing.T) {
	httpmock.ActivateNonDefault(helpers.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "https://example.com/launches",
		httpmock.NewStringResponder(200, "<html><body><h1>launches</h1></body></html>"))

	f, delays := newTestFetcher(t, nil)
	doc, err := f.Fetch(context.Background(), "https://example.com/launches")
	require.NoError(t, err)
	assert.Equal(t, "launches", doc.Find("h1").Text())
	assert.Empty(t, *delays)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchRetryExhaustion(t *testing.T) {
	httpmock.ActivateNonDefault(helpers.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "https://example.com/down",
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")))

	f, delays := newTestFetcher(t, nil)
	doc, err := f.Fetch(context.Background(), "https://example.com/down")
	assert.Nil(t, doc)
	require.Error(t, err)

	// Exactly maxRetries attempts, with doubling delays between them
	assert.Equal(t, 5, httpmock.GetTotalCallCount())
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
	}, *delays)
}

func TestFetchRecoversMidRetry(t *testing.T) {
	httpmock.ActivateNonDefault(helpers.HTTPClient())
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder(http.MethodGet, "https://example.com/flaky",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return nil, fmt.Errorf("connection reset")
			}
			return httpmock.NewStringResponse(200, "<html><body>ok</body></html>"), nil
		})

	f, delays := newTestFetcher(t, nil)
	doc, err := f.Fetch(context.Background(), "https://example.com/flaky")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *delays)
}

func TestFetchErrorStatusIsNotRetried(t *testing.T) {
	httpmock.ActivateNonDefault(helpers.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "https://example.com/missing",
		httpmock.NewStringResponder(404, "<html><body>not here</body></html>"))

	f, delays := newTestFetcher(t, nil)
	doc, err := f.Fetch(context.Background(), "https://example.com/missing")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
	assert.Empty(t, *delays)
}

func TestFetchRateLimitBlocksFollowUps(t *testing.T) {
	httpmock.ActivateNonDefault(helpers.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "https://example.com/limited",
		httpmock.NewStringResponder(http.StatusTooManyRequests, "<html></html>"))

	memCache, err := cache.NewMemoryService()
	require.NoError(t, err)

	f, _ := newTestFetcher(t, memCache)

	// First fetch goes out and sets the block key
	_, err = f.Fetch(context.Background(), "https://example.com/limited")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	// Second fetch is refused locally without touching the network
	_, err = f.Fetch(context.Background(), "https://example.com/limited")
	assert.Error(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, _ := newTestFetcher(t, nil)
	_, err := f.Fetch(ctx, "https://example.com/whatever")
	assert.ErrorIs(t, err, context.Canceled)
}
