package helpers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// client is the HTTP client shared by all fetches
var client = &http.Client{
	Timeout: 30 * time.Second,
}

// FetchUTF8 sends a single HTTP GET with the given User-Agent, converts the
// response body to UTF-8 if needed, and returns it together with the status
// code. A non-nil error means the request never produced a response
// (connection or timeout failure); HTTP error statuses are not errors here,
// the body is returned as-is for the caller to deal with.
func FetchUTF8(url, userAgent string) (io.Reader, int, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	// Determine the encoding from the Content-Type header and body content
	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))

	if name == "utf-8" || name == "UTF-8" {
		return bytes.NewReader(bodyBytes), resp.StatusCode, nil
	}

	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read converted UTF-8 body: %w", err)
	}

	return &buf, resp.StatusCode, nil
}

// HTTPClient exposes the shared client so tests can attach a mock transport.
func HTTPClient() *http.Client {
	return client
}
