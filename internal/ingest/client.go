package ingest

import (
	"context"
	"time"
)

// Client extracts posting previews from external URLs. When useBrowser is
// set, pages that come back too thin over plain HTTP are retried through a
// headless browser.
type Client struct {
	useBrowser bool
	timeout    time.Duration
}

// NewClient creates an ingest client.
func NewClient(useBrowser bool) *Client {
	return &Client{
		useBrowser: useBrowser,
		timeout:    DefaultTimeout,
	}
}

// Preview fetches a posting page and extracts a draft posting from it.
func (c *Client) Preview(ctx context.Context, url string) (*Preview, error) {
	html, err := fetchHTML(ctx, url, c.timeout)
	if err != nil {
		return nil, err
	}

	preview, err := extractPreview(html, url)
	if err != nil {
		return nil, err
	}

	if c.useBrowser && shouldUseBrowser(preview) {
		rendered, err := renderWithBrowser(ctx, url, c.timeout)
		if err != nil {
			// The plain extraction still stands when the browser fails
			return preview, nil
		}
		if renderedPreview, err := extractPreview(rendered, url); err == nil {
			return renderedPreview, nil
		}
	}

	return preview, nil
}
