// Package webfetch retrieves a contact's homepage and reduces it to a
// plain-text excerpt suitable for the website analyser prompt.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/adamphillips/atlas/pkg/apperrors"
)

// maxExcerptChars caps the homepage text handed to the model.
const maxExcerptChars = 5000

// maxBodyBytes bounds how much HTML we are willing to read.
const maxBodyBytes = 2 << 20

// Fetcher downloads homepages over plain HTTP(S).
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchExcerpt downloads url and returns its visible text, whitespace
// compacted and truncated to the excerpt cap. Network or HTTP failures
// map to apperrors.ErrWebsiteUnavailable.
func (f *Fetcher) FetchExcerpt(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrWebsiteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %d from %s", apperrors.ErrWebsiteUnavailable, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrWebsiteUnavailable, err)
	}

	return ExtractText(string(body)), nil
}

// ExtractText strips tags from an HTML document, skipping script, style,
// and noscript content, and returns compacted text capped at the excerpt
// limit.
func ExtractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// html.Parse is lenient; a hard failure means the input is not
		// HTML at all, so fall back to the raw text.
		return truncate(strings.Join(strings.Fields(htmlContent), " "))
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return truncate(strings.Join(strings.Fields(sb.String()), " "))
}

// truncate caps the excerpt at maxExcerptChars runes. Counting runes
// rather than bytes keeps the cut from splitting a multi-byte character.
func truncate(s string) string {
	if len(s) <= maxExcerptChars {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxExcerptChars {
		return s
	}
	return string(runes[:maxExcerptChars])
}
