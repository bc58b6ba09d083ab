// Package search gathers public web context about a product before analysis.
// It scrapes the DuckDuckGo HTML endpoint, which needs no API key, so a fresh
// install can ground its analyses without any search credentials.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Placeholder is the context block used when search is disabled or failed.
// The analysis prompt always carries a context section; this keeps its shape
// stable either way.
const Placeholder = "No web context available. Base the analysis on your own knowledge of the product."

const defaultEndpoint = "https://html.duckduckgo.com/html/"

// Result is a single search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Client scrapes DuckDuckGo HTML search.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the search endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a search client.
func New(logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs one query and returns up to maxResults hits.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	if maxResults > 30 {
		maxResults = 30
	}

	searchURL := fmt.Sprintf("%s?q=%s", c.endpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The HTML endpoint serves browsers, not bots.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	results, err := parseResults(string(body), maxResults)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))
	return results, nil
}

// parseResults extracts search hits from DuckDuckGo HTML. Result blocks are
// divs whose class contains both "result" and "results_links".
func parseResults(htmlContent string, maxResults int) ([]Result, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var results []Result
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, attr := range n.Attr {
				if attr.Key == "class" && strings.Contains(attr.Val, "result") && strings.Contains(attr.Val, "results_links") {
					r := extractResult(n)
					if r.URL != "" && r.Title != "" {
						results = append(results, r)
					}
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

func extractResult(n *html.Node) Result {
	var result Result

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "class" {
					continue
				}
				if strings.Contains(attr.Val, "result__a") {
					result.URL = attrValue(n, "href")
					result.Title = textContent(n)
				} else if strings.Contains(attr.Val, "result__snippet") {
					result.Snippet = textContent(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)

	result.URL = unwrapRedirect(result.URL)
	return result
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= redirect wrapper.
func unwrapRedirect(raw string) string {
	if !strings.HasPrefix(raw, "//duckduckgo.com/l/?uddg=") {
		return raw
	}
	decoded, err := url.QueryUnescape(strings.TrimPrefix(raw, "//duckduckgo.com/l/?uddg="))
	if err != nil {
		return raw
	}
	if idx := strings.Index(decoded, "&"); idx > 0 {
		decoded = decoded[:idx]
	}
	return decoded
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var getText func(*html.Node)
	getText = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			getText(c)
		}
	}
	getText(n)
	return strings.TrimSpace(sb.String())
}
