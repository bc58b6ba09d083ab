package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// resultsPerQuery bounds how much of each angle makes it into the prompt.
const resultsPerQuery = 5

// productQueries returns the search angles used to ground an analysis.
func productQueries(product string) []string {
	return []string{
		product + " AI product review",
		product + " pricing model",
		product + " competitors alternatives",
	}
}

// Context gathers web context for a product and formats it as a prompt
// block. Queries run concurrently; a product whose every query fails still
// gets the placeholder block rather than an error, since analysis can
// proceed without grounding.
func (c *Client) Context(ctx context.Context, product string) string {
	queries := productQueries(product)
	perQuery := make([][]Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results, err := c.Search(gctx, q, resultsPerQuery)
			if err != nil {
				c.logger.Warn("search query failed",
					zap.String("query", q),
					zap.Error(err))
				return nil
			}
			perQuery[i] = results
			return nil
		})
	}
	g.Wait()

	var hits []Result
	seen := make(map[string]bool)
	for _, results := range perQuery {
		for _, r := range results {
			if seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			hits = append(hits, r)
		}
	}
	if len(hits) == 0 {
		return Placeholder
	}
	return FormatContext(hits)
}

// FormatContext renders search hits as the web-context prompt block.
func FormatContext(hits []Result) string {
	var sb strings.Builder
	sb.WriteString("Recent web context:\n")
	for i, r := range hits {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
