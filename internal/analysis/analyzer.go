// Package analysis orchestrates a product analysis: gather web context, ask
// the model, and recover a schema-complete record from whatever it returns.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pminsight/internal/llm"
	"pminsight/internal/parse"
	"pminsight/internal/schema"
)

// ContextProvider supplies a web-context prompt block for a product.
// *search.Client satisfies it.
type ContextProvider interface {
	Context(ctx context.Context, product string) string
}

// Analysis is one completed product analysis.
type Analysis struct {
	ID        string
	Product   string
	CreatedAt time.Time
	Record    *parse.Record
	Path      parse.Path
	Degraded  bool
}

// Analyzer runs analyses against a completion client.
type Analyzer struct {
	client   llm.Client
	search   ContextProvider // nil when web search is disabled
	pipeline *parse.Pipeline
	logger   *zap.Logger
}

// New creates an analyzer. search may be nil.
func New(client llm.Client, search ContextProvider, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		client:   client,
		search:   search,
		pipeline: parse.NewPipeline(schema.Current()),
		logger:   logger,
	}
}

// Contract returns the field contract analyses are validated against.
func (a *Analyzer) Contract() schema.Contract { return a.pipeline.Contract() }

// Analyze runs a full analysis of the named product. It returns an error
// only when no completion could be obtained at all; malformed model output
// degrades the record instead of failing.
func (a *Analyzer) Analyze(ctx context.Context, product string) (*Analysis, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return nil, fmt.Errorf("product name is required")
	}

	start := time.Now()
	a.logger.Info("starting analysis", zap.String("product", product))

	webContext := ""
	if a.search != nil {
		webContext = a.search.Context(ctx, product)
	}

	raw, err := a.client.CompleteWithSystem(ctx, systemPrompt, buildPrompt(product, webContext))
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	res := a.pipeline.Run(raw)
	if res.Degraded {
		a.logger.Warn("analysis degraded",
			zap.String("product", product),
			zap.String("path", res.Path.String()),
			zap.Error(res.Cause))
	}

	a.logger.Info("analysis complete",
		zap.String("product", product),
		zap.String("path", res.Path.String()),
		zap.Duration("elapsed", time.Since(start)))

	return &Analysis{
		ID:        uuid.NewString(),
		Product:   product,
		CreatedAt: time.Now(),
		Record:    res.Record,
		Path:      res.Path,
		Degraded:  res.Degraded,
	}, nil
}
