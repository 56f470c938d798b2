package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/domain/search/result"
	"github.com/kailas-cloud/recipedex/internal/logger"
	"github.com/kailas-cloud/recipedex/internal/metrics"
)

// InstrumentedSearcher wraps a Searcher with metrics and logging.
type InstrumentedSearcher struct {
	inner  Searcher
	logger *zap.Logger
}

// NewInstrumentedSearcher wraps a searcher with observability.
func NewInstrumentedSearcher(inner Searcher, logger *zap.Logger) *InstrumentedSearcher {
	return &InstrumentedSearcher{inner: inner, logger: logger}
}

// Search delegates to the inner searcher and records outcome, duration and result count.
func (p *InstrumentedSearcher) Search(ctx context.Context, query string, n int) ([]result.Result, error) {
	log := logger.FromContext(ctx, p.logger)

	if strings.TrimSpace(query) == "" {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeEmptyQuery).Inc()
		return []result.Result{}, nil
	}

	start := time.Now()
	results, err := p.inner.Search(ctx, query, n)
	duration := time.Since(start)
	metrics.SearchDuration.Observe(duration.Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error("Search failed",
			zap.String("query", query),
			zap.Int("n_results", n),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.SearchResults.Observe(float64(len(results)))

	log.Debug("Search completed",
		zap.String("query", query),
		zap.Int("n_results", n),
		zap.Int("count", len(results)),
		zap.Duration("duration", duration),
	)
	return results, nil
}
