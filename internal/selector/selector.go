package selector

import (
	"context"

	"fizzo-agent/internal/ports"
	"fizzo-agent/pkg/logg"

	"go.uber.org/zap"
)

const resolverName = "SelectorResolver"

// Resolver locates UI elements from ordered candidate queries. A candidate
// that times out or errors is skipped, never fatal; exhausting the set is a
// negative answer, not an error.
type Resolver struct {
	browser   ports.BrowserManager
	logger    *zap.Logger
	timeoutMs int
}

func NewResolver(browser ports.BrowserManager, logger *zap.Logger, timeoutMs int) *Resolver {
	return &Resolver{
		browser:   browser,
		logger:    logger.With(zap.String(logg.Layer, resolverName)),
		timeoutMs: timeoutMs,
	}
}

// Resolve returns the first candidate query that currently matches a visible
// element. Once a candidate wins, later candidates are never queried.
func (r *Resolver) Resolve(ctx context.Context, set CandidateSet) (string, bool) {
	for _, query := range set.Queries {
		if r.browser.IsVisible(ctx, query, r.timeoutMs) {
			r.logger.Debug("candidate resolved",
				zap.String(logg.Role, set.Role),
				zap.String(logg.Selector, query))

			return query, true
		}
	}

	r.logger.Debug("no candidate resolved", zap.String(logg.Role, set.Role))

	return "", false
}

// ResolveAll returns every element matched by the first candidate that
// yields at least one. Used for list extraction, where one matching variant
// is adopted and the rest of the set is not tried.
func (r *Resolver) ResolveAll(ctx context.Context, set CandidateSet) (string, []ports.Element) {
	for _, query := range set.Queries {
		elements, err := r.browser.QueryAll(ctx, query)
		if err != nil {
			r.logger.Debug("candidate query failed",
				zap.String(logg.Role, set.Role),
				zap.String(logg.Selector, query),
				zap.Error(err))

			continue
		}

		if len(elements) > 0 {
			r.logger.Debug("candidate matched elements",
				zap.String(logg.Role, set.Role),
				zap.String(logg.Selector, query),
				zap.Int(logg.Count, len(elements)))

			return query, elements
		}
	}

	return "", nil
}

// ResolveAndClick resolves the set and clicks the winning selector. Returns
// false when nothing resolved or the click itself failed; optional UI steps
// treat both the same way.
func (r *Resolver) ResolveAndClick(ctx context.Context, set CandidateSet) bool {
	query, ok := r.Resolve(ctx, set)
	if !ok {
		return false
	}

	if err := r.browser.Click(ctx, query); err != nil {
		r.logger.Debug("click on resolved candidate failed",
			zap.String(logg.Role, set.Role),
			zap.String(logg.Selector, query),
			zap.Error(err))

		return false
	}

	return true
}

// ResolveAndFill resolves the set and fills the winning selector.
func (r *Resolver) ResolveAndFill(ctx context.Context, set CandidateSet, value string) bool {
	query, ok := r.Resolve(ctx, set)
	if !ok {
		return false
	}

	if err := r.browser.Fill(ctx, query, value); err != nil {
		r.logger.Debug("fill on resolved candidate failed",
			zap.String(logg.Role, set.Role),
			zap.String(logg.Selector, query),
			zap.Error(err))

		return false
	}

	return true
}
