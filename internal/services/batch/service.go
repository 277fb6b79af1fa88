package batch

import (
	"context"
	"fmt"
	"time"

	"texture-matcher/config"
	"texture-matcher/internal/core/catalog"
	"texture-matcher/internal/core/texture"
	"texture-matcher/pkg/logger"
)

type Options struct {
	// StopOnError ends the run at the first failed query.
	StopOnError bool
	// Timeout bounds each query; zero means no per-query limit.
	Timeout time.Duration
}

// Item is one query and what came back for it.
type Item struct {
	Query      string              `json:"query"`
	Result     *texture.Result     `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
	Violations []texture.Violation `json:"violations,omitempty"`

	err error
}

// Err returns the match error, if any.
func (i Item) Err() error {
	return i.err
}

// Run matches every catalog query in order. Failed queries are recorded and
// the run continues unless opts.StopOnError is set, in which case the
// items so far are returned with the error.
func Run(ctx context.Context, m texture.Matcher, cat catalog.Catalog, opts Options) ([]Item, error) {
	log := logger.ForModule(config.ModuleBatch)
	items := make([]Item, 0, len(cat.Queries))

	for i, q := range cat.Queries {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		item := matchOne(ctx, m, q, cat.Candidates, opts.Timeout)
		entry := log.WithFields(map[string]interface{}{
			"index": i,
			"query": q,
		})
		switch {
		case item.err != nil:
			entry.WithField("error", item.err.Error()).Error("batch: match failed")
		case len(item.Violations) > 0:
			for _, v := range item.Violations {
				entry.WithField("violation", v.String()).Warn("batch: result breaks output contract")
			}
		default:
			entry.WithField("status", item.Result.Status).Debug("batch: matched")
		}
		items = append(items, item)

		if item.err != nil && opts.StopOnError {
			return items, fmt.Errorf("query %q: %w", q, item.err)
		}
	}
	return items, nil
}

func matchOne(ctx context.Context, m texture.Matcher, query string, candidates []texture.Candidate, timeout time.Duration) Item {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := m.Match(ctx, query, candidates)
	if err != nil {
		return Item{Query: query, Error: err.Error(), err: err}
	}
	return Item{
		Query:      query,
		Result:     &res,
		Violations: texture.Check(res, candidates),
	}
}

// Failed counts items whose match returned an error.
func Failed(items []Item) int {
	n := 0
	for _, it := range items {
		if it.err != nil {
			n++
		}
	}
	return n
}
