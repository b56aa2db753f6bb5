// Package selector runs typed bun select queries against a single model table.
package selector

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type S[T any] struct {
	DB *bun.DB
}

func New[T any](db *bun.DB) S[T] {
	return S[T]{
		DB: db,
	}
}

// SelectMany scans every row matched by fn. No match is an empty slice, not an error.
func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	models := make([]*T, 0)
	if err := fn(r.DB.NewSelect().Model(&models)).Scan(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to select %T", models)
	}
	return models, nil
}

func (r S[T]) Count(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (int, error) {
	n, err := fn(r.DB.NewSelect().Model((*T)(nil))).Count(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count %T", (*T)(nil))
	}
	return n, nil
}
