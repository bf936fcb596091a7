package service

import (
	"context"

	"github.com/facilities-pm/backend/internal/models"
)

// StaticFetcher serves a fixed, already-materialized snapshot. Filtering is left
// to the engine, which applies it after normalization.
type StaticFetcher struct {
	Rows []map[string]any
}

func (s StaticFetcher) FetchWorkOrders(ctx context.Context, _ models.Filters) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Rows, nil
}
