// Package store answers grouped counts over the submission tables.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"civicdesk/internal/stats/models"
)

var (
	ErrUnknownTable      = errors.New("unknown stats table")
	ErrUnknownDimension  = errors.New("unknown stats dimension")
	ErrUnsupportedFilter = errors.New("filter not supported on table")
)

// Row is the slice of a record the memory store can filter and group.
type Row struct {
	Dimensions map[models.Dimension]string
	Approved   *bool
	Status     string
	CreatedAt  time.Time
}

// Source lists the current rows of one table.
type Source func(ctx context.Context) []Row

// InMemoryStore counts over snapshots taken from the in-memory record stores.
type InMemoryStore struct {
	sources map[models.Table]Source
}

func NewInMemory(sources map[models.Table]Source) *InMemoryStore {
	return &InMemoryStore{sources: sources}
}

func (s *InMemoryStore) Count(ctx context.Context, table models.Table, filter models.Filter) (int, error) {
	rows, err := s.rows(ctx, table, filter)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range rows {
		if matches(r, filter) {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) GroupCount(ctx context.Context, table models.Table, dim models.Dimension, filter models.Filter) (map[string]int, error) {
	spec, ok := tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if _, ok := spec.dimensions[dim]; !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrUnknownDimension, dim, table)
	}
	rows, err := s.rows(ctx, table, filter)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int)
	for _, r := range rows {
		key := r.Dimensions[dim]
		if key == "" || !matches(r, filter) {
			continue
		}
		out[key]++
	}
	return out, nil
}

func (s *InMemoryStore) rows(ctx context.Context, table models.Table, filter models.Filter) ([]Row, error) {
	spec, ok := tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if err := spec.supports(filter); err != nil {
		return nil, err
	}
	src, ok := s.sources[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return src(ctx), nil
}

func matches(r Row, f models.Filter) bool {
	if f.Approved != nil && (r.Approved == nil || *r.Approved != *f.Approved) {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if !f.Since.IsZero() && r.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}
