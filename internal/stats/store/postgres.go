package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"civicdesk/internal/platform/postgres"
	"civicdesk/internal/stats/models"
)

// tableSpec whitelists what may be interpolated into a count query.
type tableSpec struct {
	name       string
	dimensions map[models.Dimension]string
	approved   string
	status     string
}

var tables = map[models.Table]tableSpec{
	models.TableEntities: {
		name: "entity_profiles",
		dimensions: map[models.Dimension]string{
			models.DimEntityType:  "entity_type",
			models.DimGovernorate: "governorate",
		},
		approved: "is_approved",
	},
	models.TableFeedback: {
		name: "feedback_reports",
		dimensions: map[models.Dimension]string{
			models.DimFeedbackType: "feedback_type",
			models.DimPriority:     "priority",
			models.DimGovernorate:  "governorate",
		},
		status: "status",
	},
	models.TableSubmissions: {
		name:       "submissions",
		dimensions: map[models.Dimension]string{},
	},
}

// PostgresStore answers counts with one parameterised query each.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Count(ctx context.Context, table models.Table, filter models.Filter) (int, error) {
	spec, ok := tables[table]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	where, args, err := spec.where(filter, nil)
	if err != nil {
		return 0, err
	}

	var n int
	query := "SELECT count(*) FROM " + spec.name + where
	if err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (s *PostgresStore) GroupCount(ctx context.Context, table models.Table, dim models.Dimension, filter models.Filter) (map[string]int, error) {
	spec, ok := tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	col, ok := spec.dimensions[dim]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrUnknownDimension, dim, table)
	}
	where, args, err := spec.where(filter, []string{col + " IS NOT NULL", col + " <> ''"})
	if err != nil {
		return nil, err
	}

	query := "SELECT " + col + ", count(*) FROM " + spec.name + where + " GROUP BY " + col
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", table, dim, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan group count: %w", err)
		}
		out[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group count: %w", err)
	}
	return out, nil
}

func (t tableSpec) where(filter models.Filter, base []string) (string, []any, error) {
	conds := base
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if err := t.supports(filter); err != nil {
		return "", nil, err
	}
	if filter.Approved != nil {
		add(t.approved, *filter.Approved)
	}
	if filter.Status != "" {
		add(t.status, filter.Status)
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (t tableSpec) supports(filter models.Filter) error {
	if filter.Approved != nil && t.approved == "" {
		return fmt.Errorf("%w: approval on %s", ErrUnsupportedFilter, t.name)
	}
	if filter.Status != "" && t.status == "" {
		return fmt.Errorf("%w: status on %s", ErrUnsupportedFilter, t.name)
	}
	return nil
}
