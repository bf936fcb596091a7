package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facilities-pm/backend/internal/models"
)

const (
	DefaultTable    = "work_orders"
	DefaultOrderBy  = "id"
	DefaultPageSize = 1000
	maxPages        = 10000
)

type Store struct {
	Pool     *pgxpool.Pool
	Table    string
	OrderBy  string
	PageSize int
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool, Table: DefaultTable, OrderBy: DefaultOrderBy, PageSize: DefaultPageSize}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// FetchWorkOrders returns every row matching f as a column->value map, reading
// the table in fixed-size offset pages until a short page comes back.
func (s *Store) FetchWorkOrders(ctx context.Context, f models.Filters) ([]map[string]any, error) {
	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	query, args := buildWorkOrderQuery(s.table(), s.orderBy(), f)
	limitPos := len(args) + 1
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, limitPos+1)

	var out []map[string]any
	for page := 0; page < maxPages; page++ {
		pageArgs := append(append([]any{}, args...), pageSize, page*pageSize)
		n, err := s.fetchPage(ctx, query, pageArgs, &out)
		if err != nil {
			return nil, fmt.Errorf("fetch work orders page %d: %w", page, err)
		}
		if n < pageSize {
			break
		}
	}
	return out, nil
}

func (s *Store) fetchPage(ctx context.Context, query string, args []any, out *[]map[string]any) (int, error) {
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	n := 0
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return n, err
		}
		rec := make(map[string]any, len(fields))
		for i, fd := range fields {
			rec[fd.Name] = plainValue(values[i])
		}
		*out = append(*out, rec)
		n++
	}
	return n, rows.Err()
}

// buildWorkOrderQuery pushes the date and location filters down to SQL using
// the canonical column names. Status filters match normalized categories and
// are applied after normalization.
func buildWorkOrderQuery(table, orderBy string, f models.Filters) (string, []any) {
	query := `SELECT * FROM ` + table
	var args []any
	var wheres []string
	if f.Start != nil {
		args = append(args, models.DateOf(*f.Start))
		wheres = append(wheres, fmt.Sprintf("COALESCE(date_created, scheduled_start_date) >= $%d", len(args)))
	}
	if f.End != nil {
		args = append(args, models.DateOf(*f.End))
		wheres = append(wheres, fmt.Sprintf("COALESCE(date_created, scheduled_start_date) < $%d", len(args)))
	}
	if v := strings.TrimSpace(f.Building); v != "" {
		args = append(args, strings.ToLower(v))
		wheres = append(wheres, fmt.Sprintf("(lower(trim(building_id::text)) = $%d OR lower(trim(building_name)) = $%d)", len(args), len(args)))
	}
	for _, col := range []struct{ name, value string }{
		{"region", f.Region},
		{"zone", f.Zone},
		{"trade", f.Trade},
	} {
		if v := strings.TrimSpace(col.value); v != "" {
			args = append(args, strings.ToLower(v))
			wheres = append(wheres, fmt.Sprintf("lower(trim(%s::text)) = $%d", col.name, len(args)))
		}
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY " + orderBy
	return query, args
}

// plainValue converts driver types the normalizer does not know about.
func plainValue(v any) any {
	switch t := v.(type) {
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return uuid.UUID(t).String()
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

func (s *Store) tableName() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

func (s *Store) table() string {
	return pgx.Identifier(strings.Split(s.tableName(), ".")).Sanitize()
}

func (s *Store) orderBy() string {
	col := s.OrderBy
	if col == "" {
		col = DefaultOrderBy
	}
	return pgx.Identifier{col}.Sanitize()
}
