// Package postgres реализует store.Store прямым подключением к Postgres
// (та же база Supabase или локальная копия для разработки).
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/payout-admin/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store выполняет запросы store.Query как SQL.
type Store struct {
	db *sqlx.DB
}

// New создаёт хранилище. Лишние колонки в SELECT * не считаются ошибкой.
func New(db *sqlx.DB) *Store {
	return &Store{db: db.Unsafe()}
}

// Select выполняет SELECT и сканирует строки в dest.
func (s *Store) Select(ctx context.Context, q store.Query, dest any) error {
	query, args := BuildSelect(q)
	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("postgres store: select %s: %w", q.Table, err)
	}
	return nil
}

// Count выполняет SELECT COUNT(*).
func (s *Store) Count(ctx context.Context, q store.Query) (int, error) {
	query, args := BuildCount(q)
	var n int
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("postgres store: count %s: %w", q.Table, err)
	}
	return n, nil
}

// Update обновляет строку по id. Без dest выполняется без RETURNING.
func (s *Store) Update(ctx context.Context, table, id string, fields map[string]any, dest any) error {
	query, args := BuildUpdate(table, id, fields, dest != nil)

	if dest == nil {
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("postgres store: update %s: %w", table, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("postgres store: update %s: %w", table, err)
		}
		if affected == 0 {
			return store.ErrNotFound
		}
		return nil
	}

	if err := s.db.QueryRowxContext(ctx, query, args...).StructScan(dest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		return fmt.Errorf("postgres store: update %s: %w", table, err)
	}
	return nil
}

// Ping проверяет соединение.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// BuildSelect собирает SELECT для запроса.
func BuildSelect(q store.Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columnList(q.Columns))
	b.WriteString(" FROM ")
	b.WriteString(pq.QuoteIdentifier(q.Table))

	args := writeWhere(&b, q.Filters, nil)

	if q.Order != nil {
		b.WriteString(" ORDER BY ")
		b.WriteString(pq.QuoteIdentifier(q.Order.Column))
		if q.Order.Ascending {
			b.WriteString(" ASC")
		} else {
			b.WriteString(" DESC")
		}
	}

	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.Limit))
	}

	return b.String(), args
}

// BuildCount собирает SELECT COUNT(*) с теми же фильтрами.
func BuildCount(q store.Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(pq.QuoteIdentifier(q.Table))
	args := writeWhere(&b, q.Filters, nil)
	return b.String(), args
}

// BuildUpdate собирает UPDATE ... WHERE id = $n. Колонки идут в алфавитном
// порядке, чтобы запрос был детерминированным.
func BuildUpdate(table, id string, fields map[string]any, returning bool) (string, []any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(pq.QuoteIdentifier(table))
	b.WriteString(" SET ")

	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, fields[k])
		b.WriteString(pq.QuoteIdentifier(k))
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(len(args)))
	}

	args = append(args, id)
	b.WriteString(` WHERE "id"::text = $`)
	b.WriteString(strconv.Itoa(len(args)))

	if returning {
		b.WriteString(" RETURNING *")
	}
	return b.String(), args
}

func columnList(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

// writeWhere дописывает WHERE. Колонки приводятся к text, чтобы сравнение
// со строковыми параметрами работало и для uuid, и для enum.
func writeWhere(b *strings.Builder, filters []store.Filter, args []any) []any {
	for i, f := range filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}

		b.WriteString(pq.QuoteIdentifier(f.Column))
		b.WriteString("::text")
		switch f.Op {
		case store.OpIn:
			args = append(args, pq.Array(f.Values))
			b.WriteString(" = ANY($")
			b.WriteString(strconv.Itoa(len(args)))
			b.WriteString(")")
		default:
			args = append(args, f.Value)
			b.WriteString(" = $")
			b.WriteString(strconv.Itoa(len(args)))
		}
	}
	return args
}
