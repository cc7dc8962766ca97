// Package memstore - хранилище в памяти с семантикой store.Store.
// Используется в тестах репозиториев, сервисов и хендлеров.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/ignatzorin/payout-admin/internal/store"
)

// Row - строка таблицы.
type Row map[string]any

// Call - запись об обращении к хранилищу.
type Call struct {
	Method string
	Table  string
	Query  store.Query
	ID     string
	Fields map[string]any
}

// Store хранит таблицы как слайсы строк.
type Store struct {
	mu     sync.Mutex
	tables map[string][]Row
	errs   map[string]error
	calls  []Call
}

var _ store.Store = (*Store)(nil)

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{
		tables: make(map[string][]Row),
		errs:   make(map[string]error),
	}
}

// Seed добавляет строки в таблицу.
func (s *Store) Seed(table string, rows ...Row) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		s.tables[table] = append(s.tables[table], cp)
	}
	return s
}

// FailOn заставляет все обращения к таблице возвращать err.
func (s *Store) FailOn(table string, err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[table] = err
	return s
}

// Calls возвращает копию журнала обращений.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Rows возвращает текущие строки таблицы.
func (s *Store) Rows(table string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Row(nil), s.tables[table]...)
}

func (s *Store) Select(_ context.Context, q store.Query, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Method: "Select", Table: q.Table, Query: q})
	if err := s.errs[q.Table]; err != nil {
		return err
	}

	rows := s.filter(q)
	if q.Order != nil {
		col, asc := q.Order.Column, q.Order.Ascending
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := fmt.Sprint(rows[i][col]), fmt.Sprint(rows[j][col])
			if asc {
				return a < b
			}
			return a > b
		})
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, project(r, q.Columns))
	}
	return decode(out, dest)
}

func (s *Store) Count(_ context.Context, q store.Query) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Method: "Count", Table: q.Table, Query: q})
	if err := s.errs[q.Table]; err != nil {
		return 0, err
	}
	return len(s.filter(q)), nil
}

func (s *Store) Update(_ context.Context, table, id string, fields map[string]any, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Method: "Update", Table: table, ID: id, Fields: fields})
	if err := s.errs[table]; err != nil {
		return err
	}

	for _, r := range s.tables[table] {
		if fmt.Sprint(r["id"]) != id {
			continue
		}
		for k, v := range fields {
			r[k] = v
		}
		if dest == nil {
			return nil
		}
		return decode(r, dest)
	}
	return store.ErrNotFound
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) filter(q store.Query) []Row {
	var out []Row
	for _, r := range s.tables[q.Table] {
		if matches(r, q.Filters) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Row, filters []store.Filter) bool {
	for _, f := range filters {
		v, ok := r[f.Column]
		if !ok || v == nil {
			return false
		}
		got := fmt.Sprint(v)
		switch f.Op {
		case store.OpIn:
			found := false
			for _, want := range f.Values {
				if got == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			if got != f.Value {
				return false
			}
		}
	}
	return true
}

func project(r Row, columns []string) Row {
	if len(columns) == 0 {
		return r
	}
	out := make(Row, len(columns))
	for _, c := range columns {
		if v, ok := r[c]; ok {
			out[c] = v
		}
	}
	return out
}

// decode переносит строки в dest через JSON, как это делает клиент PostgREST.
func decode(v any, dest any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("memstore: encode: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("memstore: decode: %w", err)
	}
	return nil
}
