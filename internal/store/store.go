// Package store описывает удалённое хранилище (Supabase): выборки с
// фильтрами eq/in, сортировкой и лимитом, и обновление одной строки по id.
package store

import (
	"context"
	"errors"
)

// ErrNotFound возвращается Update, если строка с таким id не найдена.
var ErrNotFound = errors.New("store: row not found")

// Operator - оператор фильтра.
type Operator string

const (
	OpEq Operator = "eq"
	OpIn Operator = "in"
)

// Filter - условие WHERE.
type Filter struct {
	Column string
	Op     Operator
	Value  string
	Values []string
}

// Eq создаёт фильтр column = value.
func Eq(column, value string) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// In создаёт фильтр column IN (values).
func In(column string, values []string) Filter {
	return Filter{Column: column, Op: OpIn, Values: values}
}

// Order - сортировка результата.
type Order struct {
	Column    string
	Ascending bool
}

// Query описывает выборку из одной таблицы.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Order   *Order
	Limit   int
}

// Where добавляет фильтр и возвращает запрос для цепочки вызовов.
func (q Query) Where(f Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), f)
	return q
}

// OrderBy задаёт сортировку.
func (q Query) OrderBy(column string, ascending bool) Query {
	q.Order = &Order{Column: column, Ascending: ascending}
	return q
}

// WithLimit ограничивает число строк; 0 - без ограничения.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// From начинает запрос к таблице.
func From(table string, columns ...string) Query {
	return Query{Table: table, Columns: columns}
}

// Store - клиент удалённого хранилища. Реализации: postgrest и postgres.
type Store interface {
	// Select читает все подходящие строки в dest (указатель на слайс).
	Select(ctx context.Context, q Query, dest any) error
	// Count возвращает точное число строк без их загрузки.
	Count(ctx context.Context, q Query) (int, error)
	// Update обновляет одну строку по id и пишет её новое состояние в dest.
	Update(ctx context.Context, table, id string, fields map[string]any, dest any) error
	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}
