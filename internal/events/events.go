// Package events рассылает уведомления об изменениях, после которых
// админ-панели стоит перечитать данные.
package events

import (
	"context"
	"errors"
)

// Типы событий.
const (
	TypeWithdrawalUpdated = "withdrawal.updated"
	TypeUserUpdated       = "user.updated"
)

// Event - сообщение для подписчиков: {"type": ..., "data": ...}.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Publisher доставляет событие подписчикам.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Noop ничего не публикует.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Multi публикует событие во все вложенные издатели и собирает их ошибки.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
