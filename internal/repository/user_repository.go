package repository

import (
	"context"
	"fmt"

	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/store"
)

// UserRepository отвечает за таблицу users.
type UserRepository struct {
	store store.Store
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// List возвращает пользователей от новых к старым. Пустой status - все.
func (r *UserRepository) List(ctx context.Context, status string) ([]models.User, error) {
	q := store.From(models.TableUsers).OrderBy("created_at", false)
	if status != "" {
		q = q.Where(store.Eq("status", status))
	}

	var users []models.User
	if err := r.store.Select(ctx, q, &users); err != nil {
		return nil, fmt.Errorf("user repository: list: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Count возвращает точное число пользователей.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx, store.From(models.TableUsers))
	if err != nil {
		return 0, fmt.Errorf("user repository: count: %w", err)
	}
	return n, nil
}

// UpdateStatus меняет статус пользователя и возвращает обновлённую запись.
func (r *UserRepository) UpdateStatus(ctx context.Context, id, status string, fields map[string]any) (*models.User, error) {
	update := map[string]any{"status": status}
	for k, v := range fields {
		update[k] = v
	}

	var u models.User
	if err := r.store.Update(ctx, models.TableUsers, id, update, &u); err != nil {
		return nil, fmt.Errorf("user repository: update status %s: %w", id, err)
	}
	return &u, nil
}
