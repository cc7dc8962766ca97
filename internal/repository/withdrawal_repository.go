package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/store"
)

// WithdrawalFilter задаёт выборку заявок. Пустой Status - без фильтра,
// Limit <= 0 - без ограничения.
type WithdrawalFilter struct {
	Status string
	Limit  int
}

// WithdrawalRepository читает и обновляет withdrawal_requests.
type WithdrawalRepository struct {
	store    store.Store
	profiles *ProfileRepository
	log      logrus.FieldLogger
}

// NewWithdrawalRepository создаёт экземпляр репозитория.
func NewWithdrawalRepository(s store.Store, profiles *ProfileRepository, log logrus.FieldLogger) *WithdrawalRepository {
	return &WithdrawalRepository{store: s, profiles: profiles, log: log}
}

// List возвращает заявки от новых к старым вместе с профилями владельцев.
// Статус сравнивается с сохранённым значением как есть.
func (r *WithdrawalRepository) List(ctx context.Context, filter WithdrawalFilter) ([]models.Withdrawal, error) {
	q := store.From(models.TableWithdrawalRequests, models.WithdrawalColumns...).
		OrderBy("created_at", false).
		WithLimit(filter.Limit)
	if filter.Status != "" {
		q = q.Where(store.Eq("status", filter.Status))
	}

	var rows []models.Withdrawal
	if err := r.store.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("withdrawal repository: list: %w", err)
	}
	if rows == nil {
		rows = []models.Withdrawal{}
	}

	r.AttachProfiles(ctx, rows)
	return rows, nil
}

// AttachProfiles заполняет поле User одним запросом к profiles.
// Ошибка этого запроса не прерывает выдачу: список возвращается без профилей.
func (r *WithdrawalRepository) AttachProfiles(ctx context.Context, rows []models.Withdrawal) {
	ids := distinctUserIDs(rows)
	if len(ids) == 0 {
		return
	}

	byID, err := r.profiles.ByIDs(ctx, ids)
	if err != nil {
		r.log.WithError(err).WithField("user_ids", len(ids)).Warn("не удалось загрузить профили для заявок")
		return
	}

	for i := range rows {
		if p, ok := byID[rows[i].OwnerID()]; ok {
			profile := p
			rows[i].User = &profile
		}
	}
}

// ListForStats читает только id, amount и status всех заявок.
func (r *WithdrawalRepository) ListForStats(ctx context.Context) ([]models.Withdrawal, error) {
	var rows []models.Withdrawal
	q := store.From(models.TableWithdrawalRequests, "id", "amount", "status")
	if err := r.store.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("withdrawal repository: list for stats: %w", err)
	}
	return rows, nil
}

// CountByStatus возвращает точное число заявок с сохранённым статусом status.
func (r *WithdrawalRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	q := store.From(models.TableWithdrawalRequests).Where(store.Eq("status", status))
	n, err := r.store.Count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("withdrawal repository: count by status: %w", err)
	}
	return n, nil
}

// UpdateFields обновляет одну заявку и возвращает её новое состояние.
// Если заявки нет, возвращается store.ErrNotFound.
func (r *WithdrawalRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := r.store.Update(ctx, models.TableWithdrawalRequests, id, fields, &w); err != nil {
		return nil, fmt.Errorf("withdrawal repository: update %s: %w", id, err)
	}
	return &w, nil
}

func distinctUserIDs(rows []models.Withdrawal) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, w := range rows {
		id := w.OwnerID()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
