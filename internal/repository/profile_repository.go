package repository

import (
	"context"
	"fmt"

	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/store"
)

// ProfileRepository читает таблицу profiles.
type ProfileRepository struct {
	store store.Store
}

func NewProfileRepository(s store.Store) *ProfileRepository {
	return &ProfileRepository{store: s}
}

// ByIDs загружает профили одним запросом id IN (...) и возвращает их по id.
func (r *ProfileRepository) ByIDs(ctx context.Context, ids []string) (map[string]models.Profile, error) {
	out := make(map[string]models.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.Profile
	q := store.From(models.TableProfiles, models.ProfileColumns...).Where(store.In("id", ids))
	if err := r.store.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("profile repository: by ids: %w", err)
	}

	for _, p := range rows {
		out[p.ID.String()] = p
	}
	return out, nil
}
