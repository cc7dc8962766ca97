package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/store"
	"github.com/ignatzorin/payout-admin/internal/store/memstore"
)

func seedUsers() *memstore.Store {
	return memstore.New().Seed(models.TableUsers,
		memstore.Row{"id": "u1", "name": "Alice", "email": "alice@example.com", "status": "active", "created_at": "2024-01-01T00:00:00Z"},
		memstore.Row{"id": "u2", "name": nil, "email": "bob@example.com", "status": "inactive", "created_at": "2024-02-01T00:00:00Z"},
		memstore.Row{"id": "u3", "name": "Carol", "email": nil, "status": "active", "created_at": "2024-03-01T00:00:00Z"},
	)
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(seedUsers())

	all, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "u3", all[0].ID.String())
	assert.Nil(t, all[1].Name)

	active, err := repo.List(context.Background(), models.UserStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestUserRepository_Count(t *testing.T) {
	n, err := NewUserRepository(seedUsers()).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUserRepository_UpdateStatus(t *testing.T) {
	s := seedUsers()
	repo := NewUserRepository(s)

	u, err := repo.UpdateStatus(context.Background(), "u2", models.UserStatusActive, map[string]any{"updated_at": "2024-04-01T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, u.Status)
	require.NotNil(t, u.UpdatedAt)

	calls := s.Calls()
	assert.Equal(t, "u2", calls[0].ID)
	assert.Equal(t, models.UserStatusActive, calls[0].Fields["status"])

	_, err = repo.UpdateStatus(context.Background(), "nope", models.UserStatusActive, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTransactionRepository_ListAmountsByType(t *testing.T) {
	s := memstore.New().Seed(models.TableTransactionHistory,
		memstore.Row{"id": "t1", "transaction_type": "deposit", "amount": "100.50"},
		memstore.Row{"id": "t2", "transaction_type": "withdrawal", "amount": 40},
		memstore.Row{"id": "t3", "transaction_type": "deposit", "amount": 9.5},
	)

	rows, err := NewTransactionRepository(s).ListAmountsByType(context.Background(), models.TransactionTypeDeposit)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 100.5, rows[0].Amount.Float64())
	assert.Equal(t, 9.5, rows[1].Amount.Float64())
}

func TestProfileRepository_ByIDsEmptySkipsStore(t *testing.T) {
	s := memstore.New()
	out, err := NewProfileRepository(s).ByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, s.Calls())
}
