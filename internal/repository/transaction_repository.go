package repository

import (
	"context"
	"fmt"

	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/store"
)

// TransactionRepository читает transaction_history. Записи не изменяются.
type TransactionRepository struct {
	store store.Store
}

func NewTransactionRepository(s store.Store) *TransactionRepository {
	return &TransactionRepository{store: s}
}

// ListAmountsByType возвращает id и суммы транзакций указанного типа.
func (r *TransactionRepository) ListAmountsByType(ctx context.Context, txType string) ([]models.Transaction, error) {
	q := store.From(models.TableTransactionHistory, "id", "amount").
		Where(store.Eq("transaction_type", txType))

	var rows []models.Transaction
	if err := r.store.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("transaction repository: list amounts by type: %w", err)
	}
	return rows, nil
}
