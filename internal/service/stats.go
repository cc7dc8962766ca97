package service

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/domain/valueobject"
	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
)

// WithdrawalStats - сводка по заявкам на вывод.
//
// PendingAmount считает сумму заявок в статусе Processing: это деньги,
// которые уже взяты в работу, но ещё не выплачены.
type WithdrawalStats struct {
	TotalCount      int     `json:"total_count"`
	PendingAmount   float64 `json:"pending_amount"`
	CompletedAmount float64 `json:"completed_amount"`
}

// AggregateWithdrawalStats считает сводку по уже загруженным строкам.
// Нераспознанная сумма считается нулём и попадает в лог предупреждением.
func AggregateWithdrawalStats(rows []models.Withdrawal, log logrus.FieldLogger) WithdrawalStats {
	pending := decimal.Zero
	completed := decimal.Zero

	for _, w := range rows {
		switch valueobject.NormalizeStatus(w.Status) {
		case valueobject.StatusProcessing:
			pending = pending.Add(amountOrZero(w.ID.String(), w.Amount, log))
		case valueobject.StatusCompleted:
			completed = completed.Add(amountOrZero(w.ID.String(), w.Amount, log))
		}
	}

	return WithdrawalStats{
		TotalCount:      len(rows),
		PendingAmount:   pending.InexactFloat64(),
		CompletedAmount: completed.InexactFloat64(),
	}
}

// SumAmounts складывает суммы транзакций по тем же правилам разбора.
func SumAmounts(rows []models.Transaction, log logrus.FieldLogger) float64 {
	total := decimal.Zero
	for _, tx := range rows {
		total = total.Add(amountOrZero(tx.ID.String(), tx.Amount, log))
	}
	return total.InexactFloat64()
}

func amountOrZero(id string, amount models.Amount, log logrus.FieldLogger) decimal.Decimal {
	d, ok := amount.Decimal()
	if ok {
		return d
	}

	warning := apperror.DataQualityWarning{RecordID: id, RawAmount: amount.Raw}
	log.WithFields(logrus.Fields{
		"withdrawal_id": warning.RecordID,
		"raw_amount":    warning.RawAmount,
	}).Warn(warning.String())
	return decimal.Zero
}
