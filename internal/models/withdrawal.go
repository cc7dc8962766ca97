package models

import (
	"time"
)

// WithdrawalColumns - колонки, которые читает список заявок.
var WithdrawalColumns = []string{
	"id", "user_id", "method_id", "amount", "status",
	"processed_at", "processed_by", "transaction_reference", "notes",
	"created_at", "updated_at",
}

// Withdrawal описывает заявку на вывод средств. Создаётся вне этой системы.
type Withdrawal struct {
	ID                   ID         `db:"id" json:"id"`
	UserID               *ID        `db:"user_id" json:"user_id"`
	MethodID             *ID        `db:"method_id" json:"method_id,omitempty"`
	Amount               Amount     `db:"amount" json:"amount"`
	Status               string     `db:"status" json:"status"`
	ProcessedAt          *time.Time `db:"processed_at" json:"processed_at,omitempty"`
	ProcessedBy          *string    `db:"processed_by" json:"processed_by,omitempty"`
	TransactionReference *string    `db:"transaction_reference" json:"transaction_reference,omitempty"`
	Notes                *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt            *time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	// User заполняется клиентским join по profiles и никогда не записывается.
	User *Profile `db:"-" json:"user"`
}

// OwnerID возвращает user_id или пустую строку.
func (w *Withdrawal) OwnerID() string {
	if w.UserID == nil {
		return ""
	}
	return w.UserID.String()
}
