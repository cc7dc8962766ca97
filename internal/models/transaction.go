package models

import "time"

// Transaction - запись из transaction_history. Только чтение.
type Transaction struct {
	ID              ID         `db:"id" json:"id"`
	UserID          *ID        `db:"user_id" json:"user_id,omitempty"`
	TransactionType string     `db:"transaction_type" json:"transaction_type"`
	Amount          Amount     `db:"amount" json:"amount"`
	CreatedAt       *time.Time `db:"created_at" json:"created_at"`
}
