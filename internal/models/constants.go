package models

// Таблицы удалённого хранилища.
const (
	TableWithdrawalRequests = "withdrawal_requests"
	TableUsers              = "users"
	TableProfiles           = "profiles"
	TableTransactionHistory = "transaction_history"
)

// Статусы пользователей.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ValidUserStatuses список допустимых статусов пользователя.
var ValidUserStatuses = map[string]struct{}{
	UserStatusActive:   {},
	UserStatusInactive: {},
}

// TransactionTypeDeposit тип транзакции пополнения.
const TransactionTypeDeposit = "deposit"
