package dto

// TransitionRequest - тело PATCH /api/withdrawals/:id/status.
type TransitionRequest struct {
	Status               string `json:"status" binding:"required,withdrawal_status"`
	TransactionReference string `json:"transaction_reference"`
	Notes                string `json:"notes"`
}

// UserStatusRequest - тело PATCH /api/users/:id/status.
type UserStatusRequest struct {
	Status string `json:"status" binding:"required,user_status"`
}
