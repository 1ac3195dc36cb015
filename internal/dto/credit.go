package dto

import (
	"github.com/shopspring/decimal"

	"crediario/internal/domain"
)

type PayInstallmentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// InstallmentFilter selects installments by resolved status and customer.
// Empty fields match everything.
type InstallmentFilter struct {
	Status     domain.InstallmentStatus
	CustomerID string
}

type CreditSummary struct {
	TotalPending decimal.Decimal `json:"total_pending"`
	TotalOverdue decimal.Decimal `json:"total_overdue"`
	OverdueCount int             `json:"overdue_count"`
}
