package dto

import "crediario/internal/domain"

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateSaleRequest struct {
	CustomerID        *string              `json:"customer_id,omitempty"`
	Items             []CartItem           `json:"items"`
	PaymentMethod     domain.PaymentMethod `json:"payment_method"`
	InstallmentsCount *int                 `json:"installments_count,omitempty"`
}

type SaleDetail struct {
	Sale         domain.Sale          `json:"sale"`
	Items        []domain.SaleItem    `json:"items"`
	Installments []domain.Installment `json:"installments"`
}
