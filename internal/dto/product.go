package dto

import "github.com/shopspring/decimal"

type AddProductRequest struct {
	Name      string          `json:"name"`
	Model     string          `json:"model"`
	Size      string          `json:"size"`
	Category  string          `json:"category"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int             `json:"stock"`
}

type StockStats struct {
	ProductCount int             `json:"product_count"`
	TotalItems   int             `json:"total_items"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalSale    decimal.Decimal `json:"total_sale"`
}
