package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Model     string          `json:"model"`
	Size      string          `json:"size"`
	Category  string          `json:"category"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int             `json:"stock"`
}

// StockValue is the product's on-hand stock priced at the sale price.
// Negative stock contributes a negative value.
func (p Product) StockValue() decimal.Decimal {
	return p.SalePrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}

func (p Product) StockCost() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}
