// Package catalog provides the products a fresh store starts with.
package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crediario/internal/commons"
	"crediario/internal/domain"
)

type entry struct {
	Name      string `yaml:"name"`
	Model     string `yaml:"model"`
	Size      string `yaml:"size"`
	Category  string `yaml:"category"`
	CostPrice string `yaml:"cost_price"`
	SalePrice string `yaml:"sale_price"`
	Stock     int    `yaml:"stock"`
}

type file struct {
	Products []entry `yaml:"products"`
}

var starter = []entry{
	{Name: "Blusa Gola V", Model: "Básica", Size: "M", Category: "Blusas", CostPrice: "25.00", SalePrice: "49.90", Stock: 10},
	{Name: "Calça Jeans Skinny", Model: "Levanta Bumbum", Size: "38", Category: "Calças", CostPrice: "45.00", SalePrice: "89.90", Stock: 12},
	{Name: "Cinto Couro", Model: "Fivela Dourada", Size: "Único", Category: "Acessórios", CostPrice: "12.00", SalePrice: "29.90", Stock: 8},
}

// Default returns the built-in starter catalog with fresh ids.
func Default() []domain.Product {
	products, err := toProducts(starter)
	if err != nil {
		panic(err)
	}
	return products
}

// Load returns the catalog described by the YAML file at path, or the
// built-in one when path is empty.
func Load(path string) ([]domain.Product, error) {
	if path == "" {
		return Default(), nil
	}

	var f file
	if err := commons.LoadYAML(path, &f); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	return toProducts(f.Products)
}

func toProducts(entries []entry) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d: name is required", i)
		}

		cost, err := decimal.NewFromString(e.CostPrice)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: cost_price: %w", i, err)
		}
		sale, err := decimal.NewFromString(e.SalePrice)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: sale_price: %w", i, err)
		}

		products = append(products, domain.Product{
			ID:        uuid.NewString(),
			Name:      e.Name,
			Model:     e.Model,
			Size:      e.Size,
			Category:  e.Category,
			CostPrice: cost,
			SalePrice: sale,
			Stock:     e.Stock,
		})
	}
	return products, nil
}
