package usecase

import (
	"context"
	"strings"

	"crediario/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type SearchUseCase struct {
	service Service
}

func NewSearchUseCase(service Service) *SearchUseCase {
	return &SearchUseCase{service: service}
}

// SearchProducts returns the products whose name or model contains query,
// ignoring case. A blank query returns the whole catalog.
func (uc *SearchUseCase) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := uc.service.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products, nil
	}

	found := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) || strings.Contains(strings.ToLower(p.Model), query) {
			found = append(found, p)
		}
	}
	return found, nil
}
