package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediario/internal/domain"
)

type mockService struct {
	ListFunc func(ctx context.Context) ([]domain.Product, error)
}

func (m *mockService) List(ctx context.Context) ([]domain.Product, error) {
	return m.ListFunc(ctx)
}

func catalogService() *mockService {
	return &mockService{
		ListFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: "1", Name: "Blusa Gola V", Model: "Básica"},
				{ID: "2", Name: "Calça Jeans", Model: "Skinny"},
				{ID: "3", Name: "Vestido Floral", Model: "Midi"},
			}, nil
		},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSearchProducts(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank query returns everything", "  ", []string{"1", "2", "3"}},
		{"matches name ignoring case", "JEANS", []string{"2"}},
		{"matches model", "midi", []string{"3"}},
		{"matches inside words", "a", []string{"1", "2", "3"}},
		{"matches accented text", "básica", []string{"1"}},
		{"no match", "casaco", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewSearchUseCase(catalogService())

			got, err := uc.SearchProducts(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearchProducts_ServiceError(t *testing.T) {
	listErr := errors.New("store unavailable")
	uc := NewSearchUseCase(&mockService{
		ListFunc: func(ctx context.Context) ([]domain.Product, error) { return nil, listErr },
	})

	_, err := uc.SearchProducts(context.Background(), "blusa")
	assert.ErrorIs(t, err, listErr)
}
