package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crediario/internal/domain"
	"crediario/internal/dto"
	apperrors "crediario/internal/errors"
)

const testMaxInstallments = 6

type mockSaleService struct {
	CreateSaleFunc func(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error)
}

func (m *mockSaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error) {
	return m.CreateSaleFunc(ctx, req)
}

func newTestCreateSaleUseCase(svc SaleService) *CreateSaleUseCase {
	return NewCreateSaleUseCase(svc, zap.NewNop(), testMaxInstallments)
}

func ptr[T any](v T) *T { return &v }

func TestCreateSale_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.CreateSaleRequest
		field string
	}{
		{
			name:  "empty cart",
			req:   dto.CreateSaleRequest{PaymentMethod: domain.PaymentCash},
			field: "items",
		},
		{
			name: "blank product id",
			req: dto.CreateSaleRequest{
				Items:         []dto.CartItem{{ProductID: "  ", Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
			},
			field: "items[0].product_id",
		},
		{
			name: "zero quantity",
			req: dto.CreateSaleRequest{
				Items:         []dto.CartItem{{ProductID: "p1", Quantity: 0}},
				PaymentMethod: domain.PaymentCash,
			},
			field: "items[0].quantity",
		},
		{
			name: "unknown payment method",
			req: dto.CreateSaleRequest{
				Items:         []dto.CartItem{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: "BOLETO",
			},
			field: "payment_method",
		},
		{
			name: "installment without customer",
			req: dto.CreateSaleRequest{
				Items:             []dto.CartItem{{ProductID: "p1", Quantity: 1}},
				PaymentMethod:     domain.PaymentInstallment,
				InstallmentsCount: ptr(2),
			},
			field: "customer_id",
		},
		{
			name: "installment with blank customer",
			req: dto.CreateSaleRequest{
				CustomerID:        ptr(" "),
				Items:             []dto.CartItem{{ProductID: "p1", Quantity: 1}},
				PaymentMethod:     domain.PaymentInstallment,
				InstallmentsCount: ptr(2),
			},
			field: "customer_id",
		},
		{
			name: "installment without count",
			req: dto.CreateSaleRequest{
				CustomerID:    ptr("c1"),
				Items:         []dto.CartItem{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: domain.PaymentInstallment,
			},
			field: "installments_count",
		},
		{
			name: "installment with zero count",
			req: dto.CreateSaleRequest{
				CustomerID:        ptr("c1"),
				Items:             []dto.CartItem{{ProductID: "p1", Quantity: 1}},
				PaymentMethod:     domain.PaymentInstallment,
				InstallmentsCount: ptr(0),
			},
			field: "installments_count",
		},
		{
			name: "installment count above the maximum",
			req: dto.CreateSaleRequest{
				CustomerID:        ptr("c1"),
				Items:             []dto.CartItem{{ProductID: "p1", Quantity: 1}},
				PaymentMethod:     domain.PaymentInstallment,
				InstallmentsCount: ptr(testMaxInstallments + 1),
			},
			field: "installments_count",
		},
		{
			name: "installment count too large to allocate",
			req: dto.CreateSaleRequest{
				CustomerID:        ptr("c1"),
				Items:             []dto.CartItem{{ProductID: "p1", Quantity: 1}},
				PaymentMethod:     domain.PaymentInstallment,
				InstallmentsCount: ptr(1 << 62),
			},
			field: "installments_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &mockSaleService{
				CreateSaleFunc: func(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error) {
					called = true
					return &dto.SaleDetail{}, nil
				},
			}
			uc := newTestCreateSaleUseCase(svc)

			_, err := uc.CreateSale(context.Background(), tt.req)

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			fields := make([]string, 0, len(ve.Details))
			for _, d := range ve.Details {
				fields = append(fields, d.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.False(t, called, "service must not be reached")
		})
	}
}

func TestCreateSale_ReportsEveryInvalidField(t *testing.T) {
	uc := newTestCreateSaleUseCase(&mockSaleService{})

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:             []dto.CartItem{{ProductID: "p1", Quantity: 0}, {ProductID: "", Quantity: 1}},
		PaymentMethod:     domain.PaymentInstallment,
		InstallmentsCount: ptr(0),
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 4)
}

func TestCreateSale_ItemsSortedByProductID(t *testing.T) {
	var received dto.CreateSaleRequest
	svc := &mockSaleService{
		CreateSaleFunc: func(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error) {
			received = req
			return &dto.SaleDetail{}, nil
		},
	}
	uc := newTestCreateSaleUseCase(svc)

	items := []dto.CartItem{
		{ProductID: "p3", Quantity: 1},
		{ProductID: " p1 ", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	}
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:         items,
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	require.Len(t, received.Items, 3)
	assert.Equal(t, dto.CartItem{ProductID: "p1", Quantity: 2}, received.Items[0])
	assert.Equal(t, dto.CartItem{ProductID: "p2", Quantity: 3}, received.Items[1])
	assert.Equal(t, dto.CartItem{ProductID: "p3", Quantity: 1}, received.Items[2])
	assert.Equal(t, "p3", items[0].ProductID, "caller's cart is left untouched")
}

func TestCreateSale_ShapesRequest(t *testing.T) {
	var received dto.CreateSaleRequest
	svc := &mockSaleService{
		CreateSaleFunc: func(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error) {
			received = req
			return &dto.SaleDetail{}, nil
		},
	}
	uc := newTestCreateSaleUseCase(svc)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID:        ptr(""),
		Items:             []dto.CartItem{{ProductID: "p1", Quantity: 1}},
		PaymentMethod:     domain.PaymentPix,
		InstallmentsCount: ptr(4),
	})
	require.NoError(t, err)
	assert.Nil(t, received.CustomerID)
	assert.Nil(t, received.InstallmentsCount)

	_, err = uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID:        ptr(" c1 "),
		Items:             []dto.CartItem{{ProductID: "p1", Quantity: 1}},
		PaymentMethod:     domain.PaymentInstallment,
		InstallmentsCount: ptr(testMaxInstallments),
	})
	require.NoError(t, err)
	require.NotNil(t, received.CustomerID)
	assert.Equal(t, "c1", *received.CustomerID)
	require.NotNil(t, received.InstallmentsCount)
	assert.Equal(t, testMaxInstallments, *received.InstallmentsCount)
}

func TestCreateSale_ServiceErrorPassesThrough(t *testing.T) {
	svcErr := apperrors.NewNotFoundError("product not found")
	svc := &mockSaleService{
		CreateSaleFunc: func(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error) {
			return nil, svcErr
		},
	}
	uc := newTestCreateSaleUseCase(svc)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.CartItem{{ProductID: "ghost", Quantity: 1}},
		PaymentMethod: domain.PaymentCash,
	})
	assert.True(t, errors.Is(err, svcErr))
}
