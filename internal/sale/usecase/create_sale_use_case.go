package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"crediario/internal/domain"
	"crediario/internal/dto"
	apperrors "crediario/internal/errors"
)

type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error)
}

type CreateSaleUseCase struct {
	svc             SaleService
	logger          *zap.Logger
	maxInstallments int
}

func NewCreateSaleUseCase(svc SaleService, logger *zap.Logger, maxInstallments int) *CreateSaleUseCase {
	return &CreateSaleUseCase{svc: svc, logger: logger, maxInstallments: maxInstallments}
}

// CreateSale checks the cart outside any transaction, shapes it and hands it
// to the service. Nothing is read or written when validation fails.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error) {
	req = shapeSale(req)

	if err := validateSale(req, uc.maxInstallments); err != nil {
		uc.logger.Warn("create sale rejected", zap.String("paymentMethod", string(req.PaymentMethod)), zap.Error(err))
		return nil, err
	}

	// Product id order keeps the staged writes in the same order for the same cart.
	sort.SliceStable(req.Items, func(i, j int) bool { return req.Items[i].ProductID < req.Items[j].ProductID })

	return uc.svc.CreateSale(ctx, req)
}

// shapeSale returns a copy of req with ids trimmed, a blank customer dropped
// and the installment count cleared for anything but a credit sale.
func shapeSale(req dto.CreateSaleRequest) dto.CreateSaleRequest {
	items := make([]dto.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = dto.CartItem{ProductID: strings.TrimSpace(item.ProductID), Quantity: item.Quantity}
	}
	req.Items = items

	if req.CustomerID != nil {
		id := strings.TrimSpace(*req.CustomerID)
		if id == "" {
			req.CustomerID = nil
		} else {
			req.CustomerID = &id
		}
	}

	if req.PaymentMethod != domain.PaymentInstallment {
		req.InstallmentsCount = nil
	}
	return req
}

func validateSale(req dto.CreateSaleRequest, maxInstallments int) error {
	var details []apperrors.ValidationDetail

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "items", Message: "cart must not be empty"})
	}
	for i, item := range req.Items {
		if item.ProductID == "" {
			details = append(details, apperrors.ValidationDetail{Field: fmt.Sprintf("items[%d].product_id", i), Message: "product_id is required"})
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be at least 1"})
		}
	}

	if !req.PaymentMethod.Valid() {
		details = append(details, apperrors.ValidationDetail{Field: "payment_method", Message: fmt.Sprintf("unknown payment method %q", req.PaymentMethod)})
	}

	if req.PaymentMethod == domain.PaymentInstallment {
		if req.CustomerID == nil {
			details = append(details, apperrors.ValidationDetail{Field: "customer_id", Message: "an installment sale requires a customer"})
		}
		if req.InstallmentsCount == nil || *req.InstallmentsCount < 1 || *req.InstallmentsCount > maxInstallments {
			details = append(details, apperrors.ValidationDetail{
				Field:   "installments_count",
				Message: fmt.Sprintf("installments_count must be between 1 and %d", maxInstallments),
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
