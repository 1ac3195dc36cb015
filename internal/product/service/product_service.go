package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crediario/internal/domain"
	"crediario/internal/dto"
	apperrors "crediario/internal/errors"
	"crediario/internal/store"
)

type TransactionManager interface {
	Begin(ctx context.Context) (*store.Tx, error)
	BeginRead(ctx context.Context) (*store.Tx, error)
}

type ProductRepository interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Product, error)
	FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Product, error)
	Insert(ctx context.Context, tx *store.Tx, items ...domain.Product) error
	Update(ctx context.Context, tx *store.Tx, p domain.Product) error
	Delete(ctx context.Context, tx *store.Tx, id string) error
}

type ProductService struct {
	db        TransactionManager
	repo      ProductRepository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewProductService(db TransactionManager, repo ProductRepository, logger *zap.Logger, txTimeout time.Duration) *ProductService {
	return &ProductService{
		db:        db,
		repo:      repo,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return s.repo.List(ctx, tx)
}

func (s *ProductService) Add(ctx context.Context, req dto.AddProductRequest) (*domain.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := domain.Product{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Model:     strings.TrimSpace(req.Model),
		Size:      strings.TrimSpace(req.Size),
		Category:  strings.TrimSpace(req.Category),
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.Insert(txCtx, tx, product); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		s.logger.Error("failed to commit product", zap.String("productId", product.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product added", zap.String("productId", product.ID), zap.String("name", product.Name), zap.Int("stock", product.Stock))
	return &product, nil
}

// Update rewrites every editable field of a product under the same id.
// Sale items already recorded keep the unit price they were sold at.
func (s *ProductService) Update(ctx context.Context, id string, req dto.AddProductRequest) (*domain.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := s.repo.FindByID(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	product := domain.Product{
		ID:        current.ID,
		Name:      strings.TrimSpace(req.Name),
		Model:     strings.TrimSpace(req.Model),
		Size:      strings.TrimSpace(req.Size),
		Category:  strings.TrimSpace(req.Category),
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
	}

	if err := s.repo.Update(txCtx, tx, product); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		s.logger.Error("failed to commit product update", zap.String("productId", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product updated",
		zap.String("productId", id),
		zap.String("salePrice", product.SalePrice.StringFixed(2)),
		zap.Int("stock", product.Stock),
	)
	return &product, nil
}

// Delete removes a product from the catalog. Past sale items keep the
// product id and the unit price they were sold at.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.Begin(txCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.Delete(txCtx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		s.logger.Error("failed to commit product deletion", zap.String("productId", id), zap.Error(err))
		return err
	}

	s.logger.Info("product deleted", zap.String("productId", id))
	return nil
}

func (s *ProductService) Stats(ctx context.Context) (*dto.StockStats, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.StockStats{
		ProductCount: len(products),
		TotalCost:    decimal.Zero,
		TotalSale:    decimal.Zero,
	}
	for _, p := range products {
		stats.TotalItems += p.Stock
		stats.TotalCost = stats.TotalCost.Add(p.StockCost())
		stats.TotalSale = stats.TotalSale.Add(p.StockValue())
	}

	return stats, nil
}

// SeedIfEmpty stores catalog as the product collection when no product
// exists yet. It reports whether anything was written.
func (s *ProductService) SeedIfEmpty(ctx context.Context, catalog []domain.Product) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	existing, err := s.repo.List(ctx, tx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 || len(catalog) == 0 {
		return false, nil
	}

	if err := s.repo.Insert(ctx, tx, catalog...); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	s.logger.Info("product catalog seeded", zap.Int("productCount", len(catalog)))
	return true, nil
}

func validateProduct(req dto.AddProductRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !req.SalePrice.IsPositive() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "sale_price",
			Message: "sale_price must be greater than zero",
		})
	}

	if req.CostPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "cost_price",
			Message: "cost_price must be non-negative",
		})
	}

	if req.Stock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
