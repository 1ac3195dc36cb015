package service

import (
	"context"
	"fmt"
	"sort"
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

type SaleRepository interface {
	List(ctx context.Context, tx *store.Tx) ([]domain.Sale, error)
	FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Sale, error)
	Insert(ctx context.Context, tx *store.Tx, s domain.Sale) error
}

type SaleItemRepository interface {
	FindBySaleID(ctx context.Context, tx *store.Tx, saleID string) ([]domain.SaleItem, error)
	InsertMany(ctx context.Context, tx *store.Tx, items []domain.SaleItem) error
}

type InstallmentRepository interface {
	FindBySaleID(ctx context.Context, tx *store.Tx, saleID string) ([]domain.Installment, error)
	InsertMany(ctx context.Context, tx *store.Tx, items []domain.Installment) error
}

type ProductReader interface {
	FindByID(ctx context.Context, tx *store.Tx, id string) (*domain.Product, error)
}

type StockAdjuster interface {
	AdjustStock(ctx context.Context, tx *store.Tx, productID string, delta int) (*domain.Product, error)
}

type CustomerAggregates interface {
	AddToBought(ctx context.Context, tx *store.Tx, customerID string, amount decimal.Decimal) (*domain.Customer, error)
}

type SaleService struct {
	db           TransactionManager
	sales        SaleRepository
	items        SaleItemRepository
	installments InstallmentRepository
	products     ProductReader
	stock        StockAdjuster
	customers    CustomerAggregates
	scheduler    *Scheduler
	logger       *zap.Logger
	now          func() time.Time
	txTimeout    time.Duration
	strictStock  bool
}

type SaleServiceDeps struct {
	DB           TransactionManager
	Sales        SaleRepository
	Items        SaleItemRepository
	Installments InstallmentRepository
	Products     ProductReader
	Stock        StockAdjuster
	Customers    CustomerAggregates
}

func NewSaleService(deps SaleServiceDeps, logger *zap.Logger, now func() time.Time, txTimeout time.Duration, strictStock bool, maxInstallments int) *SaleService {
	return &SaleService{
		db:           deps.DB,
		sales:        deps.Sales,
		items:        deps.Items,
		installments: deps.Installments,
		products:     deps.Products,
		stock:        deps.Stock,
		customers:    deps.Customers,
		scheduler:    NewScheduler(now, maxInstallments),
		logger:       logger,
		now:          now,
		txTimeout:    txTimeout,
		strictStock:  strictStock,
	}
}

// CreateSale records a sale and every consequence of it in one transaction:
// the sale, its items at current sale prices, the installment schedule for
// credit sales, the stock decrements and the customer's purchase total.
// Either all of it is persisted or none of it. The cart is expected to have
// passed the create sale use case.
func (s *SaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error) {
	if err := checkCreditTerms(req); err != nil {
		return nil, err
	}

	s.logger.Info("create sale started", zap.String("paymentMethod", string(req.PaymentMethod)), zap.Int("itemCount", len(req.Items)))

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	customerID := req.CustomerID
	if customerID != nil && *customerID == "" {
		customerID = nil
	}

	now := s.now().UTC()
	sale := domain.Sale{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		Date:          now,
		PaymentMethod: req.PaymentMethod,
	}

	requested := make(map[string]int, len(req.Items))
	items := make([]domain.SaleItem, 0, len(req.Items))
	total := decimal.Zero
	for _, ci := range req.Items {
		product, err := s.products.FindByID(txCtx, tx, ci.ProductID)
		if err != nil {
			return nil, err
		}

		requested[ci.ProductID] += ci.Quantity
		if s.strictStock && requested[ci.ProductID] > product.Stock {
			return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "items",
				Message: fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", product.ID, requested[ci.ProductID], product.Stock),
			})
		}

		item := domain.SaleItem{
			ID:        uuid.NewString(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  ci.Quantity,
			UnitPrice: product.SalePrice,
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}
	sale.TotalValue = total

	var installments []domain.Installment
	if sale.PaymentMethod == domain.PaymentInstallment {
		count := *req.InstallmentsCount
		sale.InstallmentsCount = &count

		installments, err = s.scheduler.ScheduleFrom(sale.ID, *customerID, total, count, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.sales.Insert(txCtx, tx, sale); err != nil {
		return nil, err
	}
	if err := s.items.InsertMany(txCtx, tx, items); err != nil {
		return nil, err
	}
	if len(installments) > 0 {
		if err := s.installments.InsertMany(txCtx, tx, installments); err != nil {
			return nil, err
		}
	}

	// Adjust in product id order so the staged writes are deterministic.
	productIDs := make([]string, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)
	for _, id := range productIDs {
		product, err := s.stock.AdjustStock(txCtx, tx, id, -requested[id])
		if err != nil {
			return nil, err
		}
		if product.Stock < 0 {
			s.logger.Warn("stock went negative", zap.String("saleId", sale.ID), zap.String("productId", id), zap.Int("stock", product.Stock))
		}
	}

	if sale.CustomerID != nil {
		if _, err := s.customers.AddToBought(txCtx, tx, *sale.CustomerID, total); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		s.logger.Error("failed to commit sale", zap.String("saleId", sale.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("saleId", sale.ID),
		zap.String("total", total.StringFixed(2)),
		zap.Int("installments", len(installments)),
	)

	if installments == nil {
		installments = []domain.Installment{}
	}
	return &dto.SaleDetail{Sale: sale, Items: items, Installments: installments}, nil
}

// List returns every sale, most recent first.
func (s *SaleService) List(ctx context.Context) ([]domain.Sale, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	sales, err := s.sales.List(ctx, tx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })
	return sales, nil
}

// Get returns a sale with its items and its installments as of now.
func (s *SaleService) Get(ctx context.Context, id string) (*dto.SaleDetail, error) {
	tx, err := s.db.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	sale, err := s.sales.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindBySaleID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	installments, err := s.installments.FindBySaleID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resolved := make([]domain.Installment, 0, len(installments))
	for _, inst := range installments {
		resolved = append(resolved, inst.Resolve(now))
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Number < resolved[j].Number })

	if items == nil {
		items = []domain.SaleItem{}
	}
	return &dto.SaleDetail{Sale: *sale, Items: items, Installments: resolved}, nil
}

// checkCreditTerms rejects a credit sale the scheduler cannot be handed.
// The count bound itself is enforced by the scheduler.
func checkCreditTerms(req dto.CreateSaleRequest) error {
	if req.PaymentMethod != domain.PaymentInstallment {
		return nil
	}

	var details []apperrors.ValidationDetail
	if req.CustomerID == nil || *req.CustomerID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "customer_id", Message: "an installment sale requires a customer"})
	}
	if req.InstallmentsCount == nil {
		details = append(details, apperrors.ValidationDetail{Field: "installments_count", Message: "installments_count is required"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
