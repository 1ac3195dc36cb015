package sale

import (
	"time"

	"go.uber.org/zap"

	"crediario/internal/commons"
	"crediario/internal/config"
	creditrepo "crediario/internal/credit/repository"
	customerrepo "crediario/internal/customer/repository"
	customersvc "crediario/internal/customer/service"
	productrepo "crediario/internal/product/repository"
	productsvc "crediario/internal/product/service"
	"crediario/internal/sale/controller"
	"crediario/internal/sale/repository"
	"crediario/internal/sale/service"
	"crediario/internal/sale/usecase"
	"crediario/internal/store"
)

func NewModule(db *store.Store, cfg *config.Config, rs *commons.Responder, logger *zap.Logger) *controller.Controller {
	productRepo := productrepo.NewKVRepository()

	svc := service.NewSaleService(service.SaleServiceDeps{
		DB:           db,
		Sales:        repository.NewKVSaleRepository(),
		Items:        repository.NewKVSaleItemRepository(),
		Installments: creditrepo.NewKVInstallmentRepository(),
		Products:     productRepo,
		Stock:        productsvc.NewStockAdjuster(productRepo),
		Customers:    customersvc.NewAggregateUpdater(customerrepo.NewKVRepository()),
	}, logger, time.Now, cfg.Store.TxTimeout, cfg.Store.StrictStock, cfg.Sale.MaxInstallments)

	create := usecase.NewCreateSaleUseCase(svc, logger, cfg.Sale.MaxInstallments)
	return controller.NewController(create, svc, rs)
}
