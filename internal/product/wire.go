package product

import (
	"go.uber.org/zap"

	"crediario/internal/commons"
	"crediario/internal/config"
	"crediario/internal/product/controller"
	"crediario/internal/product/repository"
	"crediario/internal/product/service"
	"crediario/internal/product/usecase"
	"crediario/internal/store"
)

type Module struct {
	Controller *controller.Controller
	Service    *service.ProductService
}

func NewModule(db *store.Store, cfg *config.Config, rs *commons.Responder, logger *zap.Logger) *Module {
	repo := repository.NewKVRepository()
	svc := service.NewProductService(db, repo, logger, cfg.Store.TxTimeout)
	return &Module{
		Controller: controller.NewController(svc, usecase.NewSearchUseCase(svc), rs),
		Service:    svc,
	}
}
