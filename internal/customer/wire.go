package customer

import (
	"time"

	"go.uber.org/zap"

	"crediario/internal/commons"
	"crediario/internal/config"
	"crediario/internal/customer/controller"
	"crediario/internal/customer/repository"
	"crediario/internal/customer/service"
	"crediario/internal/store"
)

func NewModule(db *store.Store, cfg *config.Config, rs *commons.Responder, logger *zap.Logger) *controller.Controller {
	repo := repository.NewKVRepository()
	svc := service.NewCustomerService(db, repo, logger, time.Now, cfg.Store.TxTimeout)
	return controller.NewController(svc, rs)
}
