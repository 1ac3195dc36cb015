package expense

import (
	"time"

	"go.uber.org/zap"

	"crediario/internal/commons"
	"crediario/internal/config"
	"crediario/internal/expense/controller"
	"crediario/internal/expense/repository"
	"crediario/internal/expense/service"
	"crediario/internal/store"
)

func NewModule(db *store.Store, cfg *config.Config, rs *commons.Responder, logger *zap.Logger) *controller.Controller {
	svc := service.NewExpenseService(db, repository.NewKVRepository(), logger, time.Now, cfg.Store.TxTimeout)
	return controller.NewController(svc, rs)
}
