package credit

import (
	"time"

	"go.uber.org/zap"

	"crediario/internal/commons"
	"crediario/internal/config"
	"crediario/internal/credit/controller"
	"crediario/internal/credit/repository"
	"crediario/internal/credit/service"
	customerrepo "crediario/internal/customer/repository"
	customersvc "crediario/internal/customer/service"
	"crediario/internal/store"
)

func NewModule(db *store.Store, cfg *config.Config, rs *commons.Responder, logger *zap.Logger) *controller.Controller {
	repo := repository.NewKVInstallmentRepository()
	aggregates := customersvc.NewAggregateUpdater(customerrepo.NewKVRepository())

	payments := service.NewPaymentService(db, repo, aggregates, logger, time.Now, cfg.Store.TxTimeout)
	credit := service.NewCreditService(db, repo, time.Now)

	return controller.NewController(payments, credit, rs)
}
