package report

import (
	"time"

	"crediario/internal/commons"
	creditrepo "crediario/internal/credit/repository"
	expenserepo "crediario/internal/expense/repository"
	productrepo "crediario/internal/product/repository"
	"crediario/internal/report/controller"
	"crediario/internal/report/service"
	salerepo "crediario/internal/sale/repository"
	"crediario/internal/store"
)

func NewModule(db *store.Store, rs *commons.Responder) *controller.Controller {
	svc := service.NewReportService(
		db,
		salerepo.NewKVSaleRepository(),
		expenserepo.NewKVRepository(),
		creditrepo.NewKVInstallmentRepository(),
		productrepo.NewKVRepository(),
		time.Now,
	)
	return controller.NewController(svc, rs)
}
