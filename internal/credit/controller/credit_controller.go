package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crediario/internal/commons"
	"crediario/internal/domain"
	"crediario/internal/dto"
)

type PaymentService interface {
	PayInstallment(ctx context.Context, id string, amount decimal.Decimal) (*domain.Installment, error)
}

type CreditService interface {
	ListInstallments(ctx context.Context, filter dto.InstallmentFilter) ([]domain.Installment, error)
	Summary(ctx context.Context) (*dto.CreditSummary, error)
}

type Controller struct {
	payments PaymentService
	credit   CreditService
	rs       *commons.Responder
}

func NewController(payments PaymentService, credit CreditService, rs *commons.Responder) *Controller {
	return &Controller{payments: payments, credit: credit, rs: rs}
}

// List accepts optional status and customerId query parameters.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	q := r.URL.Query()
	filter := dto.InstallmentFilter{
		Status:     domain.InstallmentStatus(q.Get("status")),
		CustomerID: q.Get("customerId"),
	}

	installments, err := c.credit.ListInstallments(r.Context(), filter)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, installments)
}

func (c *Controller) Summary(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	summary, err := c.credit.Summary(r.Context())
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, summary)
}

func (c *Controller) Pay(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()
	installmentID := chi.URLParam(r, "installmentId")
	logger = logger.With(zap.String("installmentId", installmentID))

	var req dto.PayInstallmentRequest
	if !c.rs.Decode(w, r, traceID, &req) {
		return
	}

	installment, err := c.payments.PayInstallment(r.Context(), installmentID, req.Amount)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, installment)
}
