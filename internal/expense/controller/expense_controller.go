package controller

import (
	"context"
	"net/http"

	"crediario/internal/commons"
	"crediario/internal/domain"
	"crediario/internal/dto"
)

type ExpenseService interface {
	List(ctx context.Context) ([]domain.Expense, error)
	Add(ctx context.Context, req dto.AddExpenseRequest) (*domain.Expense, error)
}

type Controller struct {
	svc ExpenseService
	rs  *commons.Responder
}

func NewController(svc ExpenseService, rs *commons.Responder) *Controller {
	return &Controller{svc: svc, rs: rs}
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	expenses, err := c.svc.List(r.Context())
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, expenses)
}

func (c *Controller) Add(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	var req dto.AddExpenseRequest
	if !c.rs.Decode(w, r, traceID, &req) {
		return
	}

	expense, err := c.svc.Add(r.Context(), req)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusCreated, expense)
}
