package controller

import (
	"context"
	"net/http"

	"crediario/internal/commons"
	"crediario/internal/domain"
	"crediario/internal/dto"
)

type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Add(ctx context.Context, req dto.AddCustomerRequest) (*domain.Customer, error)
}

type Controller struct {
	svc CustomerService
	rs  *commons.Responder
}

func NewController(svc CustomerService, rs *commons.Responder) *Controller {
	return &Controller{svc: svc, rs: rs}
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	customers, err := c.svc.List(r.Context())
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, customers)
}

func (c *Controller) Add(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	var req dto.AddCustomerRequest
	if !c.rs.Decode(w, r, traceID, &req) {
		return
	}

	customer, err := c.svc.Add(r.Context(), req)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusCreated, customer)
}
