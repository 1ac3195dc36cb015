package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"crediario/internal/commons"
	"crediario/internal/domain"
	"crediario/internal/dto"
)

type CreateSaleUseCase interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleDetail, error)
}

type SaleService interface {
	List(ctx context.Context) ([]domain.Sale, error)
	Get(ctx context.Context, id string) (*dto.SaleDetail, error)
}

type Controller struct {
	create CreateSaleUseCase
	svc    SaleService
	rs     *commons.Responder
}

func NewController(create CreateSaleUseCase, svc SaleService, rs *commons.Responder) *Controller {
	return &Controller{create: create, svc: svc, rs: rs}
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	var req dto.CreateSaleRequest
	if !c.rs.Decode(w, r, traceID, &req) {
		return
	}

	detail, err := c.create.CreateSale(r.Context(), req)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusCreated, detail)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	sales, err := c.svc.List(r.Context())
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, sales)
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()
	saleID := chi.URLParam(r, "saleId")

	detail, err := c.svc.Get(r.Context(), saleID)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger.With(zap.String("saleId", saleID)))
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, detail)
}
