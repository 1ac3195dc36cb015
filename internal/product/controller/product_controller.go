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

type ProductService interface {
	Add(ctx context.Context, req dto.AddProductRequest) (*domain.Product, error)
	Update(ctx context.Context, id string, req dto.AddProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.StockStats, error)
}

type SearchUseCase interface {
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

type Controller struct {
	svc    ProductService
	search SearchUseCase
	rs     *commons.Responder
}

func NewController(svc ProductService, search SearchUseCase, rs *commons.Responder) *Controller {
	return &Controller{svc: svc, search: search, rs: rs}
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	products, err := c.search.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, products)
}

func (c *Controller) Add(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	var req dto.AddProductRequest
	if !c.rs.Decode(w, r, traceID, &req) {
		return
	}

	product, err := c.svc.Add(r.Context(), req)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusCreated, product)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()
	productID := chi.URLParam(r, "productId")

	var req dto.AddProductRequest
	if !c.rs.Decode(w, r, traceID, &req) {
		return
	}

	product, err := c.svc.Update(r.Context(), productID, req)
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger.With(zap.String("productId", productID)))
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, product)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()
	productID := chi.URLParam(r, "productId")

	if err := c.svc.Delete(r.Context(), productID); err != nil {
		c.rs.WriteError(w, traceID, err, logger.With(zap.String("productId", productID)))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) Stats(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	stats, err := c.svc.Stats(r.Context())
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, stats)
}
