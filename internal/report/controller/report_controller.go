package controller

import (
	"context"
	"net/http"

	"crediario/internal/commons"
	"crediario/internal/dto"
)

type ReportService interface {
	Dashboard(ctx context.Context) (*dto.Dashboard, error)
	Monthly(ctx context.Context) (*dto.MonthlyReport, error)
}

type Controller struct {
	svc ReportService
	rs  *commons.Responder
}

func NewController(svc ReportService, rs *commons.Responder) *Controller {
	return &Controller{svc: svc, rs: rs}
}

func (c *Controller) Dashboard(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	d, err := c.svc.Dashboard(r.Context())
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, d)
}

func (c *Controller) Monthly(w http.ResponseWriter, r *http.Request) {
	traceID, logger := c.rs.Trace()

	m, err := c.svc.Monthly(r.Context())
	if err != nil {
		c.rs.WriteError(w, traceID, err, logger)
		return
	}

	c.rs.WriteJSON(w, http.StatusOK, m)
}
