package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	creditctrl "crediario/internal/credit/controller"
	customerctrl "crediario/internal/customer/controller"
	expensectrl "crediario/internal/expense/controller"
	productctrl "crediario/internal/product/controller"
	reportctrl "crediario/internal/report/controller"
	salectrl "crediario/internal/sale/controller"
)

type Controllers struct {
	Products  *productctrl.Controller
	Customers *customerctrl.Controller
	Sales     *salectrl.Controller
	Credit    *creditctrl.Controller
	Expenses  *expensectrl.Controller
	Reports   *reportctrl.Controller
}

func NewRouter(c Controllers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", c.Products.List)
		r.Post("/", c.Products.Add)
		r.Get("/stats", c.Products.Stats)
		r.Put("/{productId}", c.Products.Update)
		r.Delete("/{productId}", c.Products.Delete)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", c.Customers.List)
		r.Post("/", c.Customers.Add)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/", c.Sales.List)
		r.Post("/", c.Sales.Create)
		r.Get("/{saleId}", c.Sales.Get)
	})

	r.Route("/installments", func(r chi.Router) {
		r.Get("/", c.Credit.List)
		r.Get("/summary", c.Credit.Summary)
		r.Post("/{installmentId}/pay", c.Credit.Pay)
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", c.Expenses.List)
		r.Post("/", c.Expenses.Add)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", c.Reports.Dashboard)
		r.Get("/monthly", c.Reports.Monthly)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
