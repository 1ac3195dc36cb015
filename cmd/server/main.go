package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"crediario/internal/catalog"
	"crediario/internal/commons"
	"crediario/internal/config"
	"crediario/internal/credit"
	"crediario/internal/customer"
	"crediario/internal/expense"
	"crediario/internal/infrastructure/logger"
	"crediario/internal/infrastructure/substrate"
	"crediario/internal/product"
	"crediario/internal/report"
	"crediario/internal/sale"
	"crediario/internal/server"
	"crediario/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	backend, closeBackend, err := substrate.Open(startCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("opening store backend", zap.Error(err))
	}
	defer closeBackend()

	db := store.New(backend, zapLogger)
	if err := db.Open(startCtx); err != nil {
		zapLogger.Fatal("recovering store", zap.Error(err))
	}
	zapLogger.Info("store opened", zap.String("driver", cfg.Store.Driver))

	rs := commons.NewResponder(zapLogger)
	productModule := product.NewModule(db, cfg, rs, zapLogger)

	products, err := catalog.Load(cfg.Store.CatalogSeedFile)
	if err != nil {
		zapLogger.Fatal("loading seed catalog", zap.Error(err))
	}
	if _, err := productModule.Service.SeedIfEmpty(startCtx, products); err != nil {
		zapLogger.Fatal("seeding catalog", zap.Error(err))
	}

	router := server.NewRouter(server.Controllers{
		Products:  productModule.Controller,
		Customers: customer.NewModule(db, cfg, rs, zapLogger),
		Sales:     sale.NewModule(db, cfg, rs, zapLogger),
		Credit:    credit.NewModule(db, cfg, rs, zapLogger),
		Expenses:  expense.NewModule(db, cfg, rs, zapLogger),
		Reports:   report.NewModule(db, rs),
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
