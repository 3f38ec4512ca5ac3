package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodshare/internal/bootstrap"
	"foodshare/internal/config"
	"foodshare/internal/routes"
	"foodshare/internal/services"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(&cfg.Log); err != nil {
		panic(err)
	}
	defer utils.CloseLogger()
	logger := utils.GetLogger()

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := services.NewDatabase(cfg)
	if err != nil {
		logger.Fatal("database connection failed", "error", err.Error())
	}

	ctn, err := bootstrap.New(ctx, cfg, db)
	if err != nil {
		_ = db.Close()
		logger.Fatal("startup failed", "error", err.Error())
	}
	defer ctn.Close()

	if err := ctn.Reaper.Start(); err != nil {
		logger.Fatal("session reaper failed to start", "error", err.Error())
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           routes.SetupRoutes(cfg, ctn),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err.Error())
	}
}
