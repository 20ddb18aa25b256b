package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"securecheck/handlers"
	"securecheck/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	store := services.NewStore(services.NewDialer(cfg.Database), logger)
	// One probe so a bad DSN shows up in the logs at start; the dashboard
	// itself keeps running and shows "no data" until the database is back.
	if _, err := store.Query(ctx, "SELECT 1"); err != nil {
		logger.Warn("database not reachable at startup", zap.Error(err))
	} else {
		logger.Info("database reachable", zap.String("driver", cfg.Database.Driver))
	}

	bus, err := services.NewRedisBus(cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, live feed disabled", zap.Error(err))
	}
	defer bus.Close()

	mqttPub, err := services.NewMQTTPublisher(cfg.MQTT, logger)
	if err != nil {
		logger.Warn("mqtt unavailable, terminal mirror disabled", zap.Error(err))
	}
	defer mqttPub.Close()

	router := handlers.NewRouter(handlers.Deps{
		Config:      cfg,
		Store:       store,
		Bus:         bus,
		Broadcaster: services.NewBroadcaster(logger, bus, mqttPub),
		Auth:        services.NewAuthService(cfg.JWT, cfg.Auth),
		Log:         logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
