package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"savoriq/cmd/api/router"
	"savoriq/cmd/internal/app"
	"savoriq/config"
	"savoriq/services"
)

// @title           SavorIQ API
// @version         1.0
// @description     Review ingestion, sentiment analytics and manager briefings for restaurants
// @BasePath        /api/v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		config.Logger.Errorf("bootstrap failed: %v", err)
		os.Exit(1)
	}
	defer a.Close(context.Background())

	dispatcher, err := a.Dispatcher("api")
	if err != nil {
		config.Logger.Errorf("event bus init failed: %v", err)
		os.Exit(1)
	}
	ingestion := services.NewIngestionService(a.Guests, a.Orders, a.Reviews, a.Scores, dispatcher)

	engine := router.New(router.Deps{
		Ingestion: ingestion,
		Sentiment: a.Sentiment,
		Analytics: a.Analytics,
		Guests:    services.NewGuestService(a.Guests, a.Orders, a.Reviews),
	})
	srv := &http.Server{
		Addr:              a.Config.API.ListenAddr(),
		Handler:           router.WithCORS(engine, a.Config.API.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infof("api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Errorf("http server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Warnf("http shutdown: %v", err)
	}
}
