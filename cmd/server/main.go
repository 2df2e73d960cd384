package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wapi/api/internal/config"
	"github.com/wapi/api/internal/handler"
	"github.com/wapi/api/internal/random"
	"github.com/wapi/api/internal/scheduler"
	"github.com/wapi/api/internal/store"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	wordStore, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open word store: %v", err)
	}
	defer wordStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bounds := random.DefaultBounds
	if cfg.RandomBoundsFromStore {
		bounds, err = random.LoadBounds(ctx, wordStore)
		if err != nil {
			log.Fatalf("Failed to compute random bounds: %v", err)
		}
	}
	log.Printf("Random word bounds: %v", bounds)
	generator := random.NewGenerator(bounds)

	var dailyMonitor *scheduler.DailyMonitor
	if cfg.DailyMonitorInterval > 0 {
		dailyMonitor = scheduler.NewDailyMonitor(wordStore, scheduler.MonitorConfig{
			Interval:     cfg.DailyMonitorInterval,
			LowWatermark: cfg.DailyLowWatermark,
		})
		go dailyMonitor.Start(ctx)
		log.Println("Daily word monitor started")
	}

	wordHandler := handler.NewWordHandler(wordStore, generator)
	statusHandler := handler.NewStatusHandler(wordStore, generator, dailyMonitor)
	r := handler.NewRouter(wordHandler, statusHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Word API starting on port %s (store: %s)", cfg.Port, cfg.StoreBackend)
	if err := serve(ctx, srv, shutdownTimeout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Word API stopped")
}

const shutdownTimeout = 10 * time.Second

// serve runs srv until it fails or ctx is done, then drains in-flight
// requests for at most timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Println("Shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
