// Package main implements the entry point for the petdesk server,
// the growth and economy engine behind the desktop companion pet.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/petdesk/petdesk/internal/api"
	"github.com/petdesk/petdesk/internal/config"
	"github.com/petdesk/petdesk/internal/domain/growth"
	"github.com/petdesk/petdesk/internal/events"
	"github.com/petdesk/petdesk/internal/platform/logger"
	"github.com/petdesk/petdesk/internal/platform/sqlite"
	"github.com/petdesk/petdesk/internal/service"
	"github.com/petdesk/petdesk/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, wires the application together and serves
// until interrupted.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logr := logger.Setup(cfg.Server.LogLevel)
	logr.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_path", cfg.Database.Path,
		"tick_interval", cfg.Engine.TickInterval)

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logr.Error("failed to close database", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores and the transaction seam.
	petStore := sqlite.NewPetStore(db, logr)
	inventoryStore := sqlite.NewInventoryStore(db, logr)
	achievementStore := sqlite.NewAchievementStore(db, logr)
	currencyStore := sqlite.NewCurrencyStore(db, logr)
	transactor := &store.DBTransactor{DB: db}

	// Event stream.
	emitter := events.NewInMemoryEmitter(logr)

	// Services share one account lock so roster and shop operations
	// serialize into a single history.
	var accountMu sync.Mutex
	params := growth.NewDefaultParams()

	growthService, err := service.NewGrowthService(petStore, params, emitter, logr)
	if err != nil {
		return fmt.Errorf("failed to create growth service: %w", err)
	}
	rosterService, err := service.NewRosterService(&accountMu, petStore, inventoryStore, growthService, transactor, emitter, logr)
	if err != nil {
		return fmt.Errorf("failed to create roster service: %w", err)
	}
	inventoryService, err := service.NewInventoryService(inventoryStore, logr)
	if err != nil {
		return fmt.Errorf("failed to create inventory service: %w", err)
	}
	shopService, err := service.NewShopService(&accountMu, currencyStore, inventoryStore, rosterService, transactor, emitter, logr)
	if err != nil {
		return fmt.Errorf("failed to create shop service: %w", err)
	}
	tracker, err := service.NewAchievementTracker(ctx, achievementStore, petStore, currencyStore, inventoryStore, growthService, transactor, emitter, logr)
	if err != nil {
		return fmt.Errorf("failed to create achievement tracker: %w", err)
	}
	emitter.RegisterHandler(tracker)

	// Background decay ticker for the active pet.
	go runTicker(ctx, rosterService, cfg.Engine.TickInterval, logr)

	router := api.NewRouter(
		api.NewPetHandler(rosterService, growthService),
		api.NewShopHandler(shopService, inventoryService, growthService),
		api.NewAchievementHandler(tracker),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// runTicker periodically applies vital decay to the active pet until
// the context is cancelled.
func runTicker(ctx context.Context, roster *service.RosterService, interval time.Duration, logr *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := roster.Tick(ctx, now.UTC()); err != nil {
				logr.Error("tick failed", "error", err)
			}
		}
	}
}
