package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dportela/procura/backend/internal/alerts"
	"github.com/dportela/procura/backend/internal/api"
	"github.com/dportela/procura/backend/internal/api/handlers"
	"github.com/dportela/procura/backend/internal/orders"
	"github.com/dportela/procura/backend/internal/scheduler"
	"github.com/dportela/procura/backend/internal/scheduler/jobs"
	"github.com/dportela/procura/backend/internal/suppliers"
	"github.com/dportela/procura/backend/pkg/config"
	"github.com/dportela/procura/backend/pkg/database"
	"github.com/dportela/procura/backend/pkg/logger"
	"github.com/dportela/procura/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the HTTP API server with the scheduled alert refresh job.

This command:
- Serves the alert endpoints for the follow-up dashboard
- Pushes badge updates to WebSocket subscribers
- Runs the periodic alert refresh in the background

Endpoints:
  GET /health              - Health check
  GET /api/alerts          - Full alert summary
  GET /api/alerts/badge    - Badge total only
  GET /api/alerts/summary  - Per-category counts
  GET /ws/alerts           - Badge update stream

Example:
  go run ./cmd/procura api
  go run ./cmd/procura api --port 8087`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Procura API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to redis (no-op when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "procura")

	// 5. Load alert thresholds
	alertCfg, err := loadAlertConfig(cfg)
	if err != nil {
		return fmt.Errorf("load alert thresholds: %w", err)
	}

	configHash, _ := alertCfg.Hash()
	log.WithField("config_hash", configHash).Info("Alert thresholds loaded")

	// 6. Create repositories
	orderRepo := orders.NewRepository(db.Pool)
	supplierRepo := suppliers.NewRepository(db.Pool)

	// 7. Create engine and service
	engine := alerts.NewEngine(*alertCfg, log.Zerolog())
	service := alerts.NewService(engine, orderRepo, supplierRepo, cache, cfg.Alerts.CacheTTL, log.Zerolog())

	// 8. Create WebSocket hub and handler
	hub := api.NewHub(log)
	alertHandler := handlers.NewAlertHandler(service, log)

	// 9. Create router and server
	router := api.NewRouter(alertHandler, hub, cfg, log)
	server := api.New(cfg, log, router)

	// 10. Create scheduler with the refresh job
	sched := scheduler.New(log)
	refreshJob := jobs.NewAlertRefreshJob(service, hub, cfg.Alerts.RefreshSchedule, log)
	if err := sched.AddJob(refreshJob); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// 11. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/alerts")
	fmt.Println("  GET /api/alerts/badge")
	fmt.Println("  GET /api/alerts/summary")
	fmt.Println("  GET /ws/alerts")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// loadAlertConfig reads the optional YAML threshold file; defaults apply
// when no file is configured.
func loadAlertConfig(cfg *config.Config) (*alerts.Config, error) {
	if cfg.Alerts.ThresholdFile == "" {
		defaults := alerts.DefaultConfig()
		return &defaults, nil
	}
	return alerts.LoadConfig(cfg.Alerts.ThresholdFile)
}
