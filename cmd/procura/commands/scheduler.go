package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dportela/procura/backend/internal/alerts"
	"github.com/dportela/procura/backend/internal/orders"
	"github.com/dportela/procura/backend/internal/scheduler"
	"github.com/dportela/procura/backend/internal/scheduler/jobs"
	"github.com/dportela/procura/backend/internal/suppliers"
	"github.com/dportela/procura/backend/pkg/config"
	"github.com/dportela/procura/backend/pkg/database"
	"github.com/dportela/procura/backend/pkg/logger"
	"github.com/dportela/procura/backend/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the scheduler",
	Long: `Runs the alert refresh scheduler without the HTTP surface.

Useful for deployments where the API and the background refresh run as
separate processes.

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - run a job immediately

Example:
  go run ./cmd/procura scheduler start
  go run ./cmd/procura scheduler list
  go run ./cmd/procura scheduler run alert_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		Long: `Starts the scheduler and schedules all registered jobs.

Registered jobs:
- alert_refresh: recompute the alert summary and refresh the cache
  (schedule from ALERT_REFRESH_SCHEDULE, default every 10 minutes)

Stop the scheduler with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Procura Scheduler ===")

	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Println("Job started (running in background)")
	return nil
}

// initScheduler wires the scheduler with the refresh job. The returned
// cleanup closes the database and redis connections.
func initScheduler() (*scheduler.Scheduler, func(), error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Connect to redis
	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	cache := redis.NewCache(redisClient, "procura")

	// 5. Load alert thresholds
	alertCfg, err := loadAlertConfig(cfg)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, nil, fmt.Errorf("load alert thresholds: %w", err)
	}

	// 6. Create repositories, engine and service
	orderRepo := orders.NewRepository(db.Pool)
	supplierRepo := suppliers.NewRepository(db.Pool)
	engine := alerts.NewEngine(*alertCfg, log.Zerolog())
	service := alerts.NewService(engine, orderRepo, supplierRepo, cache, cfg.Alerts.CacheTTL, log.Zerolog())

	// 7. Create scheduler and register jobs
	sched := scheduler.New(log)
	sched.AddJob(jobs.NewAlertRefreshJob(service, nil, cfg.Alerts.RefreshSchedule, log))

	cleanup := func() {
		redisClient.Close()
		db.Close()
	}

	return sched, cleanup, nil
}
