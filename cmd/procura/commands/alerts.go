package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dportela/procura/backend/internal/alerts"
	"github.com/dportela/procura/backend/internal/contracts"
	"github.com/dportela/procura/backend/internal/orders"
	"github.com/dportela/procura/backend/internal/suppliers"
	"github.com/dportela/procura/backend/pkg/config"
	"github.com/dportela/procura/backend/pkg/database"
	"github.com/dportela/procura/backend/pkg/logger"
	"github.com/dportela/procura/backend/pkg/redis"
)

// alertsCmd represents the alerts command
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Evaluate alerts once and print the result",
	Long: `Runs one alert evaluation against the current purchase order
snapshot and prints the summary.

Categories:
- Delayed:   pending orders past their due date
- Upcoming:  pending orders due within the horizon
- Critical:  high-value pending orders at risk
- Suppliers: supplier groups below the reliability threshold

Example:
  go run ./cmd/procura alerts
  go run ./cmd/procura alerts --date 2024-06-10
  go run ./cmd/procura alerts --json`,
	RunE: runAlerts,
}

var (
	alertsDate string
	alertsJSON bool
)

func init() {
	rootCmd.AddCommand(alertsCmd)

	// Flags
	alertsCmd.Flags().StringVar(&alertsDate, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	alertsCmd.Flags().BoolVar(&alertsJSON, "json", false, "print the raw JSON summary")
}

func runAlerts(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// 4. Connect to redis
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

	// 6. Wire the service
	orderRepo := orders.NewRepository(db.Pool)
	supplierRepo := suppliers.NewRepository(db.Pool)
	engine := alerts.NewEngine(*alertCfg, log.Zerolog())
	service := alerts.NewService(engine, orderRepo, supplierRepo, cache, cfg.Alerts.CacheTTL, log.Zerolog())

	// 7. Resolve the reference date
	var refDate time.Time
	if alertsDate != "" {
		refDate, err = time.Parse("2006-01-02", alertsDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", alertsDate)
		}
	}

	// 8. Evaluate
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := service.Summary(ctx, refDate)
	if err != nil {
		return fmt.Errorf("evaluate alerts: %w", err)
	}

	if alertsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printSummary(summary)
	return nil
}

func printSummary(s *contracts.AlertSummary) {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Alert Summary — %s\n", s.ReferenceDate.Format("2006-01-02"))
	fmt.Println("═══════════════════════════════════════════════════════════")

	counts := s.Counts()
	fmt.Printf("  Delayed   : %d\n", counts.Delayed)
	fmt.Printf("  Upcoming  : %d\n", counts.Upcoming)
	fmt.Printf("  Critical  : %d\n", counts.Critical)
	fmt.Printf("  Suppliers : %d\n", counts.LowPerformingSuppliers)
	fmt.Printf("  Total     : %d\n", counts.Total)

	if s.IsEmpty() {
		fmt.Println("\n✅ No alerts")
		return
	}

	if len(s.DelayedOrders) > 0 {
		fmt.Println("\n🔴 Delayed orders")
		fmt.Println("───────────────────────────────────────────────────────────")
		for _, a := range s.DelayedOrders {
			fmt.Printf("  %-12s %-30.30s %3dd overdue  R$ %s  (%s)\n",
				a.OrderNumber, a.Description, a.DaysOverdue, a.Amount.StringFixed(2), a.Supplier)
		}
	}

	if len(s.UpcomingOrders) > 0 {
		fmt.Println("\n🟡 Upcoming orders")
		fmt.Println("───────────────────────────────────────────────────────────")
		for _, a := range s.UpcomingOrders {
			fmt.Printf("  %-12s %-30.30s %3dd left     R$ %s  (%s)\n",
				a.OrderNumber, a.Description, a.DaysRemaining, a.Amount.StringFixed(2), a.Supplier)
		}
	}

	if len(s.CriticalOrders) > 0 {
		fmt.Println("\n🟠 Critical orders")
		fmt.Println("───────────────────────────────────────────────────────────")
		for _, a := range s.CriticalOrders {
			due := "N/A"
			if a.DueDate != nil {
				due = a.DueDate.Format("2006-01-02")
			}
			fmt.Printf("  %-12s %-30.30s due %s  R$ %s  (%s)\n",
				a.OrderNumber, a.Description, due, a.Amount.StringFixed(2), a.Supplier)
		}
	}

	if len(s.LowPerformingSuppliers) > 0 {
		fmt.Println("\n📉 Low-performing suppliers")
		fmt.Println("───────────────────────────────────────────────────────────")
		for _, a := range s.LowPerformingSuppliers {
			fmt.Printf("  %-30.30s %5.1f%% success  %d orders, %d delayed\n",
				a.Supplier, a.SuccessRate, a.TotalOrders, a.DelayedCount)
		}
	}
}
