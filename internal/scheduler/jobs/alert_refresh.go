package jobs

import (
	"context"
	"fmt"

	"github.com/dportela/procura/backend/internal/alerts"
	"github.com/dportela/procura/backend/internal/api"
	"github.com/dportela/procura/backend/pkg/logger"
)

// AlertRefreshJob recomputes the alert summary on a schedule, warms the
// cache and pushes the new badge total to websocket subscribers, so the
// first dashboard request after a quiet period is never the one that
// pays for the computation.
type AlertRefreshJob struct {
	service  *alerts.Service
	hub      *api.Hub
	schedule string
	logger   *logger.Logger
}

// NewAlertRefreshJob creates a new refresh job. The hub may be nil when
// running without the API server.
func NewAlertRefreshJob(service *alerts.Service, hub *api.Hub, schedule string, log *logger.Logger) *AlertRefreshJob {
	return &AlertRefreshJob{
		service:  service,
		hub:      hub,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *AlertRefreshJob) Name() string {
	return "alert_refresh"
}

// Schedule returns the cron schedule (with seconds)
func (j *AlertRefreshJob) Schedule() string {
	return j.schedule
}

// Run recomputes and republishes the summary
func (j *AlertRefreshJob) Run(ctx context.Context) error {
	summary, err := j.service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh alerts: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"total":          summary.Total,
		"delayed":        len(summary.DelayedOrders),
		"upcoming":       len(summary.UpcomingOrders),
		"critical":       len(summary.CriticalOrders),
		"low_performing": len(summary.LowPerformingSuppliers),
	}).Info("Alert summary refreshed")

	if j.hub != nil {
		j.hub.Broadcast(summary.Total)
	}

	return nil
}
