// Package crontab schedules the daily stress-alert evaluation.
package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/alert"
	"softday/wellness-api/internal/utils/platformerrors"
)

// CronJobTimeout bounds one full batch evaluation.
const CronJobTimeout = 10 * time.Minute

// Crontab runs the recurring background jobs.
type Crontab struct {
	ctab         *crontab.Crontab
	alertService *alert.Service
	cronHour     int
	log          zerolog.Logger
}

// NewCrontab wires the scheduler. cronHour is the local hour (0-23) of the
// daily alert run.
func NewCrontab(alertService *alert.Service, cronHour int, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:         crontab.New(),
		alertService: alertService,
		cronHour:     cronHour,
		log:          log.With().Str("component", "crontab").Logger(),
	}
}

// Run registers the jobs and blocks until the context is cancelled.
func (c *Crontab) Run(ctx context.Context) error {
	cronExpr := fmt.Sprintf("0 %d * * *", c.cronHour)
	if err := c.ctab.AddJob(cronExpr, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.runAlertEvaluation(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add alert job")
	}
	c.log.Info().Int("hour", c.cronHour).Msg("daily stress alert job scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) runAlertEvaluation(ctx context.Context) {
	if err := c.alertService.EvaluateAll(ctx); err != nil {
		c.log.Error().Err(err).Msg("alert evaluation batch failed")
	}
}
