package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hostel-income-backend/config"
	"hostel-income-backend/internal/notification"
	"hostel-income-backend/internal/report"
)

// Scheduler periodically re-runs the income report for the configured owners
// and pushes a pending-dues alert when tenants still owe money.
type Scheduler struct {
	cron   *cron.Cron
	engine *report.Engine
	pool   *notification.WorkerPool
	cfg    config.ScheduleConfig
	log    *zap.Logger
}

// New creates a scheduler instance.
func New(cfg config.ScheduleConfig, engine *report.Engine, pool *notification.WorkerPool, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(),
		engine: engine,
		pool:   pool,
		cfg:    cfg,
		log:    log,
	}
}

// Start registers and starts the cron job. A disabled schedule is a no-op.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.log.Info("pending-dues schedule is disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.CronExpr, s.checkPendingDues); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("pending-dues schedule started",
		zap.String("cron", s.cfg.CronExpr),
		zap.Int("owners", len(s.cfg.OwnerIDs)))
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) checkPendingDues() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	qr := report.DefaultRange(time.Now())
	for _, ownerID := range s.cfg.OwnerIDs {
		res, err := s.engine.Run(ctx, ownerID, qr)
		if err != nil {
			s.log.Error("scheduled report run failed",
				zap.String("owner_id", ownerID), zap.Error(err))
			continue
		}
		if res.Totals.Pending <= 0 {
			continue
		}
		s.pool.Dispatch(notification.PendingAlert{
			OwnerID:      ownerID,
			Hostel:       res.Meta.Hostel,
			PendingTotal: res.Totals.Pending,
			CountPending: res.Totals.CountPending,
			RangeStart:   res.Meta.Start,
			RangeEnd:     res.Meta.End,
		})
	}
}
