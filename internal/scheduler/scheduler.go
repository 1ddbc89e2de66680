package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/arsonstech/fieldservice/internal/config"
	"github.com/arsonstech/fieldservice/internal/service/reminder"
)

const sweepTimeout = 5 * time.Minute

// Scheduler runs the warranty reminder sweep on a fixed daily schedule for
// the lifetime of the process.
type Scheduler struct {
	cron        *cron.Cron
	reminderSvc *reminder.Service
	cfg         config.ReminderConfig
	logger      *zap.Logger

	mu         sync.Mutex
	started    bool
	registered bool
}

// NewScheduler creates a new scheduler instance. The cron runner operates in
// the configured timezone; when the tzdata lookup fails it falls back to the
// process local zone so a bad TIMEZONE value degrades instead of crashing.
func NewScheduler(cfg config.ReminderConfig, reminderSvc *reminder.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	c := cron.New(
		cron.WithLocation(location),
		cron.WithChain(cron.Recover(cronLogger)),
	)

	return &Scheduler{
		cron:        c,
		reminderSvc: reminderSvc,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start registers the daily sweep and starts the cron runner. Calling Start
// again on a running scheduler is a no-op, so there is never more than one
// timer per process.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.logger.Warn("scheduler already started")
		return
	}

	if !s.registered {
		if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runSweep); err != nil {
			s.logger.Error("failed to schedule reminder sweep",
				zap.String("schedule", s.cfg.CronSchedule), zap.Error(err))
			return
		}
		s.registered = true
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("scheduler started", zap.String("schedule", s.cfg.CronSchedule))
}

// Stop stops the cron runner. In-flight sweeps run to completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info("stopping scheduler")
	s.cron.Stop()
	s.started = false
}

// runSweep executes one sweep. Errors are logged and swallowed here so a
// failed run never cancels future scheduled runs.
func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if err := s.reminderSvc.CheckServiceDueDates(ctx); err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
	}
}
