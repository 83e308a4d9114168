package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/config"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/pkg/clock"
)

// NutritionRecomputer re-derives the macro part of a daily summary.
type NutritionRecomputer interface {
	RecomputeDailySummary(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error)
}

// WaterRecomputer re-derives the water part of a daily summary.
type WaterRecomputer interface {
	RecomputeWaterIntake(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error)
}

// DigestBuilder renders the weekly digest text for a user.
type DigestBuilder interface {
	BuildWeeklyDigest(ctx context.Context, userID int64) (string, error)
}

// SummaryExporter ships a settled summary to an external sink.
type SummaryExporter interface {
	AppendSummary(ctx context.Context, summary models.DailyNutritionSummary) error
}

// Notifier delivers a text message to a phone number.
type Notifier interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Deps groups the collaborators of the scheduled jobs. Exporter and Notifier
// are optional.
type Deps struct {
	Nutrition NutritionRecomputer
	Hydration WaterRecomputer
	Digests   DigestBuilder
	Exporter  SummaryExporter
	Notifier  Notifier
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	deps   Deps
	cfg    config.ReportingConfig
	clock  clock.Clock
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance. Schedules are evaluated in
// the clock's location.
func NewScheduler(cfg config.ReportingConfig, deps Deps, clk clock.Clock, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := clk.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		deps:   deps,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("sweep_schedule", s.cfg.SweepSchedule),
		zap.String("digest_schedule", s.cfg.DigestSchedule),
		zap.Int("recipients", len(s.cfg.Recipients)))

	if _, err := s.cron.AddFunc(s.cfg.SweepSchedule, func() { s.runJob("nightly sweep", s.SweepYesterday) }); err != nil {
		return fmt.Errorf("schedule nightly sweep: %w", err)
	}

	if s.deps.Notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.DigestSchedule, func() { s.runJob("weekly digest", s.SendWeeklyDigests) }); err != nil {
			return fmt.Errorf("schedule weekly digest: %w", err)
		}
	} else {
		s.logger.Warn("no notifier configured, weekly digest disabled")
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runJob(name string, job func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("scheduled job finished with errors", zap.String("job", name), zap.Error(err))
		return
	}
	s.logger.Info("scheduled job completed", zap.String("job", name), zap.Duration("duration", time.Since(start)))
}

// SweepYesterday settles yesterday's summary of every recipient and exports
// it when an exporter is configured. One user's failure does not stop the rest.
func (s *Scheduler) SweepYesterday(ctx context.Context) error {
	date := s.clock.Today().AddDate(0, 0, -1)

	var failures []error
	for _, recipient := range s.cfg.Recipients {
		if err := s.sweepUser(ctx, recipient.UserID, date); err != nil {
			s.logger.Error("sweep failed",
				zap.Int64("user_id", recipient.UserID),
				zap.String("date", models.FormatDate(date)),
				zap.Error(err))
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

func (s *Scheduler) sweepUser(ctx context.Context, userID int64, date time.Time) error {
	if _, err := s.deps.Nutrition.RecomputeDailySummary(ctx, userID, date); err != nil {
		return fmt.Errorf("recompute nutrition for user %d: %w", userID, err)
	}

	summary, err := s.deps.Hydration.RecomputeWaterIntake(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("recompute water for user %d: %w", userID, err)
	}

	if s.deps.Exporter == nil {
		return nil
	}
	if err := s.deps.Exporter.AppendSummary(ctx, summary); err != nil {
		return fmt.Errorf("export summary for user %d: %w", userID, err)
	}
	return nil
}

// SendWeeklyDigests builds and delivers the weekly digest to every recipient
// with a phone number.
func (s *Scheduler) SendWeeklyDigests(ctx context.Context) error {
	if s.deps.Notifier == nil {
		return nil
	}

	var failures []error
	for _, recipient := range s.cfg.Recipients {
		if recipient.Phone == "" {
			continue
		}

		digest, err := s.deps.Digests.BuildWeeklyDigest(ctx, recipient.UserID)
		if err != nil {
			failures = append(failures, fmt.Errorf("build digest for user %d: %w", recipient.UserID, err))
			continue
		}

		messageID, err := s.deps.Notifier.SendText(ctx, recipient.Phone, digest)
		if err != nil {
			failures = append(failures, fmt.Errorf("send digest to user %d: %w", recipient.UserID, err))
			continue
		}
		s.logger.Info("weekly digest sent", zap.Int64("user_id", recipient.UserID), zap.String("message_id", messageID))
	}
	return errors.Join(failures...)
}
