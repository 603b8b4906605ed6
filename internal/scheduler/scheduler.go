package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/courtside/internal/config"
)

const reportTimeout = 30 * time.Second

// Reporter builds the scheduled chat reports.
type Reporter interface {
	GetWeekOutlook(ctx context.Context) (string, error)
	GetRemainingOutlook(ctx context.Context) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Scheduler
	reporter    Reporter
	sendMessage func(string) error
}

func NewScheduler(cfg config.Scheduler, reporter Reporter, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "timezone", cfg.Timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		reporter:    reporter,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	// Full-week outlook, Monday morning by default.
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.OutlookCron, false),
		gocron.NewTask(s.sendWeekOutlook),
		gocron.WithName("week-outlook"),
	)
	if err != nil {
		return fmt.Errorf("failed to create week outlook job: %w", err)
	}

	// Rest-of-week outlook on the other mornings.
	_, err = s.s.NewJob(
		gocron.CronJob(s.cfg.RemainingCron, false),
		gocron.NewTask(s.sendRemainingOutlook),
		gocron.WithName("remaining-outlook"),
	)
	if err != nil {
		return fmt.Errorf("failed to create remaining outlook job: %w", err)
	}

	s.s.Start()
	slog.Info("Scheduler started", "jobs", len(s.s.Jobs()), "timezone", s.cfg.Timezone)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendWeekOutlook() {
	s.send("week outlook", s.reporter.GetWeekOutlook)
}

func (s *Scheduler) sendRemainingOutlook() {
	s.send("remaining outlook", s.reporter.GetRemainingOutlook)
}

func (s *Scheduler) send(name string, build func(context.Context) (string, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	report, err := build(ctx)
	if err != nil {
		slog.Error("Failed to build report", "report", name, "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send report", "report", name, "error", err)
	}
}
