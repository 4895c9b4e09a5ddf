package jobs

import (
	"context"
	"time"

	"adhub-backend/internal/config"
	"adhub-backend/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler owns the recurring background work: pulling accounts and
// managers from Notion and topping up daily metrics for every account.
type Scheduler struct {
	cron    *cron.Cron
	notion  *services.NotionService
	metrics *services.MetricsService
	cfg     *config.Config
}

func NewScheduler(notion *services.NotionService, metrics *services.MetricsService, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		notion:  notion,
		metrics: metrics,
		cfg:     cfg,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Notion.Schedule, s.runNotionSync); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.Metrics.Schedule, s.runMetricsSync); err != nil {
		return err
	}

	s.cron.Start()
	logrus.WithFields(logrus.Fields{
		"notion_schedule":  s.cfg.Notion.Schedule,
		"metrics_schedule": s.cfg.Metrics.Schedule,
	}).Info("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runNotionSync() {
	if s.cfg.Notion.Token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.notion.SyncManagers(ctx); err != nil {
		logrus.Errorf("Scheduled manager sync failed: %v", err)
	}
	if _, err := s.notion.SyncAccounts(ctx); err != nil {
		logrus.Errorf("Scheduled account sync failed: %v", err)
	}
}

func (s *Scheduler) runMetricsSync() {
	if s.cfg.Metrics.PlatformURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	s.metrics.SyncAllIncremental(ctx)
}
