package scheduler

import (
	"EnvWatchAPI/internal/adapter"
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/repository"
	"EnvWatchAPI/internal/scheduler/job"
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
)

type Scheduler struct {
	cfg        *config.AppConfig
	cron       *cron.Cron
	repo       *repository.ReportRepository
	classifier *adapter.ClassifierAdapter
}

func New(cfg *config.AppConfig, db *mongo.Database) *Scheduler {
	httpClient := config.NewHTTPClient(cfg)

	return &Scheduler{
		cfg:        cfg,
		cron:       cron.New(),
		repo:       repository.NewReportRepository(db),
		classifier: adapter.NewClassifierAdapter(cfg, httpClient),
	}
}

func (s *Scheduler) Start() {
	slog.Info("Starting Scheduler...")

	s.registerJobs()

	s.cron.Start()
	slog.Info("Scheduler started successfully")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) registerJobs() {
	_, err := s.cron.AddFunc(s.cfg.ReclassifyCron, func() {
		slog.Info("Starting Reclassify Job")
		ctx := context.Background()
		if err := job.RunReclassify(ctx, s.repo, s.classifier); err != nil {
			slog.Error("Reclassify Job failed", "error", err)
		} else {
			slog.Info("Reclassify Job completed")
		}
	})
	if err != nil {
		slog.Error("Failed to register Reclassify job", "error", err)
	} else {
		slog.Info("Registered Reclassify Job", "schedule", s.cfg.ReclassifyCron)
	}
}
