package job

import (
	"EnvWatchAPI/internal/constant"
	"EnvWatchAPI/internal/model"
	"EnvWatchAPI/internal/service"
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportSource lists degraded reports and stores their refreshed analysis.
type ReportSource interface {
	ListByAIClass(ctx context.Context, class string) ([]*model.Report, error)
	UpdateAnalysis(ctx context.Context, id primitive.ObjectID, analysis model.AIAnalysis, category string) error
}

// Detector is the slice of the classifier the job needs.
type Detector interface {
	Configured() bool
	Detect(ctx context.Context, imageURL string) (*model.DetectionResult, error)
}

// RunReclassify re-runs classification for reports that were persisted with a
// degraded AI_Error result because the detection API was unreachable at
// intake. Status is left untouched; only the analysis and derived category
// are rewritten.
func RunReclassify(ctx context.Context, source ReportSource, detector Detector) error {
	if !detector.Configured() {
		slog.Info("Classifier not configured, skipping reclassify run")
		return nil
	}

	reports, err := source.ListByAIClass(ctx, constant.ClassAIError)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		return nil
	}

	slog.Info("Reclassifying degraded reports", "count", len(reports))

	for _, report := range reports {
		res, err := detector.Detect(ctx, report.ImageURL)
		if err != nil {
			slog.Warn("Reclassification still failing", "ticketId", report.TicketID, "error", err)
			continue
		}

		analysis := service.AnalyzeDetection(res)
		category := service.DeriveCategory(analysis)

		if err := source.UpdateAnalysis(ctx, report.ID, analysis, category); err != nil {
			slog.Error("Failed to store reclassification", "ticketId", report.TicketID, "error", err)
			continue
		}

		slog.Info("Report reclassified", "ticketId", report.TicketID, "class", analysis.Class, "category", category)
	}

	return nil
}
