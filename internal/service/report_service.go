package service

import (
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/constant"
	"EnvWatchAPI/internal/helper"
	"EnvWatchAPI/internal/model"
	"EnvWatchAPI/internal/repository"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

const ticketInsertAttempts = 3

// ReportStore is the persistence surface the workflow needs.
type ReportStore interface {
	Insert(ctx context.Context, report *model.Report) error
	FindByTicketID(ctx context.Context, ticketID string) (*model.Report, error)
	ListAll(ctx context.Context) ([]*model.Report, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Report, error)
}

// ImageStorage uploads report photos and derives their public URLs.
type ImageStorage interface {
	Configured() bool
	StoreFromReader(ctx context.Context, reader io.Reader, contentType string, name string) error
	Delete(ctx context.Context, name string) error
	PublicURL(name string) string
}

// Classifier calls the hosted detection model.
type Classifier interface {
	Configured() bool
	Detect(ctx context.Context, imageURL string) (*model.DetectionResult, error)
}

// Cache holds ticket-lookup results. A nil Cache disables caching.
type Cache interface {
	StoreJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	LoadJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

type ReportService struct {
	store      ReportStore
	storage    ImageStorage
	classifier Classifier
	cache      Cache
	cfg        *config.AppConfig
	validator  *validator.Validate
}

func NewReportService(store ReportStore, storage ImageStorage, classifier Classifier, cache Cache, cfg *config.AppConfig, validator *validator.Validate) *ReportService {
	return &ReportService{
		store:      store,
		storage:    storage,
		classifier: classifier,
		cache:      cache,
		cfg:        cfg,
		validator:  validator,
	}
}

// SubmitReport runs the creation workflow: upload, classify, categorize,
// persist. A storage failure aborts the whole submission; a classification
// failure degrades the result and the report is still saved.
func (s *ReportService) SubmitReport(ctx context.Context, req model.CreateReportRequest) (*model.CreateReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError("No image file uploaded")
	}

	imageURL, objectName, err := s.uploadImage(ctx, req)
	if err != nil {
		return nil, err
	}

	analysis := s.classifyImage(ctx, imageURL)
	category := DeriveCategory(analysis)

	report := &model.Report{
		ImageURL: imageURL,
		Location: model.Location{
			Lat: req.Latitude,
			Lng: req.Longitude,
		},
		Description: req.Description,
		Status:      constant.StatusPending,
		Category:    category,
		AIAnalysis:  analysis,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.insertWithFreshTicket(ctx, report); err != nil {
		if objectName != "" {
			if delErr := s.storage.Delete(context.Background(), objectName); delErr != nil {
				slog.Error("Failed to delete uploaded image after persist failure", "error", delErr, "object", objectName)
			}
		}
		if errors.Is(err, repository.ErrDuplicateTicket) {
			slog.Error("Exhausted ticket id attempts", "error", err)
			return nil, helper.NewConflictError("")
		}
		slog.Error("Failed to persist report", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return &model.CreateReportResponse{
		Success:  true,
		TicketID: report.TicketID,
		Message:  "Laporan diterima",
		Data:     report,
		ImageURL: imageURL,
		AIResult: &report.AIAnalysis,
		Category: category,
	}, nil
}

func (s *ReportService) uploadImage(ctx context.Context, req model.CreateReportRequest) (imageURL string, objectName string, err error) {
	if !s.storage.Configured() {
		slog.Info("Storage not configured, using placeholder image URL")
		return constant.PlaceholderImageURL, "", nil
	}

	file, err := req.Image.Open()
	if err != nil {
		slog.Error("Failed to open uploaded file", "error", err)
		return "", "", helper.NewInternalServerError("")
	}
	defer file.Close()

	contentType, err := helper.DetectFileContentType(file)
	if err != nil {
		slog.Error("Failed to detect file content type", "error", err)
		return "", "", helper.NewInternalServerError("")
	}

	objectName = helper.GenerateUniqueObjectName(req.Image.Filename)

	if err := s.storage.StoreFromReader(ctx, file, contentType, objectName); err != nil {
		slog.Error("Failed to upload image to storage", "error", err)
		return "", "", helper.NewInternalServerError("Image upload failed")
	}

	return s.storage.PublicURL(objectName), objectName, nil
}

// classifyImage never fails the submission: an unconfigured classifier yields
// the mock prediction, an erroring one yields the degraded AI_Error result.
func (s *ReportService) classifyImage(ctx context.Context, imageURL string) model.AIAnalysis {
	if !s.classifier.Configured() {
		slog.Info("Classifier API key missing, using mock prediction")
		return model.AIAnalysis{
			Detected:   true,
			Class:      constant.MockClass,
			Confidence: constant.MockConfidence,
		}
	}

	res, err := s.classifier.Detect(ctx, imageURL)
	if err != nil {
		slog.Error("Detection API call failed, saving degraded result", "error", err)
		return model.AIAnalysis{
			Detected:   false,
			Class:      constant.ClassAIError,
			Confidence: 0,
		}
	}

	return AnalyzeDetection(res)
}

func (s *ReportService) insertWithFreshTicket(ctx context.Context, report *model.Report) error {
	var err error
	for i := 0; i < ticketInsertAttempts; i++ {
		report.TicketID = helper.GenerateTicketID()
		err = s.store.Insert(ctx, report)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateTicket) {
			return err
		}
		slog.Warn("Ticket ID collision, regenerating", "ticketId", report.TicketID)
	}
	return err
}

// GetReportByTicketID serves the public status check. With demo mode enabled
// the fixed demo ticket returns a synthetic record without touching storage.
func (s *ReportService) GetReportByTicketID(ctx context.Context, ticketID string) (*model.Report, error) {
	if s.cfg.DemoMode && ticketID == constant.DemoTicketID {
		return demoReport(), nil
	}

	cacheKey := "report:ticket:" + ticketID
	if s.cache != nil {
		var cached model.Report
		if found, err := s.cache.LoadJSON(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	report, err := s.store.FindByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, helper.NewNotFoundError("Report not found")
		}
		slog.Error("Failed to look up report", "error", err, "ticketId", ticketID)
		return nil, helper.NewInternalServerError("")
	}

	if s.cache != nil {
		ttl := time.Duration(s.cfg.LookupCacheTTLSeconds) * time.Second
		if err := s.cache.StoreJSON(ctx, cacheKey, report, ttl); err != nil {
			slog.Warn("Failed to cache report lookup", "error", err)
		}
	}

	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context) ([]*model.Report, error) {
	reports, err := s.store.ListAll(ctx)
	if err != nil {
		slog.Error("Failed to list reports", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	return reports, nil
}

// UpdateReportStatus writes only the supplied fields; values outside their
// enumerated sets are rejected before anything is written.
func (s *ReportService) UpdateReportStatus(ctx context.Context, id string, req model.UpdateReportStatusRequest) (*model.Report, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError("Invalid status or category value")
	}

	fields := map[string]interface{}{}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if req.Category != "" {
		fields["category"] = req.Category
	}
	if len(fields) == 0 {
		return nil, helper.NewBadRequestError("No fields to update")
	}

	report, err := s.store.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, helper.NewNotFoundError("Report not found")
		}
		slog.Error("Failed to update report", "error", err, "id", id)
		return nil, helper.NewInternalServerError("")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "report:ticket:"+report.TicketID); err != nil {
			slog.Warn("Failed to invalidate report cache", "error", err)
		}
	}

	return report, nil
}

func demoReport() *model.Report {
	return &model.Report{
		TicketID: constant.DemoTicketID,
		ImageURL: constant.PlaceholderImageURL,
		Location: model.Location{
			Lat: -6.2,
			Lng: 106.816666,
		},
		Description: "Tumpukan sampah di pinggir jalan (demo)",
		Status:      constant.StatusInProgress,
		Category:    constant.CategorySampah,
		AIAnalysis: model.AIAnalysis{
			Detected:   true,
			Class:      "garbage",
			Confidence: 0.87,
		},
		CreatedAt: time.Date(2024, time.January, 15, 8, 30, 0, 0, time.UTC),
	}
}
