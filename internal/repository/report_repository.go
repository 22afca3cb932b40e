package repository

import (
	"EnvWatchAPI/internal/model"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no report matches the given identifier.
	ErrNotFound = errors.New("report not found")

	// ErrDuplicateTicket is returned when an insert hits the unique ticketId
	// index; the workflow regenerates the ID and retries.
	ErrDuplicateTicket = errors.New("ticket id already exists")
)

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{
		col: db.Collection("reports"),
	}
}

func (r *ReportRepository) Insert(ctx context.Context, report *model.Report) error {
	res, err := r.col.InsertOne(ctx, report)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateTicket
		}
		return fmt.Errorf("failed to insert report: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

func (r *ReportRepository) FindByTicketID(ctx context.Context, ticketID string) (*model.Report, error) {
	var report model.Report
	err := r.col.FindOne(ctx, bson.M{"ticketId": ticketID}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report by ticket: %w", err)
	}
	return &report, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var report model.Report
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

// ListAll returns every report ordered by creation time descending. The triage
// view has no pagination.
func (r *ReportRepository) ListAll(ctx context.Context) ([]*model.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []*model.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// UpdateFields writes only the supplied fields and returns the updated
// document. Conflicting concurrent updates are last-write-wins.
func (r *ReportRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var report model.Report
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return &report, nil
}

// ListByAIClass finds reports whose stored classification carries the given
// class label. Used by the reclassify job to pick up AI_Error records.
func (r *ReportRepository) ListByAIClass(ctx context.Context, class string) ([]*model.Report, error) {
	cursor, err := r.col.Find(ctx, bson.M{"aiAnalysis.class": class})
	if err != nil {
		return nil, fmt.Errorf("failed to list reports by class: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []*model.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

func (r *ReportRepository) UpdateAnalysis(ctx context.Context, id primitive.ObjectID, analysis model.AIAnalysis, category string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"aiAnalysis": analysis,
		"category":   category,
	}})
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	return nil
}
