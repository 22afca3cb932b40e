package job

import (
	"EnvWatchAPI/internal/constant"
	"EnvWatchAPI/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type analysisUpdate struct {
	id       primitive.ObjectID
	analysis model.AIAnalysis
	category string
}

type fakeSource struct {
	reports   []*model.Report
	listErr   error
	listCalls int
	updates   []analysisUpdate
}

func (f *fakeSource) ListByAIClass(ctx context.Context, class string) ([]*model.Report, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*model.Report{}
	for _, r := range f.reports {
		if r.AIAnalysis.Class == class {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSource) UpdateAnalysis(ctx context.Context, id primitive.ObjectID, analysis model.AIAnalysis, category string) error {
	f.updates = append(f.updates, analysisUpdate{id: id, analysis: analysis, category: category})
	return nil
}

type fakeDetector struct {
	configured bool
	err        error
	result     *model.DetectionResult
}

func (f *fakeDetector) Configured() bool { return f.configured }

func (f *fakeDetector) Detect(ctx context.Context, imageURL string) (*model.DetectionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func degradedReport(ticketID string) *model.Report {
	return &model.Report{
		ID:       primitive.NewObjectID(),
		TicketID: ticketID,
		ImageURL: "https://cdn.test/" + ticketID + ".jpg",
		Status:   constant.StatusPending,
		Category: constant.CategoryButuhVerifikasi,
		AIAnalysis: model.AIAnalysis{
			Detected: false,
			Class:    constant.ClassAIError,
		},
	}
}

func TestRunReclassify(t *testing.T) {
	t.Run("Unconfigured Detector Skips Run", func(t *testing.T) {
		source := &fakeSource{reports: []*model.Report{degradedReport("RPT-1-AAAAA")}}

		err := RunReclassify(context.Background(), source, &fakeDetector{configured: false})
		assert.NoError(t, err)
		assert.Zero(t, source.listCalls)
		assert.Empty(t, source.updates)
	})

	t.Run("Rewrites Analysis And Category Only", func(t *testing.T) {
		first := degradedReport("RPT-1-AAAAA")
		first.Status = constant.StatusInProgress
		second := degradedReport("RPT-2-BBBBB")
		healthy := degradedReport("RPT-3-CCCCC")
		healthy.AIAnalysis.Class = "garbage"

		source := &fakeSource{reports: []*model.Report{first, second, healthy}}
		detector := &fakeDetector{
			configured: true,
			result: &model.DetectionResult{
				Predictions: []model.Prediction{{Class: "garbage", Confidence: 0.88}},
			},
		}

		err := RunReclassify(context.Background(), source, detector)
		assert.NoError(t, err)

		assert.Len(t, source.updates, 2)
		assert.Equal(t, first.ID, source.updates[0].id)
		assert.Equal(t, second.ID, source.updates[1].id)
		for _, u := range source.updates {
			assert.True(t, u.analysis.Detected)
			assert.Equal(t, "garbage", u.analysis.Class)
			assert.Equal(t, constant.CategorySampah, u.category)
		}

		// status is not part of the update payload
		assert.Equal(t, constant.StatusInProgress, first.Status)
		assert.Equal(t, constant.StatusPending, second.Status)
	})

	t.Run("Detection Still Failing Leaves Report Alone", func(t *testing.T) {
		source := &fakeSource{reports: []*model.Report{degradedReport("RPT-1-AAAAA")}}
		detector := &fakeDetector{
			configured: true,
			err:        errors.New("detection api down"),
		}

		err := RunReclassify(context.Background(), source, detector)
		assert.NoError(t, err)
		assert.Empty(t, source.updates)
	})

	t.Run("List Failure Propagates", func(t *testing.T) {
		source := &fakeSource{listErr: errors.New("cursor timeout")}
		detector := &fakeDetector{configured: true}

		err := RunReclassify(context.Background(), source, detector)
		assert.Error(t, err)
	})
}
