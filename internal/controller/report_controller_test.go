package controller

import (
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/constant"
	"EnvWatchAPI/internal/helper"
	"EnvWatchAPI/internal/middleware"
	"EnvWatchAPI/internal/model"
	"EnvWatchAPI/internal/repository"
	"EnvWatchAPI/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory collaborators so the full HTTP surface can be exercised without
// mongo, S3, or the detection API.

type memStore struct {
	reports []*model.Report
}

func (m *memStore) Insert(ctx context.Context, report *model.Report) error {
	report.ID = primitive.NewObjectID()
	m.reports = append(m.reports, report)
	return nil
}

func (m *memStore) FindByTicketID(ctx context.Context, ticketID string) (*model.Report, error) {
	for _, r := range m.reports {
		if r.TicketID == ticketID {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListAll(ctx context.Context) ([]*model.Report, error) {
	return m.reports, nil
}

func (m *memStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Report, error) {
	for _, r := range m.reports {
		if r.ID.Hex() == id {
			if status, ok := fields["status"].(string); ok {
				r.Status = status
			}
			if category, ok := fields["category"].(string); ok {
				r.Category = category
			}
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

type noStorage struct{}

func (noStorage) Configured() bool { return false }
func (noStorage) StoreFromReader(ctx context.Context, reader io.Reader, contentType, name string) error {
	return nil
}
func (noStorage) Delete(ctx context.Context, name string) error { return nil }
func (noStorage) PublicURL(name string) string                  { return "" }

type noClassifier struct{}

func (noClassifier) Configured() bool { return false }
func (noClassifier) Detect(ctx context.Context, imageURL string) (*model.DetectionResult, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, store *memStore) *chi.Mux {
	t.Helper()

	cfg := &config.AppConfig{
		JWTSecret:             "test-secret",
		JWTExp:                1,
		LookupCacheTTLSeconds: 30,
	}
	validate := config.NewValidator()

	reportService := service.NewReportService(store, noStorage{}, noClassifier{}, nil, cfg, validate)

	verifier, err := service.NewStaticCredentialVerifier("admin", "S3cureAdminPass!")
	assert.NoError(t, err)
	authService := service.NewAuthService(verifier, cfg, validate)

	auth := middleware.NewAuthMiddleware(authService)
	reportController := NewReportController(reportService)
	authController := NewAuthController(authService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/reports", reportController.CreateReport)
		r.Get("/reports/{ticketId}", reportController.GetReportByTicketID)
		r.With(auth.VerifyToken).Get("/reports", reportController.GetReports)
		r.With(auth.VerifyToken).Patch("/reports/{id}/status", reportController.UpdateReportStatus)
		r.Post("/admin/login", authController.Login)
	})

	return r
}

func multipartReport(t *testing.T, withImage bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if withImage {
		fw, err := w.CreateFormFile("image", "photo.jpg")
		assert.NoError(t, err)
		_, err = fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
		assert.NoError(t, err)
	}
	assert.NoError(t, w.WriteField("latitude", "-6.2"))
	assert.NoError(t, w.WriteField("longitude", "106.8"))
	assert.NoError(t, w.WriteField("description", "Tumpukan sampah"))
	assert.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func adminToken(t *testing.T, router *chi.Mux) string {
	t.Helper()

	body, _ := json.Marshal(model.LoginRequest{Username: "admin", Password: "S3cureAdminPass!"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp model.LoginResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func TestCreateReportEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &memStore{}
		router := newTestRouter(t, store)

		body, contentType := multipartReport(t, true)
		req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp model.CreateReportResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Regexp(t, `^RPT-\d+-[A-Z0-9]{5}$`, resp.TicketID)
		assert.Equal(t, constant.PlaceholderImageURL, resp.ImageURL)
		assert.Equal(t, constant.CategorySampah, resp.Category)
		assert.Len(t, store.reports, 1)
	})

	t.Run("Missing Image", func(t *testing.T) {
		store := &memStore{}
		router := newTestRouter(t, store)

		body, contentType := multipartReport(t, false)
		req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp helper.ResponseError
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Message)
		assert.Empty(t, store.reports)
	})

	t.Run("Invalid Latitude", func(t *testing.T) {
		store := &memStore{}
		router := newTestRouter(t, store)

		body := &bytes.Buffer{}
		w := multipart.NewWriter(body)
		fw, _ := w.CreateFormFile("image", "photo.jpg")
		fw.Write([]byte{0xFF, 0xD8})
		w.WriteField("latitude", "not-a-number")
		w.WriteField("longitude", "106.8")
		w.WriteField("description", "x")
		w.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, store.reports)
	})
}

func TestGetReportEndpoint(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(t, store)

	body, contentType := multipartReport(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created model.CreateReportResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/"+created.TicketID, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success":true`)
		assert.Contains(t, rr.Body.String(), created.TicketID)
	})

	t.Run("Not Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/RPT-0-ZZZZZ", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success":false`)
	})
}

func TestAdminEndpoints(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(t, store)

	body, contentType := multipartReport(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	token := adminToken(t, router)
	reportID := store.reports[0].ID.Hex()

	t.Run("List Requires Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("List With Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp helper.ResponseData
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("Update Status", func(t *testing.T) {
		payload := strings.NewReader(`{"status": "Resolved"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/reports/"+reportID+"/status", payload)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constant.StatusResolved, store.reports[0].Status)
	})

	t.Run("Update With Invalid Status", func(t *testing.T) {
		payload := strings.NewReader(`{"status": "Done"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/reports/"+reportID+"/status", payload)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, constant.StatusResolved, store.reports[0].Status)
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		body, _ := json.Marshal(model.LoginRequest{Username: "admin", Password: "admin123"})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
