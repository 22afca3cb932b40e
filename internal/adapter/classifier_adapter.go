package adapter

import (
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ClassifierAdapter calls the hosted image-detection API. The wire format is
// a POST to <base>/<model>/<version> with api_key and the public image URL as
// query parameters; the response carries a ranked prediction list.
type ClassifierAdapter struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	modelID      string
	modelVersion string
}

func NewClassifierAdapter(cfg *config.AppConfig, httpClient *http.Client) *ClassifierAdapter {
	return &ClassifierAdapter{
		httpClient:   httpClient,
		baseURL:      cfg.ClassifierBaseURL,
		apiKey:       cfg.ClassifierAPIKey,
		modelID:      cfg.ClassifierModelID,
		modelVersion: cfg.ClassifierModelVersion,
	}
}

// Configured reports whether an API key is present. Without one the workflow
// substitutes a fixed mock prediction instead of calling out.
func (c *ClassifierAdapter) Configured() bool {
	return c.apiKey != ""
}

func (c *ClassifierAdapter) Detect(ctx context.Context, imageURL string) (*model.DetectionResult, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.modelID, c.modelVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build detection request: %w", err)
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("image", imageURL)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detection request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read detection response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detection api returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Predictions []model.Prediction `json:"predictions"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal detection response: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal detection payload: %w", err)
	}

	return &model.DetectionResult{
		Predictions: parsed.Predictions,
		Raw:         raw,
	}, nil
}
