package config

import (
	"net/http"
	"time"
)

// NewHTTPClient is the shared client for outbound calls to the detection API.
// Its timeout is the only deadline on those calls.
func NewHTTPClient(cfg *AppConfig) *http.Client {
	return &http.Client{
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	}
}
