package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// MLBridge handles communication with the Python model service that hosts
// the trained per-pollutant regressors
type MLBridge struct {
	serviceURL string
	httpClient *http.Client
}

// NewMLBridge creates a new ML bridge
func NewMLBridge(serviceURL string, timeout time.Duration) *MLBridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MLBridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type modelRequest struct {
	Pollutant domain.Pollutant `json:"pollutant"`
	domain.DateFeatures
}

type modelResponse struct {
	Concentration *float64 `json:"concentration"`
}

// Predict asks the model service for one pollutant's concentration
func (b *MLBridge) Predict(ctx context.Context, p domain.Pollutant, features domain.DateFeatures) (float64, error) {
	body, err := json.Marshal(modelRequest{Pollutant: p, DateFeatures: features})
	if err != nil {
		return 0, fmt.Errorf("ml_bridge: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", b.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("ml_bridge: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("ml_bridge: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ml_bridge: model service returned status %d", resp.StatusCode)
	}

	var out modelResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("ml_bridge: failed to decode response: %w", err)
	}
	if out.Concentration == nil {
		return 0, errors.New("ml_bridge: response has no concentration")
	}

	return *out.Concentration, nil
}

// Model binds the bridge to a single pollutant
func (b *MLBridge) Model(p domain.Pollutant) domain.Model {
	return domain.ModelFunc(func(ctx context.Context, features domain.DateFeatures) (float64, error) {
		return b.Predict(ctx, p, features)
	})
}

// Models returns a model for every pollutant, all served by the bridge
func (b *MLBridge) Models() domain.ModelSet {
	set := make(domain.ModelSet)
	for _, p := range domain.Pollutants() {
		set[p] = b.Model(p)
	}
	return set
}

// Health checks ML service connectivity
func (b *MLBridge) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ml_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}
