package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/facilities-pm/backend/internal/models"
)

// HTTPModel delegates fit/predict to an external forecasting service.
type HTTPModel struct {
	BaseURL string
	Client  *http.Client
}

type requestBody struct {
	History []Point `json:"history"`
	Periods int     `json:"periods"`
	Freq    string  `json:"freq"`
}

type responseBody struct {
	Model  string      `json:"model"`
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
	Lower  []float64   `json:"lower"`
	Upper  []float64   `json:"upper"`
}

func (h HTTPModel) Name() string {
	return "remote"
}

func (h HTTPModel) Forecast(ctx context.Context, daily []Point, periods int) (models.Forecast, error) {
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 30 * time.Second}
	}

	payload := requestBody{History: daily, Periods: periods, Freq: "MS"}
	b, err := json.Marshal(payload)
	if err != nil {
		return models.Forecast{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/forecast", bytes.NewBuffer(b))
	if err != nil {
		return models.Forecast{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.Client.Do(req)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("forecast service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Forecast{}, fmt.Errorf("forecast service error: %s", resp.Status)
	}

	var r responseBody
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.Forecast{}, fmt.Errorf("forecast service response: %w", err)
	}
	if len(r.Values) != periods || len(r.Dates) != periods {
		return models.Forecast{}, fmt.Errorf("forecast service returned %d values for %d periods", len(r.Values), periods)
	}

	model := r.Model
	if model == "" {
		model = h.Name()
	}
	return models.Forecast{
		Model:          model,
		ForecastDates:  r.Dates,
		ForecastValues: r.Values,
		ForecastLower:  r.Lower,
		ForecastUpper:  r.Upper,
	}, nil
}
