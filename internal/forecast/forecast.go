// Package forecast projects near-future work-order demand. A capable Model is
// tried first; MovingAverage is the deterministic fallback.
package forecast

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/facilities-pm/backend/internal/models"
)

const (
	// MinHistory is the record count below which no forecast is attempted.
	MinHistory     = 60
	DefaultPeriods = 3
)

// Point is a count observed on a date (a day or a month start).
type Point struct {
	Date  time.Time `json:"date"`
	Count float64   `json:"count"`
}

// Model is a forecasting capability that can fit history and predict periods
// calendar months ahead.
type Model interface {
	Name() string
	Forecast(ctx context.Context, daily []Point, periods int) (models.Forecast, error)
}

// Forecaster selects between the model and the moving-average fallback.
type Forecaster struct {
	Model    Model
	Fallback MovingAverage
	Logger   zerolog.Logger
}

func New(model Model, logger zerolog.Logger) *Forecaster {
	return &Forecaster{Model: model, Logger: logger}
}

// Forecast returns the insufficient-data marker for fewer than MinHistory dated
// records, a model forecast when a model is configured and history exceeds
// MinHistory, and a moving average otherwise or when the model fails.
func (f *Forecaster) Forecast(ctx context.Context, orders []models.WorkOrder, periods int) (models.Forecast, error) {
	if periods <= 0 {
		periods = DefaultPeriods
	}
	daily, n := DailyCounts(orders)
	if n < MinHistory {
		return models.Forecast{Status: models.ForecastInsufficientData}, nil
	}

	if f.Model != nil && n > MinHistory {
		res, err := f.Model.Forecast(ctx, daily, periods)
		if err == nil {
			res.Method = models.ForecastMethodModel
			if res.Model == "" {
				res.Model = f.Model.Name()
			}
			return res, nil
		}
		f.Logger.Info().Err(err).Str("model", f.Model.Name()).Str("method", models.ForecastMethodMovingAverage).Msg("forecast model unavailable, using fallback")
	}
	return f.Fallback.Forecast(ctx, daily, periods)
}

// DailyCounts aggregates orders by effective date. It also returns how many
// orders had a date.
func DailyCounts(orders []models.WorkOrder) ([]Point, int) {
	byDay := map[time.Time]float64{}
	n := 0
	for _, w := range orders {
		d := w.EffectiveDate()
		if d == nil {
			continue
		}
		byDay[models.DateOf(*d)]++
		n++
	}
	out := make([]Point, 0, len(byDay))
	for d, c := range byDay {
		out = append(out, Point{Date: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, n
}

// MonthlyCounts sums points into calendar months, filling empty months between
// the first and last observation with zero.
func MonthlyCounts(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	sums := map[time.Time]float64{}
	first := models.MonthStart(points[0].Date)
	last := first
	for _, p := range points {
		m := models.MonthStart(p.Date)
		sums[m] += p.Count
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}
	var out []Point
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, Point{Date: m, Count: sums[m]})
	}
	return out
}

// futureMonths returns the periods month starts following last.
func futureMonths(last time.Time, periods int) []time.Time {
	out := make([]time.Time, periods)
	for i := range out {
		out[i] = models.MonthStart(last).AddDate(0, i+1, 0)
	}
	return out
}
