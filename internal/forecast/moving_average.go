package forecast

import (
	"context"
	"errors"

	"github.com/facilities-pm/backend/internal/models"
)

const movingAverageWindow = 3

var ErrNoHistory = errors.New("forecast: no dated history")

// MovingAverage projects the trailing three-month mean forward at a constant rate.
type MovingAverage struct{}

func (MovingAverage) Name() string {
	return models.ForecastMethodMovingAverage
}

func (MovingAverage) Forecast(_ context.Context, daily []Point, periods int) (models.Forecast, error) {
	monthly := MonthlyCounts(daily)
	if len(monthly) == 0 {
		return models.Forecast{}, ErrNoHistory
	}
	window := monthly
	if len(window) > movingAverageWindow {
		window = window[len(window)-movingAverageWindow:]
	}
	sum := 0.0
	for _, p := range window {
		sum += p.Count
	}
	avg := roundTenth(sum / float64(len(window)))

	res := models.Forecast{
		Method:         models.ForecastMethodMovingAverage,
		ForecastDates:  futureMonths(monthly[len(monthly)-1].Date, periods),
		ForecastValues: make([]float64, periods),
	}
	for i := range res.ForecastValues {
		res.ForecastValues[i] = avg
	}
	return res, nil
}
