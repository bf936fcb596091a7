package forecast

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/facilities-pm/backend/internal/models"
)

const (
	seasonalMinMonths = 12
	intervalZ         = 1.96
)

var ErrShortHistory = errors.New("forecast: need at least two months of history")

// SeasonalRegression fits a least-squares trend over monthly totals plus
// additive month-of-year offsets once a full year of history exists.
type SeasonalRegression struct{}

func (SeasonalRegression) Name() string {
	return "seasonal_regression"
}

func (m SeasonalRegression) Forecast(_ context.Context, daily []Point, periods int) (models.Forecast, error) {
	monthly := MonthlyCounts(daily)
	if len(monthly) < 2 {
		return models.Forecast{}, ErrShortHistory
	}

	ys := make([]float64, len(monthly))
	for i, p := range monthly {
		ys[i] = p.Count
	}
	intercept, slope := linearFit(ys)

	seasonal := map[time.Month]float64{}
	if len(monthly) >= seasonalMinMonths {
		sums := map[time.Month]float64{}
		counts := map[time.Month]int{}
		for i, p := range monthly {
			moy := p.Date.Month()
			sums[moy] += ys[i] - (intercept + slope*float64(i))
			counts[moy]++
		}
		for moy, s := range sums {
			seasonal[moy] = s / float64(counts[moy])
		}
	}

	residualSq := 0.0
	for i, p := range monthly {
		fitted := intercept + slope*float64(i) + seasonal[p.Date.Month()]
		residualSq += (ys[i] - fitted) * (ys[i] - fitted)
	}
	dof := len(monthly) - 2
	if dof < 1 {
		dof = 1
	}
	sigma := math.Sqrt(residualSq / float64(dof))

	dates := futureMonths(monthly[len(monthly)-1].Date, periods)
	res := models.Forecast{
		Model:          m.Name(),
		ForecastDates:  dates,
		ForecastValues: make([]float64, periods),
		ForecastLower:  make([]float64, periods),
		ForecastUpper:  make([]float64, periods),
	}
	for h, d := range dates {
		x := float64(len(monthly) + h)
		pred := math.Max(0, intercept+slope*x+seasonal[d.Month()])
		res.ForecastValues[h] = roundTenth(pred)
		res.ForecastLower[h] = roundTenth(math.Max(0, pred-intervalZ*sigma))
		res.ForecastUpper[h] = roundTenth(pred + intervalZ*sigma)
	}
	return res, nil
}

// linearFit returns the ordinary least squares intercept and slope of ys over x = 0..n-1.
func linearFit(ys []float64) (float64, float64) {
	n := float64(len(ys))
	if n == 0 {
		return 0, 0
	}
	meanX := (n - 1) / 2
	sumY := 0.0
	for _, y := range ys {
		sumY += y
	}
	meanY := sumY / n

	num, den := 0.0, 0.0
	for i, y := range ys {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return meanY, 0
	}
	slope := num / den
	return meanY - slope*meanX, slope
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
