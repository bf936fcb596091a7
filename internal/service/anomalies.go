package service

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/facilities-pm/backend/internal/models"
)

const (
	// MinAnomalySample is the record count an input must exceed before any check runs.
	MinAnomalySample = 50

	iqrFactor                   = 1.5
	maxOutlierEquipment         = 5
	decliningMinMonths          = 3
	AnomalyCompletionOutlier    = "completion_time_outlier"
	AnomalyDecliningPerformance = "declining_performance"
)

// DetectAnomalies runs the completion-time outlier and declining-building checks.
// A failing check is logged and contributes nothing; it never fails the batch.
func DetectAnomalies(orders []models.WorkOrder, logger zerolog.Logger) []models.Anomaly {
	anomalies := []models.Anomaly{}
	if len(orders) <= MinAnomalySample {
		return anomalies
	}

	checks := []struct {
		name string
		run  func([]models.WorkOrder) ([]models.Anomaly, error)
	}{
		{"completion_time_outliers", completionTimeOutliers},
		{"declining_performance", decliningBuildings},
	}
	for _, check := range checks {
		res := capture(func() ([]models.Anomaly, error) { return check.run(orders) })
		if !res.OK() {
			logger.Warn().Str("check", check.name).Str("error", res.Error).Msg("anomaly check failed")
			continue
		}
		anomalies = append(anomalies, res.Data...)
	}
	return anomalies
}

func completionTimeOutliers(orders []models.WorkOrder) ([]models.Anomaly, error) {
	type sample struct {
		equipment string
		days      float64
	}
	var samples []sample
	var values []float64
	for _, w := range orders {
		d, ok := w.CompletionDays()
		if !ok {
			continue
		}
		samples = append(samples, sample{equipment: w.EquipmentID, days: d})
		values = append(values, d)
	}
	if len(samples) <= MinAnomalySample {
		return nil, nil
	}

	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1
	low := q1 - iqrFactor*iqr
	high := q3 + iqrFactor*iqr

	flagged := map[string]int{}
	for _, s := range samples {
		if s.equipment == "" {
			continue
		}
		if s.days < low || s.days > high {
			flagged[s.equipment]++
		}
	}

	var out []models.Anomaly
	for _, kc := range rankCounts(flagged, maxOutlierEquipment) {
		out = append(out, models.Anomaly{
			Type:      AnomalyCompletionOutlier,
			Equipment: kc.Key,
			Count:     kc.Count,
			Message:   fmt.Sprintf("Equipment %s has %d work orders with unusual completion times (outside %.1f-%.1f days)", kc.Key, kc.Count, maxFloat(low, 0), high),
		})
	}
	return out, nil
}

func decliningBuildings(orders []models.WorkOrder) ([]models.Anomaly, error) {
	type monthStats struct{ total, completed int }
	byBuilding := map[string]map[string]*monthStats{}
	for _, w := range orders {
		b := w.Building()
		due := w.DueDate()
		if b == "" || due == nil {
			continue
		}
		months, ok := byBuilding[b]
		if !ok {
			months = map[string]*monthStats{}
			byBuilding[b] = months
		}
		key := models.MonthKey(*due)
		ms, ok := months[key]
		if !ok {
			ms = &monthStats{}
			months[key] = ms
		}
		ms.total++
		if w.IsCompleted() {
			ms.completed++
		}
	}

	buildings := make([]string, 0, len(byBuilding))
	for b := range byBuilding {
		buildings = append(buildings, b)
	}
	sort.Strings(buildings)

	var out []models.Anomaly
	for _, b := range buildings {
		months := byBuilding[b]
		if len(months) < decliningMinMonths {
			continue
		}
		keys := make([]string, 0, len(months))
		for k := range months {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		rates := make([]float64, len(keys))
		for i, k := range keys {
			rates[i] = round(float64(months[k].completed)/float64(months[k].total)*100, 1)
		}
		if !strictlyDeclining(rates[len(rates)-decliningMinMonths:]) {
			continue
		}
		latest := rates[len(rates)-1]
		out = append(out, models.Anomaly{
			Type:       AnomalyDecliningPerformance,
			Building:   b,
			LatestRate: latest,
			Message:    fmt.Sprintf("Building %s completion rate declined for %d consecutive months (now %.1f%%)", b, decliningMinMonths, latest),
		})
	}
	return out, nil
}

func strictlyDeclining(rates []float64) bool {
	for i := 1; i < len(rates); i++ {
		if rates[i] >= rates[i-1] {
			return false
		}
	}
	return len(rates) > 1
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
