package service

import (
	"sort"
	"time"

	"github.com/facilities-pm/backend/internal/models"
)

// ComputeMetrics aggregates an already-filtered snapshot. An empty input
// yields an all-zero snapshot with an empty trend.
func ComputeMetrics(orders []models.WorkOrder, now time.Time) models.MetricsSnapshot {
	snap := models.MetricsSnapshot{
		MonthlyTrend:  []models.TrendPoint{},
		StatusCounts:  map[string]int{},
		ReferenceTime: now,
	}

	var durations []float64
	for _, w := range orders {
		snap.TotalPMs++
		snap.StatusCounts[string(w.Status)]++
		if w.IsCompleted() {
			snap.CompletedPMs++
			if d, ok := w.CompletionDays(); ok {
				durations = append(durations, d)
			}
		}
		if w.IsOverdue(now) {
			snap.OverduePMs++
		}
	}
	snap.CompletionRate = percent(snap.CompletedPMs, snap.TotalPMs)
	snap.AvgCompletionDays = round(mean(durations), 1)
	snap.MonthlyTrend = MonthlyTrend(orders)
	return snap
}

// MonthlyTrend groups by the month of scheduled_start_date. Orders without a
// scheduled date are not part of the trend.
func MonthlyTrend(orders []models.WorkOrder) []models.TrendPoint {
	byMonth := map[string]*models.TrendPoint{}
	for _, w := range orders {
		if w.ScheduledStart == nil {
			continue
		}
		key := models.MonthKey(*w.ScheduledStart)
		p, ok := byMonth[key]
		if !ok {
			p = &models.TrendPoint{Month: key, StatusCounts: map[string]int{}}
			byMonth[key] = p
		}
		p.Total++
		p.Scheduled++
		p.StatusCounts[string(w.Status)]++
		if w.IsCompleted() {
			p.Completed++
		}
	}

	out := make([]models.TrendPoint, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
