package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/facilities-pm/backend/internal/forecast"
	"github.com/facilities-pm/backend/internal/models"
	"github.com/facilities-pm/backend/internal/normalize"
	"github.com/facilities-pm/backend/internal/telemetry"
)

// Analysis step names, used for logs, metrics and spans.
const (
	StepFetch           = "fetch"
	StepMetrics         = "metrics"
	StepAnomalies       = "anomalies"
	StepResources       = "resource_recommendations"
	StepAlerts          = "alerts"
	StepForecast        = "forecast"
	StepRecommendations = "recommendations"
	StepCalendar        = "calendar"
)

// Fetcher is the storage collaborator: it returns raw rows matching the filters,
// paginating internally.
type Fetcher interface {
	FetchWorkOrders(ctx context.Context, f models.Filters) ([]map[string]any, error)
}

// Engine runs the PM analyses over one point-in-time snapshot per call.
type Engine struct {
	Fetcher       Fetcher
	Forecaster    *forecast.Forecaster
	Logger        zerolog.Logger
	Metrics       *telemetry.Metrics
	Tracer        *telemetry.Tracer
	Clock         func() time.Time
	LookAheadDays int
	Periods       int
}

type Insights struct {
	Anomalies               Outcome[[]models.Anomaly]                `json:"anomalies"`
	ResourceRecommendations Outcome[[]models.ResourceRecommendation] `json:"resource_recommendations"`
	Alerts                  Outcome[[]models.Alert]                  `json:"alerts"`
	Forecast                Outcome[models.Forecast]                 `json:"forecast"`
	Recommendations         Outcome[models.Recommendations]          `json:"recommendations"`
}

type PMMetrics struct {
	models.MetricsSnapshot
	Insights      Insights         `json:"insights"`
	Normalization normalize.Report `json:"normalization"`
	Error         string           `json:"error,omitempty"`
}

type ScheduleResult struct {
	models.Recommendations
	Error string `json:"error,omitempty"`
}

type snapshot struct {
	orders []models.WorkOrder
	report normalize.Report
	now    time.Time
	err    string
}

// GetPMMetrics computes the metrics snapshot and the nested insights bundle.
// It always returns a well-formed result; failures are reported per slot.
func (e *Engine) GetPMMetrics(ctx context.Context, f models.Filters) (out PMMetrics) {
	ctx, span := e.Tracer.StartOperation(ctx, "metrics")
	defer func() { telemetry.EndStep(span, out.Error) }()

	snap := e.load(ctx, f, "metrics")
	out = PMMetrics{
		MetricsSnapshot: ComputeMetrics(nil, snap.now),
		Normalization:   snap.report,
		Error:           snap.err,
	}
	orders := snap.orders
	now := snap.now

	metrics := runStep(ctx, e, StepMetrics, len(orders), func(context.Context) (models.MetricsSnapshot, error) {
		return ComputeMetrics(orders, now), nil
	})
	if metrics.OK() {
		out.MetricsSnapshot = metrics.Data
	} else if out.Error == "" {
		out.Error = metrics.Error
	}

	out.Insights.Anomalies = runStep(ctx, e, StepAnomalies, len(orders), func(context.Context) ([]models.Anomaly, error) {
		return DetectAnomalies(orders, e.Logger), nil
	})
	out.Insights.ResourceRecommendations = runStep(ctx, e, StepResources, len(orders), func(context.Context) ([]models.ResourceRecommendation, error) {
		return ResourceRecommendations(orders), nil
	})
	out.Insights.Alerts = runStep(ctx, e, StepAlerts, len(orders), func(context.Context) ([]models.Alert, error) {
		return SmartAlerts(orders), nil
	})
	out.Insights.Forecast = runStep(ctx, e, StepForecast, len(orders), func(ctx context.Context) (models.Forecast, error) {
		res, err := e.forecaster().Forecast(ctx, orders, e.periods(f))
		if err == nil {
			e.Metrics.ObserveForecast(firstNonEmpty(res.Method, res.Status))
		}
		return res, err
	})
	out.Insights.Recommendations = runStep(ctx, e, StepRecommendations, len(orders), func(context.Context) (models.Recommendations, error) {
		return RecommendSchedule(orders, e.lookAhead(f), now), nil
	})
	return out
}

// GetSchedulingRecommendations ranks upcoming work in records relative to now.
func (e *Engine) GetSchedulingRecommendations(records []models.WorkOrder, lookAheadDays int, now time.Time) models.Recommendations {
	return RecommendSchedule(records, lookAheadDays, now)
}

// ScheduleFor fetches the filtered snapshot and returns its recommendations.
func (e *Engine) ScheduleFor(ctx context.Context, f models.Filters) (out ScheduleResult) {
	ctx, span := e.Tracer.StartOperation(ctx, "recommendations")
	defer func() { telemetry.EndStep(span, out.Error) }()

	snap := e.load(ctx, f, "recommendations")
	res := runStep(ctx, e, StepRecommendations, len(snap.orders), func(context.Context) (models.Recommendations, error) {
		return e.GetSchedulingRecommendations(snap.orders, e.lookAhead(f), snap.now), nil
	})
	out = ScheduleResult{Recommendations: res.Data, Error: snap.err}
	if !res.OK() {
		out.Recommendations = RecommendSchedule(nil, e.lookAhead(f), snap.now)
		out.Error = res.Error
	}
	return out
}

// GetPMCalendarData returns calendar events and bucket stats for the filtered snapshot.
func (e *Engine) GetPMCalendarData(ctx context.Context, f models.Filters) (data models.CalendarData) {
	ctx, span := e.Tracer.StartOperation(ctx, "calendar")
	defer func() { telemetry.EndStep(span, data.Error) }()

	snap := e.load(ctx, f, "calendar")
	res := runStep(ctx, e, StepCalendar, len(snap.orders), func(context.Context) (models.CalendarData, error) {
		return BuildCalendar(snap.orders, snap.now), nil
	})
	if !res.OK() {
		empty := BuildCalendar(nil, snap.now)
		empty.Error = res.Error
		return empty
	}
	res.Data.Error = snap.err
	return res.Data
}

// load captures the reference time once and fetches, normalizes and filters the snapshot.
func (e *Engine) load(ctx context.Context, f models.Filters, operation string) snapshot {
	snap := snapshot{now: e.referenceTime(f)}
	if e.Fetcher == nil {
		snap.err = "fetch: no work-order store configured"
		return snap
	}
	rows := runStep(ctx, e, StepFetch, 0, func(ctx context.Context) ([]map[string]any, error) {
		return e.Fetcher.FetchWorkOrders(ctx, f)
	})
	if !rows.OK() {
		snap.err = StepFetch + ": " + rows.Error
		return snap
	}
	orders, report := normalize.Maps(rows.Data)
	snap.orders = ApplyFilters(orders, f)
	snap.report = report
	if report.Dropped > 0 {
		e.Logger.Warn().Int("dropped", report.Dropped).Int("received", report.Received).Msg("dropped malformed work-order rows")
	}
	e.Metrics.ObserveRecords(operation, len(snap.orders))
	return snap
}

func (e *Engine) referenceTime(f models.Filters) time.Time {
	if f.ReferenceTime != nil {
		return *f.ReferenceTime
	}
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func (e *Engine) forecaster() *forecast.Forecaster {
	if e.Forecaster != nil {
		return e.Forecaster
	}
	return forecast.New(nil, e.Logger)
}

func (e *Engine) lookAhead(f models.Filters) int {
	if f.LookAheadDays > 0 {
		return f.LookAheadDays
	}
	if e.LookAheadDays > 0 {
		return e.LookAheadDays
	}
	return DefaultLookAheadDays
}

func (e *Engine) periods(f models.Filters) int {
	if f.Periods > 0 {
		return f.Periods
	}
	if e.Periods > 0 {
		return e.Periods
	}
	return forecast.DefaultPeriods
}

// runStep executes one independent step inside a span, recording its outcome.
func runStep[T any](ctx context.Context, e *Engine, step string, records int, fn func(context.Context) (T, error)) Outcome[T] {
	ctx, span := e.Tracer.StartStep(ctx, step, records)
	start := time.Now()
	out := capture(func() (T, error) { return fn(ctx) })
	e.Metrics.ObserveStep(step, time.Since(start).Seconds(), out.OK())
	telemetry.EndStep(span, out.Error)
	if !out.OK() {
		e.Logger.Warn().Str("step", step).Str("error", out.Error).Msg("analysis step failed")
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
