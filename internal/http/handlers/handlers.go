package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/facilities-pm/backend/internal/http/middleware"
	"github.com/facilities-pm/backend/internal/models"
	"github.com/facilities-pm/backend/internal/service"
)

// Pinger reports whether the work-order store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Engine    *service.Engine
	Store     Pinger
	Validator *validator.Validate
	Logger    zerolog.Logger
}

// FilterQuery is the query string shared by the PM endpoints.
type FilterQuery struct {
	Start         string   `form:"start" validate:"omitempty,datetime=2006-01-02"`
	End           string   `form:"end" validate:"omitempty,datetime=2006-01-02"`
	Building      string   `form:"building" validate:"omitempty,max=200"`
	Region        string   `form:"region" validate:"omitempty,max=200"`
	Zone          string   `form:"zone" validate:"omitempty,max=200"`
	Trade         string   `form:"trade" validate:"omitempty,max=200"`
	Status        []string `form:"status" validate:"omitempty,dive,max=64"`
	Now           string   `form:"now" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	LookAheadDays int      `form:"look_ahead_days" validate:"omitempty,min=1,max=365"`
	Periods       int      `form:"periods" validate:"omitempty,min=1,max=24"`
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "none"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary PM metrics and insights
// @Description Completion, overdue and trend metrics with anomalies, alerts, forecast and recommendations
// @Tags pm
// @Produce json
// @Param start query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end query string false "Exclusive end date (YYYY-MM-DD)"
// @Param building query string false "Building id or name"
// @Param region query string false "Region"
// @Param zone query string false "Zone"
// @Param trade query string false "Trade"
// @Param periods query int false "Forecast months"
// @Success 200 {object} service.PMMetrics
// @Failure 400 {object} map[string]any
// @Router /api/pm/metrics [get]
func (h *Handler) PMMetrics(c *gin.Context) {
	f, ok := h.bindFilters(c)
	if !ok {
		return
	}
	res := h.Engine.GetPMMetrics(c.Request.Context(), f)
	h.markPartial(c, res.Error)
	c.JSON(http.StatusOK, res)
}

// @Summary Scheduling recommendations
// @Description Upcoming unscheduled work ranked by composite score and bucketed by week
// @Tags pm
// @Produce json
// @Param look_ahead_days query int false "Days ahead to consider (1-365)"
// @Param building query string false "Building id or name"
// @Param trade query string false "Trade"
// @Success 200 {object} service.ScheduleResult
// @Failure 400 {object} map[string]any
// @Router /api/pm/recommendations [get]
func (h *Handler) Recommendations(c *gin.Context) {
	f, ok := h.bindFilters(c)
	if !ok {
		return
	}
	res := h.Engine.ScheduleFor(c.Request.Context(), f)
	h.markPartial(c, res.Error)
	c.JSON(http.StatusOK, res)
}

// @Summary PM calendar
// @Description Calendar events bucketed into past due, today and future
// @Tags pm
// @Produce json
// @Param start query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end query string false "Exclusive end date (YYYY-MM-DD)"
// @Param building query string false "Building id or name"
// @Success 200 {object} models.CalendarData
// @Failure 400 {object} map[string]any
// @Router /api/pm/calendar [get]
func (h *Handler) Calendar(c *gin.Context) {
	f, ok := h.bindFilters(c)
	if !ok {
		return
	}
	res := h.Engine.GetPMCalendarData(c.Request.Context(), f)
	h.markPartial(c, res.Error)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) bindFilters(c *gin.Context) (models.Filters, bool) {
	var q FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query", err.Error())
		return models.Filters{}, false
	}
	if err := h.Validator.Struct(q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return models.Filters{}, false
	}
	f, err := q.toFilters()
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return models.Filters{}, false
	}
	return f, true
}

func (q FilterQuery) toFilters() (models.Filters, error) {
	f := models.Filters{
		Building:      q.Building,
		Region:        q.Region,
		Zone:          q.Zone,
		Trade:         q.Trade,
		Statuses:      q.Status,
		LookAheadDays: q.LookAheadDays,
		Periods:       q.Periods,
	}
	if q.Start != "" {
		t, _ := time.Parse("2006-01-02", q.Start)
		f.Start = &t
	}
	if q.End != "" {
		t, _ := time.Parse("2006-01-02", q.End)
		f.End = &t
	}
	if f.Start != nil && f.End != nil && !f.End.After(*f.Start) {
		return models.Filters{}, errEmptyRange
	}
	if q.Now != "" {
		t, _ := time.Parse(time.RFC3339, q.Now)
		f.ReferenceTime = &t
	}
	return f, nil
}

func (h *Handler) markPartial(c *gin.Context, errDescriptor string) {
	if errDescriptor == "" {
		return
	}
	c.Set(middleware.SkipCacheKey, true)
	h.Logger.Warn().Str("path", c.FullPath()).Str("error", errDescriptor).Msg("returning partial insights")
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
