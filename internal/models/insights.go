package models

import "time"

// Filters narrows a work-order snapshot. Zero values mean "no restriction".
type Filters struct {
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
	Building      string     `json:"building,omitempty"`
	Region        string     `json:"region,omitempty"`
	Zone          string     `json:"zone,omitempty"`
	Trade         string     `json:"trade,omitempty"`
	Statuses      []string   `json:"statuses,omitempty"`
	ReferenceTime *time.Time `json:"reference_time,omitempty"`
	LookAheadDays int        `json:"look_ahead_days,omitempty"`
	Periods       int        `json:"periods,omitempty"`
}

type TrendPoint struct {
	Month        string         `json:"month"`
	Total        int            `json:"total"`
	Completed    int            `json:"completed"`
	Scheduled    int            `json:"scheduled"`
	StatusCounts map[string]int `json:"status_counts"`
}

type MetricsSnapshot struct {
	TotalPMs          int            `json:"total_pms"`
	CompletedPMs      int            `json:"completed_pms"`
	CompletionRate    int            `json:"completion_rate"`
	OverduePMs        int            `json:"overdue_pms"`
	AvgCompletionDays float64        `json:"avg_completion_days"`
	MonthlyTrend      []TrendPoint   `json:"monthly_trend"`
	StatusCounts      map[string]int `json:"status_counts"`
	ReferenceTime     time.Time      `json:"reference_time"`
}

type Anomaly struct {
	Type       string  `json:"type"`
	Equipment  string  `json:"equipment,omitempty"`
	Building   string  `json:"building,omitempty"`
	Count      int     `json:"count,omitempty"`
	LatestRate float64 `json:"latest_rate,omitempty"`
	Message    string  `json:"message"`
}

type ResourceRecommendation struct {
	Type     string `json:"type"`
	Trade    string `json:"trade,omitempty"`
	Building string `json:"building,omitempty"`
	Count    int    `json:"count"`
	Message  string `json:"message"`
}

type Alert struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Building  string `json:"building,omitempty"`
	Equipment string `json:"equipment,omitempty"`
	Count     int    `json:"count"`
	Message   string `json:"message"`
}

// Forecast methods and markers.
const (
	ForecastMethodModel         = "model"
	ForecastMethodMovingAverage = "moving_average"
	ForecastInsufficientData    = "insufficient data"
)

type Forecast struct {
	Status         string      `json:"status,omitempty"`
	Method         string      `json:"method,omitempty"`
	Model          string      `json:"model,omitempty"`
	ForecastDates  []time.Time `json:"forecast_dates,omitempty"`
	ForecastValues []float64   `json:"forecast_values,omitempty"`
	ForecastLower  []float64   `json:"forecast_lower,omitempty"`
	ForecastUpper  []float64   `json:"forecast_upper,omitempty"`
}

// Scheduling buckets.
const (
	BucketThisWeek = "this_week"
	BucketNextWeek = "next_week"
	BucketLater    = "later"
)

type ScoredCandidate struct {
	WorkOrder          WorkOrder `json:"work_order"`
	DaysUntilDue       int       `json:"days_until_due"`
	PriorityScore      float64   `json:"priority_score"`
	DateScore          float64   `json:"date_score"`
	CriticalityScore   float64   `json:"criticality_score"`
	OccupancyScore     float64   `json:"occupancy_score"`
	DelayRiskScore     float64   `json:"delay_risk_score"`
	SchedulingScore    float64   `json:"scheduling_score"`
	Frequency          string    `json:"frequency"`
	RecommendedDate    time.Time `json:"recommended_date"`
	RecommendedWeekday string    `json:"recommended_weekday"`
	Bucket             string    `json:"bucket"`
}

type Recommendations struct {
	ThisWeek []ScoredCandidate `json:"this_week"`
	NextWeek []ScoredCandidate `json:"next_week"`
	Later    []ScoredCandidate `json:"later"`
	All      []ScoredCandidate `json:"all"`
}

type CalendarEvent struct {
	Title       string         `json:"title"`
	Start       time.Time      `json:"start"`
	Color       string         `json:"color"`
	TextColor   string         `json:"text_color"`
	IsPastDue   bool           `json:"is_past_due"`
	IsToday     bool           `json:"is_today"`
	IsFuture    bool           `json:"is_future"`
	IsCompleted bool           `json:"is_completed"`
	Properties  map[string]any `json:"extended_props"`
}

type CalendarStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	PastDue   int `json:"past_due"`
	Today     int `json:"today"`
	Future    int `json:"future"`
}

type CalendarData struct {
	Events  []CalendarEvent `json:"events"`
	PastDue []CalendarEvent `json:"past_due"`
	Today   []CalendarEvent `json:"today"`
	Future  []CalendarEvent `json:"future"`
	Stats   CalendarStats   `json:"stats"`
	Error   string          `json:"error,omitempty"`
}
