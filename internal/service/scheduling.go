package service

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/facilities-pm/backend/internal/models"
)

const (
	DefaultLookAheadDays = 30
	MaxRecommendations   = 30

	weightPriority    = 0.35
	weightDate        = 0.25
	weightCriticality = 0.15
	weightOccupancy   = 0.10
	weightDelayRisk   = 0.15

	defaultCriticalityScore = 0.5
	defaultOccupancyScore   = 0.5
	delayRiskHigh           = 0.8
	delayRiskLow            = 0.2

	recommendedHour  = 9
	weeklyCutoffHour = 17
)

// Service frequencies.
const (
	FrequencyWeekly      = "weekly"
	FrequencyMonthly     = "monthly"
	FrequencyQuarterly   = "quarterly"
	FrequencySemiAnnual  = "semi-annual"
	FrequencyAnnual      = "annual"
	FrequencyUnspecified = "unspecified"
)

// checked in order; semi-annual must precede annual
var frequencyKeywords = []struct {
	frequency string
	keywords  []string
}{
	{FrequencySemiAnnual, []string{"semi-annual", "semiannual", "semi annual", "bi-annual", "biannual", "six month", "6 month"}},
	{FrequencyQuarterly, []string{"quarter", "3 month", "three month"}},
	{FrequencyAnnual, []string{"annual", "yearly", "12 month"}},
	{FrequencyMonthly, []string{"month"}},
	{FrequencyWeekly, []string{"week"}},
}

var criticalityScores = []struct {
	keyword string
	score   float64
}{
	{"critical", 1.0},
	{"high", 0.75},
	{"medium", 0.5},
	{"low", 0.25},
}

// RecommendSchedule ranks upcoming unscheduled work and assigns each of the top
// candidates a recommended slot and a this_week/next_week/later bucket. The
// result depends only on its arguments.
func RecommendSchedule(orders []models.WorkOrder, lookAheadDays int, now time.Time) models.Recommendations {
	if lookAheadDays <= 0 {
		lookAheadDays = DefaultLookAheadDays
	}
	recs := models.Recommendations{
		ThisWeek: []models.ScoredCandidate{},
		NextWeek: []models.ScoredCandidate{},
		Later:    []models.ScoredCandidate{},
		All:      []models.ScoredCandidate{},
	}

	scored := ScoreCandidates(SelectCandidates(orders, lookAheadDays, now), orders, now)
	if len(scored) > MaxRecommendations {
		scored = scored[:MaxRecommendations]
	}

	daysToSunday := (7 - int(now.Weekday())) % 7
	for _, c := range scored {
		c.Frequency = ClassifyFrequency(c.WorkOrder)
		if c.Frequency == FrequencyMonthly {
			c.RecommendedDate = LastThursdayOfMonth(now)
		} else {
			c.RecommendedDate = NextThursday(now)
		}
		c.RecommendedWeekday = c.RecommendedDate.Weekday().String()

		switch {
		case c.DaysUntilDue <= daysToSunday:
			c.Bucket = models.BucketThisWeek
			recs.ThisWeek = append(recs.ThisWeek, c)
		case c.DaysUntilDue <= daysToSunday+7:
			c.Bucket = models.BucketNextWeek
			recs.NextWeek = append(recs.NextWeek, c)
		default:
			c.Bucket = models.BucketLater
			recs.Later = append(recs.Later, c)
		}
		recs.All = append(recs.All, c)
	}
	return recs
}

// SelectCandidates keeps orders scheduled within [today, today+lookAheadDays]
// that are not already scheduled, in progress or done.
func SelectCandidates(orders []models.WorkOrder, lookAheadDays int, now time.Time) []models.WorkOrder {
	return filterOrders(orders, func(w models.WorkOrder) bool {
		if w.ScheduledStart == nil || !isSchedulable(w) {
			return false
		}
		days := models.DaysBetween(now, *w.ScheduledStart)
		return days >= 0 && days <= lookAheadDays
	})
}

func isSchedulable(w models.WorkOrder) bool {
	switch w.Status {
	case models.StatusInProgress, models.StatusCompleted, models.StatusClosed:
		return false
	}
	return !labelSaysScheduled(w.StatusLabel)
}

// labelSaysScheduled reports whether the free-form label marks the order as
// already booked. "scheduled" and "rescheduled" count; "unscheduled" and
// "not scheduled" do not.
func labelSaysScheduled(label string) bool {
	words := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for i, word := range words {
		if !strings.HasSuffix(word, "scheduled") || strings.HasPrefix(word, "un") {
			continue
		}
		if i > 0 && words[i-1] == "not" {
			continue
		}
		return true
	}
	return false
}

// ScoreCandidates computes the five component scores and the weighted composite
// for each candidate and sorts descending by composite. Equal scores keep
// input order. all is the full snapshot used for the building delay risk.
func ScoreCandidates(candidates, all []models.WorkOrder, now time.Time) []models.ScoredCandidate {
	overdueBuildings := map[string]bool{}
	for _, w := range all {
		if b := w.Building(); b != "" && w.IsOverdue(now) {
			overdueBuildings[b] = true
		}
	}

	maxDays := 0
	for _, w := range candidates {
		if d := daysUntil(w, now); d > maxDays {
			maxDays = d
		}
	}

	out := make([]models.ScoredCandidate, 0, len(candidates))
	for _, w := range candidates {
		c := models.ScoredCandidate{
			WorkOrder:        w,
			DaysUntilDue:     daysUntil(w, now),
			PriorityScore:    float64(w.Priority-models.PriorityLow) / 4,
			CriticalityScore: criticalityScore(w.Criticality),
			OccupancyScore:   occupancyScore(w.Occupancy),
			DelayRiskScore:   delayRiskLow,
		}
		if maxDays > 0 {
			c.DateScore = 1 - float64(c.DaysUntilDue)/float64(maxDays)
		}
		if overdueBuildings[w.Building()] {
			c.DelayRiskScore = delayRiskHigh
		}
		c.SchedulingScore = weightPriority*c.PriorityScore +
			weightDate*c.DateScore +
			weightCriticality*c.CriticalityScore +
			weightOccupancy*c.OccupancyScore +
			weightDelayRisk*c.DelayRiskScore
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SchedulingScore > out[j].SchedulingScore
	})
	return out
}

func daysUntil(w models.WorkOrder, now time.Time) int {
	if w.ScheduledStart == nil {
		return 0
	}
	return models.DaysBetween(now, *w.ScheduledStart)
}

func criticalityScore(label string) float64 {
	for _, cs := range criticalityScores {
		if strings.Contains(label, cs.keyword) {
			return cs.score
		}
	}
	return defaultCriticalityScore
}

func occupancyScore(pct *float64) float64 {
	if pct == nil {
		return defaultOccupancyScore
	}
	s := *pct / 100
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// ClassifyFrequency uses the explicit frequency field when it names a cadence,
// otherwise searches the description and equipment text.
func ClassifyFrequency(w models.WorkOrder) string {
	if f := inferFrequency(w.Frequency); f != FrequencyUnspecified {
		return f
	}
	return inferFrequency(w.SearchText())
}

func inferFrequency(text string) string {
	text = strings.ToLower(text)
	for _, fk := range frequencyKeywords {
		for _, kw := range fk.keywords {
			if strings.Contains(text, kw) {
				return fk.frequency
			}
		}
	}
	return FrequencyUnspecified
}

// NextThursday returns the upcoming Thursday at 09:00. On a Thursday after
// 17:00 it rolls to the following week.
func NextThursday(now time.Time) time.Time {
	days := (int(time.Thursday) - int(now.Weekday()) + 7) % 7
	if days == 0 && now.Hour() >= weeklyCutoffHour {
		days = 7
	}
	return time.Date(now.Year(), now.Month(), now.Day()+days, recommendedHour, 0, 0, 0, now.Location())
}

// LastThursdayOfMonth returns the last Thursday of now's month at 09:00.
func LastThursdayOfMonth(now time.Time) time.Time {
	last := time.Date(now.Year(), now.Month()+1, 0, recommendedHour, 0, 0, 0, now.Location())
	back := (int(last.Weekday()) - int(time.Thursday) + 7) % 7
	return last.AddDate(0, 0, -back)
}

func filterOrders(orders []models.WorkOrder, keep func(models.WorkOrder) bool) []models.WorkOrder {
	out := make([]models.WorkOrder, 0, len(orders))
	for _, w := range orders {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
