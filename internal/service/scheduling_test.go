package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facilities-pm/backend/internal/models"
)

// Monday
var schedNow = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

func scheduleFixture() []models.WorkOrder {
	return []models.WorkOrder{
		order(models.StatusOpen, withID("A"), priority(models.PriorityCritical), scheduled(daysFrom(schedNow, 1)), frequency("Weekly")),
		order(models.StatusOpen, withID("B"), priority(models.PriorityLow), scheduled(daysFrom(schedNow, 1)), frequency("Weekly")),
		order(models.StatusAssigned, withID("C"), scheduled(daysFrom(schedNow, 10)), frequency("Monthly PM")),
		order(models.StatusOpen, withID("D"), scheduled(daysFrom(schedNow, 20)), building("Tower")),
		order(models.StatusInProgress, withID("E"), scheduled(daysFrom(schedNow, 2))),
		order(models.StatusUnknown, withID("F"), label("scheduled"), scheduled(daysFrom(schedNow, 3))),
		order(models.StatusOpen, withID("G"), scheduled(daysFrom(schedNow, -1)), building("Tower")),
		order(models.StatusOpen, withID("H"), scheduled(daysFrom(schedNow, 40))),
		order(models.StatusClosed, withID("I"), scheduled(daysFrom(schedNow, 2))),
		order(models.StatusOpen, withID("J")),
	}
}

func candidateIDs(cs []models.ScoredCandidate) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.WorkOrder.ID)
	}
	return out
}

func TestSelectCandidates(t *testing.T) {
	got := SelectCandidates(scheduleFixture(), 30, schedNow)

	ids := []string{}
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids)
}

func TestSelectCandidatesScheduledLabel(t *testing.T) {
	orders := []models.WorkOrder{
		order(models.StatusOpen, withID("unscheduled"), label("unscheduled"), scheduled(daysFrom(schedNow, 2))),
		order(models.StatusOpen, withID("not"), label("open - not scheduled"), scheduled(daysFrom(schedNow, 2))),
		order(models.StatusOpen, withID("open"), label("open"), scheduled(daysFrom(schedNow, 2))),
		order(models.StatusUnknown, withID("booked"), label("scheduled"), scheduled(daysFrom(schedNow, 2))),
		order(models.StatusUnknown, withID("moved"), label("Rescheduled"), scheduled(daysFrom(schedNow, 2))),
		order(models.StatusAssigned, withID("assigned"), label("assigned/scheduled"), scheduled(daysFrom(schedNow, 2))),
	}

	got := SelectCandidates(orders, 30, schedNow)

	ids := []string{}
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"unscheduled", "not", "open"}, ids)
}

func TestRecommendScheduleScoresAndOrder(t *testing.T) {
	recs := RecommendSchedule(scheduleFixture(), 30, schedNow)

	require.Len(t, recs.All, 4)
	for i, c := range recs.All {
		assert.GreaterOrEqual(t, c.SchedulingScore, 0.0)
		assert.LessOrEqual(t, c.SchedulingScore, 1.0)
		for _, s := range []float64{c.PriorityScore, c.DateScore, c.CriticalityScore, c.OccupancyScore, c.DelayRiskScore} {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
		if i > 0 {
			assert.GreaterOrEqual(t, recs.All[i-1].SchedulingScore, c.SchedulingScore)
		}
	}
	assert.Equal(t, "A", recs.All[0].WorkOrder.ID)
}

func TestRecommendScheduleCriticalBeatsLow(t *testing.T) {
	recs := RecommendSchedule(scheduleFixture(), 30, schedNow)

	scores := map[string]float64{}
	for _, c := range recs.All {
		scores[c.WorkOrder.ID] = c.SchedulingScore
	}
	assert.Greater(t, scores["A"], scores["B"])
}

func TestRecommendScheduleBuckets(t *testing.T) {
	recs := RecommendSchedule(scheduleFixture(), 30, schedNow)

	assert.ElementsMatch(t, []string{"A", "B"}, candidateIDs(recs.ThisWeek))
	assert.Equal(t, []string{"C"}, candidateIDs(recs.NextWeek))
	assert.Equal(t, []string{"D"}, candidateIDs(recs.Later))
	for _, c := range recs.ThisWeek {
		assert.Equal(t, models.BucketThisWeek, c.Bucket)
	}
}

func TestRecommendScheduleDates(t *testing.T) {
	recs := RecommendSchedule(scheduleFixture(), 30, schedNow)

	byID := map[string]models.ScoredCandidate{}
	for _, c := range recs.All {
		byID[c.WorkOrder.ID] = c
	}

	assert.Equal(t, FrequencyWeekly, byID["A"].Frequency)
	assert.Equal(t, time.Date(2024, 5, 9, 9, 0, 0, 0, time.UTC), byID["A"].RecommendedDate)
	assert.Equal(t, "Thursday", byID["A"].RecommendedWeekday)

	assert.Equal(t, FrequencyMonthly, byID["C"].Frequency)
	assert.Equal(t, time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC), byID["C"].RecommendedDate)

	assert.Equal(t, FrequencyUnspecified, byID["D"].Frequency)
	assert.Equal(t, time.Thursday, byID["D"].RecommendedDate.Weekday())
}

func TestRecommendScheduleDelayRisk(t *testing.T) {
	recs := RecommendSchedule(scheduleFixture(), 30, schedNow)

	for _, c := range recs.All {
		if c.WorkOrder.ID == "D" {
			assert.Equal(t, 0.8, c.DelayRiskScore)
		} else {
			assert.Equal(t, 0.2, c.DelayRiskScore)
		}
	}
}

func TestRecommendScheduleIsIdempotent(t *testing.T) {
	orders := scheduleFixture()
	assert.Equal(t, RecommendSchedule(orders, 30, schedNow), RecommendSchedule(orders, 30, schedNow))
}

func TestRecommendScheduleEmpty(t *testing.T) {
	recs := RecommendSchedule(nil, 0, schedNow)
	assert.NotNil(t, recs.All)
	assert.Empty(t, recs.All)
	assert.NotNil(t, recs.ThisWeek)
}

func TestRecommendScheduleSingleCandidateDateScore(t *testing.T) {
	orders := []models.WorkOrder{order(models.StatusOpen, scheduled(daysFrom(schedNow, 0)))}
	recs := RecommendSchedule(orders, 30, schedNow)

	require.Len(t, recs.All, 1)
	assert.Equal(t, 0.0, recs.All[0].DateScore)
	assert.Equal(t, models.BucketThisWeek, recs.All[0].Bucket)
}

func TestRecommendScheduleCapsResults(t *testing.T) {
	orders := repeat(MaxRecommendations+5, order(models.StatusOpen, scheduled(daysFrom(schedNow, 3))))
	assert.Len(t, RecommendSchedule(orders, 30, schedNow).All, MaxRecommendations)
}

func TestNextThursday(t *testing.T) {
	thursdayMorning := time.Date(2024, 5, 9, 8, 0, 0, 0, time.UTC)
	thursdayEvening := time.Date(2024, 5, 9, 18, 0, 0, 0, time.UTC)
	friday := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 9, 9, 0, 0, 0, time.UTC), NextThursday(thursdayMorning))
	assert.Equal(t, time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC), NextThursday(thursdayEvening))
	assert.Equal(t, time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC), NextThursday(friday))
}

func TestLastThursdayOfMonth(t *testing.T) {
	assert.Equal(t, time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), LastThursdayOfMonth(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC), LastThursdayOfMonth(schedNow))
}

func TestClassifyFrequency(t *testing.T) {
	cases := []struct {
		w    models.WorkOrder
		want string
	}{
		{models.WorkOrder{Frequency: "semi-annual pm"}, FrequencySemiAnnual},
		{models.WorkOrder{Frequency: "annual"}, FrequencyAnnual},
		{models.WorkOrder{Frequency: "quarterly"}, FrequencyQuarterly},
		{models.WorkOrder{Frequency: "preventive", Description: "Monthly filter change"}, FrequencyMonthly},
		{models.WorkOrder{Description: "inspect roof"}, FrequencyUnspecified},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyFrequency(tc.w), tc.w)
	}
}
