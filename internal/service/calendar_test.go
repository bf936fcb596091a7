package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facilities-pm/backend/internal/models"
)

func TestBuildCalendar(t *testing.T) {
	now := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	orders := []models.WorkOrder{
		order(models.StatusOpen, withID("1"), equipment("AHU-3"), building("North Tower"), created(day(2024, 5, 1))),
		order(models.StatusInProgress, withID("2"), scheduled(day(2024, 5, 6))),
		order(models.StatusWaitingOnInvoice, withID("3"), scheduled(day(2024, 5, 10))),
		order(models.StatusClosed, withID("4"), scheduled(day(2024, 4, 1))),
		order(models.StatusOpen, withID("5")),
	}

	cal := BuildCalendar(orders, now)

	assert.Equal(t, models.CalendarStats{Total: 4, Completed: 1, PastDue: 1, Today: 1, Future: 1}, cal.Stats)
	require.Len(t, cal.Events, 4)
	require.Len(t, cal.PastDue, 1)
	require.Len(t, cal.Today, 1)
	require.Len(t, cal.Future, 1)

	past := cal.PastDue[0]
	assert.Equal(t, "AHU-3 - North Tower", past.Title)
	assert.Equal(t, -5, past.Properties["days_from_today"])
	assert.Equal(t, "#3788d8", past.Color)
	assert.Equal(t, "#ffffff", past.TextColor)

	today := cal.Today[0]
	assert.Equal(t, "WO 2", today.Title)
	assert.Equal(t, "In Progress", today.Properties["status_label"])

	future := cal.Future[0]
	assert.Equal(t, "#000000", future.TextColor)

	closed := cal.Events[3]
	assert.True(t, closed.IsCompleted)
	assert.False(t, closed.IsPastDue || closed.IsToday || closed.IsFuture)
}

func TestBuildCalendarEmpty(t *testing.T) {
	cal := BuildCalendar(nil, time.Now())
	assert.NotNil(t, cal.Events)
	assert.Empty(t, cal.Events)
	assert.Zero(t, cal.Stats)
}

func TestEventColorsFallback(t *testing.T) {
	bg, fg := EventColors(models.StatusUnknown)
	assert.Equal(t, "#6c757d", bg)
	assert.Equal(t, "#ffffff", fg)

	bg, fg = EventColors(models.StatusSuppressed)
	assert.Equal(t, "#ced4da", bg)
	assert.Equal(t, "#000000", fg)
}
