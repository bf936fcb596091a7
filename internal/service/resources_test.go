package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facilities-pm/backend/internal/models"
)

func TestResourceRecommendationsTradeWorkload(t *testing.T) {
	var orders []models.WorkOrder
	orders = append(orders, repeat(8, order(models.StatusOpen, trade("HVAC")))...)
	orders = append(orders, repeat(2, order(models.StatusOpen, trade("Electrical")))...)
	orders = append(orders, repeat(2, order(models.StatusAssigned, trade("Plumbing")))...)
	orders = append(orders, repeat(5, order(models.StatusClosed, trade("Electrical")))...)

	got := ResourceRecommendations(orders)

	require.Len(t, got, 1)
	assert.Equal(t, RecommendationTradeWorkload, got[0].Type)
	assert.Equal(t, "HVAC", got[0].Trade)
	assert.Equal(t, 8, got[0].Count)
}

func TestResourceRecommendationsBuildingBacklog(t *testing.T) {
	var orders []models.WorkOrder
	orders = append(orders, repeat(10, order(models.StatusUnknown, building("Tower"), label("overdue")))...)
	orders = append(orders, repeat(9, order(models.StatusUnknown, building("Annex"), label("delayed - vendor")))...)

	got := ResourceRecommendations(orders)

	require.Len(t, got, 1)
	assert.Equal(t, RecommendationBuildingBacklog, got[0].Type)
	assert.Equal(t, "Tower", got[0].Building)
	assert.Equal(t, 10, got[0].Count)
}

func TestResourceRecommendationsEmpty(t *testing.T) {
	got := ResourceRecommendations(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSmartAlerts(t *testing.T) {
	var orders []models.WorkOrder
	orders = append(orders, repeat(6, order(models.StatusOpen, building("Tower"), priority(models.PriorityHigh)))...)
	orders = append(orders, repeat(2, order(models.StatusAssigned, building("Annex"), priority(models.PriorityCritical)))...)
	orders = append(orders, order(models.StatusClosed, building("Annex"), priority(models.PriorityHigh)))
	orders = append(orders, repeat(4, order(models.StatusClosed, equipment("CH-1")))...)
	orders = append(orders, repeat(3, order(models.StatusOpen, equipment("CH-2")))...)

	got := SmartAlerts(orders)

	require.Len(t, got, 3)
	assert.Equal(t, models.Alert{
		Type: AlertHighPriorityOpen, Severity: SeverityHigh, Building: "Tower", Count: 6,
		Message: "Building Tower has 6 open high-priority work orders",
	}, got[0])
	assert.Equal(t, "Annex", got[1].Building)
	assert.Equal(t, SeverityMedium, got[1].Severity)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, AlertFrequentMaintenance, got[2].Type)
	assert.Equal(t, "CH-1", got[2].Equipment)
	assert.Equal(t, 4, got[2].Count)
}
