package service

import (
	"fmt"
	"strings"

	"github.com/facilities-pm/backend/internal/models"
)

const (
	tradeOverloadFactor     = 1.5
	backlogStatusThreshold  = 10
	highPrioritySevereCount = 5
	repeatEquipmentMin      = 3
	maxRepeatEquipment      = 5

	RecommendationTradeWorkload   = "trade_workload"
	RecommendationBuildingBacklog = "building_backlog"
	AlertHighPriorityOpen         = "high_priority_open"
	AlertFrequentMaintenance      = "frequent_maintenance"

	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

var backlogStatusKeywords = []string{"overdue", "late", "delayed"}

// ResourceRecommendations flags trades carrying more than 1.5x the mean open
// workload and buildings with at least 10 overdue/late/delayed orders.
func ResourceRecommendations(orders []models.WorkOrder) []models.ResourceRecommendation {
	out := []models.ResourceRecommendation{}

	byTrade := map[string]int{}
	for _, w := range orders {
		if w.IsCompleted() || w.Trade == "" {
			continue
		}
		byTrade[w.Trade]++
	}
	if len(byTrade) > 0 {
		total := 0
		for _, c := range byTrade {
			total += c
		}
		avg := float64(total) / float64(len(byTrade))
		for _, kc := range rankCounts(byTrade, 0) {
			if float64(kc.Count) <= tradeOverloadFactor*avg {
				continue
			}
			out = append(out, models.ResourceRecommendation{
				Type:    RecommendationTradeWorkload,
				Trade:   kc.Key,
				Count:   kc.Count,
				Message: fmt.Sprintf("%s has %d open work orders against an average of %.1f per trade; consider adding resources", kc.Key, kc.Count, avg),
			})
		}
	}

	backlog := map[string]int{}
	for _, w := range orders {
		b := w.Building()
		if b == "" || !isBacklogStatus(w.StatusLabel) {
			continue
		}
		backlog[b]++
	}
	for _, kc := range rankCounts(backlog, 0) {
		if kc.Count < backlogStatusThreshold {
			continue
		}
		out = append(out, models.ResourceRecommendation{
			Type:     RecommendationBuildingBacklog,
			Building: kc.Key,
			Count:    kc.Count,
			Message:  fmt.Sprintf("Building %s has %d overdue or delayed work orders", kc.Key, kc.Count),
		})
	}
	return out
}

func isBacklogStatus(label string) bool {
	for _, kw := range backlogStatusKeywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

// SmartAlerts flags buildings with open high-priority work and equipment with
// repeat maintenance in the analyzed window.
func SmartAlerts(orders []models.WorkOrder) []models.Alert {
	out := []models.Alert{}

	highOpen := map[string]int{}
	for _, w := range orders {
		b := w.Building()
		if b == "" || w.IsCompleted() || !w.Priority.IsHigh() {
			continue
		}
		highOpen[b]++
	}
	for _, kc := range rankCounts(highOpen, 0) {
		severity := SeverityMedium
		if kc.Count > highPrioritySevereCount {
			severity = SeverityHigh
		}
		out = append(out, models.Alert{
			Type:     AlertHighPriorityOpen,
			Severity: severity,
			Building: kc.Key,
			Count:    kc.Count,
			Message:  fmt.Sprintf("Building %s has %d open high-priority work orders", kc.Key, kc.Count),
		})
	}

	byEquipment := map[string]int{}
	for _, w := range orders {
		if w.EquipmentID == "" {
			continue
		}
		byEquipment[w.EquipmentID]++
	}
	repeat := map[string]int{}
	for k, c := range byEquipment {
		if c > repeatEquipmentMin {
			repeat[k] = c
		}
	}
	for _, kc := range rankCounts(repeat, maxRepeatEquipment) {
		out = append(out, models.Alert{
			Type:      AlertFrequentMaintenance,
			Severity:  SeverityMedium,
			Equipment: kc.Key,
			Count:     kc.Count,
			Message:   fmt.Sprintf("Equipment %s had %d work orders in this period; schedule an inspection", kc.Key, kc.Count),
		})
	}
	return out
}
