package service

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/facilities-pm/backend/internal/models"
)

const (
	fallbackEventColor = "#6c757d"
	darkText           = "#000000"
	lightText          = "#ffffff"
)

var statusColors = map[models.StatusCategory]string{
	models.StatusOpen:             "#3788d8",
	models.StatusAssigned:         "#6f42c1",
	models.StatusInProgress:       "#fd7e14",
	models.StatusCompleted:        "#28a745",
	models.StatusClosed:           "#198754",
	models.StatusCancelled:        "#dc3545",
	models.StatusWaitingOnInvoice: "#ffc107",
	models.StatusWaitingForParts:  "#17a2b8",
	models.StatusNoResources:      "#e83e8c",
	models.StatusFollowUp:         "#20c997",
	models.StatusSuppressed:       "#ced4da",
}

// statuses whose background needs dark text
var lightStatuses = map[models.StatusCategory]bool{
	models.StatusWaitingOnInvoice: true,
	models.StatusFollowUp:         true,
	models.StatusSuppressed:       true,
}

// EventColors returns the background and text color for a status.
func EventColors(s models.StatusCategory) (string, string) {
	color, ok := statusColors[s]
	if !ok {
		color = fallbackEventColor
	}
	if lightStatuses[s] {
		return color, darkText
	}
	return color, lightText
}

// BuildCalendar places every dated order on the calendar relative to now.
// Completed orders carry no past/today/future flag.
func BuildCalendar(orders []models.WorkOrder, now time.Time) models.CalendarData {
	data := models.CalendarData{
		Events:  []models.CalendarEvent{},
		PastDue: []models.CalendarEvent{},
		Today:   []models.CalendarEvent{},
		Future:  []models.CalendarEvent{},
	}
	caser := cases.Title(language.English)

	for _, w := range orders {
		date := w.EffectiveDate()
		if date == nil {
			continue
		}
		days := models.DaysBetween(now, *date)
		completed := w.IsCompleted()
		color, textColor := EventColors(w.Status)

		ev := models.CalendarEvent{
			Title:       eventTitle(w),
			Start:       *date,
			Color:       color,
			TextColor:   textColor,
			IsCompleted: completed,
			IsPastDue:   days < 0 && !completed,
			IsToday:     days == 0 && !completed,
			IsFuture:    days > 0 && !completed,
			Properties: map[string]any{
				"id":              w.ID,
				"status":          string(w.Status),
				"status_label":    caser.String(strings.ReplaceAll(string(w.Status), "-", " ")),
				"building":        w.Building(),
				"equipment":       w.EquipmentID,
				"description":     w.Description,
				"trade":           w.Trade,
				"priority":        int(w.Priority),
				"days_from_today": days,
			},
		}

		data.Events = append(data.Events, ev)
		data.Stats.Total++
		switch {
		case completed:
			data.Stats.Completed++
		case ev.IsPastDue:
			data.Stats.PastDue++
			data.PastDue = append(data.PastDue, ev)
		case ev.IsToday:
			data.Stats.Today++
			data.Today = append(data.Today, ev)
		case ev.IsFuture:
			data.Stats.Future++
			data.Future = append(data.Future, ev)
		}
	}
	return data
}

func eventTitle(w models.WorkOrder) string {
	subject := w.EquipmentID
	if subject == "" {
		subject = w.Description
	}
	if subject == "" && w.ID != "" {
		subject = "WO " + w.ID
	}
	if subject == "" {
		subject = "PM work order"
	}
	if b := w.Building(); b != "" {
		return subject + " - " + b
	}
	return subject
}
