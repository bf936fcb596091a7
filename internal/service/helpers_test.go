package service

import (
	"time"

	"github.com/facilities-pm/backend/internal/models"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func daysFrom(now time.Time, n int) *time.Time {
	t := models.DateOf(now).AddDate(0, 0, n)
	return &t
}

type orderOpt func(*models.WorkOrder)

func order(status models.StatusCategory, opts ...orderOpt) models.WorkOrder {
	w := models.WorkOrder{
		Status:      status,
		StatusLabel: string(status),
		Priority:    models.PriorityNormal,
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

func scheduled(t *time.Time) orderOpt { return func(w *models.WorkOrder) { w.ScheduledStart = t } }
func created(t *time.Time) orderOpt   { return func(w *models.WorkOrder) { w.DateCreated = t } }
func completed(t *time.Time) orderOpt { return func(w *models.WorkOrder) { w.DateCompleted = t } }
func building(b string) orderOpt      { return func(w *models.WorkOrder) { w.BuildingName = b } }
func equipment(e string) orderOpt     { return func(w *models.WorkOrder) { w.EquipmentID = e } }
func trade(t string) orderOpt         { return func(w *models.WorkOrder) { w.Trade = t } }
func label(l string) orderOpt         { return func(w *models.WorkOrder) { w.StatusLabel = l } }
func frequency(f string) orderOpt     { return func(w *models.WorkOrder) { w.Frequency = f } }
func withID(id string) orderOpt       { return func(w *models.WorkOrder) { w.ID = id } }

func priority(p models.Priority) orderOpt {
	return func(w *models.WorkOrder) { w.Priority = p }
}

func repeat(n int, w models.WorkOrder) []models.WorkOrder {
	out := make([]models.WorkOrder, n)
	for i := range out {
		out[i] = w
	}
	return out
}
