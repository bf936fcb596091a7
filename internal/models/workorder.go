package models

import (
	"strings"
	"time"
)

// StatusCategory is the closed set every free-text work-order status maps onto.
type StatusCategory string

const (
	StatusOpen             StatusCategory = "open"
	StatusAssigned         StatusCategory = "assigned"
	StatusInProgress       StatusCategory = "in-progress"
	StatusCompleted        StatusCategory = "completed"
	StatusClosed           StatusCategory = "closed"
	StatusCancelled        StatusCategory = "cancelled"
	StatusWaitingOnInvoice StatusCategory = "waiting-on-invoice"
	StatusWaitingForParts  StatusCategory = "waiting-for-parts"
	StatusNoResources      StatusCategory = "no-resources"
	StatusFollowUp         StatusCategory = "follow-up"
	StatusSuppressed       StatusCategory = "suppressed"
	StatusUnknown          StatusCategory = "unknown"
)

// IsCompleted reports whether the category counts as done. This is the single
// completion set shared by metrics, anomalies, alerts and the calendar.
func (s StatusCategory) IsCompleted() bool {
	return s == StatusCompleted || s == StatusClosed
}

// Priority is an ordinal from 1 (low) to 5 (critical).
type Priority int

const (
	PriorityLow      Priority = 1
	PriorityNormal   Priority = 2
	PriorityMedium   Priority = 3
	PriorityHigh     Priority = 4
	PriorityCritical Priority = 5
)

func (p Priority) IsHigh() bool {
	return p >= PriorityHigh
}

// WorkOrder is one normalized maintenance record. Optional dates are nil when
// missing or unparsable.
type WorkOrder struct {
	ID            string         `json:"id,omitempty"`
	Status        StatusCategory `json:"status"`
	StatusLabel   string         `json:"status_label"`
	Priority      Priority       `json:"priority"`
	PriorityLabel string         `json:"priority_label,omitempty"`
	Trade         string         `json:"trade,omitempty"`
	BuildingID    string         `json:"building_id,omitempty"`
	BuildingName  string         `json:"building_name,omitempty"`
	Zone          string         `json:"zone,omitempty"`
	Region        string         `json:"region,omitempty"`
	Organization  string         `json:"organization,omitempty"`
	EquipmentID   string         `json:"equipment_id,omitempty"`
	Description   string         `json:"description,omitempty"`
	Criticality   string         `json:"criticality,omitempty"`
	Frequency     string         `json:"frequency,omitempty"`
	Occupancy     *float64       `json:"occupancy,omitempty"`

	ScheduledStart *time.Time `json:"scheduled_start_date,omitempty"`
	DateCreated    *time.Time `json:"date_created,omitempty"`
	DateCompleted  *time.Time `json:"date_completed,omitempty"`
}

func (w WorkOrder) IsCompleted() bool {
	return w.Status.IsCompleted()
}

// Building returns the display name, falling back to the identifier.
func (w WorkOrder) Building() string {
	if w.BuildingName != "" {
		return w.BuildingName
	}
	return w.BuildingID
}

// EffectiveDate is date_created, or scheduled_start_date when the former is absent.
func (w WorkOrder) EffectiveDate() *time.Time {
	if w.DateCreated != nil {
		return w.DateCreated
	}
	return w.ScheduledStart
}

// DueDate is scheduled_start_date, or date_created when no schedule exists.
func (w WorkOrder) DueDate() *time.Time {
	if w.ScheduledStart != nil {
		return w.ScheduledStart
	}
	return w.DateCreated
}

// IsOverdue reports a non-completed order whose due date is before the day of now.
func (w WorkOrder) IsOverdue(now time.Time) bool {
	if w.IsCompleted() {
		return false
	}
	due := w.DueDate()
	if due == nil {
		return false
	}
	return DaysBetween(now, *due) < 0
}

// CompletionDays is the absolute number of days between completion and the
// scheduled start (or creation) date. ok is false when either date is missing
// or the order is not completed.
func (w WorkOrder) CompletionDays() (float64, bool) {
	if !w.IsCompleted() || w.DateCompleted == nil {
		return 0, false
	}
	start := w.ScheduledStart
	if start == nil {
		start = w.DateCreated
	}
	if start == nil {
		return 0, false
	}
	d := DaysBetween(*start, *w.DateCompleted)
	if d < 0 {
		d = -d
	}
	return float64(d), true
}

// SearchText is the lower-cased description and equipment used for keyword inference.
func (w WorkOrder) SearchText() string {
	return strings.ToLower(w.Description + " " + w.EquipmentID)
}
