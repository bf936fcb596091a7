package normalize

import (
	"testing"

	"github.com/facilities-pm/backend/internal/models"
)

func TestClassifyStatus(t *testing.T) {
	cases := map[string]models.StatusCategory{
		"Open":               models.StatusOpen,
		"NEW":                models.StatusOpen,
		"Incomplete":         models.StatusOpen,
		"Reopened":           models.StatusOpen,
		"Assigned":           models.StatusAssigned,
		"Dispatched":         models.StatusAssigned,
		"In Progress":        models.StatusInProgress,
		"Started":            models.StatusInProgress,
		"Not Started":        models.StatusOpen,
		"Not yet started":    models.StatusOpen,
		"Unstarted":          models.StatusOpen,
		"Work Complete":      models.StatusCompleted,
		"Finished":           models.StatusCompleted,
		"Closed":             models.StatusClosed,
		"Cancelled":          models.StatusCancelled,
		"Waiting on Invoice": models.StatusWaitingOnInvoice,
		"Waiting for Parts":  models.StatusWaitingForParts,
		"No Resources":       models.StatusNoResources,
		"Follow-up required": models.StatusFollowUp,
		"Suppressed":         models.StatusSuppressed,
		"Abandoned":          models.StatusUnknown,
		"":                   models.StatusUnknown,
		"   ":                models.StatusUnknown,
	}
	for in, want := range cases {
		if got := ClassifyStatus(in); got != want {
			t.Fatalf("ClassifyStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]models.Priority{
		"Critical":  models.PriorityCritical,
		"EMERGENCY": models.PriorityCritical,
		"High":      models.PriorityHigh,
		"Medium":    models.PriorityMedium,
		"Routine":   models.PriorityNormal,
		"Low":       models.PriorityLow,
		"1":         models.PriorityCritical,
		"P2":        models.PriorityHigh,
		"5":         models.PriorityLow,
		"9":         models.PriorityNormal,
		"whenever":  models.PriorityNormal,
		"":          models.PriorityNormal,
	}
	for in, want := range cases {
		if got := ParsePriority(in); got != want {
			t.Fatalf("ParsePriority(%q) = %d, want %d", in, got, want)
		}
	}
}
