package normalize

import (
	"strconv"
	"strings"

	"github.com/facilities-pm/backend/internal/models"
)

type statusRule struct {
	category models.StatusCategory
	keywords []string
}

// Order matters: the first rule with a keyword contained in the label wins.
var statusRules = []statusRule{
	{models.StatusCancelled, []string{"cancel"}},
	{models.StatusSuppressed, []string{"suppress"}},
	{models.StatusWaitingOnInvoice, []string{"invoice"}},
	{models.StatusWaitingForParts, []string{"parts", "part on order", "waiting for part"}},
	{models.StatusNoResources, []string{"no resource", "no-resource", "resource"}},
	{models.StatusFollowUp, []string{"follow"}},
	{models.StatusOpen, []string{"not started", "not yet started", "unstarted"}},
	{models.StatusInProgress, []string{"in progress", "in-progress", "inprogress", "progress", "started", "wip"}},
	{models.StatusOpen, []string{"incomplete", "unassign", "reopen"}},
	{models.StatusCompleted, []string{"complete", "finish"}},
	{models.StatusClosed, []string{"close"}},
	{models.StatusAssigned, []string{"assign", "dispatch"}},
	{models.StatusOpen, []string{"open", "new", "pending", "requested"}},
}

// ClassifyStatus maps a free-text status onto the closed category set by
// substring containment. Matching is case and whitespace insensitive.
func ClassifyStatus(raw string) models.StatusCategory {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		return models.StatusUnknown
	}
	for _, rule := range statusRules {
		for _, kw := range rule.keywords {
			if strings.Contains(label, kw) {
				return rule.category
			}
		}
	}
	return models.StatusUnknown
}

var priorityKeywords = []struct {
	priority models.Priority
	keywords []string
}{
	{models.PriorityCritical, []string{"critical", "emergency", "urgent", "immediate"}},
	{models.PriorityHigh, []string{"high"}},
	{models.PriorityMedium, []string{"medium", "moderate", "med"}},
	{models.PriorityLow, []string{"low", "minor"}},
	{models.PriorityNormal, []string{"normal", "routine", "standard"}},
}

// ParsePriority maps a priority label to its 1-5 ordinal. Numeric ranks count
// down from 1 (most urgent), so rank 1 is critical and rank 5 is low.
// Unrecognized labels are normal.
func ParsePriority(raw string) models.Priority {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		return models.PriorityNormal
	}
	for _, pk := range priorityKeywords {
		for _, kw := range pk.keywords {
			if strings.Contains(label, kw) {
				return pk.priority
			}
		}
	}
	numeric := strings.TrimPrefix(label, "p")
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		rank := int(f)
		if float64(rank) == f && rank >= 1 && rank <= 5 {
			return models.Priority(6 - rank)
		}
	}
	return models.PriorityNormal
}
