package service

import (
	"strings"

	"github.com/facilities-pm/backend/internal/models"
)

// ApplyFilters keeps orders inside [Start, End) on their effective date and
// matching every non-empty location/trade/status filter.
func ApplyFilters(orders []models.WorkOrder, f models.Filters) []models.WorkOrder {
	statuses := map[string]struct{}{}
	for _, s := range f.Statuses {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			statuses[s] = struct{}{}
		}
	}

	out := make([]models.WorkOrder, 0, len(orders))
	for _, w := range orders {
		if f.Start != nil || f.End != nil {
			d := w.EffectiveDate()
			if d == nil {
				continue
			}
			if f.Start != nil && d.Before(models.DateOf(*f.Start)) {
				continue
			}
			if f.End != nil && !d.Before(models.DateOf(*f.End)) {
				continue
			}
		}
		if f.Building != "" && !equalsAny(f.Building, w.BuildingID, w.BuildingName) {
			continue
		}
		if f.Region != "" && !equalsAny(f.Region, w.Region) {
			continue
		}
		if f.Zone != "" && !equalsAny(f.Zone, w.Zone) {
			continue
		}
		if f.Trade != "" && !equalsAny(f.Trade, w.Trade) {
			continue
		}
		if len(statuses) > 0 {
			_, byLabel := statuses[w.StatusLabel]
			_, byCategory := statuses[string(w.Status)]
			if !byLabel && !byCategory {
				continue
			}
		}
		out = append(out, w)
	}
	return out
}

func equalsAny(want string, values ...string) bool {
	want = strings.TrimSpace(want)
	for _, v := range values {
		if v != "" && strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}
