// Package normalize turns heterogeneous work-order rows into typed models.WorkOrder
// values. All defaulting and coercion happens here, once.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/facilities-pm/backend/internal/models"
)

// RawRecord is one untyped row as delivered by the store or a file export.
type RawRecord = map[string]any

// Report counts what happened to a batch.
type Report struct {
	Received   int `json:"received"`
	Normalized int `json:"normalized"`
	Dropped    int `json:"dropped"`
}

// canonical column -> accepted synonyms, after header normalization.
var synonyms = map[string][]string{
	"id":                   {"wo_id", "work_order_id", "work_order", "work_order_number", "wo_number", "wo", "record_id"},
	"status":               {"wo_status", "work_order_status", "state", "current_status"},
	"priority":             {"wo_priority", "priority_level", "priority_code"},
	"trade":                {"craft", "trade_name", "shop"},
	"building_id":          {"building", "bldg", "bldg_id", "building_number", "building_code", "property_id"},
	"building_name":        {"bldg_name", "building_description", "property_name", "facility_name"},
	"zone":                 {"zone_name", "area"},
	"region":               {"region_name", "district"},
	"organization":         {"org", "organisation", "organization_name", "department"},
	"equipment_id":         {"equipment", "asset", "asset_id", "equip_id", "equipment_number"},
	"description":          {"desc", "wo_description", "work_description", "summary", "problem_description"},
	"criticality":          {"equipment_criticality", "asset_criticality", "criticality_level"},
	"occupancy":            {"building_occupancy", "occupancy_pct", "occupancy_rate", "occupancy_percent"},
	"frequency":            {"service_category", "pm_frequency", "interval"},
	"scheduled_start_date": {"sched_start_date", "start_date", "scheduled_date", "schedule_date", "scheduled_start", "target_start_date"},
	"date_created":         {"created_date", "created", "created_at", "creation_date", "date_entered", "reported_date"},
	"date_completed":       {"completed_date", "completion_date", "date_closed", "closed_date", "completed_at", "actual_finish"},
}

// Records normalizes a batch of rows. Rows that are not maps are dropped.
func Records(rows []any) ([]models.WorkOrder, Report) {
	report := Report{Received: len(rows)}
	out := make([]models.WorkOrder, 0, len(rows))
	for _, row := range rows {
		rec, ok := asRecord(row)
		if !ok {
			report.Dropped++
			continue
		}
		out = append(out, Record(rec))
	}
	report.Normalized = len(out)
	return out, report
}

// Maps is Records for callers that already hold typed rows.
func Maps(rows []RawRecord) ([]models.WorkOrder, Report) {
	anyRows := make([]any, len(rows))
	for i, r := range rows {
		anyRows[i] = r
	}
	return Records(anyRows)
}

// Record normalizes one row. It never fails: unknown values fall back to defaults.
func Record(rec RawRecord) models.WorkOrder {
	cols := canonicalColumns(rec)

	statusLabel := normalizeLabel(stringValue(cols["status"]))
	priorityLabel := normalizeLabel(stringValue(cols["priority"]))

	w := models.WorkOrder{
		ID:             identifier(cols["id"]),
		Status:         ClassifyStatus(statusLabel),
		StatusLabel:    statusLabel,
		Priority:       ParsePriority(priorityLabel),
		PriorityLabel:  priorityLabel,
		Trade:          stringValue(cols["trade"]),
		BuildingID:     identifier(cols["building_id"]),
		BuildingName:   stringValue(cols["building_name"]),
		Zone:           identifier(cols["zone"]),
		Region:         identifier(cols["region"]),
		Organization:   stringValue(cols["organization"]),
		EquipmentID:    identifier(cols["equipment_id"]),
		Description:    stringValue(cols["description"]),
		Criticality:    normalizeLabel(stringValue(cols["criticality"])),
		Frequency:      normalizeLabel(stringValue(cols["frequency"])),
		Occupancy:      percentage(cols["occupancy"]),
		ScheduledStart: ParseDate(cols["scheduled_start_date"]),
		DateCreated:    ParseDate(cols["date_created"]),
		DateCompleted:  ParseDate(cols["date_completed"]),
	}
	if !w.IsCompleted() {
		w.DateCompleted = nil
	}
	return w
}

func asRecord(row any) (RawRecord, bool) {
	switch r := row.(type) {
	case map[string]any:
		if r == nil {
			return nil, false
		}
		return r, true
	case map[string]string:
		if r == nil {
			return nil, false
		}
		out := make(RawRecord, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// canonicalColumns re-keys a row by normalized header and resolves synonyms.
// An existing canonical column is never overwritten by a synonym.
// When raw headers collide after normalization, a header already in canonical
// spelling wins, otherwise the first in sorted order.
func canonicalColumns(rec RawRecord) map[string]any {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	byHeader := make(map[string]any, len(rec))
	exact := make(map[string]bool, len(rec))
	for _, k := range keys {
		h := NormalizeHeader(k)
		if h == "" {
			continue
		}
		_, seen := byHeader[h]
		if !seen || (k == h && !exact[h]) {
			byHeader[h] = rec[k]
			exact[h] = k == h
		}
	}
	out := make(map[string]any, len(synonyms))
	for canonical, alts := range synonyms {
		if v, ok := byHeader[canonical]; ok {
			out[canonical] = v
			continue
		}
		for _, alt := range alts {
			if v, ok := byHeader[alt]; ok {
				out[canonical] = v
				break
			}
		}
	}
	return out
}

// NormalizeHeader lower-cases a column name and folds spaces and punctuation to
// single underscores.
func NormalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\ufeff", "")
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range h {
		isWord := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isWord {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

func normalizeLabel(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return blankMissing(t)
	case *string:
		if t == nil {
			return ""
		}
		return blankMissing(*t)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// blankMissing maps the null spellings spreadsheet exports produce to "".
func blankMissing(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "nat", "none", "null", "n/a":
		return ""
	}
	return s
}

// maxExactInt bounds the floats that convert to int64 without loss.
const maxExactInt = 1 << 53

// identifier coerces float-looking ids ("123.0", 123.0) to integer strings.
func identifier(v any) string {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		if t == math.Trunc(t) && math.Abs(t) < maxExactInt {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return identifier(float64(t))
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	s := stringValue(v)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.Contains(s, ".") && f == math.Trunc(f) {
		if math.Abs(f) < maxExactInt {
			return strconv.FormatInt(int64(f), 10)
		}
		if !math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return s
}

// percentage reads values like 85, "85" or "85%". Values are always percents,
// so 0.5 is half a percent. Results are clamped to 100.
func percentage(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		s := strings.TrimSuffix(strings.TrimSpace(stringValue(v)), "%")
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	if math.IsNaN(f) || f < 0 {
		return nil
	}
	if f > 100 {
		f = 100
	}
	return &f
}
