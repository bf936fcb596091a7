package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/facilities-pm/backend/internal/models"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/06",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

// excel serial day 0 is 1899-12-30
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a date permissively and returns its calendar day. Anything
// unparsable yields nil.
func ParseDate(v any) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		d := models.DateOf(t)
		return &d
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		d := models.DateOf(*t)
		return &d
	case float64:
		return fromExcelSerial(t)
	case int:
		return fromExcelSerial(float64(t))
	case int64:
		return fromExcelSerial(float64(t))
	}

	s := stringValue(v)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			d := models.DateOf(parsed)
			return &d
		}
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return fromExcelSerial(f)
	}
	return nil
}

func fromExcelSerial(f float64) *time.Time {
	// 1954..2119; anything else is not a plausible serial date
	if math.IsNaN(f) || f < 20000 || f > 80000 {
		return nil
	}
	d := excelEpoch.AddDate(0, 0, int(f))
	return &d
}
