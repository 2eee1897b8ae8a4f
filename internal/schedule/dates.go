package schedule

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order for text date cells
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02.01.2006",
}

// ParseDate coerces a cell to a date. Numbers are Excel serial dates; text
// is matched against a fixed set of layouts. Anything else is absent.
func ParseDate(value string, date1904 bool) NullDate {
	v := strings.TrimSpace(value)
	if v == "" {
		return NullDate{}
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial <= 0 {
			return NullDate{}
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return NullDate{}
		}
		return DateOf(t.UTC())
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return DateOf(t.UTC())
		}
	}
	return NullDate{}
}

// parseFloat is lenient: blanks, junk and NaN read as 0. A trailing percent
// sign is ignored.
func parseFloat(value string) float64 {
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseInt(value string) int {
	return int(parseFloat(value))
}
