package schedule

import (
	"encoding/json"
	"time"
)

// NullDate is a date cell that may be absent
type NullDate struct {
	Time  time.Time
	Valid bool
}

// DateOf returns a present NullDate for t
func DateOf(t time.Time) NullDate {
	return NullDate{Time: t, Valid: true}
}

// MarshalJSON renders absent dates as null
func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time)
}

// UnmarshalJSON accepts null or an RFC 3339 timestamp
func (d *NullDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = NullDate{}
		return nil
	}
	if err := json.Unmarshal(data, &d.Time); err != nil {
		return err
	}
	d.Valid = true
	return nil
}

// Task is one normalized schedule row
type Task struct {
	Activity  string   `json:"activity"`
	Task      string   `json:"task"`
	StartDate NullDate `json:"start_date"`
	EndDate   NullDate `json:"end_date"`
	Status    string   `json:"status"`
	Progress  float64  `json:"progress"`

	Priority     string   `json:"priority"`
	PlannedStart NullDate `json:"planned_start"`
	ActualStart  NullDate `json:"actual_start"`
	Due          NullDate `json:"due"`
	Finish       NullDate `json:"finish"`
	Duration     int      `json:"duration"`
	Hours        float64  `json:"hours"`
	Cost         float64  `json:"cost"`

	// Raw holds the source cell text keyed by trimmed column name.
	// Defaulted columns do not appear here.
	Raw map[string]string `json:"raw,omitempty"`
}

// Table is a normalized schedule. It is not modified after Normalize
// returns it.
type Table struct {
	Source   string    `json:"source"`
	Sheet    string    `json:"sheet,omitempty"`
	Columns  []string  `json:"columns"`
	Tasks    []Task    `json:"tasks"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Len returns the number of tasks
func (t *Table) Len() int {
	return len(t.Tasks)
}
