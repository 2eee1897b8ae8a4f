package schedule

// Column names as they appear in the source header row
const (
	ColActivity     = "Activity"
	ColTask         = "Task"
	ColStartDate    = "Start Date"
	ColEndDate      = "End Date"
	ColStatus       = "Status"
	ColProgress     = "Progress"
	ColPriority     = "Priority"
	ColPlannedStart = "Planned Start"
	ColActualStart  = "Actual Start"
	ColDue          = "Due"
	ColFinish       = "Finish"
	ColDuration     = "Duration"
	ColHours        = "Hours"
	ColCost         = "Cost"
)

// DefaultPriority fills the Priority column when the source lacks it
const DefaultPriority = "Normal"

// RequiredColumns must all be present in the header row
var RequiredColumns = []string{ColActivity, ColTask, ColStartDate, ColEndDate, ColStatus}

// OptionalColumns are added with their default when missing, in this order
var OptionalColumns = []string{
	ColProgress,
	ColPriority,
	ColPlannedStart,
	ColActualStart,
	ColDue,
	ColFinish,
	ColDuration,
	ColHours,
	ColCost,
}

// header maps trimmed column names to their first index in a row
type header struct {
	names []string
	index map[string]int
}

func newHeader(row []string) header {
	h := header{
		names: make([]string, len(row)),
		index: make(map[string]int, len(row)),
	}
	for i, cell := range row {
		name := trimName(cell)
		if name == "" {
			name = unnamedColumn(i)
		}
		h.names[i] = name
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}
	return h
}

func (h header) has(name string) bool {
	_, ok := h.index[name]
	return ok
}

func (h header) missing(names []string) []string {
	var out []string
	for _, n := range names {
		if !h.has(n) {
			out = append(out, n)
		}
	}
	return out
}

// cell returns the value of column name in row and whether the column exists
func (h header) cell(row []string, name string) (string, bool) {
	i, ok := h.index[name]
	if !ok {
		return "", false
	}
	if i >= len(row) {
		return "", true
	}
	return row[i], true
}
