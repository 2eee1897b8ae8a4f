// Package tablecsv renders a normalized schedule as CSV. It backs the
// text/csv representation of GET /api/gantt/tasks, the same rows the JSON
// form returns, flattened to one line per task.
package tablecsv
