// Package gantt turns a normalized schedule into a Scene: a renderer
// neutral description of a Gantt chart made of rectangles, text
// annotations and axis settings.
//
// Rows are sorted by activity and start date; the sorted index is the
// lane. Every lane gets a y axis tick, but only lanes with both dates
// produce shapes and annotations.
package gantt
