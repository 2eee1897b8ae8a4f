package gantt

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Kirankkt/Complex-gannt/internal/schedule"
)

// Chart constants
const (
	DefaultTitle  = "Advanced Gantt Chart"
	DefaultHeight = 600
	BarHeight     = 0.8
	OverlayAlpha  = 0.6
	FontSize      = 10
	Template      = "white"
	DateFormat    = "%Y-%m-%d"

	day = 24 * time.Hour
)

// DefaultMargin is the chart margin in pixels
var DefaultMargin = Margin{Left: 150, Right: 50, Top: 50, Bottom: 50}

// Builder builds scenes. The zero value is not usable; use NewBuilder.
type Builder struct {
	title  string
	height int
}

// Option configures a Builder
type Option func(*Builder)

// WithTitle overrides the chart title
func WithTitle(title string) Option {
	return func(b *Builder) {
		if title != "" {
			b.title = title
		}
	}
}

// WithHeight overrides the chart height
func WithHeight(height int) Option {
	return func(b *Builder) {
		if height > 0 {
			b.height = height
		}
	}
}

// NewBuilder creates a builder with the default layout
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		title:  DefaultTitle,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds a scene with the default layout
func Build(table *schedule.Table) *Scene {
	return NewBuilder().Build(table)
}

// Build sorts the table's tasks and lays out one lane per task. The table
// is not modified.
func (b *Builder) Build(table *schedule.Table) *Scene {
	scene := &Scene{
		GeneratedAt: time.Now().UTC(),
		Lanes:       []Lane{},
		Shapes:      []Rect{},
		Annotations: []Annotation{},
		XAxis: Axis{
			Title:      "Date",
			Type:       "date",
			TickFormat: DateFormat,
		},
		YAxis: Axis{
			Title:    "Tasks",
			Type:     "linear",
			TickVals: []int{},
			TickText: []string{},
			Reversed: true,
		},
		Layout: Layout{
			Title:     b.title,
			Height:    b.height,
			Margin:    DefaultMargin,
			Template:  Template,
			BarHeight: BarHeight,
		},
	}
	if table == nil {
		return scene
	}
	scene.Source = table.Source

	var lo, hi time.Time
	for i, task := range SortTasks(table.Tasks) {
		lane := b.lane(i, task)
		scene.Lanes = append(scene.Lanes, lane)
		scene.YAxis.TickVals = append(scene.YAxis.TickVals, i)
		scene.YAxis.TickText = append(scene.YAxis.TickText, lane.Label)
		scene.Stats.add(lane)

		if !lane.Scheduled {
			continue
		}

		start, end := *lane.Start, *lane.End
		y := float64(i)
		scene.Shapes = append(scene.Shapes,
			Rect{
				Kind:      ShapeBar,
				Lane:      i,
				X0:        start,
				X1:        end,
				Y0:        y - BarHeight/2,
				Y1:        y + BarHeight/2,
				Fill:      lane.Color,
				Opacity:   1,
				LineWidth: 1,
				LineColor: ColorBlack,
				Layer:     LayerBelow,
			},
			Rect{
				Kind:    ShapeProgress,
				Lane:    i,
				X0:      start,
				X1:      addDays(start, lane.ProgressDays),
				Y0:      y - BarHeight/2,
				Y1:      y + BarHeight/2,
				Fill:    ColorOrange,
				Opacity: OverlayAlpha,
				Layer:   LayerAbove,
			},
		)
		scene.Annotations = append(scene.Annotations,
			Annotation{
				Kind:   AnnotationPercent,
				Lane:   i,
				X:      end,
				Y:      y,
				Text:   PercentText(lane.Progress),
				Anchor: AnchorLeft,
				Font:   Font{Color: ColorBlack, Size: FontSize},
			},
			Annotation{
				Kind:   AnnotationLabel,
				Lane:   i,
				X:      start.Add(-day),
				Y:      y,
				Text:   lane.Label,
				Anchor: AnchorRight,
				Font:   Font{Color: ColorBlack, Size: FontSize},
			},
		)

		labelX := start.Add(-day)
		if lo.IsZero() || labelX.Before(lo) {
			lo = labelX
		}
		for _, x := range []time.Time{start, end} {
			if hi.IsZero() || x.After(hi) {
				hi = x
			}
		}
	}

	if !lo.IsZero() {
		scene.XAxis.Range = []time.Time{lo, hi}
	}
	return scene
}

func (b *Builder) lane(i int, task schedule.Task) Lane {
	class := ClassifyStatus(task.Status)
	lane := Lane{
		Index:       i,
		Label:       Label(task),
		Activity:    task.Activity,
		Task:        task.Task,
		Status:      task.Status,
		StatusClass: class,
		Color:       class.Color(),
		Progress:    task.Progress,
		Scheduled:   task.StartDate.Valid && task.EndDate.Valid,
	}
	if !lane.Scheduled {
		return lane
	}

	start, end := task.StartDate.Time, task.EndDate.Time
	lane.Start, lane.End = &start, &end
	lane.DurationDays = DurationDays(start, end)
	lane.ProgressDays = float64(lane.DurationDays) * task.Progress / 100
	return lane
}

func (s *Stats) add(l Lane) {
	s.Total++
	if l.Scheduled {
		s.Scheduled++
	} else {
		s.Skipped++
	}
	switch l.StatusClass {
	case StatusFinished:
		s.Finished++
	case StatusInProgress:
		s.InProgress++
	default:
		s.Other++
	}
}

// Label is the display name of a task
func Label(t schedule.Task) string {
	return fmt.Sprintf("%s - %s", t.Activity, t.Task)
}

// PercentText renders progress rounded to a whole percent
func PercentText(progress float64) string {
	return fmt.Sprintf("%.0f%%", progress)
}

// DurationDays is the whole number of days from start to end, rounded
// down. Inverted ranges give negative values.
func DurationDays(start, end time.Time) int {
	seconds := float64(end.Unix()-start.Unix()) + float64(end.Nanosecond()-start.Nanosecond())/1e9
	return int(math.Floor(seconds / day.Seconds()))
}

// MaxOffsetDays bounds how far a progress overlay may reach from its start
const MaxOffsetDays = 1_000_000

// addDays moves t by n days, fractions included. n is clamped to
// ±MaxOffsetDays so huge progress values cannot overflow time.Duration.
func addDays(t time.Time, n float64) time.Time {
	if math.IsNaN(n) {
		return t
	}
	n = math.Max(-MaxOffsetDays, math.Min(MaxOffsetDays, n))
	whole, frac := math.Modf(n)
	return t.AddDate(0, 0, int(whole)).Add(time.Duration(frac * float64(day)))
}

// SortTasks returns the tasks stably sorted by activity, then start date.
// Blank activities and absent start dates sort last.
func SortTasks(tasks []schedule.Task) []schedule.Task {
	sorted := make([]schedule.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Activity != b.Activity {
			switch {
			case a.Activity == "":
				return false
			case b.Activity == "":
				return true
			}
			return a.Activity < b.Activity
		}
		switch {
		case !a.StartDate.Valid:
			return false
		case !b.StartDate.Valid:
			return true
		}
		return a.StartDate.Time.Before(b.StartDate.Time)
	})
	return sorted
}
