package gantt

import "time"

// Layer orders shapes relative to each other
type Layer string

const (
	LayerBelow Layer = "below"
	LayerAbove Layer = "above"
)

// Anchor is the horizontal text anchor of an annotation
type Anchor string

const (
	AnchorLeft  Anchor = "left"
	AnchorRight Anchor = "right"
)

// ShapeKind tells the base bar from the progress overlay
type ShapeKind string

const (
	ShapeBar      ShapeKind = "bar"
	ShapeProgress ShapeKind = "progress"
)

// AnnotationKind tells the percent label from the task label
type AnnotationKind string

const (
	AnnotationPercent AnnotationKind = "percent"
	AnnotationLabel   AnnotationKind = "label"
)

// Rect is a rectangle spanning [X0, X1] in time and [Y0, Y1] in lane units
type Rect struct {
	Kind      ShapeKind `json:"kind"`
	Lane      int       `json:"lane"`
	X0        time.Time `json:"x0"`
	X1        time.Time `json:"x1"`
	Y0        float64   `json:"y0"`
	Y1        float64   `json:"y1"`
	Fill      Color     `json:"fill"`
	Opacity   float64   `json:"opacity"`
	LineWidth float64   `json:"line_width"`
	LineColor Color     `json:"line_color,omitempty"`
	Layer     Layer     `json:"layer"`
}

// Font of an annotation
type Font struct {
	Color Color `json:"color"`
	Size  int   `json:"size"`
}

// Annotation is a text label placed at (X, Y) without an arrow
type Annotation struct {
	Kind   AnnotationKind `json:"kind"`
	Lane   int            `json:"lane"`
	X      time.Time      `json:"x"`
	Y      float64        `json:"y"`
	Text   string         `json:"text"`
	Anchor Anchor         `json:"anchor"`
	Font   Font           `json:"font"`
}

// Lane is one sorted schedule row. Unscheduled lanes keep their tick but
// draw nothing.
type Lane struct {
	Index        int         `json:"index"`
	Label        string      `json:"label"`
	Activity     string      `json:"activity"`
	Task         string      `json:"task"`
	Status       string      `json:"status"`
	StatusClass  StatusClass `json:"status_class"`
	Color        Color       `json:"color"`
	Progress     float64     `json:"progress"`
	Scheduled    bool        `json:"scheduled"`
	Start        *time.Time  `json:"start,omitempty"`
	End          *time.Time  `json:"end,omitempty"`
	DurationDays int         `json:"duration_days"`
	ProgressDays float64     `json:"progress_days"`
}

// Axis configuration
type Axis struct {
	Title      string      `json:"title"`
	Type       string      `json:"type"`
	TickFormat string      `json:"tick_format,omitempty"`
	TickVals   []int       `json:"tick_vals,omitempty"`
	TickText   []string    `json:"tick_text,omitempty"`
	Reversed   bool        `json:"reversed"`
	Range      []time.Time `json:"range,omitempty"`
}

// Margin in pixels
type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

// Layout holds the fixed chart settings
type Layout struct {
	Title     string  `json:"title"`
	Height    int     `json:"height"`
	Margin    Margin  `json:"margin"`
	Template  string  `json:"template"`
	BarHeight float64 `json:"bar_height"`
}

// Stats summarizes the lanes of a scene
type Stats struct {
	Total      int `json:"total"`
	Scheduled  int `json:"scheduled"`
	Skipped    int `json:"skipped"`
	Finished   int `json:"finished"`
	InProgress int `json:"in_progress"`
	Other      int `json:"other"`
}

// Scene is everything a renderer needs to draw one chart
type Scene struct {
	Source      string       `json:"source,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
	Lanes       []Lane       `json:"lanes"`
	Shapes      []Rect       `json:"shapes"`
	Annotations []Annotation `json:"annotations"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Layout      Layout       `json:"layout"`
	Stats       Stats        `json:"stats"`
}

