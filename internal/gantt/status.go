package gantt

import "strings"

// StatusClass groups free text statuses
type StatusClass string

const (
	StatusFinished   StatusClass = "finished"
	StatusInProgress StatusClass = "in_progress"
	StatusOther      StatusClass = "other"
)

// Color is a named fill or font color
type Color string

const (
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorGray   Color = "gray"
	ColorOrange Color = "orange"
	ColorBlack  Color = "black"
)

// ClassifyStatus matches the trimmed, lower cased status
func ClassifyStatus(status string) StatusClass {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "finished":
		return StatusFinished
	case "in progress":
		return StatusInProgress
	default:
		return StatusOther
	}
}

// Color returns the bar fill for the class
func (c StatusClass) Color() Color {
	switch c {
	case StatusFinished:
		return ColorGreen
	case StatusInProgress:
		return ColorBlue
	default:
		return ColorGray
	}
}
