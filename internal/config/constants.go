package config

import "time"

// Application constants
const (
	AppName    = "Gantt Dashboard"
	AppVersion = "1.0.0"

	// DefaultDataFile is the workbook read when nothing else is configured
	DefaultDataFile   = "construction_timeline.xlsx"
	DefaultChartTitle  = "Advanced Gantt Chart"
	DefaultChartHeight = 600
	DefaultPort        = 8501
	DefaultLogFile     = "logs/gantt.log"

	ScheduleSourceExcel  = "excel"
	ScheduleSourceSheets = "sheets"

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second
)

// Page copy shown above the chart
const (
	PageTitle       = "Advanced Gantt Chart for Construction Projects"
	PageDescription = "This app displays an interactive, detailed Gantt chart based on your project dataset."
)
