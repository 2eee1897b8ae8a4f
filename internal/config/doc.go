// Package config loads the dashboard configuration.
//
// Values come from three places, highest precedence first:
//
//	1. Environment variables prefixed with GANTT_
//	2. A YAML file (config.yaml, configs/config.yaml, or GANTT_CONFIG_FILE)
//	3. Struct tag defaults
//
// Examples:
//
//	GANTT_SERVER_PORT=8501
//	GANTT_SCHEDULE_FILE=/srv/data/construction_timeline.xlsx
//	GANTT_SCHEDULE_SOURCE=sheets
//	GANTT_SCHEDULE_SPREADSHEET_ID=1AbC...
//	GANTT_LOGGING_LEVEL=debug
//
// Validation runs through go-playground/validator struct tags, so a bad
// port or an unknown log output fails Load instead of surfacing at runtime.
package config
