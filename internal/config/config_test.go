package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPort, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, ScheduleSourceExcel, cfg.Schedule.Source)
				assert.Equal(t, DefaultDataFile, cfg.Schedule.File)
				assert.Equal(t, DefaultChartTitle, cfg.Schedule.Title)
				assert.Equal(t, DefaultChartHeight, cfg.Schedule.ChartHeight)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, []string{"http://localhost:8501"}, cfg.Security.AllowedOrigins)
			},
		},
		{
			name: "env overrides",
			env: map[string]string{
				"GANTT_SERVER_PORT":              "9000",
				"GANTT_SCHEDULE_FILE":            "/tmp/plan.xlsx",
				"GANTT_LOGGING_LEVEL":            "debug",
				"GANTT_SCHEDULE_SHEET":           "Timeline",
				"GANTT_LOGGING_FORMAT":           "text",
				"GANTT_TELEMETRY_TRACE_EXPORTER": "stdout",
				"GANTT_SCHEDULE_CHART_HEIGHT":    "900",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, "/tmp/plan.xlsx", cfg.Schedule.File)
				assert.Equal(t, "Timeline", cfg.Schedule.Sheet)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format, "format is forced to json")
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
				assert.Equal(t, 900, cfg.Schedule.ChartHeight)
			},
		},
		{
			name: "invalid port",
			env: map[string]string{
				"GANTT_SERVER_PORT": "70000",
			},
			wantErr: true,
		},
		{
			name: "unknown schedule source",
			env: map[string]string{
				"GANTT_SCHEDULE_SOURCE": "csv",
			},
			wantErr: true,
		},
		{
			name: "sheets source requires spreadsheet id",
			env: map[string]string{
				"GANTT_SCHEDULE_SOURCE": "sheets",
			},
			wantErr: true,
		},
		{
			name: "sheets source with spreadsheet id",
			env: map[string]string{
				"GANTT_SCHEDULE_SOURCE":         "sheets",
				"GANTT_SCHEDULE_SPREADSHEET_ID": "sheet-123",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ScheduleSourceSheets, cfg.Schedule.Source)
				assert.Equal(t, "sheet-123", cfg.Schedule.SpreadsheetID)
			},
		},
		{
			name: "yaml file values with env precedence",
			fileContent: `
server:
  port: 7000
schedule:
  file: from-file.xlsx
  title: Site Plan
logging:
  level: warn
`,
			env: map[string]string{
				"GANTT_LOGGING_LEVEL": "error",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7000, cfg.Server.Port)
				assert.Equal(t, "from-file.xlsx", cfg.Schedule.File)
				assert.Equal(t, "Site Plan", cfg.Schedule.Title)
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "missing file values fall back to defaults")
			},
		},
		{
			name: "chart height too small",
			env: map[string]string{
				"GANTT_SCHEDULE_CHART_HEIGHT": "50",
			},
			wantErr: true,
		},
		{
			name:        "malformed yaml file",
			fileContent: "server: [unclosed",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.fileContent != "" {
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.fileContent), 0644))
				t.Setenv("GANTT_CONFIG_FILE", path)
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultDataFile, cfg.Schedule.File)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
}

func TestValidate_FillsLogFilePath(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "both"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
}

func TestValidate_EmptyScheduleFile(t *testing.T) {
	cfg := Default()
	cfg.Schedule.File = "  "

	assert.Error(t, cfg.validate())
}

func TestResolvePath(t *testing.T) {
	abs, err := ResolvePath("data/plan.xlsx")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
	assert.Equal(t, "plan.xlsx", filepath.Base(abs))

	abs, err = ResolvePath("/srv/./plan.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/srv/plan.xlsx"), abs)

	_, err = ResolvePath("")
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plan.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir), "directories are not files")
	assert.False(t, FileExists(filepath.Join(dir, "missing.xlsx")))
}
