package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for every environment variable read by Load
const EnvPrefix = "GANTT"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Schedule  ScheduleConfig  `yaml:"schedule" envconfig:"SCHEDULE"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8501" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8501" validate:"min=1"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/gantt.log"`
}

// ScheduleConfig describes where the project schedule comes from
type ScheduleConfig struct {
	// Source is "excel" (a local workbook) or "sheets" (a Google spreadsheet)
	Source          string `yaml:"source" envconfig:"SOURCE" default:"excel" validate:"oneof=excel sheets"`
	File            string `yaml:"file" envconfig:"FILE" default:"construction_timeline.xlsx"`
	Sheet           string `yaml:"sheet" envconfig:"SHEET"`
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID" validate:"required_if=Source sheets"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	Title           string `yaml:"title" envconfig:"TITLE" default:"Advanced Gantt Chart"`
	ChartHeight     int    `yaml:"chart_height" envconfig:"CHART_HEIGHT" default:"600" validate:"min=200,max=20000"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"1024"`
}

// TelemetryConfig toggles OpenTelemetry exporters
type TelemetryConfig struct {
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none" validate:"oneof=stdout none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus" validate:"oneof=prometheus none"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0" validate:"gte=0,lte=1"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays values that were explicitly set in the environment
// onto the file config. envconfig fills defaults for everything, so a field
// wins from the environment only when its variable is actually present.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := fileConfig

	if envSet("SERVER_PORT") || merged.Server.Port == 0 {
		merged.Server.Port = envConfig.Server.Port
	}
	if envSet("SERVER_READ_TIMEOUT") || merged.Server.ReadTimeout == 0 {
		merged.Server.ReadTimeout = envConfig.Server.ReadTimeout
	}
	if envSet("SERVER_WRITE_TIMEOUT") || merged.Server.WriteTimeout == 0 {
		merged.Server.WriteTimeout = envConfig.Server.WriteTimeout
	}
	if envSet("SERVER_IDLE_TIMEOUT") || merged.Server.IdleTimeout == 0 {
		merged.Server.IdleTimeout = envConfig.Server.IdleTimeout
	}
	if envSet("SERVER_SHUTDOWN_TIMEOUT") || merged.Server.ShutdownTimeout == 0 {
		merged.Server.ShutdownTimeout = envConfig.Server.ShutdownTimeout
	}

	if envSet("SECURITY_ALLOWED_ORIGINS") || len(merged.Security.AllowedOrigins) == 0 {
		merged.Security.AllowedOrigins = envConfig.Security.AllowedOrigins
	}
	if envSet("SECURITY_ENABLE_CORS") {
		merged.Security.EnableCORS = envConfig.Security.EnableCORS
	}
	if envSet("SECURITY_RATE_LIMIT_ENABLED") {
		merged.Security.RateLimit.Enabled = envConfig.Security.RateLimit.Enabled
	}
	if envSet("SECURITY_RATE_LIMIT_RPS") || merged.Security.RateLimit.RPS == 0 {
		merged.Security.RateLimit.RPS = envConfig.Security.RateLimit.RPS
	}
	if envSet("SECURITY_RATE_LIMIT_BURST") || merged.Security.RateLimit.Burst == 0 {
		merged.Security.RateLimit.Burst = envConfig.Security.RateLimit.Burst
	}

	merged.Logging.Level = pick("LOGGING_LEVEL", merged.Logging.Level, envConfig.Logging.Level)
	merged.Logging.Format = pick("LOGGING_FORMAT", merged.Logging.Format, envConfig.Logging.Format)
	merged.Logging.Output = pick("LOGGING_OUTPUT", merged.Logging.Output, envConfig.Logging.Output)
	merged.Logging.FilePath = pick("LOGGING_FILE_PATH", merged.Logging.FilePath, envConfig.Logging.FilePath)

	merged.Schedule.Source = pick("SCHEDULE_SOURCE", merged.Schedule.Source, envConfig.Schedule.Source)
	merged.Schedule.File = pick("SCHEDULE_FILE", merged.Schedule.File, envConfig.Schedule.File)
	merged.Schedule.Sheet = pick("SCHEDULE_SHEET", merged.Schedule.Sheet, envConfig.Schedule.Sheet)
	merged.Schedule.SpreadsheetID = pick("SCHEDULE_SPREADSHEET_ID", merged.Schedule.SpreadsheetID, envConfig.Schedule.SpreadsheetID)
	merged.Schedule.CredentialsFile = pick("SCHEDULE_CREDENTIALS_FILE", merged.Schedule.CredentialsFile, envConfig.Schedule.CredentialsFile)
	merged.Schedule.Title = pick("SCHEDULE_TITLE", merged.Schedule.Title, envConfig.Schedule.Title)
	if envSet("SCHEDULE_CHART_HEIGHT") || merged.Schedule.ChartHeight == 0 {
		merged.Schedule.ChartHeight = envConfig.Schedule.ChartHeight
	}

	if envSet("WEBSOCKET_READ_BUFFER_SIZE") || merged.WebSocket.ReadBufferSize == 0 {
		merged.WebSocket.ReadBufferSize = envConfig.WebSocket.ReadBufferSize
	}
	if envSet("WEBSOCKET_WRITE_BUFFER_SIZE") || merged.WebSocket.WriteBufferSize == 0 {
		merged.WebSocket.WriteBufferSize = envConfig.WebSocket.WriteBufferSize
	}

	merged.Telemetry.Environment = pick("TELEMETRY_ENVIRONMENT", merged.Telemetry.Environment, envConfig.Telemetry.Environment)
	merged.Telemetry.TraceExporter = pick("TELEMETRY_TRACE_EXPORTER", merged.Telemetry.TraceExporter, envConfig.Telemetry.TraceExporter)
	merged.Telemetry.MetricExporter = pick("TELEMETRY_METRIC_EXPORTER", merged.Telemetry.MetricExporter, envConfig.Telemetry.MetricExporter)
	if envSet("TELEMETRY_SAMPLE_RATIO") || merged.Telemetry.SampleRatio == 0 {
		merged.Telemetry.SampleRatio = envConfig.Telemetry.SampleRatio
	}

	return merged
}

// envSet reports whether GANTT_<suffix> is present in the environment
func envSet(suffix string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + suffix)
	return ok
}

func pick(suffix, fileValue, envValue string) string {
	if envSet(suffix) || fileValue == "" {
		return envValue
	}
	return fileValue
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Schedule.Source == ScheduleSourceExcel && strings.TrimSpace(c.Schedule.File) == "" {
		return fmt.Errorf("schedule file must be set when source is %q", ScheduleSourceExcel)
	}

	// JSON is the only log format the logger emits
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8501"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Schedule: ScheduleConfig{
			Source:      ScheduleSourceExcel,
			File:        DefaultDataFile,
			Title:       DefaultChartTitle,
			ChartHeight: DefaultChartHeight,
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Telemetry: TelemetryConfig{
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
