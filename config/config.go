package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Timetable sync specifics
	SDUI           SDUIConfig
	GoogleCalendar GoogleCalendarConfig
	Sync           SyncConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// SDUIConfig configures access to the SDUI timetable API.
type SDUIConfig struct {
	BaseURL   string
	UserID    string
	AuthToken string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// SyncConfig tunes the sync and clear workers.
type SyncConfig struct {
	Timezone          string
	InsertMaxAttempts int
	DeleteMaxAttempts int
	ClearMaxPasses    int
	LogCapacity       int
	CacheTTL          time.Duration
	RequestsPerMinute int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// SDUI timetable provider
	cfg.SDUI.BaseURL = viper.GetString("sdui.base_url")
	cfg.SDUI.UserID = viper.GetString("sdui.user_id")
	cfg.SDUI.AuthToken = viper.GetString("sdui.auth_token")
	if userID := viper.GetString("sdui_user_id"); userID != "" {
		cfg.SDUI.UserID = userID
	}
	if token := viper.GetString("sdui_auth_token"); token != "" {
		cfg.SDUI.AuthToken = token
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}
	if calendarID := viper.GetString("google_calendar_id"); calendarID != "" {
		cfg.GoogleCalendar.CalendarID = calendarID
	}

	// Sync engine
	cfg.Sync.Timezone = viper.GetString("sync.timezone")
	cfg.Sync.InsertMaxAttempts = viper.GetInt("sync.insert_max_attempts")
	cfg.Sync.DeleteMaxAttempts = viper.GetInt("sync.delete_max_attempts")
	cfg.Sync.ClearMaxPasses = viper.GetInt("sync.clear_max_passes")
	cfg.Sync.LogCapacity = viper.GetInt("sync.log_capacity")
	cfg.Sync.CacheTTL = viper.GetDuration("sync.cache_ttl")
	cfg.Sync.RequestsPerMinute = viper.GetInt("sync.requests_per_minute")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("sdui.base_url", "https://api.sdui.app")

	viper.SetDefault("google_calendar.calendar_id", "primary")

	viper.SetDefault("sync.timezone", "Europe/Berlin")
	viper.SetDefault("sync.insert_max_attempts", 8)
	viper.SetDefault("sync.delete_max_attempts", 5)
	viper.SetDefault("sync.clear_max_passes", 5)
	viper.SetDefault("sync.log_capacity", 500)
	viper.SetDefault("sync.cache_ttl", 5*time.Minute)
	viper.SetDefault("sync.requests_per_minute", 300)
}
