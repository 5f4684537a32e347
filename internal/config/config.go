// Package config loads badgeflow configuration from an optional JSON file,
// environment overrides (BADGEFLOW_ prefix), and built-in defaults.
package config

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config holds all badgeflow configuration. It is plain data: load it once,
// then hand the relevant slices to each component explicitly.
type Config struct {
	Timezone string         `mapstructure:"timezone"`
	Log      LogConfig      `mapstructure:"log"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Validate ValidateConfig `mapstructure:"validate"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	UID      UIDConfig      `mapstructure:"uid"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // "console" or "json"
}

// PathsConfig holds input and output file locations.
type PathsConfig struct {
	Batches         string `mapstructure:"batches"`
	Calendar        string `mapstructure:"calendar"`
	Sessions        string `mapstructure:"sessions"`
	DeviceAlerts    string `mapstructure:"device_alerts"`
	IdentityAlerts  string `mapstructure:"identity_alerts"`
	TimestampAlerts string `mapstructure:"timestamp_alerts"`
}

// ValidateConfig holds device-validation thresholds.
type ValidateConfig struct {
	// MaxSessionHours is the continuous-activity span above which a
	// device-session is flagged. Heuristic pending hardware-side enforcement;
	// keep it configurable.
	MaxSessionHours float64 `mapstructure:"max_session_hours"`
}

// ScheduleConfig describes the institution's operating schedule.
type ScheduleConfig struct {
	StartTime     string   `mapstructure:"start_time"`     // "08:00:00"
	EndTime       string   `mapstructure:"end_time"`       // "18:00:00"
	SemesterStart string   `mapstructure:"semester_start"` // "2006-01-02"
	SemesterEnd   string   `mapstructure:"semester_end"`
	Holidays      []string `mapstructure:"holidays"` // "2006-01-02" dates
}

// UIDConfig parameterizes the badge-identifier shape check.
type UIDConfig struct {
	MinLen int `mapstructure:"min_len"`
	MaxLen int `mapstructure:"max_len"`
}

// Load reads configuration from the given JSON file path. An empty path means
// defaults plus environment overrides only; a named file that is missing is
// an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)

	v.SetEnvPrefix("BADGEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	return cfg, nil
}

// Location resolves the configured facility timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "load timezone %q", c.Timezone)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "Europe/Paris")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("paths.batches", "data/batches.jsonl")
	v.SetDefault("paths.calendar", "data/calendar.ics")
	v.SetDefault("paths.sessions", "out/sessions.json")
	v.SetDefault("paths.device_alerts", "out/device_alerts.csv")
	v.SetDefault("paths.identity_alerts", "out/identity_alerts.csv")
	v.SetDefault("paths.timestamp_alerts", "out/timestamp_alerts.csv")

	v.SetDefault("validate.max_session_hours", 11.0)

	v.SetDefault("schedule.start_time", "08:00:00")
	v.SetDefault("schedule.end_time", "18:00:00")
	v.SetDefault("schedule.semester_start", "")
	v.SetDefault("schedule.semester_end", "")
	v.SetDefault("schedule.holidays", []string{})

	v.SetDefault("uid.min_len", 8)
	v.SetDefault("uid.max_len", 9)
}
