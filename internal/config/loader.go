package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"timegate/internal/domain"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with a YAML file, when one is given
// 3. Override with environment variables
func (l *Loader) Load(file string) (*Config, error) {
	if file != "" {
		if err := l.config.LoadFromFile(file); err != nil {
			return nil, err
		}
	}

	l.config.LoadFromEnvironment()

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadFromFile merges a YAML configuration file into the config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	// Database configuration
	if dir := os.Getenv("TG_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TG_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TG_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TG_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}

	// Timesheet rules
	if mode := os.Getenv("TG_TRACKING_MODE"); mode != "" {
		c.Timesheet.TrackingMode = domain.TrackingMode(mode)
	}
	if v := os.Getenv("TG_ALLOW_FUTURE_TIMES"); v != "" {
		c.Timesheet.AllowFutureTimes = ParseBoolWithFallback(v, c.Timesheet.AllowFutureTimes)
	}
	if v := os.Getenv("TG_ALLOW_ZERO_DURATION"); v != "" {
		c.Timesheet.AllowZeroDuration = ParseBoolWithFallback(v, c.Timesheet.AllowZeroDuration)
	}
	if v := os.Getenv("TG_ALLOW_OVERLAPPING"); v != "" {
		c.Timesheet.AllowOverlapping = ParseBoolWithFallback(v, c.Timesheet.AllowOverlapping)
	}
	if v := os.Getenv("TG_ALLOW_OVERBOOKING"); v != "" {
		c.Timesheet.AllowOverbooking = ParseBoolWithFallback(v, c.Timesheet.AllowOverbooking)
	}
	if v := os.Getenv("TG_REQUIRE_ACTIVITY"); v != "" {
		c.Timesheet.RequireActivity = ParseBoolWithFallback(v, c.Timesheet.RequireActivity)
	}
	if v := os.Getenv("TG_LONG_RUNNING_MAX_MINUTES"); v != "" {
		c.Timesheet.LongRunningMaxMinutes = ParseIntWithFallback(v, c.Timesheet.LongRunningMaxMinutes)
	}
	if v := os.Getenv("TG_ACTIVE_ENTRIES_HARD_LIMIT"); v != "" {
		c.Timesheet.ActiveEntriesHardLimit = ParseIntWithFallback(v, c.Timesheet.ActiveEntriesHardLimit)
	}
	if v := os.Getenv("TG_TIMEZONE"); v != "" {
		c.Timesheet.Timezone = v
	}

	// Lockdown period
	if v := os.Getenv("TG_LOCKDOWN_PERIOD_START"); v != "" {
		c.Lockdown.PeriodStart = v
	}
	if v := os.Getenv("TG_LOCKDOWN_PERIOD_END"); v != "" {
		c.Lockdown.PeriodEnd = v
	}
	if v := os.Getenv("TG_LOCKDOWN_GRACE_PERIOD"); v != "" {
		c.Lockdown.GracePeriod = v
	}
	if v := os.Getenv("TG_LOCKDOWN_TIMEZONE"); v != "" {
		c.Lockdown.Timezone = v
	}

	// Server
	if v := os.Getenv("TG_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
