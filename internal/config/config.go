package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timegate/internal/domain"
)

// Config holds all configuration options for the timegate application.
// The rule engine consumes it as an immutable snapshot: once a
// validation call starts, configuration is never read from anywhere
// else.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Timesheet TimesheetConfig `yaml:"timesheet"`
	Lockdown  LockdownConfig  `yaml:"lockdown"`
	Server    ServerConfig    `yaml:"server"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir          string        `yaml:"dir" env:"TG_DB_DIR"`
	Filename     string        `yaml:"filename" env:"TG_DB_FILENAME"`
	QueryTimeout time.Duration `yaml:"query_timeout" env:"TG_DB_QUERY_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TG_DB_WRITE_TIMEOUT"`
}

// TimesheetConfig holds the business rules applied to timesheet entries
type TimesheetConfig struct {
	TrackingMode domain.TrackingMode `yaml:"tracking_mode" env:"TG_TRACKING_MODE"`

	AllowFutureTimes  bool `yaml:"allow_future_times" env:"TG_ALLOW_FUTURE_TIMES"`
	AllowZeroDuration bool `yaml:"allow_zero_duration" env:"TG_ALLOW_ZERO_DURATION"`
	AllowOverlapping  bool `yaml:"allow_overlapping" env:"TG_ALLOW_OVERLAPPING"`
	AllowOverbooking  bool `yaml:"allow_overbooking" env:"TG_ALLOW_OVERBOOKING"`
	RequireActivity   bool `yaml:"require_activity" env:"TG_REQUIRE_ACTIVITY"`

	// LongRunningMaxMinutes caps the duration of a single entry. Zero
	// disables the check; one year is enforced regardless.
	LongRunningMaxMinutes int `yaml:"long_running_max_minutes" env:"TG_LONG_RUNNING_MAX_MINUTES"`

	// ActiveEntriesHardLimit caps concurrently running entries per user.
	ActiveEntriesHardLimit int `yaml:"active_entries_hard_limit" env:"TG_ACTIVE_ENTRIES_HARD_LIMIT"`

	// Timezone is the system reporting timezone, used for monthly budget
	// windows and formatted message parameters.
	Timezone string `yaml:"timezone" env:"TG_TIMEZONE"`
}

// LockdownConfig describes the period in which past entries may no
// longer be changed. Start and end accept absolute dates or relative
// expressions like "first day of last month". Malformed expressions
// disable the lockdown instead of failing user-facing validation.
type LockdownConfig struct {
	PeriodStart string `yaml:"period_start" env:"TG_LOCKDOWN_PERIOD_START"`
	PeriodEnd   string `yaml:"period_end" env:"TG_LOCKDOWN_PERIOD_END"`
	GracePeriod string `yaml:"grace_period" env:"TG_LOCKDOWN_GRACE_PERIOD"`
	Timezone    string `yaml:"timezone" env:"TG_LOCKDOWN_TIMEZONE"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Addr string `yaml:"addr" env:"TG_SERVER_ADDR"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:          filepath.Join(homeDir, ".timegate"),
			Filename:     "timegate.db",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Timesheet: TimesheetConfig{
			TrackingMode:           domain.TrackingModeDefault,
			AllowFutureTimes:       true,
			AllowZeroDuration:      true,
			AllowOverlapping:       true,
			AllowOverbooking:       true,
			RequireActivity:        true,
			LongRunningMaxMinutes:  0,
			ActiveEntriesHardLimit: 1,
			Timezone:               "UTC",
		},
		Lockdown: LockdownConfig{},
		Server: ServerConfig{
			Addr: ":8717",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// Validate checks the configuration for values that can not work at all.
// Lockdown expressions are deliberately not validated here; the rule
// treats broken expressions as "no lockdown".
func (c *Config) Validate() error {
	if !c.Timesheet.TrackingMode.IsValid() {
		return fmt.Errorf("unknown tracking mode %q", c.Timesheet.TrackingMode)
	}
	if c.Timesheet.LongRunningMaxMinutes < 0 {
		return fmt.Errorf("long_running_max_minutes must not be negative")
	}
	if c.Timesheet.ActiveEntriesHardLimit < 1 {
		return fmt.Errorf("active_entries_hard_limit must be at least 1")
	}
	if _, err := time.LoadLocation(c.Timesheet.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q", c.Timesheet.Timezone)
	}
	return nil
}

// Location resolves the reporting timezone, falling back to UTC.
func (tc TimesheetConfig) Location() *time.Location {
	return loadLocation(tc.Timezone)
}

// Location resolves the lockdown timezone, falling back to UTC.
func (lc LockdownConfig) Location() *time.Location {
	return loadLocation(lc.Timezone)
}

// IsConfigured reports whether any lockdown boundary is set.
func (lc LockdownConfig) IsConfigured() bool {
	return lc.PeriodStart != "" || lc.PeriodEnd != ""
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
