// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultBackupMaxAge is how long a matching backup stays reusable.
const DefaultBackupMaxAge = time.Hour

// RenameConfig holds settings for the rename run.
type RenameConfig struct {
	// DryRun reports intended renames without touching the filesystem.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`

	// Yes answers every confirmation with yes.
	Yes bool `json:"yes" yaml:"yes" mapstructure:"yes"`

	// Workers bounds the rename worker pool (default: number of CPUs).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Progress shows a progress bar while renaming.
	Progress bool `json:"progress" yaml:"progress" mapstructure:"progress"`

	// NoColor disables colored console output.
	NoColor bool `json:"no_color" yaml:"no_color" mapstructure:"no_color"`
}

// BackupConfig holds settings for the backup stage.
type BackupConfig struct {
	// Disabled skips backup handling entirely.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`

	// MaxAge is the age below which a matching backup is reused (default 1h).
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Enabled controls whether completed runs are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file. Empty selects the default location
	// under the user config directory.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for a pdf-renamer invocation.
type Config struct {
	RenameConfig `yaml:",inline" mapstructure:",squash"`

	Backup  BackupConfig  `json:"backup" yaml:"backup" mapstructure:"backup"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when no config file or flags
// override them.
func DefaultConfig() Config {
	return Config{
		Backup:  BackupConfig{MaxAge: DefaultBackupMaxAge},
		History: HistoryConfig{Enabled: true},
		Log:     LogConfig{Level: "warn", Format: "console"},
	}
}
