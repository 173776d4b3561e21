package config

import (
	"fmt"
	"strings"
	"time"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// EditorConfig provides type-safe access to editor settings.
type EditorConfig struct {
	// TabStop is the render width of a tab.
	TabStop int

	// QuitTimes is how many times Ctrl-Q must be pressed to quit with
	// unsaved changes.
	QuitTimes int

	// MessageTimeout is how long status messages stay visible.
	MessageTimeout time.Duration
}

// UIConfig provides type-safe access to UI settings.
type UIConfig struct {
	// Theme is the name of the color theme.
	Theme string

	// MatchColor overrides the search match background, as "#rrggbb".
	// Empty keeps the theme's color.
	MatchColor string
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the logging verbosity level ("debug", "info", "warn", "error").
	Level string

	// File is the log file path (empty disables logging).
	File string

	// MaxSize is the maximum log file size in MB before rotation.
	MaxSize int

	// MaxBackups is the maximum number of rotated files kept.
	MaxBackups int

	// MaxAge is the maximum age of rotated files in days.
	MaxAge int
}

// GrammarsConfig provides type-safe access to syntax grammar settings.
type GrammarsConfig struct {
	// Dir holds user grammar files (.yaml, .json, .lua).
	Dir string
}

// Editor returns type-safe access to editor settings.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		TabStop:        c.getIntOr("editor.tabStop", 8),
		QuitTimes:      c.getIntOr("editor.quitTimes", 3),
		MessageTimeout: c.getDurationOr("editor.messageTimeout", 5*time.Second),
	}
}

// UI returns type-safe access to UI settings.
func (c *Config) UI() UIConfig {
	return UIConfig{
		Theme:      c.getStringOr("ui.theme", "default"),
		MatchColor: c.getStringOr("ui.matchColor", ""),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level:      c.getStringOr("logging.level", "info"),
		File:       c.getStringOr("logging.file", ""),
		MaxSize:    c.getIntOr("logging.maxSize", 10),
		MaxBackups: c.getIntOr("logging.maxBackups", 3),
		MaxAge:     c.getIntOr("logging.maxAge", 28),
	}
}

// Grammars returns type-safe access to grammar settings.
func (c *Config) Grammars() GrammarsConfig {
	return GrammarsConfig{
		Dir: c.getStringOr("grammars.dir", ""),
	}
}

// Validate checks every known setting for type and range errors.
func (c *Config) Validate() error {
	tabStop, err := c.GetInt("editor.tabStop")
	if err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if tabStop < 1 || tabStop > 32 {
		return &ValidationError{Path: "editor.tabStop", Message: "must be between 1 and 32", Value: tabStop}
	}

	quitTimes, err := c.GetInt("editor.quitTimes")
	if err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if quitTimes < 0 {
		return &ValidationError{Path: "editor.quitTimes", Message: "must not be negative", Value: quitTimes}
	}

	timeout, err := c.GetDuration("editor.messageTimeout")
	if err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if timeout <= 0 {
		return &ValidationError{Path: "editor.messageTimeout", Message: "must be positive", Value: timeout}
	}

	level, err := c.GetString("logging.level")
	if err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Message: "unknown level", Value: level}
	}

	for _, path := range []string{"ui.theme", "ui.matchColor", "logging.file", "grammars.dir"} {
		if _, err := c.GetString(path); err != nil {
			return fmt.Errorf("validating config: %w", err)
		}
	}
	return nil
}
