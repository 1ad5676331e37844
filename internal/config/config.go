package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
)

// FairnessSettings tunes the fairness ranking window
type FairnessSettings struct {
	WindowMonths int `yaml:"windowMonths,omitempty" validate:"omitempty,min=1"`
	SentinelDays int `yaml:"sentinelDays,omitempty" validate:"omitempty,min=1"`
}

// MaintenanceSettings schedules the background maintenance jobs as
// recurrence rules
type MaintenanceSettings struct {
	RecalcRule         string `yaml:"recalcRule,omitempty"`
	ArchiveRule        string `yaml:"archiveRule,omitempty"`
	ArchiveAfterMonths int    `yaml:"archiveAfterMonths,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string              `yaml:"databaseURL" validate:"required"`
	GmailUserID string              `yaml:"gmailUserID,omitempty" validate:"omitempty,email"`
	GmailSender string              `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	Fairness    FairnessSettings    `yaml:"fairness,omitempty"`
	Maintenance MaintenanceSettings `yaml:"maintenance,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" will look for "recall_config.test.yaml".
// It looks for the config file in the current directory first, then in
// the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(envFileName("recall_config", env, "yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for the maintenance schedules
	if cfg.Maintenance.RecalcRule != "" {
		if _, err := rrule.StrToRRule(cfg.Maintenance.RecalcRule); err != nil {
			return fmt.Errorf("invalid rrule in maintenance.recalcRule: %w", err)
		}
	}
	if cfg.Maintenance.ArchiveRule != "" {
		if _, err := rrule.StrToRRule(cfg.Maintenance.ArchiveRule); err != nil {
			return fmt.Errorf("invalid rrule in maintenance.archiveRule: %w", err)
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Fairness.WindowMonths == 0 {
		cfg.Fairness.WindowMonths = fairness.DefaultWindowMonths
	}
	if cfg.Fairness.SentinelDays == 0 {
		cfg.Fairness.SentinelDays = fairness.DefaultSentinelDays
	}
	if cfg.Maintenance.ArchiveAfterMonths == 0 {
		cfg.Maintenance.ArchiveAfterMonths = cfg.Fairness.WindowMonths
	}
}

// FairnessConfig maps the configured tuning values onto the engine config
func (c *Config) FairnessConfig() fairness.Config {
	return fairness.Config{
		WindowMonths: c.Fairness.WindowMonths,
		SentinelDays: c.Fairness.SentinelDays,
	}
}

// MaintenanceRules returns the configured recurrence rules keyed by job name
func (c *Config) MaintenanceRules() map[string]string {
	return map[string]string{
		"recalculate": c.Maintenance.RecalcRule,
		"archive":     c.Maintenance.ArchiveRule,
	}
}

// envFileName inserts the environment between the base name and the
// extension, e.g. ("recall_config", "test", "yaml") gives
// "recall_config.test.yaml"
func envFileName(base, env, ext string) string {
	if env == "" {
		return base + "." + ext
	}
	return base + "." + env + "." + ext
}

// findFile looks for the named file in the current directory, then in
// the user's home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
