package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Garmin  GarminConfig  `json:"garmin"`
	Athlete AthleteConfig `json:"athlete"`
	Advisor AdvisorConfig `json:"advisor"`
	Display DisplayConfig `json:"display"`
}

// GarminConfig holds wellness API credentials
type GarminConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	MaxHR      int    `json:"max_hr"`
	RestingHR  int    `json:"resting_hr"`
	ZoneMethod string `json:"zone_method"` // "percentage" or "karvonen"
}

// AdvisorConfig holds settings for the LLM readiness narrative
type AdvisorConfig struct {
	OpenAIAPIKey string `json:"openai_api_key"`
	Model        string `json:"model"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			MaxHR:      185,
			RestingHR:  50,
			ZoneMethod: "percentage",
		},
		Advisor: AdvisorConfig{
			Model: "gpt-4o",
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
		},
	}
}

// Load reads the configuration from ~/.garmin-trainer/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.ZoneMethod == "" {
		cfg.Athlete.ZoneMethod = defaults.Athlete.ZoneMethod
	}
	if cfg.Advisor.Model == "" {
		cfg.Advisor.Model = defaults.Advisor.Model
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}

	// Secrets can come from the environment instead of the file
	if cfg.Advisor.OpenAIAPIKey == "" {
		cfg.Advisor.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.garmin-trainer/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Garmin = GarminConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Garmin.ClientID == "" || c.Garmin.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("garmin.client_id is required - register an application in the developer portal")
	}
	if c.Garmin.ClientSecret == "" || c.Garmin.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("garmin.client_secret is required - register an application in the developer portal")
	}

	if c.Athlete.ZoneMethod != "" && c.Athlete.ZoneMethod != "percentage" && c.Athlete.ZoneMethod != "karvonen" {
		return fmt.Errorf("athlete.zone_method must be \"percentage\" or \"karvonen\", got %q", c.Athlete.ZoneMethod)
	}

	if c.Athlete.MaxHR > 0 && (c.Athlete.MaxHR < 100 || c.Athlete.MaxHR > 250) {
		return fmt.Errorf("athlete.max_hr (%d) is outside the plausible range 100-250", c.Athlete.MaxHR)
	}
	if c.Athlete.RestingHR > 0 && c.Athlete.MaxHR > 0 && c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%d) must be less than athlete.max_hr (%d)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".garmin-trainer", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".garmin-trainer"), nil
}
