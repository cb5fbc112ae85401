package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.MaxHR != 185 {
		t.Errorf("Athlete.MaxHR = %v, want 185", cfg.Athlete.MaxHR)
	}
	if cfg.Athlete.RestingHR != 50 {
		t.Errorf("Athlete.RestingHR = %v, want 50", cfg.Athlete.RestingHR)
	}
	if cfg.Athlete.ZoneMethod != "percentage" {
		t.Errorf("Athlete.ZoneMethod = %q, want %q", cfg.Athlete.ZoneMethod, "percentage")
	}
	if cfg.Advisor.Model != "gpt-4o" {
		t.Errorf("Advisor.Model = %q, want %q", cfg.Advisor.Model, "gpt-4o")
	}
	if cfg.Display.DistanceUnit != "km" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "km")
	}

	// Credentials should be empty by default
	if cfg.Garmin.ClientID != "" {
		t.Errorf("Garmin.ClientID should be empty, got %q", cfg.Garmin.ClientID)
	}
	if cfg.Garmin.ClientSecret != "" {
		t.Errorf("Garmin.ClientSecret should be empty, got %q", cfg.Garmin.ClientSecret)
	}
	if cfg.Advisor.OpenAIAPIKey != "" {
		t.Errorf("Advisor.OpenAIAPIKey should be empty, got %q", cfg.Advisor.OpenAIAPIKey)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Garmin: GarminConfig{
				ClientID:     "12345",
				ClientSecret: "abc123secret",
			},
			Athlete: AthleteConfig{
				MaxHR:      185,
				RestingHR:  50,
				ZoneMethod: "percentage",
			},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "empty client ID",
			mutate:      func(c *Config) { c.Garmin.ClientID = "" },
			expectError: true,
			errContains: "client_id",
		},
		{
			name:        "placeholder client ID",
			mutate:      func(c *Config) { c.Garmin.ClientID = "YOUR_CLIENT_ID" },
			expectError: true,
			errContains: "client_id",
		},
		{
			name:        "empty client secret",
			mutate:      func(c *Config) { c.Garmin.ClientSecret = "" },
			expectError: true,
			errContains: "client_secret",
		},
		{
			name:        "placeholder client secret",
			mutate:      func(c *Config) { c.Garmin.ClientSecret = "YOUR_CLIENT_SECRET" },
			expectError: true,
			errContains: "client_secret",
		},
		{
			name:        "bad zone method",
			mutate:      func(c *Config) { c.Athlete.ZoneMethod = "lactate" },
			expectError: true,
			errContains: "zone_method",
		},
		{
			name:   "karvonen zone method",
			mutate: func(c *Config) { c.Athlete.ZoneMethod = "karvonen" },
		},
		{
			name:        "implausible max HR",
			mutate:      func(c *Config) { c.Athlete.MaxHR = 300 },
			expectError: true,
			errContains: "max_hr",
		},
		{
			name: "resting above max",
			mutate: func(c *Config) {
				c.Athlete.RestingHR = 190
				c.Athlete.MaxHR = 185
			},
			expectError: true,
			errContains: "resting_hr",
		},
		{
			name:        "bad distance unit",
			mutate:      func(c *Config) { c.Display.DistanceUnit = "furlongs" },
			expectError: true,
			errContains: "distance_unit",
		},
		{
			name:   "miles distance unit",
			mutate: func(c *Config) { c.Display.DistanceUnit = "mi" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigTypes(t *testing.T) {
	cfg := Config{
		Garmin: GarminConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		},
		Athlete: AthleteConfig{
			MaxHR:      190,
			RestingHR:  55,
			ZoneMethod: "karvonen",
		},
		Advisor: AdvisorConfig{
			OpenAIAPIKey: "sk-test",
			Model:        "gpt-4o-mini",
		},
		Display: DisplayConfig{
			DistanceUnit: "mi",
		},
	}

	if cfg.Garmin.ClientID != "test-id" {
		t.Error("GarminConfig.ClientID not set correctly")
	}
	if cfg.Athlete.RestingHR != 55 {
		t.Error("AthleteConfig.RestingHR not set correctly")
	}
	if cfg.Advisor.Model != "gpt-4o-mini" {
		t.Error("AdvisorConfig.Model not set correctly")
	}
	if cfg.Display.DistanceUnit != "mi" {
		t.Error("DisplayConfig.DistanceUnit not set correctly")
	}
}
