package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	OTel      OTelConfig      `yaml:"otel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Learning  LearningConfig  `yaml:"learning"`
	Game      GameConfig      `yaml:"game"`
	Session   SessionConfig   `yaml:"session"`
}

type OTelConfig struct {
	Endpoint    string `yaml:"endpoint" env:"OTEL_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
}

type TelemetryConfig struct {
	Enabled  bool          `yaml:"enabled" env:"TELEMETRY_ENABLED"`
	Interval time.Duration `yaml:"interval" env:"TELEMETRY_INTERVAL"`
}

type LearningConfig struct {
	Debug      bool              `yaml:"debug" env:"LEARNING_DEBUG"`
	Spec       string            `yaml:"spec" env:"LEARNING_SPEC"`
	Dictionary map[string]string `yaml:"dictionary"`
}

type GameConfig struct {
	SinglePlay  bool           `yaml:"single_play" env:"GAME_SINGLE_PLAY"`
	PlayOptions map[string]any `yaml:"play_options"`
	Captions    bool           `yaml:"captions" env:"GAME_CAPTIONS"`
	Sound       bool           `yaml:"sound" env:"GAME_SOUND"`
	Hints       bool           `yaml:"hints" env:"GAME_HINTS"`
}

type SessionConfig struct {
	// Standalone runs without a container endpoint (unsupported messenger).
	Standalone   bool          `yaml:"standalone" env:"SESSION_STANDALONE"`
	StepInterval time.Duration `yaml:"step_interval" env:"SESSION_STEP_INTERVAL"`
}

func defaultConfig() Config {
	return Config{
		OTel: OTelConfig{
			ServiceName: "springroll-demo",
		},
		Telemetry: TelemetryConfig{
			Enabled:  true,
			Interval: 15 * time.Second,
		},
		Learning: LearningConfig{
			Spec: "demo-spec-1.0",
			Dictionary: map[string]string{
				"2000": "session_start",
				"2010": "session_end",
				"3010": "round_complete",
			},
		},
		Game: GameConfig{
			SinglePlay: true,
			Captions:   true,
			Sound:      true,
			Hints:      true,
			PlayOptions: map[string]any{
				"difficulty": "normal",
			},
		},
		Session: SessionConfig{
			StepInterval: 500 * time.Millisecond,
		},
	}
}

func loadConfig() (Config, error) {
	cfg := defaultConfig()

	configPath := envOr("CONFIG_PATH", "/etc/springroll-demo/config.yaml")
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}
	// config file is optional — missing file is not an error

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Learning.Spec == "" && len(cfg.Learning.Dictionary) > 0 {
		return cfg, fmt.Errorf("learning.dictionary requires learning.spec")
	}
	if cfg.Session.StepInterval <= 0 {
		return cfg, fmt.Errorf("session.step_interval must be positive")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
