// Package config loads the PhishGuard server configuration from a YAML file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phishguard/phishguard/internal/app"
	"github.com/phishguard/phishguard/internal/scanner"
	"github.com/phishguard/phishguard/internal/scoring"
)

// Config holds PhishGuard configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Scorer ScorerConfig `yaml:"scorer"`
	Scan   ScanConfig   `yaml:"scan"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`       // HTTP listen address, e.g. ":8080"
	StaticDir string `yaml:"static_dir"` // web UI directory; empty disables it
}

type ScorerConfig struct {
	Backend        string  `yaml:"backend"`         // "nethttp" | "demo"
	BaseURL        string  `yaml:"base_url"`        // scoring service root
	TimeoutSeconds int     `yaml:"timeout_seconds"` // per-request bound
	HighRecall     float64 `yaml:"high_recall"`     // demo backend threshold seed
}

type ScanConfig struct {
	Camera      string  `yaml:"camera"` // "environment" | "user"
	FPS         int     `yaml:"fps"`
	BoxWidth    int     `yaml:"box_width"`
	BoxHeight   int     `yaml:"box_height"`
	AspectRatio float64 `yaml:"aspect_ratio"`
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// AppConfig converts the file representation into the orchestrator config.
func (c *Config) AppConfig() *app.Config {
	scanCfg := scanner.DefaultConfig()
	if pref := scanner.CameraPreference(c.Scan.Camera); pref == scanner.CameraUser || pref == scanner.CameraEnvironment {
		scanCfg.Camera = pref
	}
	if c.Scan.FPS > 0 {
		scanCfg.Scan.FPS = c.Scan.FPS
	}
	if c.Scan.BoxWidth > 0 {
		scanCfg.Scan.BoxWidth = c.Scan.BoxWidth
	}
	if c.Scan.BoxHeight > 0 {
		scanCfg.Scan.BoxHeight = c.Scan.BoxHeight
	}
	if c.Scan.AspectRatio > 0 {
		scanCfg.Scan.AspectRatio = c.Scan.AspectRatio
	}

	return &app.Config{
		Scorer: scoring.Config{
			Backend:             scoring.Backend(c.Scorer.Backend),
			BaseURL:             c.Scorer.BaseURL,
			Timeout:             time.Duration(c.Scorer.TimeoutSeconds) * time.Second,
			HighRecallThreshold: c.Scorer.HighRecall,
		},
		Scan: scanCfg,
	}
}

func defaultConfig() *Config {
	scorerDefaults := scoring.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Scorer: ScorerConfig{
			Backend:        string(scorerDefaults.Backend),
			BaseURL:        scorerDefaults.BaseURL,
			TimeoutSeconds: int(scorerDefaults.Timeout / time.Second),
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	scorerDefaults := scoring.DefaultConfig()
	if cfg.Scorer.Backend == "" {
		cfg.Scorer.Backend = string(scorerDefaults.Backend)
	}
	if cfg.Scorer.BaseURL == "" {
		cfg.Scorer.BaseURL = scorerDefaults.BaseURL
	}
	if cfg.Scorer.TimeoutSeconds <= 0 {
		cfg.Scorer.TimeoutSeconds = int(scorerDefaults.Timeout / time.Second)
	}
}
