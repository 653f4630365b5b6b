package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0xPuncker/polkacommerce-wallet/internal/registry"
	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig    `json:"server"`
	Wallet   WalletConfig    `json:"wallet"`
	Verifier VerifierConfig  `json:"verifier"`
	Slack    SlackConfig     `json:"slack"`
	Jobs     types.JobConfig `json:"jobs"`
	LogLevel string          `json:"log_level"`
}

type ServerConfig struct {
	Port         string `json:"port"`
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
}

type WalletConfig struct {
	ChainsFile string `json:"chains_file"`
	// EnableTestnets always comes from the environment, never the file.
	EnableTestnets bool `json:"-"`
}

type VerifierConfig struct {
	Timeout  string `json:"timeout"`
	CacheTTL string `json:"cache_ttl"`
}

type SlackConfig struct {
	WebhookURL string `json:"webhook_url"`
}

// ChainSelection lists the extra library chains to enable, in order.
type ChainSelection struct {
	Enabled []string `yaml:"enabled"`
}

// LoadEnv loads .env, falling back to .env.local. Missing files are not an
// error; the process environment is used as is.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load(".env.local"); err != nil {
			fmt.Printf("No .env or .env.local file found. Using environment variables.\n")
		}
	}
}

func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
		cfg.Wallet.ChainsFile = getEnv("CHAINS_FILE", cfg.Wallet.ChainsFile)
		cfg.Verifier.Timeout = getEnv("VERIFY_TIMEOUT", cfg.Verifier.Timeout)
		cfg.Verifier.CacheTTL = getEnv("VERIFY_CACHE_TTL", cfg.Verifier.CacheTTL)
		cfg.Slack.WebhookURL = getEnv("SLACK_WEBHOOK_URL", cfg.Slack.WebhookURL)
		cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.Wallet.EnableTestnets = registry.TestnetsEnabled(os.Getenv(registry.EnableTestnetsEnv))
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
		},
		Verifier: VerifierConfig{
			Timeout:  "10s",
			CacheTTL: "15m",
		},
		Jobs:     types.DefaultJobConfig(),
		LogLevel: "info",
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.Port == "" {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if c.Verifier.Timeout == "" {
		c.Verifier.Timeout = defaults.Verifier.Timeout
	}
	if c.Verifier.CacheTTL == "" {
		c.Verifier.CacheTTL = defaults.Verifier.CacheTTL
	}
	if c.Jobs.MaxConcurrent <= 0 {
		c.Jobs.MaxConcurrent = defaults.Jobs.MaxConcurrent
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// Validate checks every duration field parses.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"verifier.timeout":     c.Verifier.Timeout,
		"verifier.cache_ttl":   c.Verifier.CacheTTL,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
	}
	return nil
}

func (s ServerConfig) Timeouts() (read, write time.Duration) {
	read, _ = time.ParseDuration(s.ReadTimeout)
	write, _ = time.ParseDuration(s.WriteTimeout)
	return read, write
}

func (v VerifierConfig) Durations() (timeout, cacheTTL time.Duration) {
	timeout, _ = time.ParseDuration(v.Timeout)
	cacheTTL, _ = time.ParseDuration(v.CacheTTL)
	return timeout, cacheTTL
}

// LoadChainSelection reads the chain selection file. With an empty path it
// looks for config/chains.yaml or chains.yaml from the working directory
// upwards; finding none means no extra chains are enabled.
func LoadChainSelection(path string) (*ChainSelection, error) {
	if path == "" {
		found, err := findChainsFile()
		if err != nil {
			return &ChainSelection{}, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chains file: %w", err)
	}

	var selection ChainSelection
	if err := yaml.Unmarshal(data, &selection); err != nil {
		return nil, fmt.Errorf("failed to parse chains file: %w", err)
	}

	return &selection, nil
}

func findChainsFile() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for i := 0; i < 3; i++ {
		for _, candidate := range []string{
			filepath.Join(wd, "config", "chains.yaml"),
			filepath.Join(wd, "chains.yaml"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}

	return "", fmt.Errorf("chains file not found")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
