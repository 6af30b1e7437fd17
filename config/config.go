package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the troubleshooting assistant.
type Config struct {
	Chunking ChunkingConfig `yaml:"chunking"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	LLM      LLMConfig      `yaml:"llm"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ChunkingConfig holds document splitting configuration.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK      int     `yaml:"top_k"`
	MinScore  float64 `yaml:"min_score"` // Filter results below this score (0 = disabled)
	CacheSize int     `yaml:"cache_size"`
	CacheTTL  string  `yaml:"cache_ttl"`
}

// LLMConfig holds hosted language model configuration. The key itself is
// resolved from the named environment variable by the composition root.
type LLMConfig struct {
	Model             string `yaml:"model"`
	APIKeyEnv         string `yaml:"api_key_env"`
	MaxTokens         int    `yaml:"max_tokens"`
	Timeout           string `yaml:"timeout"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// IngestConfig holds bulk-ingest configuration.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			Size:    500,
			Overlap: 50,
		},
		Retrieve: RetrieveConfig{
			TopK:      5,
			MinScore:  0,
			CacheSize: 100,
			CacheTTL:  "5m",
		},
		LLM: LLMConfig{
			Model:             "claude-sonnet-4-20250514",
			APIKeyEnv:         "ANTHROPIC_API_KEY",
			MaxTokens:         2048,
			Timeout:           "60s",
			RequestsPerMinute: 30,
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.md", "**/*.txt", "**/*.rst"},
			Excludes: []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"},
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CacheTTLDuration parses the configured cache TTL, falling back to the
// default on a bad value.
func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.Retrieve.CacheTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// LLMTimeoutDuration parses the configured LLM call timeout.
func (c *Config) LLMTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for logtriage.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "logtriage.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".logtriage", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DocDBPath returns the path to the document collection database.
func DocDBPath(dir string) string {
	return filepath.Join(dir, ".logtriage", "docs.db")
}

// EnsureDataDir ensures the .logtriage directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".logtriage"), 0755)
}
