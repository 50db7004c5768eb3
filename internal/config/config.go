// Package config resolves the run configuration from a YAML file,
// ${VAR:default} placeholders inside it, and environment overrides.
// Core components never read the environment themselves; everything
// they need arrives through explicit config values.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	serpAPIKeyEnv     = "SERPAPI_API_KEY"
	searchProviderEnv = "SEARCH_PROVIDER"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv    = "GEMINI_MODEL"
	geminiBaseURLEnv  = "GEMINI_BASE_URL"
)

// Config holds every runtime setting for a batch run.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Generator GeneratorConfig `yaml:"generator"`
	Brand     BrandConfig     `yaml:"brand"`

	// Concurrency bounds in-flight prospects; <=0 means unbounded.
	Concurrency int `yaml:"concurrency"`
}

// SearchConfig selects and tunes the search provider.
type SearchConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"apiKey"`
	BaseURL  string `yaml:"baseUrl"`

	// RateLimit is the maximum provider requests per minute.
	RateLimit  int `yaml:"rateLimit"`
	NumResults int `yaml:"numResults"`
	MaxRetries int `yaml:"maxRetries"`
}

// GeneratorConfig wires the optional generative backend. An empty API
// key leaves every stage in deterministic mode.
type GeneratorConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseUrl"`
}

// BrandConfig describes the brand the pitches speak for.
type BrandConfig struct {
	Name       string `yaml:"name"`
	OneLiner   string `yaml:"oneLiner"`
	AssetsHint string `yaml:"assetsHint"`
}

// Default returns the documented fallback configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Provider:   "mock",
			RateLimit:  60,
			NumResults: 5,
			MaxRetries: 2,
		},
		Generator: GeneratorConfig{
			Model: "gemini-2.0-flash",
		},
		Brand: BrandConfig{
			Name:     "Life Legally Single",
			OneLiner: "Life Legally Single",
		},
		Concurrency: 4,
	}
}

var envPlaceholderRe = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?\}`)

// Load reads the YAML file at path, resolves ${VAR:default}
// placeholders, and applies environment overrides. A missing file is
// an error when the path was explicitly configured; pass required=false
// for the conventional default path.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		resolved := envPlaceholderRe.ReplaceAllStringFunc(string(raw), func(m string) string {
			groups := envPlaceholderRe.FindStringSubmatch(m)
			if v := os.Getenv(groups[1]); v != "" {
				return v
			}
			return groups[2]
		})
		if err := yaml.Unmarshal([]byte(resolved), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !required:
		// Defaults only.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(searchProviderEnv); v != "" {
		c.Search.Provider = v
	}
	if v := os.Getenv(serpAPIKeyEnv); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Generator.APIKey = v
	}
	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Generator.Model = v
	}
	if v := os.Getenv(geminiBaseURLEnv); v != "" {
		c.Generator.BaseURL = v
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Search.Provider == "" {
		c.Search.Provider = def.Search.Provider
	}
	if c.Search.RateLimit == 0 {
		c.Search.RateLimit = def.Search.RateLimit
	}
	if c.Search.NumResults <= 0 {
		c.Search.NumResults = def.Search.NumResults
	}
	if c.Search.MaxRetries < 0 {
		c.Search.MaxRetries = 0
	}
	if c.Generator.Model == "" {
		c.Generator.Model = def.Generator.Model
	}
	if c.Brand.Name == "" {
		c.Brand.Name = def.Brand.Name
	}
	if c.Brand.OneLiner == "" {
		c.Brand.OneLiner = c.Brand.Name
	}
	if c.Concurrency == 0 {
		c.Concurrency = def.Concurrency
	}
}
