package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"flickrindexer/pkg/params"
)

// DefaultPath is the configuration file read when no path is given
const DefaultPath = "config.json"

// Config holds all configuration options for the indexer
type Config struct {
	// Output root; each collection gets a sub directory
	OutPath string `yaml:"out_path" json:"out_path"`

	// Flickr credentials
	APIKey    string `yaml:"api_key" json:"api_key"`
	APISecret string `yaml:"api_secret" json:"api_secret"`

	// Maximum rows a single query contributes to its collection; nil until
	// the file or environment sets it
	ResultLimit *int `yaml:"result_limit" json:"result_limit"`

	// Collection name -> query specs, in file order
	Queries Collections `yaml:"queries" json:"queries"`

	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	HTTP      HTTPConfig      `yaml:"http" json:"http"`
}

// Collection is a named group of queries sharing one output directory
type Collection struct {
	Name    string
	Queries []params.Params
}

// Collections keeps collections in the order they appear in the file
type Collections []Collection

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// RateLimitConfig paces calls to the Flickr API
type RateLimitConfig struct {
	// 0 disables pacing
	RequestsPerHour int `yaml:"requests_per_hour" json:"requests_per_hour"`
}

// HTTPConfig configures the API transport
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
		RateLimit: RateLimitConfig{
			// Flickr's documented key quota
			RequestsPerHour: 3600,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
			BaseURL: "https://api.flickr.com/services/rest/",
		},
	}
}

// UnmarshalYAML decodes the queries mapping without losing key order
func (c *Collections) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: queries must map collection names to lists of queries", node.Line)
	}

	collections := make(Collections, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var queries []params.Params
		if err := node.Content[i+1].Decode(&queries); err != nil {
			return fmt.Errorf("collection %q: %w", name, err)
		}
		collections = append(collections, Collection{Name: name, Queries: queries})
	}

	*c = collections
	return nil
}

// Limit returns the per-query row cap, 0 when unset
func (c *Config) Limit() int {
	if c.ResultLimit == nil {
		return 0
	}
	return *c.ResultLimit
}

// Names returns the collection names in file order
func (c Collections) Names() []string {
	names := make([]string, len(c))
	for i, col := range c {
		names[i] = col.Name
	}
	return names
}

// LoadFromFile loads configuration from a JSON file. Comments and trailing
// commas are accepted.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return c.parse(data)
}

func (c *Config) parse(data []byte) error {
	value, err := hujson.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	value.Standardize()
	canonicalizeStrings(&value)

	// JSON is a subset of YAML; decoding through yaml.v3 keeps mapping order
	if err := yaml.Unmarshal(value.Pack(), c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// canonicalizeStrings re-encodes every string literal so that JSON escapes
// YAML lacks, such as \/, never reach the decoder
func canonicalizeStrings(v *hujson.Value) {
	for node := range v.All() {
		if lit, ok := node.Value.(hujson.Literal); ok && lit.Kind() == '"' {
			node.Value = hujson.String(lit.String())
		}
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if apiKey := os.Getenv("FLICKR_INDEXER_API_KEY"); apiKey != "" {
		c.APIKey = apiKey
	}
	if apiSecret := os.Getenv("FLICKR_INDEXER_API_SECRET"); apiSecret != "" {
		c.APISecret = apiSecret
	}
	if outPath := os.Getenv("FLICKR_INDEXER_OUT_PATH"); outPath != "" {
		c.OutPath = outPath
	}

	if limit := os.Getenv("FLICKR_INDEXER_RESULT_LIMIT"); limit != "" {
		val, err := strconv.Atoi(limit)
		if err != nil {
			return fmt.Errorf("FLICKR_INDEXER_RESULT_LIMIT: %w", err)
		}
		c.ResultLimit = &val
	}

	if logLevel := os.Getenv("FLICKR_INDEXER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.OutPath == "" {
		errs = append(errs, errors.New("out_path is required"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("api_key is required"))
	}
	if c.APISecret == "" {
		errs = append(errs, errors.New("api_secret is required"))
	}

	if c.ResultLimit == nil {
		errs = append(errs, errors.New("result_limit is required"))
	} else if *c.ResultLimit < 0 {
		errs = append(errs, errors.New("result_limit cannot be negative"))
	}

	if c.Queries == nil {
		errs = append(errs, errors.New("queries is required"))
	}
	seen := make(map[string]bool, len(c.Queries))
	for _, col := range c.Queries {
		if col.Name == "" || strings.ContainsAny(col.Name, `/\`) || col.Name == "." || col.Name == ".." {
			errs = append(errs, fmt.Errorf("invalid collection name %q", col.Name))
		}
		if seen[col.Name] {
			errs = append(errs, fmt.Errorf("duplicate collection %q", col.Name))
		}
		seen[col.Name] = true
	}

	if c.RateLimit.RequestsPerHour < 0 {
		errs = append(errs, errors.New("requests per hour cannot be negative"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if c.HTTP.BaseURL == "" {
		errs = append(errs, errors.New("http base url is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// CredentialLookup supplies credentials missing from the file and environment
type CredentialLookup func() (apiKey, apiSecret string, err error)

// Load loads configuration from all sources with proper precedence.
// Precedence order: Environment variables > .env file > Config file > credential lookup > Defaults
func Load(path string, lookup CredentialLookup) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")

	if path == "" {
		path = DefaultPath
	}

	config := DefaultConfig()

	if err := config.LoadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if lookup != nil && (config.APIKey == "" || config.APISecret == "") {
		apiKey, apiSecret, err := lookup()
		if err != nil {
			return nil, fmt.Errorf("failed to look up credentials: %w", err)
		}
		if config.APIKey == "" {
			config.APIKey = apiKey
		}
		if config.APISecret == "" {
			config.APISecret = apiSecret
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
