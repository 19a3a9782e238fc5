package intelxaudit

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// APIKeyEnv is the environment variable holding the Intelligence X API key.
	APIKeyEnv = "INTELX_KEY"

	DefaultBaseURL   = "https://2.intelx.io"
	DefaultUserAgent = "IntelX-Auditor-Tool/1.0"
	DefaultBucket    = "leaks.public.general"
	DefaultOutputDir = "reports_downloads"

	defaultMaxResults     = 100
	defaultResultLimit    = 50
	defaultMedia          = 0 // all media types
	defaultSort           = 4 // date, descending
	defaultServerTimeout  = 5
	defaultRequestTimeout = 30 * time.Second
	defaultExportTimeout  = 5 * time.Minute
	defaultPollDelay      = 2 * time.Second
	defaultTargetDelay    = 2 * time.Second
)

// Config is constructed once at startup and handed to New. Nothing below it reads the environment.
type Config struct {
	APIKey    string   `yaml:"-"`
	BaseURL   string   `yaml:"base_url"`
	UserAgent string   `yaml:"user_agent"`
	Buckets   []string `yaml:"buckets"`

	// MaxResults is the number of hits the server collects for a search, ResultLimit the number fetched back.
	MaxResults  int `yaml:"max_results"`
	ResultLimit int `yaml:"result_limit"`
	Media       int `yaml:"media"`
	Sort        int `yaml:"sort"`

	// ServerTimeout is sent along with the search and is interpreted by the server, in seconds.
	ServerTimeout  int           `yaml:"server_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ExportTimeout  time.Duration `yaml:"export_timeout"`

	// PollDelay is the pause between submitting a search and reading its results,
	// TargetDelay the pause between two targets of a batch.
	PollDelay   time.Duration `yaml:"poll_delay"`
	TargetDelay time.Duration `yaml:"target_delay"`

	OutputDir string `yaml:"output_dir"`
	Download  bool   `yaml:"download"`
}

// DefaultConfig returns a configuration with every field but the API key populated.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		UserAgent:      DefaultUserAgent,
		Buckets:        []string{DefaultBucket},
		MaxResults:     defaultMaxResults,
		ResultLimit:    defaultResultLimit,
		Media:          defaultMedia,
		Sort:           defaultSort,
		ServerTimeout:  defaultServerTimeout,
		RequestTimeout: defaultRequestTimeout,
		ExportTimeout:  defaultExportTimeout,
		PollDelay:      defaultPollDelay,
		TargetDelay:    defaultTargetDelay,
		OutputDir:      DefaultOutputDir,
	}
}

// LoadConfig builds a Config from the defaults, the optional YAML file at path (skipped when path is empty)
// and the environment. ".env" and ".env.local" in the working directory are loaded first when present.
// A missing API key yields ErrMissingAPIKey.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := loadEnvFiles(); err != nil {
		return cfg, err
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %q: %w", path, err)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	}

	cfg.APIKey = os.Getenv(APIKeyEnv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the fields that cannot be defaulted.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}

	if len(c.Buckets) == 0 {
		return errors.New("at least one bucket is required")
	}

	if c.ResultLimit <= 0 {
		return fmt.Errorf("result_limit must be positive, got %d", c.ResultLimit)
	}

	return nil
}

func loadEnvFiles() error {
	// .env never overrides variables that are already set; .env.local does.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("loading .env: %w", err)
		}
	}

	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return fmt.Errorf("loading .env.local: %w", err)
		}
	}

	return nil
}
