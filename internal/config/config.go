package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

const envPrefix = "TRAVELBOOK"

const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

type Config struct {
	Mode     Mode   `mapstructure:"mode"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	GCPProjectID string `mapstructure:"gcp_project"`
	GCPLocation  string `mapstructure:"gcp_location"`
	ModelName    string `mapstructure:"model_name"`

	StorageBackend string `mapstructure:"storage_backend"` // "memory" or "firestore"
	LLMBackend     string `mapstructure:"llm_backend"`     // "mock", "gemini" or "vertex"
	GeminiEndpoint string `mapstructure:"gemini_endpoint"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`

	// UserID pins the signed-in user; empty means anonymous sign-in at startup.
	UserID string `mapstructure:"user_id"`

	// ItineraryKeying selects how itinerary updates find the old entry:
	// "value" (whole-record equality) or "id".
	ItineraryKeying string `mapstructure:"itinerary_keying"`
	WatchRetries    int    `mapstructure:"watch_retries"`

	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Load reads TRAVELBOOK_* env vars and builds the config.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", string(ModeLocal))
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("gcp_project", "")
	v.SetDefault("gcp_location", "us-central1")
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("storage_backend", "memory")
	v.SetDefault("llm_backend", "")
	v.SetDefault("gemini_endpoint", DefaultGeminiEndpoint)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("user_id", "")
	v.SetDefault("itinerary_keying", "value")
	v.SetDefault("watch_retries", 5)
	v.SetDefault("cors_origins", []string{"*"})

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Mode != ModeGCP {
		cfg.Mode = ModeLocal
	}
	// local mode talks to the mock unless told otherwise
	if cfg.LLMBackend == "" {
		if cfg.Mode == ModeLocal {
			cfg.LLMBackend = "mock"
		} else {
			cfg.LLMBackend = "gemini"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate lists every missing or unknown setting in one error.
func (c *Config) Validate() error {
	var problems []string

	switch c.StorageBackend {
	case "memory":
	case "firestore":
		if c.GCPProjectID == "" {
			problems = append(problems, "TRAVELBOOK_GCP_PROJECT is required for firestore storage")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage backend %q", c.StorageBackend))
	}

	switch c.LLMBackend {
	case "mock":
	case "gemini":
		if c.GeminiAPIKey == "" {
			problems = append(problems, "TRAVELBOOK_GEMINI_API_KEY is required for the gemini backend")
		}
	case "vertex":
		if c.GCPProjectID == "" || c.GCPLocation == "" {
			problems = append(problems, "TRAVELBOOK_GCP_PROJECT and TRAVELBOOK_GCP_LOCATION are required for the vertex backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown llm backend %q", c.LLMBackend))
	}

	if c.ItineraryKeying != "value" && c.ItineraryKeying != "id" {
		problems = append(problems, fmt.Sprintf("itinerary keying must be value or id, got %q", c.ItineraryKeying))
	}
	if c.WatchRetries < 0 {
		problems = append(problems, "watch retries must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
