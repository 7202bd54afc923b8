// Package config provides application configuration with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.acme-assistant/config.yaml or ./config.yaml)
//  3. Default values
//
// Sensitive data (the docs API key) is never logged: Config masks it in
// MarshalJSON and String. Validation uses sentinel errors so callers can
// check categories with errors.Is().
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidMaxTurns indicates the agentic loop bound is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrMissingDocsConfig indicates the docs server URL or API key is not
	// set. Surfaced at chat startup as a user-facing diagnostic rather than
	// a crash.
	ErrMissingDocsConfig = errors.New("missing docs server configuration")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

// maxTurnsLimit bounds the configurable agentic loop.
const maxTurnsLimit = 20

// DocsConfig holds the hosted documentation-search server settings.
type DocsConfig struct {
	ServerURL string `mapstructure:"server_url" json:"server_url"`
	APIKey    string `mapstructure:"api_key" json:"api_key"` // SENSITIVE: masked in MarshalJSON
}

// ChatConfig holds interactive-loop settings.
type ChatConfig struct {
	// PreserveHistory threads conversation history into each turn. Off by
	// default: every question is answered independently.
	PreserveHistory bool `mapstructure:"preserve_history" json:"preserve_history"`
}

// TelemetryConfig holds OpenTelemetry export settings. Tracing is disabled
// when OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"` // host:port of an OTLP HTTP collector
	ServiceName  string `mapstructure:"service_name" json:"service_name"`
	Environment  string `mapstructure:"environment" json:"environment"`
}

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON(). When
// adding new secrets, update MarshalJSON.
type Config struct {
	// Product display name shown in the banner and system prompt.
	ProductName string `mapstructure:"product_name" json:"product_name"`

	// AI provider and model configuration.
	// NOTE: OPENAI_API_KEY / GEMINI_API_KEY are read directly by the Genkit
	// provider plugins, not via Viper.
	Provider  string `mapstructure:"provider" json:"provider"`     // "openai" (default) or "googleai"
	ModelName string `mapstructure:"model_name" json:"model_name"` // e.g. "gpt-5.1", "gemini-2.5-flash"
	MaxTurns  int    `mapstructure:"max_turns" json:"max_turns"`

	Chat      ChatConfig      `mapstructure:"chat" json:"chat"`
	Docs      DocsConfig      `mapstructure:"docs" json:"docs"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" json:"telemetry"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".acme-assistant")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("product_name", "<Your Product>")
	viper.SetDefault("provider", ProviderOpenAI)
	viper.SetDefault("model_name", "gpt-5.1")
	viper.SetDefault("max_turns", 5)

	viper.SetDefault("chat.preserve_history", false)

	viper.SetDefault("telemetry.service_name", "acme-assistant")
	viper.SetDefault("telemetry.environment", "dev")
}

// bindEnvVariables binds environment variables explicitly.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here is a bug, not a
	// runtime error.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("product_name", "PRODUCT_NAME")
	mustBind("docs.server_url", "KAPA_MCP_SERVER_URL")
	mustBind("docs.api_key", "KAPA_API_KEY")

	mustBind("provider", "ASSISTANT_PROVIDER")
	mustBind("model_name", "ASSISTANT_MODEL_NAME")
	mustBind("max_turns", "ASSISTANT_MAX_TURNS")
	mustBind("chat.preserve_history", "ASSISTANT_PRESERVE_HISTORY")

	mustBind("telemetry.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	// NOTE: OPENAI_API_KEY and GEMINI_API_KEY are consumed directly by the
	// Genkit provider plugins.
}

// Validate checks configuration invariants. Fail-fast: called from Load.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGoogleAI:
	default:
		return fmt.Errorf("%w: %q (supported: %s, %s)", ErrInvalidProvider, c.Provider, ProviderOpenAI, ProviderGoogleAI)
	}

	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: model name is empty", ErrInvalidModelName)
	}

	if c.MaxTurns < 1 || c.MaxTurns > maxTurnsLimit {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidMaxTurns, c.MaxTurns, maxTurnsLimit)
	}

	return nil
}

// ValidateDocs checks that the docs server settings are present. Kept
// separate from Validate so callers can surface a friendly diagnostic and
// exit gracefully instead of failing config load.
func (c *Config) ValidateDocs() error {
	if c.Docs.ServerURL == "" || c.Docs.APIKey == "" {
		return ErrMissingDocsConfig
	}
	return nil
}

// FullModelName returns the provider-qualified model name for Genkit,
// e.g. "openai/gpt-5.1" or "googleai/gemini-2.5-flash". A ModelName that
// already contains a "/" is returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	return c.Provider + "/" + c.ModelName
}

// maskedValue is the placeholder for masked sensitive data. Full-width
// blocks so no substring of a real secret survives masking.
const maskedValue = "████████"

// maskSecret masks a secret for safe logging. Secrets of 8 characters or
// fewer are fully masked; longer ones keep the first and last two
// characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit masking of sensitive
// fields.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.Docs.APIKey = maskSecret(a.Docs.APIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
