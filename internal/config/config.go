package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. RND_GITHUB_TOKEN
const EnvPrefix = "RND"

// valid enumerations
var (
	validLogFormats     = []string{"text", "json"}
	validLogLevels      = []string{"trace", "debug", "info", "warn", "error"}
	validModelProviders = []string{"nim", "openai", "claude", "gemini"}
	validStoreSchemes   = []string{"sqlite:///", "postgres://", "postgresql://"}
)

// Provider defaults applied when the corresponding variables are unset
const (
	NIMDefaultAPI   = "https://integrate.api.nvidia.com/v1"
	NIMDefaultModel = "nvidia/nemotron-3-nano-30b-a3b"
)

// fallback API key variables, checked when RND_MODEL_USER_KEY is unset
var providerKeyFallbacks = map[string]string{
	"nim":    "NVIDIA_API_KEY",
	"openai": "OPENAI_API_KEY",
	"claude": "ANTHROPIC_API_KEY",
	"gemini": "GEMINI_API_KEY",
}

type Config struct {
	GitHubToken         string `envconfig:"GITHUB_TOKEN"`
	GitHubAPIURL        string `envconfig:"GITHUB_API_URL"`
	GitHubUseGraphQL    bool   `envconfig:"GITHUB_USE_GRAPHQL" default:"false"`
	GitLabBaseURL       string `envconfig:"GITLAB_BASE_URL"`
	GitLabSkipSSLVerify bool   `envconfig:"GITLAB_SKIP_SSL_VERIFY" default:"false"`
	GitLabToken         string `envconfig:"GITLAB_TOKEN"`
	MaxCommitPages      int    `envconfig:"MAX_COMMIT_PAGES" default:"30"`

	CompareCacheSize       int `envconfig:"COMPARE_CACHE_SIZE" default:"128"`
	CompareCacheTTLSeconds int `envconfig:"COMPARE_CACHE_TTL_SECONDS" default:"300"`

	LogFormat string `envconfig:"LOG_FORMAT"`
	LogLevel  string `envconfig:"LOG_LEVEL"`

	ModelAPI               string  `envconfig:"MODEL_API"`
	ModelID                string  `envconfig:"MODEL_ID"`
	ModelMaxResponseTokens int     `envconfig:"MODEL_MAX_RESPONSE_TOKENS" default:"2048"`
	ModelProvider          string  `envconfig:"MODEL_PROVIDER" default:"nim"`
	ModelSkipSSLVerify     bool    `envconfig:"MODEL_SKIP_SSL_VERIFY" default:"false"`
	ModelTemperature       float64 `envconfig:"MODEL_TEMPERATURE" default:"0.3"`
	ModelTimeoutSeconds    int     `envconfig:"MODEL_TIMEOUT_SECONDS" default:"120"`
	ModelUserKey           string  `envconfig:"MODEL_USER_KEY"`
	SystemPromptVersion    string  `envconfig:"SYSTEM_PROMPT_VERSION" default:"v1"`

	Selection Selection `envconfig:"SELECTION"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	DataDir            string   `envconfig:"DATA_DIR" default:"data"`
	ServerAddr         string   `envconfig:"SERVER_ADDR" default:":8080"`
	StoreURL           string   `envconfig:"STORE_URL"`
}

// Selection holds the patch budget forwarded to the summarizer
type Selection struct {
	MaxFiles      int `envconfig:"MAX_FILES" default:"12"`
	MaxPatchChars int `envconfig:"MAX_PATCH_CHARS" default:"22000"`
}

// Load reads an optional .env file, then environment variables, and validates the result
func Load(envFile string) (*Config, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	applyProviderDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyProviderDefaults fills provider-specific values the environment left empty
func applyProviderDefaults(cfg *Config) {
	cfg.ModelProvider = strings.ToLower(strings.TrimSpace(cfg.ModelProvider))

	if cfg.ModelProvider == "nim" {
		if cfg.ModelAPI == "" {
			cfg.ModelAPI = NIMDefaultAPI
		}
		if cfg.ModelID == "" {
			cfg.ModelID = NIMDefaultModel
		}
	}

	if cfg.ModelUserKey == "" {
		if fallback, ok := providerKeyFallbacks[cfg.ModelProvider]; ok {
			cfg.ModelUserKey = strings.TrimSpace(os.Getenv(fallback))
		}
	}
}

// HasModelKey reports whether an LLM API key is configured
func (c *Config) HasModelKey() bool {
	return strings.TrimSpace(c.ModelUserKey) != ""
}

// ModelKeyHint names the variables that can carry the model API key
func (c *Config) ModelKeyHint() string {
	if fallback, ok := providerKeyFallbacks[c.ModelProvider]; ok {
		return fmt.Sprintf("%s_MODEL_USER_KEY or %s", EnvPrefix, fallback)
	}
	return EnvPrefix + "_MODEL_USER_KEY"
}

// validateConfig performs all validation on the loaded configuration
func validateConfig(cfg *Config) error {

	// Validate Git platform configuration
	if cfg.GitLabToken != "" && cfg.GitLabBaseURL == "" {
		return fmt.Errorf("RND_GITLAB_BASE_URL environment variable is required when RND_GITLAB_TOKEN is provided")
	}
	if err := checkRange("RND_MAX_COMMIT_PAGES", cfg.MaxCommitPages, 1, 1000); err != nil {
		return err
	}
	if err := checkRange("RND_COMPARE_CACHE_SIZE", cfg.CompareCacheSize, 0, 1000000); err != nil {
		return err
	}
	if err := checkRange("RND_COMPARE_CACHE_TTL_SECONDS", cfg.CompareCacheTTLSeconds, 1, 86400); err != nil {
		return err
	}

	// Validate logging configuration
	if cfg.LogFormat != "" {
		if !slices.Contains(validLogFormats, strings.ToLower(cfg.LogFormat)) {
			return fmt.Errorf("RND_LOG_FORMAT must be one of: %v; got: %s", validLogFormats, cfg.LogFormat)
		}
	}
	if cfg.LogLevel != "" {
		if !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
			return fmt.Errorf("RND_LOG_LEVEL must be one of: %v; got: %s", validLogLevels, cfg.LogLevel)
		}
	}

	// Validate model configuration (the API key is checked when a draft is requested)
	if !slices.Contains(validModelProviders, cfg.ModelProvider) {
		return fmt.Errorf("RND_MODEL_PROVIDER must be one of: %v; got: %s", validModelProviders, cfg.ModelProvider)
	}
	if cfg.ModelID == "" {
		return fmt.Errorf("RND_MODEL_ID environment variable is required for model provider %s", cfg.ModelProvider)
	}
	if err := checkRange("RND_MODEL_MAX_RESPONSE_TOKENS", cfg.ModelMaxResponseTokens, 1, 1000000000); err != nil {
		return err
	}
	if err := checkRange("RND_MODEL_TIMEOUT_SECONDS", cfg.ModelTimeoutSeconds, 1, 1000000000); err != nil {
		return err
	}
	if cfg.ModelTemperature < 0 || cfg.ModelTemperature > 2 {
		return fmt.Errorf("RND_MODEL_TEMPERATURE must be between 0 and 2, got: %g", cfg.ModelTemperature)
	}

	// Validate patch budget
	if err := checkRange("RND_SELECTION_MAX_FILES", cfg.Selection.MaxFiles, 1, 10000); err != nil {
		return err
	}
	if err := checkRange("RND_SELECTION_MAX_PATCH_CHARS", cfg.Selection.MaxPatchChars, 0, 100000000); err != nil {
		return err
	}

	// Validate storage configuration
	if cfg.StoreURL != "" && !hasAnyPrefix(cfg.StoreURL, validStoreSchemes) {
		return fmt.Errorf("RND_STORE_URL must start with one of: %v; got: %s", validStoreSchemes, cfg.StoreURL)
	}
	if cfg.StoreURL == "" && cfg.DataDir == "" {
		return fmt.Errorf("RND_DATA_DIR must not be empty when RND_STORE_URL is unset")
	}

	return nil
}

// checkRange validates that an integer setting lies within [min, max]
func checkRange(key string, val, min, max int) error {
	if val < min || val > max {
		return fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, val)
	}
	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
