package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/zonemeta/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog
	DomainID       string
	Region         string
	EndpointURL    string
	RevisionPrefix string
	Duplicates     string
	Concurrency    int

	// Metadata generation
	Generator          string
	GeneratorModel     string
	GeneratorMaxTokens int
	GeneratorTimeout   time.Duration
	Overwrite          string
	GeminiAPIKey       string
	GoogleProject      string
	GoogleLocation     string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIAuth         string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.zonemeta.yaml or ./.zonemeta.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// .env files must be loaded before Viper binds the environment
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindEnv()
	setDefaults()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".zonemeta")
	}

	// A missing config file is fine
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		DomainID:       viper.GetString("domain_id"),
		Region:         viper.GetString("region"),
		EndpointURL:    viper.GetString("endpoint_url"),
		RevisionPrefix: viper.GetString("revision_prefix"),
		Duplicates:     viper.GetString("duplicates"),
		Concurrency:    viper.GetInt("concurrency"),

		Generator:          viper.GetString("generator"),
		GeneratorModel:     viper.GetString("generator_model"),
		GeneratorMaxTokens: viper.GetInt("generator_max_tokens"),
		GeneratorTimeout:   viper.GetDuration("generator_timeout"),
		Overwrite:          viper.GetString("overwrite"),
		GeminiAPIKey:       viper.GetString("gemini_api_key"),
		GoogleProject:      viper.GetString("google_cloud_project"),
		GoogleLocation:     viper.GetString("google_cloud_location"),
		OpenAIAPIKey:       viper.GetString("openai_api_key"),
		OpenAIBaseURL:      viper.GetString("openai_base_url"),
		OpenAIAuth:         viper.GetString("openai_auth"),

		LogLevel:  viper.GetString("log_level"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", viper.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", viper.GetString("log_output")),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults() {
	viper.SetDefault("generator", "none")
	viper.SetDefault("generator_max_tokens", constants.DefaultMaxOutputTokens)
	viper.SetDefault("generator_timeout", constants.GenerationTimeout)
	viper.SetDefault("overwrite", "missing")
	viper.SetDefault("duplicates", "last")
	viper.SetDefault("concurrency", constants.DefaultConcurrency)
	viper.SetDefault("revision_prefix", constants.DefaultRevisionPrefix)
	viper.SetDefault("log_format", "auto")
	viper.SetDefault("log_output", "stderr")
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env; godotenv never overrides what is already set,
	// so load the more specific file first
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// bindEnv binds keys whose environment variable names are shared with other
// tools rather than derived from the key.
func bindEnv() {
	bindings := map[string][]string{
		"gemini_api_key":        {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"google_cloud_project":  {"GOOGLE_CLOUD_PROJECT"},
		"google_cloud_location": {"GOOGLE_CLOUD_LOCATION"},
		"openai_api_key":        {"OPENAI_API_KEY"},
		"region":                {"ZONEMETA_REGION", "AWS_REGION"},
		"domain_id":             {"ZONEMETA_DOMAIN_ID", "DOMAIN_ID"},
	}

	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
