package app

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/tourvault/internal/server"
	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/errors"
)

// envPrefix namespaces environment variables, e.g. TOURVAULT_BASE_URL.
const envPrefix = "TOURVAULT"

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

	// Catalog client configuration
	BaseURL         string
	Timeout         time.Duration
	PageSize        int
	MaxVisiblePages int
	RefreshInterval time.Duration

	// Reference store configuration
	Listen         string
	DataFile       string
	OEmbedEndpoint string
	Enrich         bool
	CORSOrigins    []string
	RateLimit      int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.tourvault.yaml or ./.tourvault.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".tourvault")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist; the search locations are optional.
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL:         v.GetString("base_url"),
		Timeout:         v.GetDuration("timeout"),
		PageSize:        v.GetInt("page_size"),
		MaxVisiblePages: v.GetInt("max_visible_pages"),
		RefreshInterval: v.GetDuration("refresh_interval"),

		Listen:         v.GetString("listen"),
		DataFile:       expandHome(v.GetString("data_file")),
		OEmbedEndpoint: v.GetString("oembed_endpoint"),
		Enrich:         v.GetBool("enrich"),
		CORSOrigins:    v.GetStringSlice("cors_origins"),
		RateLimit:      v.GetInt("rate_limit"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("format", "")

	v.SetDefault("base_url", constants.DefaultBaseURL)
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("max_visible_pages", constants.DefaultMaxVisiblePages)
	v.SetDefault("refresh_interval", constants.DefaultRefreshInterval)

	srv := server.DefaultConfig()
	v.SetDefault("listen", srv.Addr)
	v.SetDefault("data_file", "")
	v.SetDefault("oembed_endpoint", srv.OEmbedEndpoint)
	v.SetDefault("enrich", srv.Enrich)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("rate_limit", srv.RateLimit)

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

func (c *Config) validate() error {
	if c.PageSize <= 0 {
		return errors.NewValidationError("page_size", c.PageSize, "must be positive")
	}
	if c.MaxVisiblePages <= 0 {
		return errors.NewValidationError("max_visible_pages", c.MaxVisiblePages, "must be positive")
	}
	if c.RefreshInterval <= 0 {
		return errors.NewValidationError("refresh_interval", c.RefreshInterval.String(), "must be positive")
	}
	if c.Timeout <= 0 {
		return errors.NewValidationError("timeout", c.Timeout.String(), "must be positive")
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, baseURL string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if baseURL != "" {
		c.BaseURL = baseURL
	}
}

// ServerConfig maps the store keys onto a server.Config.
func (c *Config) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Addr = c.Listen
	cfg.DataFile = c.DataFile
	cfg.OEmbedEndpoint = c.OEmbedEndpoint
	cfg.Enrich = c.Enrich
	cfg.CORSOrigins = c.CORSOrigins
	cfg.RateLimit = c.RateLimit
	return cfg
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// godotenv.Load never overrides a variable that is already set, so
	// .env.local is read first to win over .env.
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
