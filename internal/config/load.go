package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrMissingServerSettings is returned by RequireServer when the database URL
// or JWT secret is absent.
var ErrMissingServerSettings = errors.New("missing server settings")

// Load reads configuration from defaults, an optional YAML file and SCRY_
// environment variables, in increasing order of precedence. If configFile is
// empty, ./config.yaml is used when present.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SCRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// RequireServer checks the settings only the HTTP service and migrations need.
func (c *Config) RequireServer() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "database.url")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwt_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingServerSettings, strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	// Empty defaults make the keys visible to AutomaticEnv during Unmarshal.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("study.default_new_items_per_day", 10)
	v.SetDefault("study.timezone", "UTC")
	v.SetDefault("study.session_idle_minutes", 30)
	v.SetDefault("study.sweep_schedule", "@every 5m")
	v.SetDefault("study.practice_ahead_limit", 20)
	v.SetDefault("study.extra_new_limit", 20)
	v.SetDefault("study.catalog_dir", "")
	v.SetDefault("study.desired_retention", 0.9)
	v.SetDefault("study.maximum_interval_days", 36500)

	v.SetDefault("drill.data_dir", defaultDataDir())
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scry-study"
	}
	return filepath.Join(home, ".scry-study")
}
