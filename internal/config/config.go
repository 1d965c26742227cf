package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DatabasePath   string
	ImageDir       string
	DefaultPersons int
	LogLevel       string
	Port           string
}

// Load reads configuration with viper: RECIPEDIA_* environment variables
// override an optional recipedia.yaml in the working directory, which
// overrides the defaults.
func Load() (Config, error) {
	viper.SetConfigName("recipedia")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("RECIPEDIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("database_path", "./data/recipedia.db")
	viper.SetDefault("image_dir", "./data/images")
	viper.SetDefault("default_persons", 4)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("port", "8080")

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	config := Config{
		DatabasePath:   viper.GetString("database_path"),
		ImageDir:       viper.GetString("image_dir"),
		DefaultPersons: viper.GetInt("default_persons"),
		LogLevel:       viper.GetString("log_level"),
		Port:           viper.GetString("port"),
	}
	if config.DefaultPersons <= 0 {
		return Config{}, fmt.Errorf("default_persons must be positive, got %d", config.DefaultPersons)
	}
	return config, nil
}

// SlogLevel maps the configured level name onto slog's levels, defaulting
// to info.
func (config Config) SlogLevel() slog.Level {
	switch strings.ToLower(config.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
