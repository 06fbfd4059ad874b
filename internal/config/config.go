package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/halden/battrack/internal/errors"
)

const (
	DefaultLogLevel = "info"

	envConfigFile = "BATTRACK_CONFIG"
	envPrefix     = "BATTRACK"

	appDirName      = "battrack"
	historyFileName = "history.json"
	telemetryDBName = "telemetry.db"
)

// Config holds the runtime-configurable settings. The core operational
// parameters (sampling interval, autosave cadence, history cap, session
// retention, completion threshold) are fixed constants in their packages.
type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	DataFile    string `mapstructure:"data_file"`
	Telemetry   bool   `mapstructure:"telemetry"`
	TelemetryDB string `mapstructure:"database"`
}

// Load reads configuration from flags, environment and an optional TOML
// config file, in that order of precedence. A missing config file is not
// an error; an unreadable or invalid one is.
func Load(flags *pflag.FlagSet) (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("data_file", defaultDataFile())
	v.SetDefault("telemetry", false)
	v.SetDefault("database", defaultTelemetryDB())

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path := os.Getenv(envConfigFile); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(appDirName)
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appDirName))
		}
		v.AddConfigPath("/etc/" + appDirName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err).
				WithMessage("Failed to read config file")
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"log_level": "log-level",
			"data_file": "data-file",
			"telemetry": "telemetry",
			"database":  "database",
		} {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if !LogLevel(config.LogLevel).IsValid() {
		return nil, errFactory.WithData(errors.ErrInvalidLogLevel, config.LogLevel)
	}

	return config, nil
}

// defaultDataFile returns the default history document location,
// following the XDG data directory convention.
func defaultDataFile() string {
	return filepath.Join(dataDir(), appDirName, historyFileName)
}

func defaultTelemetryDB() string {
	return filepath.Join(dataDir(), appDirName, telemetryDBName)
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}
