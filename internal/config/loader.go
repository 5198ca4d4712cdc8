package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix  = "HAZARD"
	configName = "hazard"
	dataDir    = ".hazard-data"
)

// Defaults registers every default value on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("dashboard.interval", "5s")
	v.SetDefault("dashboard.series_capacity", 20)
	v.SetDefault("dashboard.alert_capacity", 0)
	v.SetDefault("dashboard.auto_start", false)
	v.SetDefault("dashboard.initial_cycle", true)
	v.SetDefault("dashboard.seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("recorder.enabled", false)
	v.SetDefault("recorder.dir", defaultDataDir())
}

// Load reads the configuration. An explicit path must exist; without one,
// hazard.yaml is looked up in the working directory and
// $HOME/.config/hazard, and a missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-supplied viper instance, so flags bound to v
// take part in the merge.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	Defaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hazard"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDir
	}
	return filepath.Join(home, dataDir)
}
