package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the migration commands need. All fields have
// working defaults; a config file is optional.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Target  TargetConfig  `mapstructure:"target"`
	WorkDir string        `mapstructure:"work_dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SourceConfig selects the source engine endpoint.
type SourceConfig struct {
	// Host overrides DOCKER_HOST when set, e.g. unix:///var/run/docker.sock
	Host string `mapstructure:"host"`
}

// TargetConfig selects the target engine and the copy tool.
type TargetConfig struct {
	Binary      string `mapstructure:"binary"`
	RsyncBinary string `mapstructure:"rsync_binary"`
}

// Load reads the config file at path, or searches the standard locations
// when path is empty. A missing file is not an error; defaults and
// DOCK2POD_* environment variables apply either way.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("source.host", "")
	v.SetDefault("target.binary", "podman")
	v.SetDefault("target.rsync_binary", "rsync")
	v.SetDefault("work_dir", ".")
	v.SetDefault("timeout", "30m")

	v.SetEnvPrefix("DOCK2POD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("dock2pod")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "dock2pod"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
