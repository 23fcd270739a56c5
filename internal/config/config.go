// Package config resolves process-level settings from defaults, an
// optional config file and FOCAL_* environment variables. Pomodoro
// durations are user data and live in the store instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	DBPath         string
	DaemonInterval time.Duration
	Notifications  bool
}

// Load reads ~/.config/focal/config.yaml if present. A missing file is
// fine, everything has a default; a malformed one is a startup error.
func Load() (Config, error) {
	defaultDB := "focal.db"
	if dir, err := os.UserConfigDir(); err == nil {
		defaultDB = filepath.Join(dir, "focal", "focal.db")
	}

	viper.SetDefault("db_path", defaultDB)
	viper.SetDefault("daemon_interval", 60)
	viper.SetDefault("notifications", true)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("FOCAL")
	viper.AutomaticEnv()

	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "focal"))
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	dbPath, err := homedir.Expand(viper.GetString("db_path"))
	if err != nil {
		return Config{}, fmt.Errorf("expand db path: %w", err)
	}

	return Config{
		DBPath:         dbPath,
		DaemonInterval: time.Duration(viper.GetInt("daemon_interval")) * time.Second,
		Notifications:  viper.GetBool("notifications"),
	}, nil
}
