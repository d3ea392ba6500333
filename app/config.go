package app

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/pmarin/filedex/models"
)

// LoadConfig reads the optional YAML configuration file at path and fills
// in defaults for everything it does not set. A missing file is not an
// error; every setting has a usable default.
func LoadConfig(path string) (*models.AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("store.path", "filedex.db")
	v.SetDefault("search.limit", 20)
	v.SetDefault("search.threshold", 0.4)
	v.SetDefault("scan.workers", 0)
	v.SetDefault("server.port", 8080)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg models.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}
