// Package conf contains utility functions for loading and parsing configuration files.
package conf

import (
	"os"

	"github.com/spf13/viper"
)

// PostgresConf describes a default configuration for the postgres database.
type PostgresConf struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSL      string `mapstructure:"ssl"`
}

// RedisConf describes a default configuration for the redis.
type RedisConf struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	Database   int    `mapstructure:"database"`
	DisableTLS bool   `mapstructure:"disable_tls"`
}

// AppleConf describes the apns credentials.
type AppleConf struct {
	Path   string `mapstructure:"path"`
	KeyID  string `mapstructure:"key_id"`
	TeamID string `mapstructure:"team_id"`
	Bundle string `mapstructure:"bundle"`
}

// AddrConf describes a listen address.
type AddrConf struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StoriesConf describes the configuration for the stories sweeper.
type StoriesConf struct {
	// SweepInterval is the expiration sweep interval in minutes.
	SweepInterval int `mapstructure:"sweep_interval"`
}

// Load opens and parses a configuration file.
func Load(file string, conf interface{}) error {
	_, err := os.Stat(file)
	if err != nil {
		return err
	}

	viper.SetConfigFile(file)
	viper.SetConfigType("toml")

	err = viper.ReadInConfig()
	if err != nil {
		return err
	}

	err = viper.GetViper().Unmarshal(conf)
	if err != nil {
		return err
	}

	return nil
}
