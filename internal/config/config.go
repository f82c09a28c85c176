// Package config loads settings for the console and the reference store.
//
// Values come from defaults, an optional file named by INVENTORY_CONFIG, and
// environment variables prefixed with INVENTORY_ (remote.base_url is read
// from INVENTORY_REMOTE_BASE_URL).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix  = "INVENTORY"
	configFile = "INVENTORY_CONFIG"
)

type Remote struct {
	BaseURL            string        `mapstructure:"base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	Token              string        `mapstructure:"token"`
	RateLimit          float64       `mapstructure:"rate_limit"`
	Burst              int           `mapstructure:"burst"`
	UpdateConfirmation string        `mapstructure:"update_confirmation"`
	DeleteConfirmation string        `mapstructure:"delete_confirmation"`
}

type Sync struct {
	SingleFlight       bool `mapstructure:"single_flight"`
	KeepDraftOnFailure bool `mapstructure:"keep_draft_on_failure"`
}

type Console struct {
	Addr string `mapstructure:"addr"`
}

type Store struct {
	Addr        string  `mapstructure:"addr"`
	DatabaseURL string  `mapstructure:"database_url"`
	AuthSecret  string  `mapstructure:"auth_secret"`
	RateLimit   float64 `mapstructure:"rate_limit"`
	Burst       int     `mapstructure:"burst"`
}

type Redis struct {
	Addr       string `mapstructure:"addr"`
	JournalKey string `mapstructure:"journal_key"`
	JournalMax int    `mapstructure:"journal_max"`
}

type Logger struct {
	Mode       string `mapstructure:"mode"`
	FileEnable bool   `mapstructure:"file_enable"`
	Filename   string `mapstructure:"filename"`
}

type Config struct {
	Remote  Remote  `mapstructure:"remote"`
	Sync    Sync    `mapstructure:"sync"`
	Console Console `mapstructure:"console"`
	Store   Store   `mapstructure:"store"`
	Redis   Redis   `mapstructure:"redis"`
	Logger  Logger  `mapstructure:"logger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.base_url", "http://localhost:5116")
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("remote.token", "")
	v.SetDefault("remote.rate_limit", 0)
	v.SetDefault("remote.burst", 1)
	v.SetDefault("remote.update_confirmation", "")
	v.SetDefault("remote.delete_confirmation", "")

	v.SetDefault("sync.single_flight", false)
	v.SetDefault("sync.keep_draft_on_failure", false)

	v.SetDefault("console.addr", ":8081")

	v.SetDefault("store.addr", ":5116")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.auth_secret", "")
	v.SetDefault("store.rate_limit", 20)
	v.SetDefault("store.burst", 40)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.journal_key", "inventory:commits")
	v.SetDefault("redis.journal_max", 500)

	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.file_enable", false)
	v.SetDefault("logger.filename", "inventory.log")
}

// Load reads the configuration. The file named by INVENTORY_CONFIG is
// optional, but when set it must exist and parse.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(configFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("remote.base_url must not be empty")
	}
	return &cfg, nil
}
