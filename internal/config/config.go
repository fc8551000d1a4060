package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds settings for both the server and the terminal client.
type Config struct {
	ListenAddr   string        `mapstructure:"listen_addr"`
	Debug        bool          `mapstructure:"debug"`
	ServerURL    string        `mapstructure:"server_url"`
	GameID       string        `mapstructure:"game_id"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	PingInterval time.Duration `mapstructure:"ping_interval"`
	ImagePrefix  string        `mapstructure:"image_prefix"`
}

// Setup reads defaults, then the optional config file at cfgPath, then
// TINYBOARD_* environment variables.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("debug", false)
	v.SetDefault("server_url", "ws://localhost:8080")
	v.SetDefault("game_id", "")
	v.SetDefault("idle_timeout", 24*time.Hour)
	v.SetDefault("ping_interval", 15*time.Second)
	v.SetDefault("image_prefix", "/images")

	v.SetEnvPrefix("tinyboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
