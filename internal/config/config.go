package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode         string        `mapstructure:"mode"`
	Port         int           `mapstructure:"port"`
	StaticPath   string        `mapstructure:"static_path"`
	MaxHistory   int           `mapstructure:"max_history"`
	ReadLimit    int64         `mapstructure:"read_limit"`
	PingPeriod   time.Duration `mapstructure:"ping_period"`
	DataFile     string        `mapstructure:"data_file"`
	AdminEnabled bool          `mapstructure:"admin_enabled"`
	CreateLimit  int           `mapstructure:"create_limit"`
	CreateWindow time.Duration `mapstructure:"create_window"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./public")
	v.SetDefault("max_history", 100)
	// One message must fit a compressed voice clip with wide margin.
	v.SetDefault("read_limit", 100_000_000)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("data_file", "star-history.json")
	v.SetDefault("admin_enabled", false)
	v.SetDefault("create_limit", 10)
	v.SetDefault("create_window", "1m")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | History: %d\n", cfg.Mode, cfg.Port, cfg.MaxHistory)
	return &cfg, nil
}
