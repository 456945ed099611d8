package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SecondaryConfig holds a secondary node's tunables.
type SecondaryConfig struct {
	Port           int
	Delay          time.Duration
	LogLevel       string
	LogPretty      bool
	MetricsEnabled bool
}

// LoadSecondaryConfig parses args plus the environment into a
// SecondaryConfig.
func LoadSecondaryConfig(args []string) (SecondaryConfig, error) {
	fs := pflag.NewFlagSet("secondary", pflag.ContinueOnError)
	fs.Int("port", 8081, "listen port")
	fs.Float64("secondary-delay", 0, "artificial delay before acking /replicate, seconds")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Bool("log-pretty", false, "render logs as human-readable console output")
	fs.Bool("metrics-enabled", true, "expose GET /metrics")

	if err := fs.Parse(args); err != nil {
		return SecondaryConfig{}, err
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return SecondaryConfig{}, fmt.Errorf("bind flags: %w", err)
	}
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("secondary-delay", "SECONDARY_DELAY")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return SecondaryConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return SecondaryConfig{
		Port:           v.GetInt("port"),
		Delay:          durationFromSeconds(v.GetFloat64("secondary-delay")),
		LogLevel:       v.GetString("log-level"),
		LogPretty:      v.GetBool("log-pretty"),
		MetricsEnabled: v.GetBool("metrics-enabled"),
	}, nil
}
