// Package config loads primary/secondary configuration from flags,
// environment variables, and an optional config file, in that order
// of precedence, via viper — generalizing the teacher's cmd/server
// flag-only setup (which only ever had --id/--addr/--data-dir/...) to
// the larger tunable surface this spec defines (§6).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// PrimaryConfig holds every primary-side tunable named in §6.
type PrimaryConfig struct {
	Port               int
	Secondaries        []string
	ReplicationTimeout time.Duration
	HeartbeatInterval  time.Duration
	HeartbeatTimeout   time.Duration
	SuspectedThreshold int
	UnhealthyThreshold int
	DataDir            string
	LogLevel           string
	LogPretty          bool
	MetricsEnabled     bool
}

// LoadPrimaryConfig parses args (typically os.Args[1:]) plus the
// environment into a PrimaryConfig.
func LoadPrimaryConfig(args []string) (PrimaryConfig, error) {
	fs := pflag.NewFlagSet("primary", pflag.ContinueOnError)
	fs.Int("port", 8080, "listen port")
	fs.String("secondaries", "", "comma-separated list of secondary base URLs")
	fs.Float64("replication-timeout", 30, "per-RPC replicate timeout, seconds")
	fs.Float64("heartbeat-interval", 2, "heartbeat probe period, seconds")
	fs.Float64("heartbeat-timeout", 1, "heartbeat probe timeout, seconds")
	fs.Int("suspected-threshold", 2, "consecutive heartbeat failures to become Suspected")
	fs.Int("unhealthy-threshold", 5, "consecutive heartbeat failures to become Unhealthy")
	fs.String("data-dir", "", "optional directory for local WAL durability (empty = pure in-memory)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Bool("log-pretty", false, "render logs as human-readable console output")
	fs.Bool("metrics-enabled", true, "expose GET /metrics")

	if err := fs.Parse(args); err != nil {
		return PrimaryConfig{}, err
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return PrimaryConfig{}, fmt.Errorf("bind flags: %w", err)
	}
	// SECONDARIES/PORT/etc. are the spec's literal env var names. The
	// key replacer above already maps each flag name to the same env
	// var, so these explicit bindings only spell the names out here.
	_ = v.BindEnv("secondaries", "SECONDARIES")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("replication-timeout", "REPLICATION_TIMEOUT")
	_ = v.BindEnv("heartbeat-interval", "HEARTBEAT_INTERVAL")
	_ = v.BindEnv("heartbeat-timeout", "HEARTBEAT_TIMEOUT")
	_ = v.BindEnv("suspected-threshold", "SUSPECTED_THRESHOLD")
	_ = v.BindEnv("unhealthy-threshold", "UNHEALTHY_THRESHOLD")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return PrimaryConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var secondaries []string
	for _, s := range strings.Split(v.GetString("secondaries"), ",") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "/"))
		if s != "" {
			secondaries = append(secondaries, s)
		}
	}

	return PrimaryConfig{
		Port:               v.GetInt("port"),
		Secondaries:        secondaries,
		ReplicationTimeout: durationFromSeconds(v.GetFloat64("replication-timeout")),
		HeartbeatInterval:  durationFromSeconds(v.GetFloat64("heartbeat-interval")),
		HeartbeatTimeout:   durationFromSeconds(v.GetFloat64("heartbeat-timeout")),
		SuspectedThreshold: v.GetInt("suspected-threshold"),
		UnhealthyThreshold: v.GetInt("unhealthy-threshold"),
		DataDir:            v.GetString("data-dir"),
		LogLevel:           v.GetString("log-level"),
		LogPretty:          v.GetBool("log-pretty"),
		MetricsEnabled:     v.GetBool("metrics-enabled"),
	}, nil
}

func durationFromSeconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
