// Package config resolves runtime settings from defaults, an optional config
// file, an optional .env file and TRACKD_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "TRACKD"
	dataDir   = ".trackd"
)

type RuntimeConfig struct {
	Backend          string
	DataPath         string
	ListenAddr       string
	LogLevel         string
	LogFile          string
	TopTasks         int
	SchedulerBuffer  int
	PulseIntervalSec int
	CORSOrigins      []string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:          "sqlite",
		ListenAddr:       "127.0.0.1:8080",
		LogLevel:         "info",
		LogFile:          filepath.Join(dataDir, "trackd.log"),
		TopTasks:         6,
		SchedulerBuffer:  64,
		PulseIntervalSec: 2,
		CORSOrigins:      []string{"*"},
	}
}

// LoadOptions points at optional files. Empty fields use the defaults:
// trackd.{yaml,toml,json} in the working directory and ./.env.
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

func Load(opts LoadOptions) (RuntimeConfig, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return RuntimeConfig{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	v := viper.New()
	def := DefaultRuntimeConfig()
	v.SetDefault("backend", def.Backend)
	v.SetDefault("data_path", def.DataPath)
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("top_tasks", def.TopTasks)
	v.SetDefault("scheduler_buffer", def.SchedulerBuffer)
	v.SetDefault("pulse_interval_sec", def.PulseIntervalSec)
	v.SetDefault("cors_origins", def.CORSOrigins)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return RuntimeConfig{}, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("trackd")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return RuntimeConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := RuntimeConfig{
		Backend:          strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		DataPath:         strings.TrimSpace(v.GetString("data_path")),
		ListenAddr:       strings.TrimSpace(v.GetString("listen_addr")),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFile:          strings.TrimSpace(v.GetString("log_file")),
		TopTasks:         v.GetInt("top_tasks"),
		SchedulerBuffer:  v.GetInt("scheduler_buffer"),
		PulseIntervalSec: v.GetInt("pulse_interval_sec"),
		CORSOrigins:      splitList(v.GetStringSlice("cors_origins")),
	}
	cfg = cfg.withFallbacks(def)
	return cfg, cfg.Validate()
}

// withFallbacks replaces non-positive or empty values with their defaults.
func (c RuntimeConfig) withFallbacks(def RuntimeConfig) RuntimeConfig {
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.TopTasks <= 0 {
		c.TopTasks = def.TopTasks
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = def.SchedulerBuffer
	}
	if c.PulseIntervalSec <= 0 {
		c.PulseIntervalSec = def.PulseIntervalSec
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = def.CORSOrigins
	}
	return c
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case "sqlite", "file", "memory", "":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}

// ResolvedDataPath is DataPath, or the backend's default location under
// .trackd when unset.
func (c RuntimeConfig) ResolvedDataPath() string {
	if c.DataPath != "" {
		return c.DataPath
	}
	switch c.Backend {
	case "file":
		return filepath.Join(dataDir, "docs")
	case "memory":
		return ""
	default:
		return filepath.Join(dataDir, "trackd.db")
	}
}

func (c RuntimeConfig) PulseInterval() time.Duration {
	return time.Duration(c.PulseIntervalSec) * time.Second
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
