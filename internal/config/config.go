// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/autobrr/tqui/internal/domain"
)

const envPrefix = "TQUI__"

// AppConfig wraps the parsed configuration and the viper instance that
// produced it. Config is the snapshot loaded at startup; a file reload
// replaces the pointer and notifies OnUpdate subscribers, so only
// settings re-applied through those paths take effect live (log level,
// log path, poll intervals). Anything else read from a captured
// *domain.Config keeps its startup value for the life of the process.
type AppConfig struct {
	Config *domain.Config

	viper      *viper.Viper
	configPath string

	mu          sync.RWMutex
	subscribers []func(*domain.Config)
}

// New loads configuration from the given path. The path may be a
// directory, a direct path to a .toml file, or empty for the OS-specific
// default location. A default config file is written when none exists.
func New(configPath string) (*AppConfig, error) {
	c := &AppConfig{
		viper:  viper.New(),
		Config: &domain.Config{},
	}

	c.defaults()

	if err := c.load(configPath); err != nil {
		return nil, err
	}

	c.loadFromEnv()

	if err := c.viper.Unmarshal(c.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	c.watch()

	return c, nil
}

func (c *AppConfig) defaults() {
	c.viper.SetDefault("serverUrl", "http://localhost:8080/")
	c.viper.SetDefault("logLevel", "INFO")
	c.viper.SetDefault("logPath", "")
	c.viper.SetDefault("pollInterval", 2000)
	c.viper.SetDefault("categoryPollInterval", 5000)
	c.viper.SetDefault("httpTimeout", 30)
	c.viper.SetDefault("metricsEnabled", false)
	c.viper.SetDefault("metricsAddr", "127.0.0.1:9786")
	c.viper.SetDefault("ui.sidebarWidth", 208)
	c.viper.SetDefault("ui.detailsHeight", 256)
}

func (c *AppConfig) load(configPath string) error {
	c.viper.SetConfigType("toml")

	switch {
	case configPath == "":
		c.configPath = filepath.Join(GetDefaultConfigDir(), "config.toml")
	case strings.HasSuffix(strings.ToLower(configPath), ".toml"):
		c.configPath = configPath
	default:
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			c.configPath = configPath
		} else {
			c.configPath = filepath.Join(configPath, "config.toml")
		}
	}

	if _, err := os.Stat(c.configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(c.configPath); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	c.viper.SetConfigFile(c.configPath)
	if err := c.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", c.configPath, err)
	}

	return nil
}

// loadFromEnv applies TQUI__ environment variable overrides. Env vars take
// precedence over the config file.
func (c *AppConfig) loadFromEnv() {
	if v := os.Getenv(envPrefix + "SERVER_URL"); v != "" {
		c.viper.Set("serverUrl", v)
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.viper.Set("logLevel", v)
	}
	if v := os.Getenv(envPrefix + "LOG_PATH"); v != "" {
		c.viper.Set("logPath", v)
	}
	if v := os.Getenv(envPrefix + "POLL_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.viper.Set("pollInterval", i)
		}
	}
	if v := os.Getenv(envPrefix + "CATEGORY_POLL_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.viper.Set("categoryPollInterval", i)
		}
	}
	if v := os.Getenv(envPrefix + "METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.viper.Set("metricsEnabled", b)
		}
	}
	if v := os.Getenv(envPrefix + "METRICS_ADDR"); v != "" {
		c.viper.Set("metricsAddr", v)
	}
}

// watch re-reads the config file on change and notifies subscribers so
// dynamic settings apply without a restart.
func (c *AppConfig) watch() {
	c.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("file", e.Name).Str("op", e.Op.String()).Msg("Config file changed")

		updated := &domain.Config{}
		if err := c.viper.Unmarshal(updated); err != nil {
			log.Error().Err(err).Msg("Failed to reload config, keeping previous values")
			return
		}

		c.mu.Lock()
		c.Config = updated
		subs := make([]func(*domain.Config), len(c.subscribers))
		copy(subs, c.subscribers)
		c.mu.Unlock()

		c.ApplyLogConfig()

		for _, fn := range subs {
			fn(updated)
		}
	})
	c.viper.WatchConfig()
}

// OnUpdate registers a callback invoked after every successful config
// reload.
func (c *AppConfig) OnUpdate(fn func(*domain.Config)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// ConfigPath returns the resolved config file path.
func (c *AppConfig) ConfigPath() string {
	return c.configPath
}

// ApplyLogConfig configures the global zerolog logger from the current
// settings. The TUI owns the terminal, so without a logPath all output is
// discarded rather than corrupting the display.
func (c *AppConfig) ApplyLogConfig() {
	level := zerolog.InfoLevel
	switch strings.ToUpper(c.Config.LogLevel) {
	case "TRACE":
		level = zerolog.TraceLevel
	case "DEBUG":
		level = zerolog.DebugLevel
	case "INFO":
		level = zerolog.InfoLevel
	case "WARN":
		level = zerolog.WarnLevel
	case "ERROR":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = io.Discard
	if c.Config.LogPath != "" {
		f, err := os.OpenFile(c.Config.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", c.Config.LogPath, err)
		} else {
			out = zerolog.ConsoleWriter{Out: f, NoColor: true}
		}
	}
	log.Logger = log.Output(out)
}

// GetDefaultConfigDir returns the OS-specific default config directory.
func GetDefaultConfigDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tqui")
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "tqui")
	}
	return "."
}
