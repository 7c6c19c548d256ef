// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

// Config represents the application configuration
type Config struct {
	ServerURL            string `toml:"serverUrl" mapstructure:"serverUrl"`
	LogLevel             string `toml:"logLevel" mapstructure:"logLevel"`
	LogPath              string `toml:"logPath" mapstructure:"logPath"`
	PollInterval         int    `toml:"pollInterval" mapstructure:"pollInterval"`                 // milliseconds
	CategoryPollInterval int    `toml:"categoryPollInterval" mapstructure:"categoryPollInterval"` // milliseconds
	HTTPTimeout          int    `toml:"httpTimeout" mapstructure:"httpTimeout"`                   // seconds
	MetricsEnabled       bool   `toml:"metricsEnabled" mapstructure:"metricsEnabled"`
	MetricsAddr          string `toml:"metricsAddr" mapstructure:"metricsAddr"`
	UI                   UI     `toml:"ui" mapstructure:"ui"`
}

// UI represents the startup panel geometry. Values are clamped to the
// same ranges the resize interaction enforces.
type UI struct {
	SidebarWidth  int `toml:"sidebarWidth" mapstructure:"sidebarWidth"`
	DetailsHeight int `toml:"detailsHeight" mapstructure:"detailsHeight"`
}
