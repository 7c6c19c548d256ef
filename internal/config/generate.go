// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# tqui configuration
# Valid settings can also be provided via TQUI__ environment variables,
# e.g. TQUI__SERVER_URL, TQUI__LOG_LEVEL.

# Base URL of the panel backend. The GraphQL endpoint (/query) and torrent
# upload endpoint (/uploadTorrent) are resolved relative to it.
serverUrl = "http://localhost:8080/"

# Log level: TRACE, DEBUG, INFO, WARN, ERROR
logLevel = "INFO"

# Log file path. When empty, logging is disabled (the TUI owns the
# terminal, so logs cannot go to stdout/stderr).
#logPath = "tqui.log"

# Torrent list refresh interval in milliseconds.
pollInterval = 2000

# Category list refresh interval in milliseconds.
categoryPollInterval = 5000

# HTTP request timeout in seconds.
httpTimeout = 30

# Optional Prometheus metrics endpoint.
metricsEnabled = false
metricsAddr = "127.0.0.1:9786"

[ui]
# Startup panel geometry. Sidebar width is clamped to [150, 500], details
# panel height to [150, 600].
sidebarWidth = 208
detailsHeight = 256
`

// WriteDefaultConfig writes the default config file to the given path,
// creating parent directories as needed.
func WriteDefaultConfig(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
