// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobrr/tqui/internal/config"
	"github.com/autobrr/tqui/internal/domain"
	"github.com/autobrr/tqui/internal/metrics"
	"github.com/autobrr/tqui/internal/panel"
	"github.com/autobrr/tqui/internal/poller"
	"github.com/autobrr/tqui/internal/tui"
)

var Version = "dev"

func main() {
	var rootCmd = &cobra.Command{
		Use:   "tqui",
		Short: "A terminal client for multi-server torrent panels",
		Long: `tqui - a terminal UI for qBittorrent panel backends that
aggregate torrents and categories across multiple servers.`,
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.Version = Version

	rootCmd.AddCommand(RunCommand())
	rootCmd.AddCommand(RunVersionCommand(Version))
	rootCmd.AddCommand(RunGenerateConfigCommand())
	rootCmd.AddCommand(RunHealthCheckCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func RunCommand() *cobra.Command {
	var (
		configDir string
		serverURL string
		logPath   string
	)

	var command = &cobra.Command{
		Use:   "run",
		Short: "Start the terminal UI",
	}

	command.Flags().StringVar(&configDir, "config-dir", "", "config directory path (default is OS-specific: ~/.config/tqui/ or %APPDATA%\\tqui\\). Can also be a direct path to a .toml file")
	command.Flags().StringVar(&serverURL, "server-url", "", "panel backend base URL (overrides config)")
	command.Flags().StringVar(&logPath, "log-path", "", "log file path (default is no log output, the terminal belongs to the UI)")

	command.RunE = func(cmd *cobra.Command, args []string) error {
		return run(configDir, serverURL, logPath)
	}

	return command
}

func RunVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tqui",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func RunGenerateConfigCommand() *cobra.Command {
	var configDir string

	command := &cobra.Command{
		Use:   "generate-config",
		Short: "Generate a default configuration file",
		Run: func(cmd *cobra.Command, args []string) {
			dir := configDir
			if dir == "" {
				dir = config.GetDefaultConfigDir()
			}
			path := dir
			if filepath.Ext(path) != ".toml" {
				path = filepath.Join(dir, "config.toml")
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				log.Fatal().Err(err).Msg("Failed to write configuration file")
			}
			fmt.Printf("Configuration file generated at: %s\n", path)
		},
	}

	command.Flags().StringVar(&configDir, "config-dir", "", "config directory or file path")

	return command
}

func RunHealthCheckCommand() *cobra.Command {
	var configDir string

	command := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check connectivity to the panel backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(configDir)
			if err != nil {
				return err
			}

			client := panel.NewClient(cfg.Config.ServerURL, time.Duration(cfg.Config.HTTPTimeout)*time.Second)

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := client.HealthCheck(ctx); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}

	command.Flags().StringVar(&configDir, "config-dir", "", "config directory or file path")

	return command
}

func run(configDir, serverURL, logPath string) error {
	cfg, err := config.New(configDir)
	if err != nil {
		return err
	}

	if serverURL != "" {
		cfg.Config.ServerURL = serverURL
	}
	if logPath != "" {
		cfg.Config.LogPath = logPath
	}

	cfg.ApplyLogConfig()
	log.Info().Str("version", Version).Str("serverUrl", cfg.Config.ServerURL).Msg("Starting tqui")

	client := panel.NewClient(cfg.Config.ServerURL, time.Duration(cfg.Config.HTTPTimeout)*time.Second)

	poll, err := poller.New(
		client,
		time.Duration(cfg.Config.PollInterval)*time.Millisecond,
		time.Duration(cfg.Config.CategoryPollInterval)*time.Millisecond,
	)
	if err != nil {
		return err
	}

	// Poll intervals follow config file edits; the log level is
	// re-applied by the config watcher itself.
	cfg.OnUpdate(func(updated *domain.Config) {
		poll.SetIntervals(
			time.Duration(updated.PollInterval)*time.Millisecond,
			time.Duration(updated.CategoryPollInterval)*time.Millisecond,
		)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go poll.Run(ctx)

	if cfg.Config.MetricsEnabled {
		manager := metrics.NewManager(poll)
		go manager.Serve(ctx, cfg.Config.MetricsAddr)
	}

	program := tea.NewProgram(
		tui.New(cfg.Config, client, poll),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// SIGINT normally reaches the UI as a key event, but a SIGTERM from
	// outside must still tear the program down cleanly.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return err
	}

	log.Info().Msg("Stopped")
	return nil
}
