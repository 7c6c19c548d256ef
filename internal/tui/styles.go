// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("63")
	colorMuted  = lipgloss.Color("241")
	colorSelect = lipgloss.Color("57")
	colorCursor = lipgloss.Color("238")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	toolbarStyle = lipgloss.NewStyle().
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorMuted)

	sidebarHeaderStyle = lipgloss.NewStyle().
				Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(colorSelect).
				Foreground(lipgloss.Color("255"))

	cursorRowStyle = lipgloss.NewStyle().
			Background(colorCursor)

	detailsStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorMuted)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Underline(true).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
