// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import (
	"fmt"
	"time"

	"github.com/autobrr/tqui/internal/panel"
)

// FormatBytes renders a byte count in base-1024 units with two decimals,
// e.g. 1024 -> "1.00 KB". Zero is special-cased to "0 B".
func FormatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.2f %s", value, units[i])
}

// FormatAddedOn renders a Unix timestamp in local time. Zero means the
// backend didn't report an added date and shows as a placeholder.
func FormatAddedOn(timestamp int64) string {
	if timestamp == 0 {
		return "-"
	}
	return time.Unix(timestamp, 0).Format("02/01/2006 15:04:05")
}

// StateClass groups torrent states into display categories, one glyph per
// class in the table's status column.
type StateClass int

const (
	StateClassNone StateClass = iota
	StateClassDownloading
	StateClassUploading
	StateClassStalledDown
	StateClassStalledUp
	StateClassPaused
	StateClassQueued
	StateClassChecking
	StateClassError
	StateClassUnknown
)

// ClassifyState maps a backend state to its display class. Unrecognized
// states render without a glyph rather than failing.
func ClassifyState(state panel.TorrentState) StateClass {
	switch state {
	case panel.TorrentStateDownloading, panel.TorrentStateForcedDl, panel.TorrentStateMetaDl:
		return StateClassDownloading
	case panel.TorrentStateUploading, panel.TorrentStateForcedUp:
		return StateClassUploading
	case panel.TorrentStateStalledDl:
		return StateClassStalledDown
	case panel.TorrentStateStalledUp:
		return StateClassStalledUp
	case panel.TorrentStatePausedDl, panel.TorrentStatePausedUp, panel.TorrentStateStoppedDl, panel.TorrentStateStoppedUp:
		return StateClassPaused
	case panel.TorrentStateQueuedDl, panel.TorrentStateQueuedUp:
		return StateClassQueued
	case panel.TorrentStateCheckingDl, panel.TorrentStateCheckingUp, panel.TorrentStateCheckingResume,
		panel.TorrentStateAllocating, panel.TorrentStateMoving:
		return StateClassChecking
	case panel.TorrentStateError, panel.TorrentStateMissingFiles:
		return StateClassError
	case panel.TorrentStateUnknown:
		return StateClassUnknown
	default:
		return StateClassNone
	}
}

// StateGlyph returns the status column glyph for a state.
func StateGlyph(state panel.TorrentState) string {
	switch ClassifyState(state) {
	case StateClassDownloading, StateClassStalledDown:
		return "↓"
	case StateClassUploading, StateClassStalledUp:
		return "↑"
	case StateClassPaused:
		return "⏸"
	case StateClassQueued:
		return "⏱"
	case StateClassChecking:
		return "⟳"
	case StateClassError:
		return "!"
	case StateClassUnknown:
		return "?"
	default:
		return " "
	}
}
