// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import "github.com/autobrr/tqui/internal/panel"

// Stats is a status roll-up of the torrents currently in view, shown in
// the status bar.
type Stats struct {
	Total       int
	Downloading int
	Seeding     int
	Paused      int
	Error       int
	Checking    int
}

// CalculateStats counts torrents per display state group.
func CalculateStats(list []panel.Torrent) Stats {
	stats := Stats{Total: len(list)}

	for _, t := range list {
		if t.State == panel.TorrentStateQueuedDl {
			stats.Downloading++
			continue
		}
		if t.State == panel.TorrentStateQueuedUp {
			stats.Seeding++
			continue
		}
		switch ClassifyState(t.State) {
		case StateClassDownloading, StateClassStalledDown:
			stats.Downloading++
		case StateClassUploading, StateClassStalledUp:
			stats.Seeding++
		case StateClassPaused:
			stats.Paused++
		case StateClassError:
			stats.Error++
		case StateClassChecking:
			stats.Checking++
		}
	}

	return stats
}
