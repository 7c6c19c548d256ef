// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import "github.com/autobrr/tqui/internal/panel"

// AggregateProgress returns the arithmetic mean of per-file progress
// fractions, 0 for a torrent with no files. The backend reports progress
// per file only; the torrent-level figure is always derived, never cached,
// since file progress changes on every poll.
func AggregateProgress(files []panel.File) float64 {
	if len(files) == 0 {
		return 0
	}

	var total float64
	for _, f := range files {
		total += f.Progress
	}
	return total / float64(len(files))
}
