// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autobrr/tqui/internal/panel"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero", bytes: 0, want: "0 B"},
		{name: "sub kilobyte", bytes: 512, want: "512 B"},
		{name: "one kilobyte", bytes: 1024, want: "1.00 KB"},
		{name: "one and a half kilobytes", bytes: 1536, want: "1.50 KB"},
		{name: "one megabyte", bytes: 1048576, want: "1.00 MB"},
		{name: "one gigabyte", bytes: 1 << 30, want: "1.00 GB"},
		{name: "one terabyte", bytes: 1 << 40, want: "1.00 TB"},
		{name: "beyond terabytes stays in TB", bytes: 1 << 42, want: "4.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatAddedOn(t *testing.T) {
	assert.Equal(t, "-", FormatAddedOn(0))

	got := FormatAddedOn(1700000000)
	assert.Len(t, got, len("02/01/2006 15:04:05"))
	assert.NotEqual(t, "-", got)
}

func TestClassifyState(t *testing.T) {
	tests := []struct {
		state panel.TorrentState
		want  StateClass
	}{
		{panel.TorrentStateDownloading, StateClassDownloading},
		{panel.TorrentStateForcedDl, StateClassDownloading},
		{panel.TorrentStateMetaDl, StateClassDownloading},
		{panel.TorrentStateUploading, StateClassUploading},
		{panel.TorrentStateForcedUp, StateClassUploading},
		{panel.TorrentStateStalledDl, StateClassStalledDown},
		{panel.TorrentStateStalledUp, StateClassStalledUp},
		{panel.TorrentStatePausedDl, StateClassPaused},
		{panel.TorrentStateStoppedUp, StateClassPaused},
		{panel.TorrentStateQueuedDl, StateClassQueued},
		{panel.TorrentStateCheckingDl, StateClassChecking},
		{panel.TorrentStateMoving, StateClassChecking},
		{panel.TorrentStateError, StateClassError},
		{panel.TorrentStateMissingFiles, StateClassError},
		{panel.TorrentStateUnknown, StateClassUnknown},
		{panel.TorrentState("somethingNew"), StateClassNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyState(tt.state))
		})
	}
}

func TestStateGlyph(t *testing.T) {
	assert.Equal(t, "↓", StateGlyph(panel.TorrentStateDownloading))
	assert.Equal(t, "↓", StateGlyph(panel.TorrentStateStalledDl))
	assert.Equal(t, "↑", StateGlyph(panel.TorrentStateUploading))
	assert.Equal(t, "⏸", StateGlyph(panel.TorrentStatePausedDl))
	assert.Equal(t, "!", StateGlyph(panel.TorrentStateError))
	assert.Equal(t, " ", StateGlyph(panel.TorrentState("somethingNew")))
}
