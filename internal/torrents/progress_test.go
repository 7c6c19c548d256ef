// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autobrr/tqui/internal/panel"
)

func TestAggregateProgress(t *testing.T) {
	tests := []struct {
		name  string
		files []panel.File
		want  float64
	}{
		{name: "no files", files: nil, want: 0},
		{name: "empty slice", files: []panel.File{}, want: 0},
		{name: "single file", files: []panel.File{{Progress: 0.75}}, want: 0.75},
		{
			name:  "mean of two files",
			files: []panel.File{{Progress: 0.2}, {Progress: 0.8}},
			want:  0.5,
		},
		{
			name:  "complete torrent",
			files: []panel.File{{Progress: 1}, {Progress: 1}, {Progress: 1}},
			want:  1,
		},
		{
			name:  "unweighted by file size",
			files: []panel.File{{SizeBytes: 1, Progress: 0}, {SizeBytes: 1 << 30, Progress: 1}},
			want:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AggregateProgress(tt.files), 1e-9)
		})
	}
}
