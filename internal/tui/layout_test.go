// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autobrr/tqui/internal/panel"
	"github.com/autobrr/tqui/internal/view"
)

func TestLayoutUnitConversionRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		units int
		total int
		cells int
	}{
		{name: "quarter of 120 columns", units: 250, total: 120, cells: 30},
		{name: "half of 200 columns", units: 500, total: 200, cells: 100},
		{name: "zero width window", units: 500, total: 0, cells: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cells, cellsFromUnits(tt.units, tt.total))
		})
	}

	assert.Equal(t, 250, unitsFromCells(30, 120))
	assert.Equal(t, 0, unitsFromCells(30, 0))
}

func TestSidebarCellsScalesWithWindow(t *testing.T) {
	m := testModel()
	m.width = 200
	m.state.SidebarWidth = view.SidebarMinWidth

	// 150 units of 1000 on a 200-column window.
	assert.Equal(t, 30, m.sidebarCells())

	m.width = 40
	assert.Equal(t, 16, m.sidebarCells(), "sidebar keeps a usable minimum on tiny windows")
}

func TestDetailCellsZeroWithoutSelection(t *testing.T) {
	m := testModel()
	m.width = 120
	m.height = 40

	assert.Equal(t, 0, m.detailCells())

	m.state.SelectTorrent("aaa111")
	assert.Greater(t, m.detailCells(), 0)
}

func TestClampScrollFollowsCursor(t *testing.T) {
	m := testModel()
	m.width = 120
	m.height = 14 // 10 table rows
	m.filtered = make([]panel.Torrent, 50)

	m.cursor = 25
	m.clampScroll()
	assert.Equal(t, 16, m.offset, "cursor sits on the last visible row")

	m.cursor = 5
	m.clampScroll()
	assert.Equal(t, 5, m.offset)

	// Scrolling state survives a shrinking list.
	m.filtered = m.filtered[:8]
	m.cursor = 7
	m.clampScroll()
	assert.Equal(t, 0, m.offset)
}

func TestColumnWidthsFillTable(t *testing.T) {
	widths := columnWidths(120)

	assert.Len(t, widths, len(tableColumns))
	for i, w := range widths {
		assert.Greater(t, w, 0, "column %d has no width", i)
	}

	total := 0
	for _, w := range widths {
		total += w + 1
	}
	assert.LessOrEqual(t, total, 121)
}

func TestColumnAtMapsClicksToSortFields(t *testing.T) {
	m := testModel()
	m.width = 140
	m.height = 40

	start := m.sidebarCells() + 1

	field, ok := m.columnAt(start)
	assert.True(t, ok)
	assert.Equal(t, tableColumns[0].field, field)

	// Inside the name column.
	field, ok = m.columnAt(start + 5)
	assert.True(t, ok)
	assert.Equal(t, tableColumns[1].field, field)

	_, ok = m.columnAt(0)
	assert.False(t, ok, "clicks left of the table hit nothing")
}
