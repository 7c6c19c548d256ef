// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package tui

// Pane geometry in view state is kept in layout units on a 0..1000 axis
// per dimension, so the clamp ranges are terminal-size independent.
// Rendering converts units to cells against the current window, and
// mouse positions convert back to units before entering the drag logic.
const layoutScale = 1000

// cellsFromUnits converts a layout-unit extent to terminal cells.
func cellsFromUnits(units, total int) int {
	if total <= 0 {
		return 0
	}
	return units * total / layoutScale
}

// unitsFromCells converts a terminal cell position to layout units.
func unitsFromCells(cells, total int) int {
	if total <= 0 {
		return 0
	}
	return cells * layoutScale / total
}

// sidebarCells is the rendered sidebar width for the current window.
func (m Model) sidebarCells() int {
	w := cellsFromUnits(m.state.SidebarWidth, m.width)
	if w < 16 {
		w = 16
	}
	return w
}

// detailCells is the rendered details-pane height, zero when nothing is
// selected.
func (m Model) detailCells() int {
	if m.state.SelectedHash == "" {
		return 0
	}
	h := cellsFromUnits(m.state.DetailsHeight, m.height)
	if h < 6 {
		h = 6
	}
	return h
}

// chrome rows above and below the torrent table.
const (
	toolbarRows   = 2
	headerRows    = 1
	statusBarRows = 1
)

// tableRows is how many torrent rows fit in the current window.
func (m Model) tableRows() int {
	rows := m.height - toolbarRows - headerRows - statusBarRows - m.detailCells()
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampScroll keeps the cursor inside the visible row window, moving the
// scroll offset as little as possible so the table doesn't jump around
// under polling refreshes.
func (m *Model) clampScroll() {
	rows := m.tableRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > len(m.filtered)-rows {
		m.offset = len(m.filtered) - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// dragToState routes a mouse position into the resize state machine,
// converting cells to layout units on both axes.
func (m *Model) dragToState(x, y int) {
	m.state.Drag(
		unitsFromCells(x, m.width),
		unitsFromCells(y, m.height),
		layoutScale,
	)
}

// onSidebarBorder reports whether a cell column sits on the draggable
// sidebar edge.
func (m Model) onSidebarBorder(x int) bool {
	border := m.sidebarCells()
	return x == border || x == border+1
}

// onDetailsBorder reports whether a cell row sits on the draggable top
// edge of the details pane.
func (m Model) onDetailsBorder(y int) bool {
	details := m.detailCells()
	if details == 0 {
		return false
	}
	border := m.height - statusBarRows - details
	return y == border || y == border-1
}
