// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/autobrr/tqui/internal/torrents"
)

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionRelease:
		// Any release ends a drag, wherever the pointer is. A drag can
		// never survive past its button press this way.
		m.state.EndResize()
		return m, nil

	case tea.MouseActionMotion:
		if m.state.Resizing() {
			m.dragToState(msg.X, msg.Y)
		}
		return m, nil

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.moveCursor(-3)
		case tea.MouseButtonWheelDown:
			return m.moveCursor(3)
		case tea.MouseButtonLeft:
			return m.handleLeftClick(msg.X, msg.Y)
		}
	}

	return m, nil
}

func (m Model) handleLeftClick(x, y int) (tea.Model, tea.Cmd) {
	if m.onDetailsBorder(y) {
		m.state.BeginDetailsResize()
		return m, nil
	}
	if m.onSidebarBorder(x) && y >= toolbarRows && y < m.height-statusBarRows {
		m.state.BeginSidebarResize()
		return m, nil
	}

	inSidebar := x < m.sidebarCells()
	headerY := toolbarRows
	firstRowY := toolbarRows + headerRows

	if inSidebar {
		entry := y - firstRowY
		if entry >= 0 && entry <= len(m.visibleCats) {
			m.focus = focusSidebar
			m.sidebarCursor = entry
			m.applyCategory()
		}
		return m, nil
	}

	if y == headerY {
		if field, ok := m.columnAt(x); ok {
			m.setSort(field)
		}
		return m, nil
	}

	row := m.offset + y - firstRowY
	if y >= firstRowY && y < firstRowY+m.tableRows() && row < len(m.filtered) {
		m.focus = focusTable
		m.cursor = row
		return m, m.selectCursorRow()
	}

	return m, nil
}

// columnAt maps a click column to the header cell under it.
func (m Model) columnAt(x int) (torrents.SortField, bool) {
	pos := m.sidebarCells() + 1
	if x < pos {
		return "", false
	}
	widths := columnWidths(m.width - pos)
	for i, w := range widths {
		if x < pos+w {
			return tableColumns[i].field, true
		}
		pos += w + 1
	}
	return "", false
}
