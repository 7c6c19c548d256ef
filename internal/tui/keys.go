// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/autobrr/tqui/internal/torrents"
	"github.com/autobrr/tqui/internal/view"
)

// sortCycle is the header order used by the keyboard sort shortcut.
var sortCycle = []torrents.SortField{
	torrents.SortByName,
	torrents.SortBySize,
	torrents.SortByProgress,
	torrents.SortByRatio,
	torrents.SortByAddedOn,
	torrents.SortByCategory,
	torrents.SortByServer,
	torrents.SortByState,
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal == modalUpload {
		return m.handleUploadKey(msg)
	}
	if m.modal == modalNewCategory {
		return m.handleNewCategoryKey(msg)
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "tab":
		if m.focus == focusTable {
			m.focus = focusSidebar
		} else {
			m.focus = focusTable
		}
		return m, nil

	case "up", "k":
		return m.moveCursor(-1)

	case "down", "j":
		return m.moveCursor(1)

	case "pgup":
		return m.moveCursor(-m.tableRows())

	case "pgdown":
		return m.moveCursor(m.tableRows())

	case "home":
		return m.moveCursor(-len(m.filtered))

	case "end":
		return m.moveCursor(len(m.filtered))

	case "enter":
		if m.focus == focusSidebar {
			m.applyCategory()
			return m, nil
		}
		return m, m.selectCursorRow()

	case "esc":
		if m.state.SearchQuery != "" {
			m.searchInput.SetValue("")
			m.setSearch("")
			return m, nil
		}
		m.state.SelectTorrent("")
		m.detail = nil
		return m, nil

	case "1":
		m.state.SetActiveTab(view.TabGeneral)
		return m, nil
	case "2":
		m.state.SetActiveTab(view.TabFiles)
		return m, nil
	case "3":
		m.state.SetActiveTab(view.TabTrackers)
		return m, nil

	case "s":
		m.setSort(m.nextSortField())
		return m, nil

	case "d":
		if len(m.criteria) > 0 {
			m.setSort(m.criteria[0].Field)
		}
		return m, nil

	case "p":
		return m.startAction(m.pauseSelected())

	case "r":
		return m.startAction(m.resumeSelected())

	case "u":
		m.modal = modalUpload
		m.upload.open(m.snapshot.Categories)
		return m, nil

	case "c":
		m.modal = modalNewCategory
		m.newCat.open()
		return m, nil
	}

	return m, nil
}

// handleSearchKey feeds keystrokes into the search box and keeps the
// filter live on every change.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.focus = focusTable
		return m, nil
	case tea.KeyEnter:
		m.searchInput.Blur()
		m.focus = focusTable
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.setSearch(m.searchInput.Value())
	return m, cmd
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if m.focus == focusSidebar {
		m.sidebarCursor += delta
		if m.sidebarCursor < 0 {
			m.sidebarCursor = 0
		}
		if m.sidebarCursor > len(m.visibleCats) {
			m.sidebarCursor = len(m.visibleCats)
		}
		return m, nil
	}

	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.clampScroll()
	return m, nil
}

// nextSortField returns the field after the current primary in the
// cycle.
func (m Model) nextSortField() torrents.SortField {
	if len(m.criteria) == 0 {
		return sortCycle[0]
	}
	for i, field := range sortCycle {
		if field == m.criteria[0].Field {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}
