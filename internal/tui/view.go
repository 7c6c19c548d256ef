// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/autobrr/tqui/internal/panel"
	"github.com/autobrr/tqui/internal/torrents"
	"github.com/autobrr/tqui/internal/view"
)

// tableColumn describes one header cell: its label, the sort field a
// click on it selects, and a fixed width (0 = take remaining space).
type tableColumn struct {
	title string
	field torrents.SortField
	width int
}

var tableColumns = []tableColumn{
	{title: " ", field: torrents.SortByState, width: 2},
	{title: "Name", field: torrents.SortByName, width: 0},
	{title: "Size", field: torrents.SortBySize, width: 10},
	{title: "Progress", field: torrents.SortByProgress, width: 9},
	{title: "Ratio", field: torrents.SortByRatio, width: 6},
	{title: "Category", field: torrents.SortByCategory, width: 12},
	{title: "Server", field: torrents.SortByServer, width: 10},
	{title: "Added", field: torrents.SortByAddedOn, width: 19},
}

// columnWidths resolves the flex column against the table's width.
func columnWidths(tableWidth int) []int {
	widths := make([]int, len(tableColumns))
	fixed := 0
	flexIdx := -1
	for i, col := range tableColumns {
		widths[i] = col.width
		if col.width == 0 {
			flexIdx = i
		} else {
			fixed += col.width + 1
		}
	}
	if flexIdx >= 0 {
		flex := tableWidth - fixed - 1
		if flex < 12 {
			flex = 12
		}
		widths[flexIdx] = flex
	}
	return widths
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderTable())

	sections := []string{m.renderToolbar(), body}
	if details := m.renderDetails(); details != "" {
		sections = append(sections, details)
	}
	sections = append(sections, m.renderStatusBar())

	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	switch m.modal {
	case modalUpload:
		return m.overlay(screen, m.upload.render(m.spinner))
	case modalNewCategory:
		return m.overlay(screen, m.newCat.render(m.spinner))
	}
	return screen
}

func (m Model) overlay(_, modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderToolbar() string {
	stats := torrents.CalculateStats(m.filtered)
	statsText := fmt.Sprintf("%d torrents  ↓%d ↑%d ⏸%d !%d",
		stats.Total, stats.Downloading, stats.Seeding, stats.Paused, stats.Error)

	age := "never"
	if !m.snapshot.Polled.IsZero() {
		age = humanize.Time(m.snapshot.Polled)
	}
	refresh := "refreshed " + age
	if m.snapshot.Err != nil {
		refresh = "refresh failed, showing last data"
	}

	left := titleStyle.Render("tqui")
	mid := m.searchInput.View()
	right := mutedStyle.Render(statsText + "  " + refresh)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	line := left + "  " + mid + strings.Repeat(" ", gap) + right
	return toolbarStyle.Width(m.width).Render(line)
}

func (m Model) renderSidebar() string {
	width := m.sidebarCells()
	height := m.tableRows() + headerRows

	var b strings.Builder
	b.WriteString(sidebarHeaderStyle.Render(padRight("Categories", width)))
	b.WriteString("\n")

	entries := make([]string, 0, len(m.visibleCats)+1)
	entries = append(entries, "All")
	for _, c := range m.visibleCats {
		entries = append(entries, c.Name)
	}

	for i, entry := range entries {
		if i >= height-1 {
			break
		}
		label := padRight(truncate(entry, width-2), width-2)
		selected := m.isCategorySelected(i)
		switch {
		case selected && m.focus == focusSidebar && i == m.sidebarCursor:
			b.WriteString(selectedRowStyle.Render("▸ " + label))
		case selected:
			b.WriteString(selectedRowStyle.Render("  " + label))
		case m.focus == focusSidebar && i == m.sidebarCursor:
			b.WriteString(cursorRowStyle.Render("▸ " + label))
		default:
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	return sidebarStyle.Width(width).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

// isCategorySelected reports whether sidebar entry i matches the active
// category filter; entry 0 is "All".
func (m Model) isCategorySelected(i int) bool {
	if i == 0 {
		return m.state.SelectedCategory == nil
	}
	if m.state.SelectedCategory == nil || i-1 >= len(m.visibleCats) {
		return false
	}
	return m.visibleCats[i-1].Name == *m.state.SelectedCategory
}

func (m Model) renderTable() string {
	tableWidth := m.width - m.sidebarCells() - 1
	widths := columnWidths(tableWidth)

	var b strings.Builder
	b.WriteString(m.renderHeader(widths))
	b.WriteString("\n")

	rows := m.tableRows()
	if len(m.filtered) == 0 {
		// Distinct from loading: the poll succeeded, nothing matched.
		if m.snapshot.Polled.IsZero() {
			b.WriteString(mutedStyle.Render("  Loading torrents..."))
		} else {
			b.WriteString(mutedStyle.Render("  No torrents found"))
		}
		return b.String()
	}

	for i := m.offset; i < len(m.filtered) && i < m.offset+rows; i++ {
		b.WriteString(m.renderRow(&m.filtered[i], widths, i == m.cursor))
		if i < m.offset+rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderHeader(widths []int) string {
	cells := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		title := col.title
		if len(m.criteria) > 0 && m.criteria[0].Field == col.field && col.width != 2 {
			if m.criteria[0].Desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cells[i] = padRight(truncate(title, widths[i]), widths[i])
	}
	return headerStyle.Render(strings.Join(cells, " "))
}

func (m Model) renderRow(t *panel.Torrent, widths []int, isCursor bool) string {
	progress := fmt.Sprintf("%5.1f%%", torrents.AggregateProgress(t.Files)*100)

	cells := []string{
		padRight(torrents.StateGlyph(t.State), widths[0]),
		padRight(truncate(t.Name, widths[1]), widths[1]),
		padRight(torrents.FormatBytes(t.SizeBytes), widths[2]),
		padRight(progress, widths[3]),
		padRight(fmt.Sprintf("%.2f", t.Ratio), widths[4]),
		padRight(truncate(t.Category, widths[5]), widths[5]),
		padRight(truncate(t.Server, widths[6]), widths[6]),
		padRight(torrents.FormatAddedOn(t.AddedOn), widths[7]),
	}
	row := strings.Join(cells, " ")

	switch {
	case t.InfoHashV1 == m.state.SelectedHash && t.InfoHashV1 != "":
		return selectedRowStyle.Render(row)
	case isCursor && m.focus == focusTable:
		return cursorRowStyle.Render(row)
	default:
		return row
	}
}

func (m Model) renderDetails() string {
	height := m.detailCells()
	if height == 0 {
		return ""
	}

	selected := m.state.Resolve(m.filtered)
	torrent := m.detail
	if torrent == nil {
		torrent = selected
	}

	tabs := m.renderDetailTabs()

	var body string
	switch {
	case m.detailLoading && torrent == nil:
		body = mutedStyle.Render("  " + m.spinner.View() + " Loading details...")
	case torrent == nil:
		// Selection miss: the hash is kept, the pane just goes empty
		// until the torrent shows up in a poll again.
		body = mutedStyle.Render("  Torrent not in current view")
	default:
		body = m.renderDetailBody(torrent, height-2)
	}

	content := tabs + "\n" + body
	return detailsStyle.Width(m.width).Height(height).Render(content)
}

func (m Model) renderDetailTabs() string {
	labels := []struct {
		tab   view.DetailTab
		title string
	}{
		{view.TabGeneral, "1 General"},
		{view.TabFiles, "2 Files"},
		{view.TabTrackers, "3 Trackers"},
	}

	cells := make([]string, len(labels))
	for i, l := range labels {
		if m.state.ActiveTab == l.tab {
			cells[i] = activeTabStyle.Render(l.title)
		} else {
			cells[i] = tabStyle.Render(l.title)
		}
	}
	return strings.Join(cells, " ")
}

func (m Model) renderDetailBody(t *panel.Torrent, rows int) string {
	switch m.state.ActiveTab {
	case view.TabFiles:
		return m.renderFileRows(t, rows)
	case view.TabTrackers:
		return m.renderTrackerRows(t, rows)
	default:
		return m.renderGeneral(t)
	}
}

func (m Model) renderGeneral(t *panel.Torrent) string {
	lines := []string{
		fmt.Sprintf("  Name:      %s", t.Name),
		fmt.Sprintf("  Hash:      %s", t.InfoHashV1),
		fmt.Sprintf("  Size:      %s   Progress: %.1f%%   Ratio: %.2f",
			torrents.FormatBytes(t.SizeBytes), torrents.AggregateProgress(t.Files)*100, t.Ratio),
		fmt.Sprintf("  State:     %s   Added: %s", t.State, torrents.FormatAddedOn(t.AddedOn)),
		fmt.Sprintf("  Server:    %s   Category: %s", t.Server, valueOr(t.Category, "(none)")),
		fmt.Sprintf("  Save path: %s", t.SavePath),
		fmt.Sprintf("  Tracker:   %s", t.Tracker),
	}
	if t.Comment != "" {
		lines = append(lines, fmt.Sprintf("  Comment:   %s", t.Comment))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFileRows(t *panel.Torrent, rows int) string {
	if len(t.Files) == 0 {
		return mutedStyle.Render("  No file information")
	}
	var b strings.Builder
	for i, f := range t.Files {
		if i >= rows {
			fmt.Fprintf(&b, "  ... %d more", len(t.Files)-i)
			break
		}
		fmt.Fprintf(&b, "  %s  %s  %.1f%%\n",
			padRight(truncate(f.Name, m.width-28), m.width-28),
			padRight(torrents.FormatBytes(f.SizeBytes), 10),
			f.Progress*100)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderTrackerRows(t *panel.Torrent, rows int) string {
	if len(t.Trackers) == 0 {
		return mutedStyle.Render("  No tracker information")
	}
	var b strings.Builder
	for i, tr := range t.Trackers {
		if i >= rows {
			fmt.Fprintf(&b, "  ... %d more", len(t.Trackers)-i)
			break
		}
		fmt.Fprintf(&b, "  %s  seeds %d  peers %d  leeches %d  %s\n",
			padRight(truncate(tr.Url, m.width-44), m.width-44),
			tr.NumSeeds, tr.NumPeers, tr.NumLeeches, tr.Msg)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatusBar() string {
	help := "/ search  tab panes  enter select  s sort  d dir  p pause  r resume  u upload  c category  q quit"
	msg := m.statusMsg
	if m.actionBusy {
		msg = m.spinner.View() + " " + msg
	}

	left := mutedStyle.Render(help)
	right := msg
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return statusBarStyle.Width(m.width).Render(truncate(right, m.width))
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
