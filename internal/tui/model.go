// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package tui renders the torrent panel in the terminal with Bubble Tea.
// It owns keyboard and mouse interaction and the derivation pipeline
// that turns polled snapshots into the visible table: filter, then sort,
// then selection lookup. All user-facing state that must survive a poll
// refresh lives in the view-state controller, keyed by stable
// identifiers rather than row indices.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autobrr/tqui/internal/domain"
	"github.com/autobrr/tqui/internal/panel"
	"github.com/autobrr/tqui/internal/poller"
	"github.com/autobrr/tqui/internal/torrents"
	"github.com/autobrr/tqui/internal/view"
)

// focusArea identifies which pane receives navigation keys.
type focusArea int

const (
	focusTable focusArea = iota
	focusSidebar
	focusSearch
)

// modalKind identifies the open overlay, if any.
type modalKind int

const (
	modalNone modalKind = iota
	modalUpload
	modalNewCategory
)

// Messages
type snapshotMsg poller.Snapshot

type tickMsg time.Time

type detailLoadedMsg struct {
	torrent *panel.Torrent
	err     error
}

type actionDoneMsg struct {
	verb string
	err  error
}

type uploadDoneMsg struct {
	err error
}

type categoryCreatedMsg struct {
	name string
	err  error
}

// Model is the root application state.
type Model struct {
	cfg    *domain.Config
	client *panel.Client
	poll   *poller.Poller

	state    *view.State
	criteria []torrents.Criterion

	searchInput textinput.Model
	spinner     spinner.Model

	snapshot    poller.Snapshot
	filtered    []panel.Torrent
	visibleCats []panel.Category

	focus         focusArea
	cursor        int
	offset        int
	sidebarCursor int

	detail        *panel.Torrent
	detailLoading bool

	modal  modalKind
	upload uploadModal
	newCat newCategoryModal

	statusMsg  string
	actionBusy bool

	width  int
	height int
}

// New builds the root model around an already running poller.
func New(cfg *domain.Config, client *panel.Client, poll *poller.Poller) Model {
	ti := textinput.New()
	ti.Placeholder = "Search name, category, hash, server, path..."
	ti.CharLimit = 256
	ti.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		cfg:         cfg,
		client:      client,
		poll:        poll,
		state:       view.NewState(cfg.UI.SidebarWidth, cfg.UI.DetailsHeight),
		criteria:    torrents.DefaultCriteria(),
		searchInput: ti,
		spinner:     sp,
		upload:      newUploadModal(),
		newCat:      newNewCategoryModal(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForSnapshot(),
		tickCmd(),
	)
}

// waitForSnapshot blocks on the poller's update channel and feeds each
// snapshot into the event loop.
func (m Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-m.poll.Updates())
	}
}

// tickCmd drives the refresh-age display in the toolbar.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadDetail(hash string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		torrent, err := m.poll.Torrent(ctx, hash)
		return detailLoadedMsg{torrent: torrent, err: err}
	}
}

func (m Model) pauseSelected() tea.Cmd {
	return m.torrentAction("pause", m.client.PauseTorrents)
}

func (m Model) resumeSelected() tea.Cmd {
	return m.torrentAction("resume", m.client.ResumeTorrents)
}

// startAction flips the busy indicator only when a command was actually
// produced. With no resolvable selection there is no completion message
// to reset it.
func (m Model) startAction(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if cmd == nil {
		return m, nil
	}
	m.actionBusy = true
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) torrentAction(verb string, do func(context.Context, []panel.TorrentRef) error) tea.Cmd {
	selected := m.state.Resolve(m.filtered)
	if selected == nil {
		return nil
	}
	ref := panel.TorrentRef{Server: selected.Server, Hash: selected.InfoHashV1}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := do(ctx, []panel.TorrentRef{ref})
		return actionDoneMsg{verb: verb, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(20, msg.Width/3)

	case spinner.TickMsg:
		// The tick loop runs only while something is in flight; each
		// transition into a busy state re-arms it.
		if m.upload.busy || m.newCat.busy || m.detailLoading || m.actionBusy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())

	case snapshotMsg:
		m.snapshot = poller.Snapshot(msg)
		m.rederive()
		cmds = append(cmds, m.waitForSnapshot())

	case detailLoadedMsg:
		m.detailLoading = false
		if msg.err != nil {
			m.detail = nil
			if msg.err != panel.ErrTorrentNotFound {
				m.statusMsg = "Failed to load details: " + msg.err.Error()
			}
		} else {
			m.detail = msg.torrent
		}

	case actionDoneMsg:
		m.actionBusy = false
		if msg.err != nil {
			m.statusMsg = "Failed to " + msg.verb + ": " + msg.err.Error()
		} else {
			m.statusMsg = "Requested " + msg.verb
			if selected := m.state.Resolve(m.filtered); selected != nil {
				m.poll.InvalidateDetail(selected.InfoHashV1)
			}
			m.poll.Kick()
		}

	case uploadDoneMsg:
		m.upload.busy = false
		if msg.err != nil {
			// The error stays inside the dialog; it never closes it.
			m.upload.err = msg.err.Error()
		} else {
			m.modal = modalNone
			m.upload.reset()
			m.statusMsg = "Torrent uploaded"
			m.poll.Kick()
		}

	case categoryCreatedMsg:
		m.newCat.busy = false
		if msg.err != nil {
			m.newCat.err = msg.err.Error()
		} else {
			m.modal = modalNone
			m.newCat.reset()
			m.statusMsg = "Category created: " + msg.name
		}
	}

	// Keep text inputs animated while focused.
	if m.focus == focusSearch && m.modal == modalNone {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// rederive rebuilds the visible table from the current snapshot and view
// state: filter first, then sort, then put the cursor back on the
// selected torrent if it is still visible.
func (m *Model) rederive() {
	m.filtered = torrents.Filter(m.snapshot.Torrents, m.state.SearchQuery)
	m.visibleCats = torrents.VisibleCategories(m.snapshot.Categories, m.filtered, m.state.SearchQuery)

	sorted := make([]panel.Torrent, len(m.filtered))
	copy(sorted, m.filtered)
	torrents.Apply(sorted, m.criteria)
	m.filtered = sorted

	if m.sidebarCursor > len(m.visibleCats) {
		m.sidebarCursor = 0
	}

	// Follow the selection by hash rather than letting the cursor drift
	// to whatever row now sits at its index.
	if m.state.SelectedHash != "" {
		for i := range m.filtered {
			if m.filtered[i].InfoHashV1 == m.state.SelectedHash {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.clampScroll()
}

// setSort applies a header click or sort key to the criteria list.
func (m *Model) setSort(field torrents.SortField) {
	m.criteria = torrents.SetPrimarySort(m.criteria, field)
	m.rederive()
}

// selectCursorRow records the torrent under the cursor as the selection
// and starts loading its detail.
func (m *Model) selectCursorRow() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	hash := m.filtered[m.cursor].InfoHashV1
	m.state.SelectTorrent(hash)
	m.detailLoading = true
	return tea.Batch(m.loadDetail(hash), m.spinner.Tick)
}

// applyCategoryState records the sidebar selection; entry 0 is "All".
func (m *Model) applyCategoryState() {
	if m.sidebarCursor == 0 {
		m.state.SelectCategory(nil)
		return
	}
	idx := m.sidebarCursor - 1
	if idx >= len(m.visibleCats) {
		return
	}
	name := m.visibleCats[idx].Name
	m.state.SelectCategory(&name)
}

// applyCategory pushes the sidebar selection into both view state and
// the poller's server-side filter, which re-polls immediately.
func (m *Model) applyCategory() {
	m.applyCategoryState()
	if m.state.SelectedCategory == nil {
		m.poll.SetCategories(nil)
		return
	}
	m.poll.SetCategories([]string{*m.state.SelectedCategory})
}

func (m *Model) setSearch(query string) {
	m.state.SetSearchQuery(query)
	m.rederive()
}
