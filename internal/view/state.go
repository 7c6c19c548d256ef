// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package view holds the interactive state of the torrent panel that must
// survive poll refreshes: category and torrent selection, search text,
// the active detail tab, and resizable pane geometry. Torrent snapshots
// are replaced wholesale every poll, so everything here is keyed by
// stable identifiers rather than references into a snapshot.
package view

import (
	"github.com/autobrr/tqui/internal/panel"
)

// DetailTab identifies the open tab of the torrent detail pane.
type DetailTab int

const (
	TabGeneral DetailTab = iota
	TabFiles
	TabTrackers
)

func (t DetailTab) String() string {
	switch t {
	case TabFiles:
		return "files"
	case TabTrackers:
		return "trackers"
	default:
		return "general"
	}
}

// resizeMode is a single state machine for drag resizing. Exactly one
// pane can be resizing at a time; independent per-pane flags would allow
// both at once with undefined precedence.
type resizeMode int

const (
	resizeIdle resizeMode = iota
	resizeSidebar
	resizeDetails
)

// Pane geometry bounds, in layout units measured from the pane's near
// edge (sidebar) or far edge (details).
const (
	SidebarMinWidth  = 150
	SidebarMaxWidth  = 500
	DetailsMinHeight = 150
	DetailsMaxHeight = 600
)

// State is the view-state controller. It is owned by the UI event loop
// and never written concurrently, so it carries no lock.
type State struct {
	// SelectedCategory is nil for "All". The value feeds the server-side
	// categories filter on the next poll; changing it resets nothing else.
	SelectedCategory *string

	// SelectedHash is the info hash of the selected torrent. It is never
	// cleared when the hash goes missing from a poll, so the selection
	// comes back if the torrent reappears later.
	SelectedHash string

	SearchQuery string
	ActiveTab   DetailTab

	SidebarWidth  int
	DetailsHeight int

	resizing resizeMode
}

// NewState returns view state with the given initial pane geometry,
// clamped to the allowed ranges.
func NewState(sidebarWidth, detailsHeight int) *State {
	return &State{
		SidebarWidth:  clamp(sidebarWidth, SidebarMinWidth, SidebarMaxWidth),
		DetailsHeight: clamp(detailsHeight, DetailsMinHeight, DetailsMaxHeight),
	}
}

// SelectCategory sets the sidebar category filter; nil selects "All".
func (s *State) SelectCategory(name *string) {
	s.SelectedCategory = name
}

// SelectTorrent records the selection by info hash.
func (s *State) SelectTorrent(hash string) {
	s.SelectedHash = hash
}

// SetSearchQuery replaces the free-text filter.
func (s *State) SetSearchQuery(query string) {
	s.SearchQuery = query
}

// SetActiveTab switches the open detail tab.
func (s *State) SetActiveTab(tab DetailTab) {
	s.ActiveTab = tab
}

// Resolve looks the selection up in a fresh snapshot. A nil return means
// the selected hash is absent from this poll; callers render an empty
// detail pane but the hash stays stored.
func (s *State) Resolve(torrents []panel.Torrent) *panel.Torrent {
	if s.SelectedHash == "" {
		return nil
	}
	for i := range torrents {
		if torrents[i].InfoHashV1 == s.SelectedHash {
			return &torrents[i]
		}
	}
	return nil
}

// BeginSidebarResize enters sidebar drag mode. A drag already in
// progress on the other pane is taken over rather than stacked.
func (s *State) BeginSidebarResize() {
	s.resizing = resizeSidebar
}

// BeginDetailsResize enters details-pane drag mode.
func (s *State) BeginDetailsResize() {
	s.resizing = resizeDetails
}

// Resizing reports whether a drag is in progress.
func (s *State) Resizing() bool {
	return s.resizing != resizeIdle
}

// Drag applies a pointer position during a drag. The sidebar tracks the
// pointer's horizontal offset; the details pane tracks the distance from
// the pointer to the viewport's bottom edge. Both are clamped. Outside a
// drag this is a no-op, so stray movement events cannot resize anything.
func (s *State) Drag(x, y, viewportHeight int) {
	switch s.resizing {
	case resizeSidebar:
		s.SidebarWidth = clamp(x, SidebarMinWidth, SidebarMaxWidth)
	case resizeDetails:
		s.DetailsHeight = clamp(viewportHeight-y, DetailsMinHeight, DetailsMaxHeight)
	}
}

// EndResize leaves drag mode. Safe to call unconditionally on any
// terminal pointer event, including when no drag is active, so a missed
// release can never leave a drag stuck on.
func (s *State) EndResize() {
	s.resizing = resizeIdle
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
