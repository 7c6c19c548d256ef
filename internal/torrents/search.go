// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import (
	"strings"

	"github.com/autobrr/tqui/internal/panel"
)

// Filter returns the torrents matching a free-text query: case-insensitive
// substring against any of name, category, info hash, server, or save
// path. An empty or whitespace-only query returns the input unchanged.
// Relative order is always preserved; there is no ranking.
func Filter(all []panel.Torrent, query string) []panel.Torrent {
	if strings.TrimSpace(query) == "" {
		return all
	}

	q := strings.ToLower(query)
	var matched []panel.Torrent
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Category), q) ||
			strings.Contains(strings.ToLower(t.InfoHashV1), q) ||
			strings.Contains(strings.ToLower(t.Server), q) ||
			strings.Contains(strings.ToLower(t.SavePath), q) {
			matched = append(matched, t)
		}
	}
	return matched
}

// VisibleCategories derives the sidebar's category list from torrent
// search results: with no query every category is visible; under a query
// only categories named by at least one matching torrent remain. Category
// visibility is never searched independently. A torrent with an empty
// Category can never surface a category here, since no category entity has
// an empty name.
func VisibleCategories(all []panel.Category, filtered []panel.Torrent, query string) []panel.Category {
	if strings.TrimSpace(query) == "" {
		return all
	}

	inResults := make(map[string]struct{}, len(filtered))
	for _, t := range filtered {
		inResults[t.Category] = struct{}{}
	}

	var visible []panel.Category
	for _, c := range all {
		if _, ok := inResults[c.Name]; ok {
			visible = append(visible, c)
		}
	}
	return visible
}
