// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/tqui/internal/panel"
)

func searchFixture() []panel.Torrent {
	return []panel.Torrent{
		{Name: "Ubuntu 24.04 ISO", Category: "linux", InfoHashV1: "aaa111", Server: "home", SavePath: "/downloads/iso"},
		{Name: "Some Movie", Category: "movies", InfoHashV1: "bbb222", Server: "seedbox", SavePath: "/downloads/movies"},
		{Name: "Another Movie", Category: "movies", InfoHashV1: "ccc333", Server: "home", SavePath: "/downloads/movies"},
		{Name: "Podcast Archive", Category: "", InfoHashV1: "ddd444", Server: "seedbox", SavePath: "/downloads/audio"},
	}
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	all := searchFixture()

	assert.Equal(t, all, Filter(all, ""))
	assert.Equal(t, all, Filter(all, "   "))
}

func TestFilterMatchesAnyField(t *testing.T) {
	all := searchFixture()

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{name: "name substring", query: "ubuntu", wantNames: []string{"Ubuntu 24.04 ISO"}},
		{name: "case insensitive", query: "UBUNTU", wantNames: []string{"Ubuntu 24.04 ISO"}},
		{name: "category", query: "movies", wantNames: []string{"Some Movie", "Another Movie"}},
		{name: "info hash", query: "ddd4", wantNames: []string{"Podcast Archive"}},
		{name: "server", query: "seedbox", wantNames: []string{"Some Movie", "Podcast Archive"}},
		{name: "save path", query: "/iso", wantNames: []string{"Ubuntu 24.04 ISO"}},
		{name: "no match", query: "zzz", wantNames: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(all, tt.query)

			var names []string
			for _, torrent := range got {
				names = append(names, torrent.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	all := searchFixture()

	got := Filter(all, "movie")

	require.Len(t, got, 2)
	assert.Equal(t, "Some Movie", got[0].Name)
	assert.Equal(t, "Another Movie", got[1].Name)
}

func TestVisibleCategories(t *testing.T) {
	categories := []panel.Category{
		{Name: "linux"},
		{Name: "movies"},
		{Name: "books"},
	}
	all := searchFixture()

	t.Run("empty query shows all", func(t *testing.T) {
		assert.Equal(t, categories, VisibleCategories(categories, all, ""))
	})

	t.Run("restricted to matched torrents", func(t *testing.T) {
		filtered := Filter(all, "movie")

		got := VisibleCategories(categories, filtered, "movie")

		require.Len(t, got, 1)
		assert.Equal(t, "movies", got[0].Name)
	})

	t.Run("category name itself is not searched", func(t *testing.T) {
		filtered := Filter(all, "books")

		got := VisibleCategories(categories, filtered, "books")

		assert.Empty(t, got)
	})

	t.Run("uncategorized match surfaces nothing", func(t *testing.T) {
		filtered := Filter(all, "podcast")

		got := VisibleCategories(categories, filtered, "podcast")

		assert.Empty(t, got)
	})
}
