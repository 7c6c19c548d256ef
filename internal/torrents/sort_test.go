// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/tqui/internal/panel"
)

func TestDefaultCriteria(t *testing.T) {
	got := DefaultCriteria()

	require.Len(t, got, 2)
	assert.Equal(t, Criterion{Field: SortByAddedOn, Desc: true}, got[0])
	assert.Equal(t, Criterion{Field: SortByName, Desc: false}, got[1])
}

func TestSetPrimarySort(t *testing.T) {
	tests := []struct {
		name    string
		current []Criterion
		field   SortField
		want    []Criterion
	}{
		{
			name:    "new field starts ascending",
			current: DefaultCriteria(),
			field:   SortBySize,
			want: []Criterion{
				{Field: SortBySize, Desc: false},
				{Field: SortByName, Desc: false},
			},
		},
		{
			name: "clicking the primary toggles direction",
			current: []Criterion{
				{Field: SortBySize, Desc: false},
				{Field: SortByName, Desc: false},
			},
			field: SortBySize,
			want: []Criterion{
				{Field: SortBySize, Desc: true},
				{Field: SortByName, Desc: false},
			},
		},
		{
			name: "toggling back to ascending",
			current: []Criterion{
				{Field: SortBySize, Desc: true},
				{Field: SortByName, Desc: false},
			},
			field: SortBySize,
			want: []Criterion{
				{Field: SortBySize, Desc: false},
				{Field: SortByName, Desc: false},
			},
		},
		{
			name:    "name primary stands alone",
			current: DefaultCriteria(),
			field:   SortByName,
			want:    []Criterion{{Field: SortByName, Desc: false}},
		},
		{
			name:    "name primary toggles without a tie-break",
			current: []Criterion{{Field: SortByName, Desc: false}},
			field:   SortByName,
			want:    []Criterion{{Field: SortByName, Desc: true}},
		},
		{
			name:    "leaving name restores the tie-break",
			current: []Criterion{{Field: SortByName, Desc: true}},
			field:   SortByRatio,
			want: []Criterion{
				{Field: SortByRatio, Desc: false},
				{Field: SortByName, Desc: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SetPrimarySort(tt.current, tt.field)
			assert.Equal(t, tt.want, got)

			if got[0].Field != SortByName {
				require.Len(t, got, 2)
				assert.Equal(t, Criterion{Field: SortByName, Desc: false}, got[1])
			} else {
				require.Len(t, got, 1)
			}
		})
	}
}

func TestApplySortsByCriteria(t *testing.T) {
	list := []panel.Torrent{
		{Name: "b", SizeBytes: 100, AddedOn: 3},
		{Name: "a", SizeBytes: 300, AddedOn: 1},
		{Name: "c", SizeBytes: 200, AddedOn: 2},
	}

	Apply(list, []Criterion{{Field: SortBySize, Desc: true}, {Field: SortByName, Desc: false}})

	assert.Equal(t, []string{"a", "c", "b"}, names(list))
}

func TestApplyNameTieBreak(t *testing.T) {
	list := []panel.Torrent{
		{Name: "charlie", SizeBytes: 100},
		{Name: "alpha", SizeBytes: 100},
		{Name: "bravo", SizeBytes: 100},
	}

	Apply(list, SetPrimarySort(DefaultCriteria(), SortBySize))

	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names(list))
}

func TestApplyProgressComparesAggregate(t *testing.T) {
	list := []panel.Torrent{
		{Name: "half", Files: []panel.File{{Progress: 0.2}, {Progress: 0.8}}},
		{Name: "done", Files: []panel.File{{Progress: 1}}},
		{Name: "empty"},
	}

	Apply(list, []Criterion{{Field: SortByProgress, Desc: false}, {Field: SortByName, Desc: false}})

	assert.Equal(t, []string{"empty", "half", "done"}, names(list))
}

// Exercises a search, category derivation, and sort the way the table view
// drives them together.
func TestSearchThenSortRoundTrip(t *testing.T) {
	all := []panel.Torrent{
		{Name: "Alpha", Category: "movies", SizeBytes: 100, AddedOn: 1},
		{Name: "Beta", Category: "tv", SizeBytes: 200, AddedOn: 2},
	}
	categories := []panel.Category{{Name: "movies"}, {Name: "tv"}}

	filtered := Filter(all, "alp")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Alpha", filtered[0].Name)

	visible := VisibleCategories(categories, filtered, "alp")
	require.Len(t, visible, 1)
	assert.Equal(t, "movies", visible[0].Name)

	sorted := Filter(all, "")
	Apply(sorted, SetPrimarySort([]Criterion{
		{Field: SortBySize, Desc: false},
		{Field: SortByName, Desc: false},
	}, SortBySize))

	assert.Equal(t, []string{"Beta", "Alpha"}, names(sorted))
}

func names(list []panel.Torrent) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Name)
	}
	return out
}
