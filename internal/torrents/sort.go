// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torrents

import (
	"sort"
	"strings"

	"github.com/autobrr/tqui/internal/panel"
)

// SortField identifies a sortable torrent column.
type SortField string

const (
	SortByName     SortField = "Name"
	SortBySize     SortField = "SizeBytes"
	SortByProgress SortField = "Progress"
	SortByRatio    SortField = "Ratio"
	SortByAddedOn  SortField = "AddedOn"
	SortByCategory SortField = "Category"
	SortByServer   SortField = "Server"
	SortBySavePath SortField = "SavePath"
	SortByState    SortField = "State"
)

// Criterion is one level of a sort-priority list.
type Criterion struct {
	Field SortField
	Desc  bool
}

// DefaultCriteria is the initial table order: newest first, names
// ascending within the same added time.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{Field: SortByAddedOn, Desc: true},
		{Field: SortByName, Desc: false},
	}
}

// SetPrimarySort returns the criteria after a header click on field.
// Clicking the current primary toggles its direction; clicking another
// field makes it the new descending-off primary. The invariant enforced
// here, not left to callers: any non-Name primary always carries exactly
// one ascending-Name tie-break and nothing else, so the resulting order is
// total. Name as primary stands alone.
func SetPrimarySort(criteria []Criterion, field SortField) []Criterion {
	desc := false
	if len(criteria) > 0 && criteria[0].Field == field {
		desc = !criteria[0].Desc
	}

	if field == SortByName {
		return []Criterion{{Field: SortByName, Desc: desc}}
	}
	return []Criterion{
		{Field: field, Desc: desc},
		{Field: SortByName, Desc: false},
	}
}

// Apply stable-sorts torrents by the criteria list: the first unequal
// field decides, numeric fields compare numerically, string fields
// case-sensitively in byte order (a known simplification).
func Apply(torrents []panel.Torrent, criteria []Criterion) {
	sort.SliceStable(torrents, func(i, j int) bool {
		for _, c := range criteria {
			cmp := compareField(&torrents[i], &torrents[j], c.Field)
			if cmp == 0 {
				continue
			}
			if c.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareField(a, b *panel.Torrent, field SortField) int {
	switch field {
	case SortBySize:
		return compareInt64(a.SizeBytes, b.SizeBytes)
	case SortByAddedOn:
		return compareInt64(a.AddedOn, b.AddedOn)
	case SortByRatio:
		return compareFloat(a.Ratio, b.Ratio)
	case SortByProgress:
		return compareFloat(AggregateProgress(a.Files), AggregateProgress(b.Files))
	case SortByCategory:
		return strings.Compare(a.Category, b.Category)
	case SortByServer:
		return strings.Compare(a.Server, b.Server)
	case SortBySavePath:
		return strings.Compare(a.SavePath, b.SavePath)
	case SortByState:
		return strings.Compare(string(a.State), string(b.State))
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
