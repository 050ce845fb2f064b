// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ranking re-orders search results client-side.
//
// Scoring is two-step. Every result first receives a positional baseline
// of 100+i, where i is its index in the server response, so untouched
// results keep the server's order with room below for pinned hosts. Then
// the configured priority table is applied in declaration order: each
// entry whose host substring matches the result's hostname overwrites the
// score, so when several entries match the one declared last wins. The
// final order is a stable ascending sort on score.
//
// Rank is pure: it never mutates its inputs and identical inputs always
// produce identical output.
package ranking

import (
	"net/url"
	"sort"
	"strings"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/config"
)

// baselineOffset keeps positional scores above every sane priority score.
const baselineOffset = 100

// Ranked pairs a search result with its computed score.
type Ranked struct {
	Item  api.SearchItem
	Score int
}

// Rank scores and sorts one page of results. The sort is stable, so
// results with equal scores keep their response order.
func Rank(items []api.SearchItem, table []config.PriorityEntry) []Ranked {
	ranked := make([]Ranked, len(items))
	for i, item := range items {
		score := baselineOffset + i
		host := hostOf(item)
		for _, entry := range table {
			if strings.Contains(host, entry.Host) {
				score = entry.Score
			}
		}
		ranked[i] = Ranked{Item: item, Score: score}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score < ranked[b].Score
	})
	return ranked
}

// hostOf extracts the hostname a priority entry matches against. The
// link URL is authoritative; DisplayLink covers results whose link does
// not parse.
func hostOf(item api.SearchItem) string {
	if u, err := url.Parse(item.Link); err == nil && u.Hostname() != "" {
		return strings.ToLower(u.Hostname())
	}
	return strings.ToLower(item.DisplayLink)
}
