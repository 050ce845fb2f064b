// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feed

import (
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Loader guards incremental page fetches for one query session.
//
// It never performs network I/O itself; the UI asks it whether a fetch at
// a given offset may start and tells it when one finishes. The guard
// survives even when automatic paging is configured off, so a fetch can
// never be issued twice for the same offset and a page from a dead
// session can never be admitted.
type Loader struct {
	session  uuid.UUID
	pages    int
	maxPages int
	inflight map[int]bool
	fetched  map[int]bool
	limiter  *rate.Limiter
}

// NewLoader creates a loader. maxPages caps pages per session;
// pagesPerSecond throttles how fast follow-up pages may start, with a
// non-positive value meaning unthrottled.
func NewLoader(maxPages int, pagesPerSecond float64) *Loader {
	limit := rate.Limit(pagesPerSecond)
	if pagesPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Loader{
		maxPages: maxPages,
		inflight: make(map[int]bool),
		fetched:  make(map[int]bool),
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Begin binds the loader to a new query session and admits the first
// page fetch at offset 1.
func (l *Loader) Begin(session uuid.UUID) int {
	l.session = session
	l.pages = 0
	l.inflight = map[int]bool{1: true}
	l.fetched = make(map[int]bool)
	return 1
}

// Reset detaches the loader from its session. Every outstanding fetch
// becomes stale and will be rejected by Complete.
func (l *Loader) Reset() {
	l.session = uuid.UUID{}
	l.pages = 0
	l.inflight = make(map[int]bool)
	l.fetched = make(map[int]bool)
}

// Next admits a follow-up page fetch starting directly after the highest
// assigned result index. Returns (offset, true) when the fetch may start;
// false when one is already in flight or done at that offset, the page
// cap is reached, the rate limiter denies it, or no session is active.
func (l *Loader) Next(maxIdx int) (int, bool) {
	if l.session == (uuid.UUID{}) || maxIdx == 0 {
		return 0, false
	}
	offset := maxIdx + 1
	if l.inflight[offset] || l.fetched[offset] {
		return 0, false
	}
	if l.maxPages > 0 && l.pages >= l.maxPages {
		return 0, false
	}
	if !l.limiter.Allow() {
		return 0, false
	}
	l.inflight[offset] = true
	return offset, true
}

// Complete records the outcome of a fetch. Returns false when the page
// belongs to a dead session and must be discarded.
func (l *Loader) Complete(session uuid.UUID, offset int) bool {
	if session != l.session {
		return false
	}
	delete(l.inflight, offset)
	l.fetched[offset] = true
	l.pages++
	return true
}

// Fail clears an in-flight offset after a fetch error so a later scroll
// may retry it. A failed fetch does not count against the page cap.
func (l *Loader) Fail(session uuid.UUID, offset int) {
	if session != l.session {
		return
	}
	delete(l.inflight, offset)
}
