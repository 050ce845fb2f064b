// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feed

import (
	"testing"

	"github.com/google/uuid"
)

// unthrottled limiter so tests never wait on the page throttle
const testRate = 0

func TestLoaderFirstPage(t *testing.T) {
	l := NewLoader(5, testRate)
	session := uuid.New()
	if off := l.Begin(session); off != 1 {
		t.Errorf("Begin() = %d, want 1", off)
	}
	if !l.Complete(session, 1) {
		t.Error("Complete rejected the live session")
	}
}

func TestLoaderNextOffsetFollowsMaxIdx(t *testing.T) {
	l := NewLoader(5, testRate)
	session := uuid.New()
	l.Begin(session)
	l.Complete(session, 1)

	off, ok := l.Next(10)
	if !ok || off != 11 {
		t.Fatalf("Next(10) = (%d, %v), want (11, true)", off, ok)
	}
}

func TestLoaderDuplicateFetchGuard(t *testing.T) {
	l := NewLoader(5, testRate)
	session := uuid.New()
	l.Begin(session)
	l.Complete(session, 1)

	if _, ok := l.Next(10); !ok {
		t.Fatal("first Next(10) denied")
	}
	// same offset while in flight
	if _, ok := l.Next(10); ok {
		t.Error("Next admitted a duplicate in-flight fetch")
	}
	l.Complete(session, 11)
	// same offset after completion
	if _, ok := l.Next(10); ok {
		t.Error("Next admitted a re-fetch of a completed offset")
	}
	// the next page is fine
	if off, ok := l.Next(20); !ok || off != 21 {
		t.Errorf("Next(20) = (%d, %v), want (21, true)", off, ok)
	}
}

func TestLoaderStaleSessionRejected(t *testing.T) {
	l := NewLoader(5, testRate)
	old := uuid.New()
	l.Begin(old)

	l.Begin(uuid.New())

	if l.Complete(old, 1) {
		t.Error("Complete accepted a page from a dead session")
	}
}

func TestLoaderResetOrphansInflight(t *testing.T) {
	l := NewLoader(5, testRate)
	session := uuid.New()
	l.Begin(session)
	l.Complete(session, 1)
	l.Next(10) // page 2 in flight

	l.Reset()

	if l.Complete(session, 11) {
		t.Error("Complete accepted the pending page after Reset")
	}
	if _, ok := l.Next(10); ok {
		t.Error("Next admitted a fetch with no active session")
	}
}

func TestLoaderPageCap(t *testing.T) {
	l := NewLoader(2, testRate)
	session := uuid.New()
	l.Begin(session)
	l.Complete(session, 1)

	off, ok := l.Next(10)
	if !ok {
		t.Fatal("second page denied under cap")
	}
	l.Complete(session, off)

	if _, ok := l.Next(20); ok {
		t.Error("Next admitted a page past the cap")
	}
}

func TestLoaderFailAllowsRetry(t *testing.T) {
	l := NewLoader(5, testRate)
	session := uuid.New()
	l.Begin(session)
	l.Complete(session, 1)

	off, _ := l.Next(10)
	l.Fail(session, off)

	if off2, ok := l.Next(10); !ok || off2 != 11 {
		t.Errorf("Next after Fail = (%d, %v), want (11, true)", off2, ok)
	}
}

func TestLoaderZeroMaxIdxDenied(t *testing.T) {
	l := NewLoader(5, testRate)
	l.Begin(uuid.New())
	if _, ok := l.Next(0); ok {
		t.Error("Next admitted a follow-up page with no results assigned")
	}
}
