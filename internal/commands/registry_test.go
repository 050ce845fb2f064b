// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "testing"

func TestDefaultsIsValid(t *testing.T) {
	r, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() error = %v", err)
	}
	for _, name := range []string{"help", "search", "chat", "reset", "model", "prompt", "uptime", "bookmarks"} {
		if _, ok := r.Resolve(name); !ok {
			t.Errorf("Resolve(%q) = false, want registered", name)
		}
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	r, _ := Defaults()
	if _, ok := r.Resolve("Help"); ok {
		t.Error(`Resolve("Help") matched; dispatch must be case-sensitive`)
	}
	if _, ok := r.Resolve("HELP"); ok {
		t.Error(`Resolve("HELP") matched; dispatch must be case-sensitive`)
	}
}

func TestShortcutResolvesToSameCommand(t *testing.T) {
	r, _ := Defaults()
	byName, ok1 := r.Resolve("help")
	byShortcut, ok2 := r.Resolve("h")
	if !ok1 || !ok2 {
		t.Fatal("help not resolvable by name and shortcut")
	}
	if byName != byShortcut {
		t.Error("name and shortcut resolve to different commands")
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Command{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&Command{Name: "x"}); err == nil {
		t.Error("Register accepted a duplicate name")
	}
}

func TestRegisterRejectsShortcutCollisions(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Command{Name: "first", Shortcut: "f"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&Command{Name: "second", Shortcut: "f"}); err == nil {
		t.Error("Register accepted a duplicate shortcut")
	}
	// a shortcut colliding with an existing name is also fatal
	if err := r.Register(&Command{Name: "third", Shortcut: "first"}); err == nil {
		t.Error("Register accepted a shortcut shadowing a name")
	}
	// and a name colliding with an existing shortcut
	if err := r.Register(&Command{Name: "f"}); err == nil {
		t.Error("Register accepted a name shadowing a shortcut")
	}
}

func TestVisibleOmitsHidden(t *testing.T) {
	r, _ := Defaults()
	for _, cmd := range r.Visible() {
		if cmd.Name == "chat" {
			t.Error("hidden chat command listed in Visible()")
		}
	}
	if len(r.Visible()) == 0 {
		t.Error("Visible() is empty")
	}
}
