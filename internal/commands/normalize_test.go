// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		wantOK   bool
		wantName string
		wantArgs string
		implicit bool
	}{
		{"/help", true, "help", "", false},
		{"/search golang generics", true, "search", "golang generics", false},
		{"  /h  ", true, "h", "", false},
		{"/chat what is go", true, "chat", "what is go", false},
		{"what is go", true, "chat", "what is go", true},
		{"foo", true, "chat", "foo", true},
		{"/model gpt-4o", true, "model", "gpt-4o", false},
		{"/search  spaced   args ", true, "search", "spaced   args", false},
		{"", false, "", "", false},
		{"   ", false, "", "", false},
		{"/", false, "", "", false},
		{"/Help", true, "Help", "", false}, // dispatch decides it's unknown
	}
	for _, tt := range tests {
		inv, ok := Normalize(tt.input)
		if ok != tt.wantOK {
			t.Errorf("Normalize(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if inv.Name != tt.wantName {
			t.Errorf("Normalize(%q).Name = %q, want %q", tt.input, inv.Name, tt.wantName)
		}
		if inv.Args != tt.wantArgs {
			t.Errorf("Normalize(%q).Args = %q, want %q", tt.input, inv.Args, tt.wantArgs)
		}
		if inv.Implicit != tt.implicit {
			t.Errorf("Normalize(%q).Implicit = %v, want %v", tt.input, inv.Implicit, tt.implicit)
		}
	}
}

func TestImplicitChatMatchesExplicit(t *testing.T) {
	bare, ok1 := Normalize("what is go")
	explicit, ok2 := Normalize("/chat what is go")
	if !ok1 || !ok2 {
		t.Fatal("Normalize rejected valid input")
	}
	if bare.Name != explicit.Name || bare.Args != explicit.Args {
		t.Errorf("bare = %+v, explicit = %+v; want same name and args", bare, explicit)
	}
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"  /help", true},
		{"help", false},
		{"/", false},
		{"", false},
		{"what is /help", false},
	}
	for _, tt := range tests {
		if got := IsCommand(tt.input); got != tt.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
