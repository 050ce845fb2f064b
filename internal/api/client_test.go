// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		assert.Equal(t, "11", r.URL.Query().Get("start"))
		json.NewEncoder(w).Encode(SearchResponse{
			Items: []SearchItem{
				{Title: "The Go Programming Language", Link: "https://go.dev/", Snippet: "Build simple, secure, scalable systems"},
			},
			Spelling: &Spelling{CorrectedQuery: "golang"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	resp, err := c.Search(context.Background(), "golang", 11)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "https://go.dev/", resp.Items[0].Link)
	require.NotNil(t, resp.Spelling)
	assert.Equal(t, "golang", resp.Spelling.CorrectedQuery)
}

func TestSearchFirstPageOmitsStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("start"))
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Search(context.Background(), "q", 1)
	require.NoError(t, err)
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Search(context.Background(), "nothing", 1)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchEmptyQuery(t *testing.T) {
	_, err := NewClient("http://unused.invalid", 0).Search(context.Background(), "   ", 1)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cmd", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req CmdRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "chat", req.Cmd)
		assert.Equal(t, "hello there", req.Args)
		require.Len(t, req.History, 2)
		assert.Equal(t, RoleUser, req.History[0].Role)

		json.NewEncoder(w).Encode(CmdResponse{Data: "General Kenobi", Markdown: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	history := []ChatMessage{{Role: RoleUser, Content: "hi"}, {Role: RoleSystem, Content: "hello"}}
	resp, err := c.Chat(context.Background(), "hello there", history)
	require.NoError(t, err)
	assert.Equal(t, "General Kenobi", resp.Data)
	assert.True(t, resp.Markdown)
}

func TestCommandSendsEmptyHistoryArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		// history must be [] on the wire, never null
		assert.Equal(t, "[]", string(raw["history"]))
		json.NewEncoder(w).Encode(CmdResponse{Data: "ok"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Command(context.Background(), "uptime", "", nil)
	require.NoError(t, err)
}

func TestCommandServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CmdResponse{Error: "Missing message"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Command(context.Background(), "chat", "", nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Missing message")
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/models", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string][]string{"data": {"gpt-4o", "o3-mini"}})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 0).Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "o3-mini"}, got)
}

func TestModelsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []string{}})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 0).Models(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBookmarks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookmarks", r.URL.Path)
		json.NewEncoder(w).Encode([]Bookmark{
			{URL: "https://news.ycombinator.com", Name: "hn", Shortcut: "h"},
		})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 0).Bookmarks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hn", got[0].Name)
}

func TestRemoveBookmark(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookmarks/rem", r.URL.Path)
		assert.Equal(t, "hn", r.URL.Query().Get("name"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, 0).RemoveBookmark(context.Background(), "hn")
	require.NoError(t, err)
}

func TestMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Search(context.Background(), "q", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
