// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the typed HTTP client for the gsearch backend.
//
// Every method performs exactly one request attempt. Transport failures,
// non-2xx statuses, and malformed payloads are returned as errors for the
// caller to log; nothing in this package retries or falls back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultTimeout is the per-request timeout when the config gives none.
	DefaultTimeout = 20 * time.Second

	// MaxResponseSize caps response bodies (2MB). The search proxy returns
	// a page of ten results; anything near this limit is garbage.
	MaxResponseSize = 2 * 1024 * 1024
)

// Sentinel errors.
var (
	// ErrNoResults indicates the search proxy had nothing for the query
	// (HTTP 404 from /api/search).
	ErrNoResults = errors.New("no results")

	// ErrEmptyQuery indicates a blank query was refused client-side.
	ErrEmptyQuery = errors.New("empty query")
)

// Error is a non-2xx reply from the gsearch server.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// sharedHTTPClient is reused across requests for connection pooling.
var sharedHTTPClient = &http.Client{
	Timeout: DefaultTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	},
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to one gsearch server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL. A non-positive
// timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := sharedHTTPClient
	if timeout > 0 && timeout != DefaultTimeout {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: sharedHTTPClient.Transport,
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the configured server base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search fetches one page of web results. start is the 1-based index of
// the first result wanted; pass 1 for the first page. A 404 from the
// proxy maps to ErrNoResults.
func (c *Client) Search(ctx context.Context, query string, start int) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	if start > 1 {
		params.Set("start", strconv.Itoa(start))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var out SearchResponse
	if err := c.do(req, &out); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrNoResults
		}
		return nil, err
	}
	return &out, nil
}

// Command forwards a slash command to the server. The server resolves the
// command name itself; unknown names come back as a normal CmdResponse
// with an explanatory Data string.
func (c *Client) Command(ctx context.Context, cmd, args string, history []ChatMessage) (*CmdResponse, error) {
	if history == nil {
		history = []ChatMessage{}
	}
	body, err := json.Marshal(CmdRequest{Cmd: cmd, Args: args, History: history})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/cmd", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// /api/cmd reports handler errors with a 4xx/5xx status AND a JSON
	// CmdResponse body carrying the error string. Decode before checking
	// status so the message survives.
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out CmdResponse
	if decErr := json.Unmarshal(data, &out); decErr != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &Error{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to decode response: %w", decErr)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{StatusCode: resp.StatusCode, Message: out.Error}
	}
	return &out, nil
}

// Chat sends the conversation history (ending with the user's new turn in
// args) through the server-side chat command.
func (c *Client) Chat(ctx context.Context, line string, history []ChatMessage) (*CmdResponse, error) {
	return c.Command(ctx, "chat", line, history)
}

// Models fetches the chat model names the server offers. A server
// without a model list returns an empty slice, not an error.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/chat/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	var out struct {
		Data []string `json:"data"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Bookmarks fetches the saved bookmark list.
func (c *Client) Bookmarks(ctx context.Context) ([]Bookmark, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/bookmarks", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	var out []Bookmark
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddBookmark saves a bookmark on the server. Adding a name that already
// exists is a server-side no-op.
func (c *Client) AddBookmark(ctx context.Context, b Bookmark) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/bookmarks/add", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

// RemoveBookmark deletes the bookmark with the given name.
func (c *Client) RemoveBookmark(ctx context.Context, name string) error {
	params := url.Values{}
	params.Set("name", name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/bookmarks/rem?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, nil)
}

// do executes req, checks the status, and decodes a JSON body into out
// when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
