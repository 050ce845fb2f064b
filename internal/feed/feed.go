// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed maintains the ordered log of everything shown to the user.
//
// The log is the source of truth: the viewport's content is a projection
// of it, and the conversation history sent to the server is recovered
// from it. Each /search starts a new query session identified by a UUID
// token; result pages arriving for an older token are discarded.
package feed

import (
	"github.com/google/uuid"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/render"
)

// Entry is one item in the log. Role and Content are set only on entries
// that participate in conversation history; an entry carrying one without
// the other is invisible to History.
type Entry struct {
	Template string // render template name
	Data     any    // template data

	Role    string
	Content string

	Session uuid.UUID // owning query session, zero for non-results
	Idx     int       // 1-based result index, 0 for non-results
}

// ChatEntry builds a conversation turn entry. These are the only entries
// History recovers.
func ChatEntry(role, content string, markdown bool) Entry {
	return Entry{
		Template: render.TemplateChat,
		Data:     render.ChatLine{Role: role, Content: content, Markdown: markdown},
		Role:     role,
		Content:  content,
	}
}

// EchoEntry builds a user-styled echo of an input line that must stay out
// of conversation history, such as a /search invocation.
func EchoEntry(text string) Entry {
	return Entry{
		Template: render.TemplateChat,
		Data:     render.ChatLine{Role: "user", Content: text},
	}
}

// BannerEntry builds a one-line notice entry.
func BannerEntry(text string) Entry {
	return Entry{Template: render.TemplateBanner, Data: render.Banner{Text: text}}
}

// ErrorEntry builds a user-visible failure notice.
func ErrorEntry(text string) Entry {
	return Entry{Template: render.TemplateError, Data: render.ErrorLine{Text: text}}
}

// TextEntry builds a free-form server response entry.
func TextEntry(body string, markdown bool) Entry {
	return Entry{Template: render.TemplateText, Data: render.Text{Body: body, Markdown: markdown}}
}

// ListEntry builds a bulleted list entry.
func ListEntry(items []string) Entry {
	return Entry{Template: render.TemplateList, Data: render.List{Items: items}}
}

// TableEntry builds a column-aligned table entry.
func TableEntry(columns []string, rows [][]string) Entry {
	return Entry{Template: render.TemplateTable, Data: render.Table{Columns: columns, Rows: rows}}
}

// Feed is the ordered entry log for one client session.
type Feed struct {
	entries []Entry
	session uuid.UUID
	query   string
	maxIdx  int
}

// New creates an empty feed with a fresh session token.
func New() *Feed {
	return &Feed{session: uuid.New()}
}

// Session returns the current query session token.
func (f *Feed) Session() uuid.UUID {
	return f.session
}

// Query returns the query the current session was started for.
func (f *Feed) Query() string {
	return f.query
}

// MaxIdx returns the highest result index assigned in this session.
func (f *Feed) MaxIdx() int {
	return f.maxIdx
}

// Len returns the number of entries in the log.
func (f *Feed) Len() int {
	return len(f.entries)
}

// Entries returns the log in insertion order. The returned slice is
// shared; callers must not mutate it.
func (f *Feed) Entries() []Entry {
	return f.entries
}

// LastIsResult reports whether the newest entry is a result card. Paging
// only triggers while results are the bottom of the feed.
func (f *Feed) LastIsResult() bool {
	if len(f.entries) == 0 {
		return false
	}
	return f.entries[len(f.entries)-1].Idx > 0
}

// Reset clears the log and issues a new session token, orphaning every
// in-flight fetch. Resetting an empty feed is harmless.
func (f *Feed) Reset() {
	f.entries = nil
	f.session = uuid.New()
	f.query = ""
	f.maxIdx = 0
}

// StartQuery begins a new query session without clearing prior entries;
// earlier results stay visible but their session is dead, so their pages
// can no longer grow.
func (f *Feed) StartQuery(query string) uuid.UUID {
	f.session = uuid.New()
	f.query = query
	f.maxIdx = 0
	return f.session
}

// Append adds a non-result entry to the log.
func (f *Feed) Append(e Entry) {
	f.entries = append(f.entries, e)
}

// AppendChat adds a conversation turn.
func (f *Feed) AppendChat(role, content string, markdown bool) {
	f.entries = append(f.entries, ChatEntry(role, content, markdown))
}

// AppendBanner adds a one-line notice.
func (f *Feed) AppendBanner(text string) {
	f.entries = append(f.entries, BannerEntry(text))
}

// AppendError adds a user-visible failure notice.
func (f *Feed) AppendError(text string) {
	f.entries = append(f.entries, ErrorEntry(text))
}

// AppendResult adds one result card for the given session, assigning the
// next index in the session. Returns false without mutating the log when
// the session token is stale.
func (f *Feed) AppendResult(session uuid.UUID, card render.ResultCard) bool {
	if session != f.session {
		return false
	}
	f.maxIdx++
	card.Index = f.maxIdx
	f.entries = append(f.entries, Entry{
		Template: render.TemplateResult,
		Data:     card,
		Session:  session,
		Idx:      f.maxIdx,
	})
	return true
}

// History recovers the conversation from the log. Only entries carrying
// both a role and content contribute; result cards, banners, and partial
// entries are skipped. The slice is freshly allocated and safe to send.
func (f *Feed) History() []api.ChatMessage {
	history := make([]api.ChatMessage, 0, len(f.entries))
	for _, e := range f.entries {
		if e.Role == "" || e.Content == "" {
			continue
		}
		history = append(history, api.ChatMessage{Role: e.Role, Content: e.Content})
	}
	return history
}
