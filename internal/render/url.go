// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"net/url"
	"strings"
)

// hostRewrites maps mobile/legacy hostnames to the variant worth opening
// in a terminal browser. Applied before a result link is rendered.
var hostRewrites = map[string]string{
	"en.m.wikipedia.org": "en.wikipedia.org",
	"www.reddit.com":     "old.reddit.com",
}

// RewriteURL swaps known mobile/legacy hosts for their preferred variant.
// Unknown hosts and unparseable URLs pass through unchanged.
func RewriteURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	if replacement, ok := hostRewrites[strings.ToLower(u.Hostname())]; ok {
		if port := u.Port(); port != "" {
			u.Host = replacement + ":" + port
		} else {
			u.Host = replacement
		}
		return u.String()
	}
	return raw
}

// Breadcrumb renders a result URL as "host > segment > segment" with
// percent-encoding decoded. Empty path segments are dropped, so
// "https://openai.com/blog" and "https://openai.com/blog/" both come out
// as "openai.com > blog".
func Breadcrumb(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	parts := []string{u.Hostname()}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		if decoded, err := url.PathUnescape(seg); err == nil {
			seg = decoded
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, " > ")
}

// FaviconURL derives the favicon reference for a result from its scheme
// and host only; the path never participates. Returns "" when the URL has
// no usable host.
func FaviconURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico"
}
