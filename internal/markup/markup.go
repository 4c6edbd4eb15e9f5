// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markup reduces rich-text content to its visible text so that
// length rules count what a reader actually sees, not tags and attributes.
package markup

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag and attribute, leaving only text nodes.
var strict = bluemonday.StrictPolicy()

// Strip returns the visible text of content with all markup removed and
// HTML entities decoded. Leading and trailing whitespace is trimmed.
func Strip(content string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(content)))
}

// TextLength returns the number of visible runes in content after markup
// stripping. Validation rules for minimum content length are expressed in
// terms of this count.
func TextLength(content string) int {
	return utf8.RuneCountInString(Strip(content))
}
