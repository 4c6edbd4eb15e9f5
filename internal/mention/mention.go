// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mention extracts user references from rich-text content.
//
// Two encodings are recognized: the inline token form `@[userID:Display Name]`
// produced by the plain-text composer, and the attribute form
// `data-user-id="userID"` emitted by the rich-text editor. Both may appear in
// the same document.
package mention

import "regexp"

// mentionPattern matches both encodings in a single pass so that results
// come back in document order regardless of which form produced them.
// Group 1 captures the id of an inline token, group 2 the id of an
// attribute-style mention.
var mentionPattern = regexp.MustCompile(`@\[([^:\]\s][^:\]]*):[^\]]*\]|data-user-id=["']([^"']+)["']`)

// Extract returns the user identifiers referenced in content, ordered by
// first occurrence and deduplicated. A user referenced through both encodings
// appears once, at the position of its earliest reference. Empty content
// yields an empty slice. Extract is pure: identical input always produces
// identical output.
func Extract(content string) []string {
	ids := []string{}
	if content == "" {
		return ids
	}

	seen := make(map[string]struct{})
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		id := m[1]
		if id == "" {
			id = m[2]
		}
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
