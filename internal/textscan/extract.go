// Package textscan provides pure text-scanning helpers for tweet bodies:
// hashtag and bare-URL extraction, and the cleanup applied before a fragment
// is handed to a translation backend.
package textscan

import (
	"regexp"
	"strings"
)

var (
	// \w in Go is ASCII-only; hashtags are word characters in any script.
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	mentionPattern = regexp.MustCompile(`@[A-Za-z0-9_]+`)
)

// Hashtags returns the hashtag tokens of text in first-occurrence order with
// duplicates collapsed. Case is preserved; #AI and #ai are distinct tags.
func Hashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		tags = append(tags, m)
	}
	return tags
}

// Links returns the bare URLs of text in first-occurrence order with
// duplicates collapsed.
func Links(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		links = append(links, m)
	}
	return links
}

// StripLinksAndMentions removes URLs and @mentions from text. Translation
// backends mangle both, so fragments are cleaned before gating and dispatch.
func StripLinksAndMentions(text string) string {
	cleaned := urlPattern.ReplaceAllString(text, "")
	cleaned = mentionPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
