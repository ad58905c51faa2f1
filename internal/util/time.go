package util

import (
	"strings"
	"time"
)

// createdAtLayout is the fixed timestamp format the upstream CLI emits,
// e.g. "Fri Feb 13 03:46:22 +0000 2026".
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// FormatCreatedAt parses an upstream timestamp into its canonical UTC display
// form ("2026-02-13 03:46:22 UTC"). On parse failure the raw string is
// returned unchanged (or "N/A" when empty) and ok is false so the caller can
// raise a warning; an odd timestamp must never abort rendering.
func FormatCreatedAt(raw string) (formatted string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "N/A", false
	}

	t, err := time.Parse(createdAtLayout, trimmed)
	if err != nil {
		return raw, false
	}

	return t.UTC().Format("2006-01-02 15:04:05") + " UTC", true
}
