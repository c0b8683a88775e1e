package intake

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the fixed-width, sortable token appended to stored
// names, at one-second resolution.
const TimestampLayout = "20060102_150405"

// placeholderStem replaces stems that sanitization leaves empty.
const placeholderStem = "file"

// DeriveName derives the on-disk name for an upload from its original
// filename and the given time.
//
// The original name is sanitized first: directory components are
// stripped, characters outside the [A-Za-z0-9._-] allowlist are removed,
// and leading and trailing dots are trimmed. An empty stem collapses to
// "file". The timestamp token keeps repeated uploads of the same name
// apart at one-second resolution; two uploads of the same name within
// the same second derive the same stored name and the later write
// replaces the earlier one. The extension is lowercased.
//
// DeriveName performs no I/O. Callers inject now, which keeps naming
// deterministic under test.
func DeriveName(originalName string, now time.Time) string {
	sanitized := sanitizeName(originalName)

	ext := filepath.Ext(sanitized)
	stem := strings.TrimSuffix(sanitized, ext)
	if stem == "" {
		stem = placeholderStem
	}

	return stem + "_" + now.Format(TimestampLayout) + strings.ToLower(ext)
}

// sanitizeName reduces an arbitrary client-supplied filename to a plain
// name that is safe to join with the storage root.
func sanitizeName(name string) string {
	// strip directory components, including Windows-style separators
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), ".")
}
