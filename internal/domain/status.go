package domain

import (
	"encoding/json"
	"strings"
)

// KnownStatusTags is the versioned set of recognized homeschooling status
// tags. "Other" in discovery means the complement of this set, computed at
// match time; extending this list retroactively reclassifies stored records
// out of "other", so treat changes as a behavior change, not housekeeping.
var KnownStatusTags = []string{"new", "considering", "experienced"}

// IsKnownStatusTag reports whether tag is in KnownStatusTags.
func IsKnownStatusTag(tag string) bool {
	for _, known := range KnownStatusTags {
		if tag == known {
			return true
		}
	}
	return false
}

// DecomposeStatus decodes the loosely typed legacy status field: a JSON
// string array, a comma-joined string, a bare tag, or empty. Malformed input
// yields an empty list, never an error. Tags are trimmed and lowercased;
// empty tags are dropped.
func DecomposeStatus(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}

	var tags []string
	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err != nil {
			return nil
		}
		tags = arr
	} else {
		tags = strings.Split(raw, ",")
	}

	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// HasKnownStatusTag reports whether any decoded tag is in the known set.
func HasKnownStatusTag(tags []string) bool {
	for _, tag := range tags {
		if IsKnownStatusTag(tag) {
			return true
		}
	}
	return false
}
