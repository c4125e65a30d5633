// Package skills provides skill normalization and overlap computation between
// job requirements and candidate skill sets.
package skills

import "strings"

// Normalize canonicalizes a single skill name: lowercase, trimmed, inner
// whitespace collapsed. Returns "" for blank input.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeSet normalizes and deduplicates a skill list, preserving the
// first-seen order.
func NormalizeSet(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Overlap splits the required skills into those the candidate has and those
// they lack. Comparison is on normalized names; result order follows the
// required list.
func Overlap(required, have []string) (matching, missing []string) {
	haveSet := make(map[string]struct{}, len(have))
	for _, s := range have {
		if n := Normalize(s); n != "" {
			haveSet[n] = struct{}{}
		}
	}

	for _, s := range NormalizeSet(required) {
		if _, ok := haveSet[s]; ok {
			matching = append(matching, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matching, missing
}
