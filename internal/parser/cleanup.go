package parser

import "sort"

// Clean recursively normalizes a decoded value: nil becomes the empty string,
// lists are deduplicated, lexicographically sorted, and stripped of nil and
// empty-string entries, maps are cleaned per key, and strings pass through
// unchanged.
func Clean(value any) any {
	switch x := value.(type) {
	case nil:
		return ""
	case []any:
		seen := make(map[string]bool, len(x))
		out := make([]any, 0, len(x))
		for _, e := range x {
			if e == nil || e == "" {
				continue
			}
			key := forceString(e)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, e)
		}
		sort.Slice(out, func(i, j int) bool {
			return forceString(out[i]) < forceString(out[j])
		})
		return out
	case map[string]any:
		for k, v := range x {
			x[k] = Clean(v)
		}
		return x
	default:
		return x
	}
}

// CleanStrings deduplicates, sorts, and drops empty entries from a list.
func CleanStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
