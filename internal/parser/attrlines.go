package parser

import "strings"

// ExtractAttrs parses newline-separated "name: value" attribute text into a
// name -> value-list mapping. Lines without a ':' are discarded. Names are
// lowercased, trimmed, with spaces replaced by underscores. The value is the
// second ':'-segment of the line, lowercased and trimmed; when it contains
// commas it is re-split on them and the resulting list replaces the value.
// That replacement drops any later colon-delimited segment on the same line;
// downstream consumers rely on the current behavior, so it stays. Empty values
// are dropped.
func ExtractAttrs(text string) map[string][]string {
	attrs := make(map[string][]string)
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, ":") {
			continue
		}
		segments := strings.Split(line, ":")
		name := strings.TrimSpace(strings.ToLower(segments[0]))
		name = strings.ReplaceAll(name, " ", "_")

		value := strings.TrimSpace(strings.ToLower(segments[1]))
		values := []string{value}
		if strings.Contains(value, ",") {
			parts := strings.Split(value, ",")
			values = make([]string, 0, len(parts))
			for _, p := range parts {
				values = append(values, strings.TrimSpace(p))
			}
		}

		kept := make([]string, 0, len(values))
		for _, v := range values {
			if v != "" {
				kept = append(kept, v)
			}
		}
		attrs[name] = kept
	}
	return attrs
}
