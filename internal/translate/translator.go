// Package translate provides best-effort English-to-Arabic category
// translation. Translators never fail: when no translation is known the input
// is returned unchanged.
package translate

import "strings"

// Translator translates a category or tag string.
type Translator interface {
	Translate(text string) string
}

// Noop returns every input unchanged.
type Noop struct{}

// Translate implements Translator.
func (Noop) Translate(text string) string { return text }

// Static translates via a fixed table keyed by lowercased, trimmed source
// text. Unknown inputs are returned unchanged.
type Static map[string]string

// Translate implements Translator.
func (s Static) Translate(text string) string {
	if translated, ok := s[strings.ToLower(strings.TrimSpace(text))]; ok {
		return translated
	}
	return text
}
