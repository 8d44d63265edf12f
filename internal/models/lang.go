// Package models defines the canonical catalog data structures: per-language
// value pairs, normalized item attributes, vendor splits, and the Item/ItemField
// projection model consumed by the downstream index.
package models

// LangEN and LangAR are the supported catalog languages.
const (
	LangEN = "en"
	LangAR = "ar"
)

// RawRecord is an opaque catalog record as received from the items source.
type RawRecord map[string]any

// LangText holds one scalar value per supported language.
type LangText struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Get returns the value for lang. Unknown languages resolve to English.
func (t LangText) Get(lang string) string {
	if lang == LangAR {
		return t.AR
	}
	return t.EN
}

// LangList holds one value list per supported language.
type LangList struct {
	EN []string `json:"en"`
	AR []string `json:"ar"`
}

// Get returns the list for lang. Unknown languages resolve to English.
func (l LangList) Get(lang string) []string {
	if lang == LangAR {
		return l.AR
	}
	return l.EN
}
