package models

import "strings"

// FieldGroup identifies one of the four weighting buckets that partition an
// item's indexable fields for differentiated downstream scoring.
type FieldGroup int

const (
	GroupTitle FieldGroup = iota
	GroupAttributes
	GroupCategory
	GroupTags
)

// FieldValue is the textual content of an ItemField: a scalar, a list, or a
// per-language pair of either. A per-language list value carries entries for
// both languages by construction.
type FieldValue interface {
	// Tokens resolves the value for lang and expands it by weight. A scalar
	// yields a single space-joined entry repeated weight times; a list yields
	// the list concatenated weight times. Empty values yield nil.
	Tokens(lang string, weight int) []string
}

// Text is a scalar field value shared across languages.
type Text string

// Tokens implements FieldValue.
func (v Text) Tokens(_ string, weight int) []string {
	return scalarTokens(string(v), weight)
}

// List is a list field value shared across languages.
type List []string

// Tokens implements FieldValue.
func (v List) Tokens(_ string, weight int) []string {
	return listTokens(v, weight)
}

// LangTextValue is a per-language scalar field value.
type LangTextValue LangText

// Tokens implements FieldValue.
func (v LangTextValue) Tokens(lang string, weight int) []string {
	return scalarTokens(LangText(v).Get(lang), weight)
}

// LangListValue is a per-language list field value.
type LangListValue LangList

// Tokens implements FieldValue.
func (v LangListValue) Tokens(lang string, weight int) []string {
	return listTokens(LangList(v).Get(lang), weight)
}

func scalarTokens(value string, weight int) []string {
	if weight < 1 {
		weight = 1
	}
	repeated := make([]string, weight)
	for i := range repeated {
		repeated[i] = value
	}
	doc := strings.TrimSpace(strings.Join(repeated, " "))
	if doc == "" {
		return nil
	}
	return []string{doc}
}

func listTokens(values []string, weight int) []string {
	if len(values) == 0 {
		return nil
	}
	if weight < 1 {
		weight = 1
	}
	out := make([]string, 0, len(values)*weight)
	for i := 0; i < weight; i++ {
		out = append(out, values...)
	}
	return out
}

// ItemField is one named attribute of an Item together with its indexing
// metadata. Weight is a positive repetition factor applied when the field is
// projected into documents.
type ItemField struct {
	Name   string
	Value  FieldValue
	Index  bool
	Weight int
	Group  FieldGroup
}
