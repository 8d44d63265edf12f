package parser

import (
	"regexp"
	"strings"
)

var (
	// gswSeparators splits the English-only tag blob on commas and newlines.
	gswSeparators = regexp.MustCompile(`[,\n]`)
	// dswSeparators additionally splits on the Arabic comma.
	dswSeparators = regexp.MustCompile("[,،\n]")
	// numberingMarks matches list-numbering noise like "1.", "2-", "3)" and
	// bare "-" anywhere in a tag.
	numberingMarks = regexp.MustCompile(`\d+\)|\d+-|-|\d+\.\s*`)
)

// splitTagText breaks a vendor free-text tag blob into cleaned tags. Each
// piece keeps only its last ':' segment (dropping a leading label such as
// "material:"), has numbering marks removed, and is trimmed. Empty results
// are dropped.
func splitTagText(text string, separators *regexp.Regexp) []string {
	var tags []string
	for _, piece := range separators.Split(text, -1) {
		segments := strings.Split(piece, ":")
		tag := segments[len(segments)-1]
		tag = strings.TrimSpace(stripNumbering(tag))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// stripNumbering removes numbering marks without trimming surrounding space.
func stripNumbering(s string) string {
	return numberingMarks.ReplaceAllString(s, "")
}
