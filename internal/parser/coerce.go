package parser

import (
	"fmt"
	"strconv"

	"github.com/tajrlabs/catalog/internal/models"
)

// forceString renders any decoded value as text: nil becomes "", numbers use
// their shortest decimal form, everything else falls back to fmt.
func forceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// floatOf coerces a decoded value to float64.
func floatOf(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// boolOf coerces a decoded value to bool, defaulting to false.
func boolOf(v any) bool {
	b, _ := v.(bool)
	return b
}

// mapOf returns v as a decoded object, or nil.
func mapOf(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// sliceOf returns v as a decoded array, or nil.
func sliceOf(v any) []any {
	s, _ := v.([]any)
	return s
}

// stringSlice coerces a decoded array into strings, dropping nil entries.
func stringSlice(v any) []string {
	raw := sliceOf(v)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if e == nil {
			continue
		}
		out = append(out, forceString(e))
	}
	return out
}

// langTextOf reads a per-language scalar pair, substituting "" for absent
// languages.
func langTextOf(v any) models.LangText {
	m := mapOf(v)
	text := models.LangText{}
	if raw, ok := m[models.LangEN]; ok && raw != nil {
		text.EN = forceString(raw)
	}
	if raw, ok := m[models.LangAR]; ok && raw != nil {
		text.AR = forceString(raw)
	}
	return text
}

// langListOf reads a per-language list pair, substituting empty lists for
// absent languages.
func langListOf(v any) models.LangList {
	m := mapOf(v)
	return models.LangList{
		EN: emptyIfNil(stringSlice(m[models.LangEN])),
		AR: emptyIfNil(stringSlice(m[models.LangAR])),
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
