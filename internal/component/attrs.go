package component

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

// intAttr parses a positive integer attribute, returning fallback when the
// attribute is absent or malformed.
func intAttr(el *document.Element, key string, fallback int) int {
	v, ok := el.Attr(key)
	if !ok || v.IsBool {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Str))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// floatAttr parses a numeric attribute, returning fallback when the attribute
// is absent or malformed. A trailing percent sign is accepted.
func floatAttr(el *document.Element, key string, fallback float64) float64 {
	v, ok := el.Attr(key)
	if !ok || v.IsBool {
		return fallback
	}
	s := strings.TrimSuffix(strings.TrimSpace(v.Str), "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// firstAttr returns the first non-empty string attribute among keys.
func firstAttr(el *document.Element, keys ...string) string {
	for _, key := range keys {
		if v, ok := el.Attr(key); ok && !v.IsBool {
			if s := strings.TrimSpace(v.Str); s != "" {
				return s
			}
		}
	}
	return ""
}
