package validate

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxIDLen       = 128
	MaxSearchLen   = 80
	MaxCategoryLen = 120
)

// ID validates a product identifier. The catalog applies the same rule at
// ingestion, so every listed product can be addressed by id.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxIDLen || !utf8.ValidString(s) {
		return "", false
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", false
	}
	return s, true
}

// Q validates a search term. An empty term is valid and means "no search".
// Filtering happens in memory, so any text is safe to match on.
func Q(s string) (string, bool) {
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxSearchLen {
		return "", false
	}
	return s, true
}

// Category validates a category name. Empty means "all categories".
func Category(s string) (string, bool) {
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxCategoryLen {
		return "", false
	}
	return s, true
}

// Qty parses a cart quantity. Zero and negatives are allowed: they remove the line.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Price parses a non-negative price bound.
func Price(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || f != f {
		return 0, false
	}
	return f, true
}

// Bool parses a checkbox-like flag.
func Bool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no", "":
		return false, true
	}
	return false, false
}
