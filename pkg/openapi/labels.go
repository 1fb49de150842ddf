package openapi

import (
	"strings"
	"unicode"
)

// Humanize turns a property name such as "max_retries" or "retryPolicy" into
// a label ("Max retries", "Retry policy"). Runs of capitals stay together so
// "userID" becomes "User ID".
func Humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case i > 0 && unicode.IsUpper(r):
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	for i, word := range words {
		if isAcronym(word) {
			continue
		}
		lower := strings.ToLower(word)
		if i == 0 {
			r := []rune(lower)
			r[0] = unicode.ToUpper(r[0])
			lower = string(r)
		}
		words[i] = lower
	}
	return strings.Join(words, " ")
}

func isAcronym(word string) bool {
	if len([]rune(word)) < 2 {
		return false
	}
	for _, r := range word {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
