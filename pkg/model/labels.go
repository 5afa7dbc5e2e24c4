package model

import (
	"strings"
	"unicode"
)

// acronyms are rendered upper case wherever they appear in a field name.
var acronyms = map[string]string{
	"id":  "ID",
	"ids": "IDs",
	"io":  "IO",
	"ip":  "IP",
	"kv":  "KV",
}

// DefaultLabeler turns a spec entry name such as "container_names" or
// "attrOverride" into sentence-case display text ("Container names",
// "Attr override").
func DefaultLabeler(name string) string {
	words := nameWords(name)
	for i, word := range words {
		lower := strings.ToLower(word)
		if acronym, ok := acronyms[lower]; ok {
			words[i] = acronym
			continue
		}
		if i == 0 {
			runes := []rune(lower)
			runes[0] = unicode.ToUpper(runes[0])
			lower = string(runes)
		}
		words[i] = lower
	}
	return strings.Join(words, " ")
}

// nameWords splits on '_', '-', spaces and lower-to-upper case changes.
func nameWords(name string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	var prev rune
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return words
}
