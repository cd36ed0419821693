package catalog

import "strings"

// Tokenize splits text on whitespace into rough subword tokens. Words longer
// than five characters are cut in two, the first half taking the odd rune.
func Tokenize(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		if len(runes) <= 5 {
			tokens = append(tokens, word)
			continue
		}
		mid := (len(runes) + 1) / 2
		tokens = append(tokens, string(runes[:mid]), string(runes[mid:]))
	}
	return tokens
}

// ExpandBody substitutes text for {{input}} in each body line. Lines that
// are exactly {{tokens}} are left for the renderer.
func ExpandBody(body []string, text string) []string {
	out := make([]string, len(body))
	for i, line := range body {
		if strings.TrimSpace(line) == TokensPlaceholder {
			out[i] = line
			continue
		}
		out[i] = strings.ReplaceAll(line, InputPlaceholder, text)
	}
	return out
}
