package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex = regexp.MustCompile(`[^\w\s]`)
	tokenSplitRegex  = regexp.MustCompile(`[\s,;]+`)
)

// NormalizeIngredients turns a raw ingredient string into comparable tokens.
// Lowercases, strips everything that is not a word character or whitespace,
// then splits on whitespace, commas and semicolons. Empty tokens are dropped;
// duplicates and order are preserved. A missing/empty string yields no tokens,
// which downstream classification treats as "no match found".
func NormalizeIngredients(raw string) []string {
	if raw == "" {
		return nil
	}

	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(raw), "")

	parts := tokenSplitRegex.Split(cleaned, -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// descriptionKeywords tokenizes a product description for name-similarity
// matching. Unlike ingredient normalization it splits on whitespace only and
// keeps punctuation, mirroring how the catalog descriptions are compared.
func descriptionKeywords(description string) []string {
	return strings.Fields(strings.ToLower(description))
}
