package usecase

import (
	"strings"

	"github.com/samber/lo"

	"github.com/seefood/backend/internal/domain"
)

// Classify produces a safety verdict for a set of normalized ingredient
// tokens against the user's keyword sets. Keywords must already be lowercase;
// tokens are expected to come from NormalizeIngredients. Allergy matches take
// precedence over sensitivity matches, which take precedence over Safe.
// Pure function of its inputs.
func Classify(tokens, allergyKeywords, sensitivityKeywords []string) domain.SafetyVerdict {
	if looseMatch(tokens, allergyKeywords) {
		return domain.VerdictUnsafe
	}
	if looseMatch(tokens, sensitivityKeywords) {
		return domain.VerdictSensitive
	}
	return domain.VerdictSafe
}

// VerdictFor classifies a product's free-text ingredients against a profile.
// A nil profile or empty keyword sets classify as Safe.
func VerdictFor(product domain.Product, prefs *domain.Preferences) domain.SafetyVerdict {
	tokens := NormalizeIngredients(product.Ingredients)
	if prefs == nil {
		return Classify(tokens, nil, nil)
	}
	return Classify(tokens, LowerKeywords(prefs.Allergies), LowerKeywords(prefs.Sensitivities))
}

// LowerKeywords lowercases a keyword list without mutating the input.
func LowerKeywords(keywords []string) []string {
	return lo.Map(keywords, func(k string, _ int) string {
		return strings.ToLower(k)
	})
}

// looseMatch reports whether any token matches any keyword under the
// substring/pluralization-tolerant rule: the token contains the keyword, the
// token contains the keyword's plural, or the token minus one trailing "s"
// equals the keyword.
func looseMatch(tokens, keywords []string) bool {
	for _, token := range tokens {
		for _, keyword := range keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(token, keyword) ||
				strings.Contains(token, keyword+"s") ||
				strings.TrimSuffix(token, "s") == keyword {
				return true
			}
		}
	}
	return false
}
