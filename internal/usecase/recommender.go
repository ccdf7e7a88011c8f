package usecase

import (
	"strings"

	"github.com/seefood/backend/internal/domain"
)

// maxRecommendations caps the alternatives shown on a detail view.
const maxRecommendations = 5

// Recommend finds up to five name-similar, classifier-safe alternatives to
// the base product. A candidate qualifies when its barcode differs from the
// base, its description contains at least one whitespace-delimited keyword
// of the base description, and its ingredients classify Safe for the given
// profile. Candidates are taken in catalog order, not re-sorted by match
// strength: safety is user-relative, so the result must be recomputed
// whenever preferences change.
func Recommend(catalog []domain.Product, base domain.Product, prefs *domain.Preferences) []domain.Product {
	keywords := descriptionKeywords(base.Description)
	if len(keywords) == 0 {
		return nil
	}

	var allergies, sensitivities []string
	if prefs != nil {
		allergies = LowerKeywords(prefs.Allergies)
		sensitivities = LowerKeywords(prefs.Sensitivities)
	}

	var matches []domain.Product
	for _, item := range catalog {
		if item.Barcode == base.Barcode {
			continue
		}
		if !containsAnyKeyword(strings.ToLower(item.Description), keywords) {
			continue
		}
		verdict := Classify(NormalizeIngredients(item.Ingredients), allergies, sensitivities)
		if !verdict.IsSafe() {
			continue
		}
		matches = append(matches, item)
		if len(matches) == maxRecommendations {
			break
		}
	}
	return matches
}

func containsAnyKeyword(name string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
