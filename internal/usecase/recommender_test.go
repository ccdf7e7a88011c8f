package usecase

import (
	"fmt"
	"testing"

	"github.com/seefood/backend/internal/domain"
)

func TestRecommend(t *testing.T) {
	catalog := []domain.Product{
		{Barcode: "1", Description: "Almond Milk", Ingredients: "almonds, water"},
		{Barcode: "2", Description: "Almond Bar", Ingredients: "oats, almonds"},
		{Barcode: "3", Description: "Oat Milk", Ingredients: "oats, water"},
		{Barcode: "4", Description: "Soda", Ingredients: "water, sugar"},
	}

	t.Run("shares a keyword and classifies safe", func(t *testing.T) {
		base := catalog[1] // Almond Bar
		prefs := &domain.Preferences{Sensitivities: []string{"oats"}}

		got := Recommend(catalog, base, prefs)
		if len(got) != 1 || got[0].Barcode != "1" {
			t.Errorf("Recommend() = %v, want [Almond Milk]", got)
		}
	})

	t.Run("excludes the base product itself", func(t *testing.T) {
		base := catalog[0]
		got := Recommend(catalog, base, nil)
		for _, item := range got {
			if item.Barcode == base.Barcode {
				t.Errorf("Recommend() included the base product %q", base.Barcode)
			}
		}
	})

	t.Run("unsafe candidates are filtered even when names match", func(t *testing.T) {
		base := catalog[1]
		prefs := &domain.Preferences{Allergies: []string{"almonds"}}

		if got := Recommend(catalog, base, prefs); len(got) != 0 {
			t.Errorf("Recommend() = %v, want none (all almond candidates unsafe)", got)
		}
	})

	t.Run("no shared keyword yields no recommendations", func(t *testing.T) {
		base := catalog[3] // Soda
		if got := Recommend(catalog, base, nil); len(got) != 0 {
			t.Errorf("Recommend() = %v, want none", got)
		}
	})

	t.Run("empty base description yields no recommendations", func(t *testing.T) {
		base := domain.Product{Barcode: "9", Ingredients: "water"}
		if got := Recommend(catalog, base, nil); got != nil {
			t.Errorf("Recommend() = %v, want nil", got)
		}
	})

	t.Run("caps at five in catalog order", func(t *testing.T) {
		big := make([]domain.Product, 0, 9)
		for i := 1; i <= 8; i++ {
			big = append(big, domain.Product{
				Barcode:     fmt.Sprintf("milk-%d", i),
				Description: fmt.Sprintf("Milk Variant %d", i),
				Ingredients: "water",
			})
		}
		base := domain.Product{Barcode: "base", Description: "Milk"}

		got := Recommend(big, base, nil)
		if len(got) != 5 {
			t.Fatalf("Recommend() returned %d items, want 5", len(got))
		}
		for i, item := range got {
			want := fmt.Sprintf("milk-%d", i+1)
			if item.Barcode != want {
				t.Errorf("Recommend()[%d] = %q, want %q (catalog order)", i, item.Barcode, want)
			}
		}
	})

	t.Run("results change with preferences", func(t *testing.T) {
		base := catalog[0] // Almond Milk; keywords: almond, milk
		without := Recommend(catalog, base, nil)
		with := Recommend(catalog, base, &domain.Preferences{Sensitivities: []string{"water"}})

		if len(without) != 2 {
			t.Errorf("Recommend(no prefs) returned %d items, want 2", len(without))
		}
		if len(with) != 1 || with[0].Barcode != "2" {
			t.Errorf("Recommend(water sensitivity) = %v, want [Almond Bar]", with)
		}
	})
}
