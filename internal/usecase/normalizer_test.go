package usecase

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeIngredients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "comma-delimited list",
			raw:  "almonds, water",
			want: []string{"almonds", "water"},
		},
		{
			name: "semicolons and extra whitespace",
			raw:  "oats;  almonds ;salt",
			want: []string{"oats", "almonds", "salt"},
		},
		{
			name: "punctuation is stripped before splitting",
			raw:  "sugar (organic), cocoa-butter!",
			want: []string{"sugar", "organic", "cocoabutter"},
		},
		{
			name: "uppercase input is lowercased",
			raw:  "WHEAT Flour, SALT",
			want: []string{"wheat", "flour", "salt"},
		},
		{
			name: "digits and underscores survive as word characters",
			raw:  "e300_citrate, vitamin b12",
			want: []string{"e300_citrate", "vitamin", "b12"},
		},
		{
			name: "empty string yields no tokens",
			raw:  "",
			want: nil,
		},
		{
			name: "only punctuation yields no tokens",
			raw:  ";;, ,, ;",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeIngredients(tt.raw)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeIngredients(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIngredients_TokensAreClean(t *testing.T) {
	inputs := []string{
		"Almonds, Water; SUGAR!!",
		"  weird   spacing ,, everywhere ;; ",
		"parens (and) [brackets] {braces}",
	}

	for _, raw := range inputs {
		for _, token := range NormalizeIngredients(raw) {
			if token == "" {
				t.Errorf("NormalizeIngredients(%q) produced an empty token", raw)
			}
			if token != strings.ToLower(token) {
				t.Errorf("NormalizeIngredients(%q) produced non-lowercase token %q", raw, token)
			}
			if punctuationRegex.MatchString(token) {
				t.Errorf("NormalizeIngredients(%q) produced token with punctuation %q", raw, token)
			}
		}
	}
}

func TestDescriptionKeywords(t *testing.T) {
	t.Run("splits on whitespace only and keeps punctuation", func(t *testing.T) {
		got := descriptionKeywords("Almond Milk (Unsweetened)")
		want := []string{"almond", "milk", "(unsweetened)"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("descriptionKeywords() = %v, want %v", got, want)
		}
	})

	t.Run("empty description yields no keywords", func(t *testing.T) {
		if got := descriptionKeywords(""); len(got) != 0 {
			t.Errorf("descriptionKeywords(\"\") = %v, want empty", got)
		}
	})
}
