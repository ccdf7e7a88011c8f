package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seefood/backend/internal/domain"
)

func TestMemoryPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("missing document", func(t *testing.T) {
		store := NewMemoryPreferences()
		if _, err := store.Get(ctx, "nobody"); !errors.Is(err, domain.ErrPreferencesNotFound) {
			t.Errorf("Get() error = %v, want ErrPreferencesNotFound", err)
		}
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		store := NewMemoryPreferences()
		prefs := &domain.Preferences{
			Email:         "user@example.com",
			Allergies:     []string{"almonds"},
			Sensitivities: []string{"oats"},
		}
		if err := store.Set(ctx, "user-1", prefs); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := store.Get(ctx, "user-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Email != prefs.Email || len(got.Allergies) != 1 || got.Allergies[0] != "almonds" {
			t.Errorf("Get() = %+v, want %+v", got, prefs)
		}
	})

	t.Run("set overwrites the whole document", func(t *testing.T) {
		store := NewMemoryPreferences()
		if err := store.Set(ctx, "user-1", &domain.Preferences{Allergies: []string{"peanuts", "almonds"}}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := store.Set(ctx, "user-1", &domain.Preferences{Sensitivities: []string{"oats"}}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := store.Get(ctx, "user-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.Allergies) != 0 {
			t.Errorf("Get() allergies = %v, want cleared by overwrite", got.Allergies)
		}
		if len(got.Sensitivities) != 1 || got.Sensitivities[0] != "oats" {
			t.Errorf("Get() sensitivities = %v, want [oats]", got.Sensitivities)
		}
	})

	t.Run("returned document is isolated from the store", func(t *testing.T) {
		store := NewMemoryPreferences()
		if err := store.Set(ctx, "user-1", &domain.Preferences{Allergies: []string{"almonds"}}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		first, _ := store.Get(ctx, "user-1")
		first.Allergies[0] = "mutated"

		second, _ := store.Get(ctx, "user-1")
		if second.Allergies[0] != "almonds" {
			t.Errorf("store document changed through a returned copy: %v", second.Allergies)
		}
	})
}

func TestMemoryComments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryComments()

	comments := []domain.Comment{
		{ID: "c1", ProductID: "p1", Comment: "first"},
		{ID: "c2", ProductID: "p2", Comment: "other product"},
		{ID: "c3", ProductID: "p1", Comment: "second"},
	}
	for i := range comments {
		if err := store.Add(ctx, &comments[i]); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	got, err := store.ListByProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("ListByProduct() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByProduct() returned %d comments, want 2", len(got))
	}
	if got[0].ID != "c1" || got[1].ID != "c3" {
		t.Errorf("ListByProduct() = %v, want insertion order c1, c3", got)
	}

	empty, err := store.ListByProduct(ctx, "p9")
	if err != nil {
		t.Fatalf("ListByProduct() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListByProduct(unknown) = %v, want empty", empty)
	}
}

func TestMemoryRatings(t *testing.T) {
	ctx := context.Background()

	t.Run("find before any write", func(t *testing.T) {
		store := NewMemoryRatings()
		if _, err := store.FindByUserAndProduct(ctx, "u1", "p1"); !errors.Is(err, domain.ErrRatingNotFound) {
			t.Errorf("FindByUserAndProduct() error = %v, want ErrRatingNotFound", err)
		}
	})

	t.Run("add then find and update", func(t *testing.T) {
		store := NewMemoryRatings()
		rating := &domain.Rating{ID: "r1", UserID: "u1", ProductID: "p1", Rating: 3, Timestamp: time.Now()}
		if err := store.Add(ctx, rating); err != nil {
			t.Fatalf("Add() error = %v", err)
		}

		found, err := store.FindByUserAndProduct(ctx, "u1", "p1")
		if err != nil {
			t.Fatalf("FindByUserAndProduct() error = %v", err)
		}
		if found.Rating != 3 {
			t.Errorf("found rating = %d, want 3", found.Rating)
		}

		found.Rating = 5
		if err := store.Update(ctx, found); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		list, err := store.ListByProduct(ctx, "p1")
		if err != nil {
			t.Fatalf("ListByProduct() error = %v", err)
		}
		if len(list) != 1 || list[0].Rating != 5 {
			t.Errorf("ListByProduct() = %v, want one rating of 5", list)
		}
	})

	t.Run("update of an unknown id fails", func(t *testing.T) {
		store := NewMemoryRatings()
		err := store.Update(ctx, &domain.Rating{ID: "ghost"})
		if !errors.Is(err, domain.ErrRatingNotFound) {
			t.Errorf("Update() error = %v, want ErrRatingNotFound", err)
		}
	})
}

func TestMemoryAuth(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAuth()
	reg := &domain.Registration{Email: "Ada@Example.com", Password: "Str0ng!pass"}

	userID, err := store.Register(ctx, reg)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if userID == "" {
		t.Error("Register() returned an empty user id")
	}

	// Same email with different casing is still taken
	_, err = store.Register(ctx, &domain.Registration{Email: "ada@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("Register(duplicate) error = %v, want ErrEmailTaken", err)
	}
}
