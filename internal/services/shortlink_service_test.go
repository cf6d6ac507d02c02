package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestShortLinkGetOrCreate_StableAcrossCalls(t *testing.T) {
	db := newTestDB(t)
	uid := mustUser(t, db, "a@example.com", "a")
	rid := mustRecipe(t, db, uid, "Борщ")
	svc := &ShortLinkService{DB: db, CodeLength: 6}

	first, err := svc.GetOrCreate(context.Background(), rid)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(first.Code) != 6 {
		t.Fatalf("expected 6-char code, got %q", first.Code)
	}
	for _, r := range first.Code {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", first.Code, r)
		}
	}

	second, err := svc.GetOrCreate(context.Background(), rid)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.Code != first.Code || second.ID != first.ID {
		t.Fatalf("code must be stable: %q vs %q", first.Code, second.Code)
	}
}

func TestShortLinkGetOrCreate_UnknownRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := &ShortLinkService{DB: db, CodeLength: 6}

	if _, err := svc.GetOrCreate(context.Background(), "missing"); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestShortLinkGetOrCreate_DistinctRecipesDistinctCodes(t *testing.T) {
	db := newTestDB(t)
	uid := mustUser(t, db, "a@example.com", "a")
	svc := &ShortLinkService{DB: db, CodeLength: 8}

	seen := map[string]string{}
	for _, name := range []string{"A", "B", "C", "D"} {
		rid := mustRecipe(t, db, uid, name)
		link, err := svc.GetOrCreate(context.Background(), rid)
		if err != nil {
			t.Fatalf("GetOrCreate(%s): %v", name, err)
		}
		if prev, dup := seen[link.Code]; dup {
			t.Fatalf("code %q assigned to both %s and %s", link.Code, prev, rid)
		}
		seen[link.Code] = rid
	}
}

func TestShortLinkResolve(t *testing.T) {
	db := newTestDB(t)
	uid := mustUser(t, db, "a@example.com", "a")
	rid := mustRecipe(t, db, uid, "Борщ")
	svc := &ShortLinkService{DB: db, CodeLength: 6}

	link, err := svc.GetOrCreate(context.Background(), rid)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), link.Code)
	if err != nil || resolved.RecipeID != rid {
		t.Fatalf("Resolve: %+v err=%v", resolved, err)
	}

	if _, err := svc.Resolve(context.Background(), "nope42"); !errors.Is(err, ErrShortLinkNotFound) {
		t.Fatalf("expected ErrShortLinkNotFound, got %v", err)
	}
}

func TestShortLink_SurvivesUnrelatedDeletes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid := mustUser(t, db, "a@example.com", "a")
	keep := mustRecipe(t, db, uid, "Keep")
	gone := mustRecipe(t, db, uid, "Gone")
	svc := &ShortLinkService{DB: db, CodeLength: 6}

	keepLink, err := svc.GetOrCreate(ctx, keep)
	if err != nil {
		t.Fatalf("keep link: %v", err)
	}
	goneLink, err := svc.GetOrCreate(ctx, gone)
	if err != nil {
		t.Fatalf("gone link: %v", err)
	}

	rcp := &RecipeService{DB: db}
	if err := rcp.Delete(ctx, uid, gone); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}

	if _, err := svc.Resolve(ctx, goneLink.Code); !errors.Is(err, ErrShortLinkNotFound) {
		t.Fatalf("deleted recipe's code should be gone, got %v", err)
	}
	if _, err := svc.Resolve(ctx, keepLink.Code); err != nil {
		t.Fatalf("surviving code must still resolve: %v", err)
	}
}
