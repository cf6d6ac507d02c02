package services

import (
	"context"
	"testing"

	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

func TestShoppingList_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	uid := mustUser(t, db, "a@example.com", "a")
	svc := &ShoppingListService{DB: db, Header: "Список покупок:"}

	doc, err := svc.Aggregate(context.Background(), uid)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if doc != "Список покупок:\n" {
		t.Fatalf("unexpected empty document: %q", doc)
	}
}

func TestShoppingList_MergesAndSorts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid := mustUser(t, db, "a@example.com", "a")
	svc := &ShoppingListService{DB: db, Header: "Список покупок:"}

	flour := mustIngredient(t, db, "Мука", "г")
	sugar := mustIngredient(t, db, "Сахар", "г")

	pie := mustRecipe(t, db, uid, "Пирог")
	cake := mustRecipe(t, db, uid, "Кекс")
	if err := repo.InsertRecipeIngredients(ctx, db, pie, []repo.IngredientAmount{
		{IngredientID: flour, Amount: 100},
		{IngredientID: sugar, Amount: 200},
	}); err != nil {
		t.Fatalf("pie links: %v", err)
	}
	if err := repo.InsertRecipeIngredients(ctx, db, cake, []repo.IngredientAmount{
		{IngredientID: sugar, Amount: 300},
	}); err != nil {
		t.Fatalf("cake links: %v", err)
	}
	for _, rid := range []string{pie, cake} {
		if _, err := repo.CreateCartItem(ctx, db, uid, rid); err != nil {
			t.Fatalf("cart add: %v", err)
		}
	}

	doc, err := svc.Aggregate(ctx, uid)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := "Список покупок:\n\nМука — 100 г\nСахар — 500 г\n"
	if doc != want {
		t.Fatalf("document mismatch:\n got: %q\nwant: %q", doc, want)
	}
}

func TestShoppingList_UnaffectedByFavorites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uid := mustUser(t, db, "a@example.com", "a")
	svc := &ShoppingListService{DB: db, Header: "Список покупок:"}

	flour := mustIngredient(t, db, "Мука", "г")
	rid := mustRecipe(t, db, uid, "Пирог")
	if err := repo.InsertRecipeIngredients(ctx, db, rid, []repo.IngredientAmount{{IngredientID: flour, Amount: 100}}); err != nil {
		t.Fatalf("links: %v", err)
	}
	// Favorited but not in the cart: must not appear.
	if _, err := repo.CreateFavorite(ctx, db, uid, rid); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	doc, err := svc.Aggregate(ctx, uid)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if doc != "Список покупок:\n" {
		t.Fatalf("favorites leaked into the list: %q", doc)
	}
}

func TestShoppingList_CustomHeader(t *testing.T) {
	db := newTestDB(t)
	uid := mustUser(t, db, "a@example.com", "a")
	svc := &ShoppingListService{DB: db, Header: "Shopping list:"}

	doc, err := svc.Aggregate(context.Background(), uid)
	if err != nil || doc != "Shopping list:\n" {
		t.Fatalf("unexpected document %q err=%v", doc, err)
	}
}
