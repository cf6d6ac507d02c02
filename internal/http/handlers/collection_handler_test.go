package handlers

import (
	"net/http"
	"testing"
)

func TestAddFavorite_CreatedThenConflict(t *testing.T) {
	env := newTestEnv(t)
	uid := env.user(t, "a@example.com", "a")
	rid := env.recipe(t, uid, "Борщ")

	w := env.do(t, http.MethodPost, "/api/v1/recipes/"+rid+"/favorite", uid, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var rec RecipeCompact
	decode(t, w, &rec)
	if rec.ID != rid || rec.Name != "Борщ" {
		t.Fatalf("unexpected body: %+v", rec)
	}

	w = env.do(t, http.MethodPost, "/api/v1/recipes/"+rid+"/favorite", uid, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", w.Code)
	}
	if code := errCode(t, w); code != ErrCodeConflict {
		t.Fatalf("expected %q, got %q", ErrCodeConflict, code)
	}
}

func TestAddFavorite_UnknownRecipe(t *testing.T) {
	env := newTestEnv(t)
	uid := env.user(t, "a@example.com", "a")

	w := env.do(t, http.MethodPost, "/api/v1/recipes/00000000-0000-0000-0000-000000000000/favorite", uid, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/v1/recipes/not-a-uuid/favorite", uid, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestRemoveFavorite_AbsentIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	uid := env.user(t, "a@example.com", "a")
	rid := env.recipe(t, uid, "Борщ")

	w := env.do(t, http.MethodDelete, "/api/v1/recipes/"+rid+"/favorite", uid, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for absent membership, got %d", w.Code)
	}

	env.do(t, http.MethodPost, "/api/v1/recipes/"+rid+"/favorite", uid, nil)
	w = env.do(t, http.MethodDelete, "/api/v1/recipes/"+rid+"/favorite", uid, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestCart_AddRemoveIndependentOfFavorites(t *testing.T) {
	env := newTestEnv(t)
	uid := env.user(t, "a@example.com", "a")
	rid := env.recipe(t, uid, "Борщ")

	if w := env.do(t, http.MethodPost, "/api/v1/recipes/"+rid+"/favorite", uid, nil); w.Code != http.StatusCreated {
		t.Fatalf("favorite add: %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/api/v1/recipes/"+rid+"/shopping_cart", uid, nil); w.Code != http.StatusCreated {
		t.Fatalf("cart add: %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/v1/recipes/"+rid+"/favorite", uid, nil); w.Code != http.StatusNoContent {
		t.Fatalf("favorite remove: %d", w.Code)
	}
	// Cart entry still there: removing succeeds.
	if w := env.do(t, http.MethodDelete, "/api/v1/recipes/"+rid+"/shopping_cart", uid, nil); w.Code != http.StatusNoContent {
		t.Fatalf("cart remove: %d", w.Code)
	}
}

func TestDownloadShoppingCart_Document(t *testing.T) {
	env := newTestEnv(t)
	uid := env.user(t, "a@example.com", "a")

	// Empty cart still yields a valid document.
	w := env.do(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", uid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "Список покупок:\n" {
		t.Fatalf("unexpected empty document: %q", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="shopping_list.txt"` {
		t.Fatalf("unexpected disposition: %q", cd)
	}

	// Two recipes, one shared ingredient: merged and sorted.
	flour := env.ingredient(t, "Мука", "г")
	sugar := env.ingredient(t, "Сахар", "г")
	pie := env.recipe(t, uid, "Пирог")
	cake := env.recipe(t, uid, "Кекс")
	seedLinks(t, env, pie, flour, 100)
	seedLinks(t, env, pie, sugar, 200)
	seedLinks(t, env, cake, sugar, 300)
	env.do(t, http.MethodPost, "/api/v1/recipes/"+pie+"/shopping_cart", uid, nil)
	env.do(t, http.MethodPost, "/api/v1/recipes/"+cake+"/shopping_cart", uid, nil)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", uid, nil)
	want := "Список покупок:\n\nМука — 100 г\nСахар — 500 г\n"
	if got := w.Body.String(); got != want {
		t.Fatalf("document mismatch:\n got: %q\nwant: %q", got, want)
	}
}
