package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avoronkov/go-recipe-backend/internal/repo"
	"github.com/avoronkov/go-recipe-backend/internal/services"
)

// testEnv bundles a migrated in-memory DB and a Gin engine with the API
// routes mounted, wired through real services.
type testEnv struct {
	db *gorm.DB
	r  *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := New(
		&services.IngredientService{DB: db},
		&services.RecipeService{DB: db},
		&services.CollectionService{DB: db},
		&services.ShoppingListService{DB: db, Header: "Список покупок:"},
		&services.ShortLinkService{DB: db, CodeLength: 6},
		&services.SubscriptionService{DB: db},
		&services.UserService{DB: db},
		Config{ShoppingListFilename: "shopping_list.txt"},
	)

	r := gin.New()
	r.GET("/s/:code", h.ResolveShortLink)
	api := r.Group("/api/v1")
	{
		api.GET("/ingredients", h.SearchIngredients)
		api.GET("/ingredients/:id", h.GetIngredient)

		api.POST("/recipes", h.CreateRecipe)
		api.GET("/recipes", h.ListRecipes)
		api.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart)
		api.GET("/recipes/:id", h.GetRecipe)
		api.PATCH("/recipes/:id", h.UpdateRecipe)
		api.DELETE("/recipes/:id", h.DeleteRecipe)
		api.GET("/recipes/:id/get-link", h.GetRecipeLink)

		api.POST("/recipes/:id/favorite", h.AddFavorite)
		api.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
		api.POST("/recipes/:id/shopping_cart", h.AddToCart)
		api.DELETE("/recipes/:id/shopping_cart", h.RemoveFromCart)

		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/me", h.Me)
		api.GET("/users/subscriptions", h.ListSubscriptions)
		api.GET("/users/:id", h.GetUser)
		api.POST("/users/:id/subscribe", h.Subscribe)
		api.DELETE("/users/:id/subscribe", h.Unsubscribe)
	}
	return &testEnv{db: db, r: r}
}

// do performs a request as the given user and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, asUser string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if asUser != "" {
		req.Header.Set("X-User-ID", asUser)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func (e *testEnv) user(t *testing.T, email, username string) string {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), e.db, email, username, "First", "Last")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func (e *testEnv) ingredient(t *testing.T, name, unit string) string {
	t.Helper()
	ing, _, err := repo.GetOrCreateIngredient(context.Background(), e.db, name, unit)
	if err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	return ing.ID
}

func (e *testEnv) recipe(t *testing.T, authorID, name string) string {
	t.Helper()
	r, err := repo.CreateRecipe(context.Background(), e.db, authorID, name, "steps", "", 10)
	if err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return r.ID
}

func seedLinks(t *testing.T, env *testEnv, recipeID, ingredientID string, amount int) {
	t.Helper()
	err := repo.InsertRecipeIngredients(context.Background(), env.db, recipeID,
		[]repo.IngredientAmount{{IngredientID: ingredientID, Amount: amount}})
	if err != nil {
		t.Fatalf("seed links: %v", err)
	}
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

// errCode extracts the stable error code from an error envelope.
func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decode(t, w, &resp)
	return resp.Code
}
