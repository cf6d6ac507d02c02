// Package domain defines the persistence models for users, ingredients,
// recipes, collection memberships, short links, and subscriptions. These
// types are mapped with GORM and form the core data layer of the recipe
// backend.
package domain

import (
	"time"
)

// User represents a registered account. Users own recipes, keep favorites
// and a shopping cart, and follow other authors.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique login identity; listings of users order by this field.
//   - Username: unique public handle.
//   - FirstName / LastName: display name parts.
//   - AvatarURL: optional avatar location, managed by an external upload flow.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(254);not null;uniqueIndex:ux_users_email"`
	Username  string    `json:"username"   gorm:"type:varchar(150);not null;uniqueIndex:ux_users_username"`
	FirstName string    `json:"first_name" gorm:"type:varchar(150);not null"`
	LastName  string    `json:"last_name"  gorm:"type:varchar(150);not null"`
	AvatarURL string    `json:"avatar"     gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Ingredient is a (name, measurement unit) pair, unique together. Rows are
// seeded via bulk import and are immutable afterwards; recipes reference
// them through RecipeIngredient.
type Ingredient struct {
	ID              string `json:"id"               gorm:"type:char(36);primaryKey"`
	Name            string `json:"name"             gorm:"type:varchar(128);not null;uniqueIndex:ux_ingredient_name_unit,priority:1"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(64);not null;uniqueIndex:ux_ingredient_name_unit,priority:2"`
}

// TableName returns the database table name for Ingredient.
func (Ingredient) TableName() string { return "ingredients" }

// Recipe is a published dish owned by exactly one author. Ingredient
// amounts are attached via RecipeIngredient rows, never inline.
//
// Deleting a recipe cascades to its ingredient links, memberships, and
// short link (enforced by FK constraints, not application code).
type Recipe struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	AuthorID    string    `json:"author_id"    gorm:"type:char(36);not null;index:idx_recipes_author"`
	Name        string    `json:"name"         gorm:"type:varchar(256);not null"`
	Text        string    `json:"text"         gorm:"type:text;not null"`
	ImageURL    string    `json:"image"        gorm:"type:varchar(512)"`
	CookingTime int       `json:"cooking_time" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index:idx_recipes_created"`
	UpdatedAt   time.Time `json:"-"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient links a recipe to an ingredient with a positive amount.
// A recipe cannot list the same ingredient twice (unique pair). The full
// set for a recipe is replaced atomically on recipe update.
type RecipeIngredient struct {
	ID           string `json:"-"      gorm:"type:char(36);primaryKey"`
	RecipeID     string `json:"-"      gorm:"type:char(36);not null;uniqueIndex:ux_recipe_ingredient,priority:1"`
	IngredientID string `json:"-"      gorm:"type:char(36);not null;uniqueIndex:ux_recipe_ingredient,priority:2"`
	Amount       int    `json:"amount" gorm:"not null"`

	Recipe     Recipe     `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Ingredient Ingredient `json:"-" gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RecipeIngredient.
func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// Favorite records that a user bookmarked a recipe. The (user, recipe)
// pair is unique; duplicate adds are rejected by the index, not by a
// read-then-write check.
type Favorite struct {
	ID       string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID   string    `json:"user_id"   gorm:"type:char(36);not null;uniqueIndex:ux_favorite_user_recipe,priority:1"`
	RecipeID string    `json:"recipe_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_favorite_user_recipe,priority:2"`
	AddedAt  time.Time `json:"added_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }

// ShoppingCartItem records that a user put a recipe in the shopping cart.
// Tracked independently from Favorite: the same recipe may sit in both.
type ShoppingCartItem struct {
	ID       string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID   string    `json:"user_id"   gorm:"type:char(36);not null;uniqueIndex:ux_cart_user_recipe,priority:1"`
	RecipeID string    `json:"recipe_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_cart_user_recipe,priority:2"`
	AddedAt  time.Time `json:"added_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ShoppingCartItem.
func (ShoppingCartItem) TableName() string { return "shopping_cart_items" }

// ShortLink maps a recipe one-to-one to an opaque fixed-length code.
// Created lazily on first request and never regenerated: both the recipe
// side and the code are unique, so concurrent creators converge on one row.
type ShortLink struct {
	ID        string    `json:"-"         gorm:"type:char(36);primaryKey"`
	RecipeID  string    `json:"recipe_id" gorm:"type:char(36);not null;uniqueIndex:ux_shortlink_recipe"`
	Code      string    `json:"code"      gorm:"type:varchar(16);not null;uniqueIndex:ux_shortlink_code"`
	CreatedAt time.Time `json:"created_at"`

	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ShortLink.
func (ShortLink) TableName() string { return "short_links" }

// Subscription is a directed follow edge from a user to an author. The
// ordered pair is unique and must not be reflexive; both rules are standing
// invariants backed by the schema (unique index + CHECK), not just input
// checks.
type Subscription struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"   gorm:"type:char(36);not null;uniqueIndex:ux_subscription_pair,priority:1;check:chk_no_self_follow,user_id <> author_id"`
	AuthorID  string    `json:"author_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_subscription_pair,priority:2"`
	CreatedAt time.Time `json:"created_at"`

	User   User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Subscription.
func (Subscription) TableName() string { return "subscriptions" }

// CollectionKind selects which membership collection an operation targets.
type CollectionKind string

// The two membership collections. Each is backed by its own table with its
// own (user, recipe) uniqueness.
const (
	KindFavorite     CollectionKind = "favorite"
	KindShoppingCart CollectionKind = "shopping_cart"
)

// Valid reports whether k names a known collection.
func (k CollectionKind) Valid() bool {
	return k == KindFavorite || k == KindShoppingCart
}
