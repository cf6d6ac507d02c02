// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Ingredient
// model.
//
// Ingredients are seeded in bulk and read-only afterwards, so the surface is
// small: list, point lookup, batch lookup, and an idempotent get-or-create
// used by the CSV importer.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
)

// ListIngredients returns every ingredient row in storage order. No ORDER BY
// is applied: the empty-query search contract is "no additional ordering".
func ListIngredients(ctx context.Context, db *gorm.DB) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	err := db.WithContext(ctx).Find(&out).Error
	return out, err
}

// GetIngredient fetches a single ingredient by ID, or ErrNotFound if missing.
func GetIngredient(ctx context.Context, db *gorm.DB, id string) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := db.WithContext(ctx).Where("id = ?", id).First(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

// GetIngredientsByIDs returns the ingredients whose IDs appear in ids.
// Missing IDs are simply absent from the result; the caller decides whether
// that is an error.
func GetIngredientsByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	if len(ids) == 0 {
		return out, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// CountIngredients returns the total number of ingredient rows.
func CountIngredients(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Ingredient{}).Count(&total).Error
	return total, err
}

// GetOrCreateIngredient inserts the (name, unit) pair unless it already
// exists, returning the row and whether it was created. Used by the bulk
// importer; the unique (name, unit) index keeps concurrent imports safe.
func GetOrCreateIngredient(ctx context.Context, db *gorm.DB, name, unit string) (*domain.Ingredient, bool, error) {
	var existing domain.Ingredient
	err := db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", name, unit).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	ing := &domain.Ingredient{
		ID:              uuid.NewString(),
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := db.WithContext(ctx).Create(ing).Error; err != nil {
		return nil, false, err
	}
	return ing, true, nil
}
