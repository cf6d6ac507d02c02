// Package services – ShoppingListService
//
// This file renders the downloadable shopping list: the user's cart joined
// to recipe ingredients, grouped by ingredient identity, summed, sorted,
// and laid out as a plain UTF-8 text document. The textual shape is
// contractual — existing clients compare the bytes — so the rendering stays
// byte-for-byte stable:
//
//	<header line>
//	<blank line>
//	<name> — <total> <unit>        (zero or more, name ascending)
//	<blank line only when any entries exist>
package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// ShoppingListService aggregates a user's shopping cart into the text
// document delivered as a file attachment.
type ShoppingListService struct {
	// DB is the GORM handle used for the aggregation read.
	DB *gorm.DB
	// Header is the fixed first line of the document.
	Header string
}

// Aggregate builds the consolidated shopping list for userID.
//
// Amounts of the same ingredient across different cart recipes collapse
// into a single summed line; grouping is by (name, measurement unit),
// which is the ingredient uniqueness key. The aggregation is one
// consistent read — no locking, no multi-step transaction.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID string) (string, error) {
	tr := otel.Tracer("services/ShoppingListService")
	ctx, span := tr.Start(ctx, "Aggregate",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	totals, err := repo.SumCartIngredients(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}

	body := make([]string, 0, len(totals)+3)
	body = append(body, s.Header, "")
	for _, t := range totals {
		body = append(body, fmt.Sprintf("%s — %d %s", t.Name, t.Total, t.MeasurementUnit))
	}
	if len(totals) > 0 {
		body = append(body, "")
	}
	return strings.Join(body, "\n"), nil
}
