// Package importer seeds the ingredient catalog from a CSV file. Each row
// is "name,measurement_unit"; rows are inserted with get-or-create
// semantics so re-running the import is harmless.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// Result summarizes one import run.
type Result struct {
	Created int
	Skipped int
}

// LoadIngredientsCSV reads the CSV at path and upserts each (name, unit)
// row into the catalog. Rows with fewer than two columns or with blank
// values are skipped, as are pairs that already exist. Extra columns are
// ignored.
func LoadIngredientsCSV(ctx context.Context, db *gorm.DB, path string) (Result, error) {
	var res Result

	f, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("open ingredients file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may carry trailing columns; take the first two

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read ingredients file: %w", err)
		}
		if len(row) < 2 {
			res.Skipped++
			continue
		}
		name := strings.TrimSpace(row[0])
		unit := strings.TrimSpace(row[1])
		if name == "" || unit == "" {
			res.Skipped++
			continue
		}

		_, created, err := repo.GetOrCreateIngredient(ctx, db, name, unit)
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Skipped++
		}
	}

	log.Info().
		Str("path", path).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Msg("ingredient import finished")
	return res, nil
}

// SeedIfEmpty runs the CSV import only when the catalog has no rows and the
// file exists. Used at startup so a fresh database comes up searchable.
func SeedIfEmpty(ctx context.Context, db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	n, err := repo.CountIngredients(ctx, db)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	_, err = LoadIngredientsCSV(ctx, db, path)
	return err
}
