// Package services – ShortLinkService
//
// This file implements lazy, collision-free short codes for recipe sharing.
// A recipe gets its code on the first link request and keeps it for life.
// Codes are fixed-length strings over [A-Za-z0-9] drawn from crypto/rand;
// a candidate that collides with an existing code is discarded and redrawn.
// The regeneration loop is the only retry in the system — persistence
// itself is single-attempt and the unique recipe index resolves concurrent
// get-or-create races in favor of whoever inserted first.
package services

import (
	"context"
	"crypto/rand"
	"math/big"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// codeAlphabet is the set of characters short codes are drawn from.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ShortLinkService creates and resolves opaque share codes for recipes.
type ShortLinkService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// CodeLength is the fixed length of generated codes.
	CodeLength int
}

// GetOrCreate returns the recipe's short link, creating it on first use.
//
// Idempotency: repeated calls for one recipe always return the same code.
// Under concurrent first requests for the same recipe, both callers end up
// with the single persisted row — the loser of the INSERT race re-reads the
// winner's link instead of minting a second code.
//
// Errors: ErrRecipeNotFound for an unknown recipe; DB errors otherwise.
func (s *ShortLinkService) GetOrCreate(ctx context.Context, recipeID string) (*domain.ShortLink, error) {
	if _, err := repo.GetRecipe(ctx, s.DB, recipeID); err != nil {
		if isNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if link, err := repo.GetShortLinkByRecipe(ctx, s.DB, recipeID); err == nil {
		return link, nil
	} else if !isNotFound(err) {
		return nil, err
	}

	for {
		code, err := s.generateCode()
		if err != nil {
			return nil, err
		}
		taken, err := repo.ShortCodeExists(ctx, s.DB, code)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		link, err := repo.CreateShortLink(ctx, s.DB, recipeID, code)
		if err == nil {
			return link, nil
		}
		if isDuplicate(err) {
			// Either a concurrent writer claimed this recipe's link, or the
			// code was taken between the check and the insert. The former
			// resolves by re-reading; the latter by drawing again.
			if link, rerr := repo.GetShortLinkByRecipe(ctx, s.DB, recipeID); rerr == nil {
				return link, nil
			}
			continue
		}
		return nil, err
	}
}

// Resolve returns the short link carrying code, for redirecting to the
// canonical recipe path. Fails with ErrShortLinkNotFound for unknown codes.
func (s *ShortLinkService) Resolve(ctx context.Context, code string) (*domain.ShortLink, error) {
	link, err := repo.GetShortLinkByCode(ctx, s.DB, code)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrShortLinkNotFound
		}
		return nil, err
	}
	return link, nil
}

// generateCode draws a uniformly random fixed-length code from codeAlphabet
// using a cryptographically strong source.
func (s *ShortLinkService) generateCode() (string, error) {
	n := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, s.CodeLength)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
