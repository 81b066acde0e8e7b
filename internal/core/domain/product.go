package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidCategoryRef marks a product write whose category id is
	// malformed or does not resolve to an existing category.
	ErrInvalidCategoryRef = errors.New("category reference does not exist")

	// ErrNotFoundOrForbidden is returned by owner-filtered mutations when
	// no record matched. It deliberately conflates "does not exist" with
	// "exists but not yours" so unauthorized callers cannot probe for
	// resource existence.
	ErrNotFoundOrForbidden = errors.New("resource not found or not owned by caller")
)

// Product belongs to exactly one category and one creating user.
// Cross-owner category association is allowed: the category only has to
// exist, not belong to the caller.
type Product struct {
	ID          string    `json:"id"`
	Nom         string    `json:"nom"`
	Description string    `json:"description"`
	Prix        float64   `json:"prix"`
	Quantite    int       `json:"quantite"`
	CategoryID  string    `json:"category"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
