package ports

import (
	"context"
	"time"

	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// ProductInput is the write payload for products. CategoryID is a
// required reference validated against the category collection.
type ProductInput struct {
	Nom         string
	Description string
	Prix        float64
	Quantite    int
	CategoryID  string
}

// ProductView is a product with category and creator expanded to
// summary projections.
type ProductView struct {
	ID          string          `json:"id"`
	Nom         string          `json:"nom"`
	Description string          `json:"description"`
	Prix        float64         `json:"prix"`
	Quantite    int             `json:"quantite"`
	Category    CategorySummary `json:"category"`
	CreatedBy   UserSummary     `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductPage is one page of the public product listing.
type ProductPage struct {
	Products    []*ProductView `json:"products"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Total       int64          `json:"total"`
}

type ProductService interface {
	Create(ctx context.Context, caller domain.Identity, in ProductInput) (*ProductView, error)
	List(ctx context.Context, filter ListProductsFilter) (*ProductPage, error)
	Get(ctx context.Context, id string) (*ProductView, error)
	// ListByCategory fails with domain.ErrCategoryNotFound when the
	// category itself is missing.
	ListByCategory(ctx context.Context, categoryID string) ([]*ProductView, error)
	// ListMine returns the caller's products, or every product for admins.
	ListMine(ctx context.Context, caller domain.Identity) ([]*ProductView, error)
	Update(ctx context.Context, caller domain.Identity, id string, in ProductInput) (*ProductView, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
