package ports

import (
	"context"

	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// ProductPatch carries the mutable fields of a product.
type ProductPatch struct {
	Nom         string
	Description string
	Prix        float64
	Quantite    int
	CategoryID  string
}

// ListProductsFilter selects a page of products, optionally constrained
// to a category. Page is 1-based.
type ListProductsFilter struct {
	CategoryID string
	Page       int
	Limit      int
}

// ProductRepository defines persistence for products. The owner-filtered
// mutations follow the same atomic combined find-and-modify contract as
// CategoryRepository.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns one page plus the total count matching the filter,
	// newest first.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	// ListByOwner returns all products created by ownerID; an empty
	// ownerID returns every product (admin view).
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch ProductPatch) (*domain.Product, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
