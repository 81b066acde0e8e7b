package ports

import (
	"context"

	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// CategoryPatch carries the mutable fields of a category.
type CategoryPatch struct {
	Nom         string
	Description string
}

// CategoryRepository defines persistence for categories.
//
// UpdateOwned and DeleteOwned are combined find-and-modify operations:
// the filter carries both the id and, when ownerID is non-empty, a
// createdBy constraint, and the store applies it atomically. An empty
// ownerID skips the ownership constraint (admin callers). When nothing
// matches they return domain.ErrNotFoundOrForbidden.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch CategoryPatch) (*domain.Category, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
	Summaries(ctx context.Context, ids []string) (map[string]CategorySummary, error)
}

// CategorySummary is the projection embedded in product responses.
type CategorySummary struct {
	ID          string `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description,omitempty"`
}
