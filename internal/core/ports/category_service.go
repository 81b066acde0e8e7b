package ports

import (
	"context"
	"time"

	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// CategoryInput is the write payload for categories.
type CategoryInput struct {
	Nom         string
	Description string
}

// CategoryView is a category with its creator expanded.
type CategoryView struct {
	ID          string      `json:"id"`
	Nom         string      `json:"nom"`
	Description string      `json:"description,omitempty"`
	CreatedBy   UserSummary `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type CategoryService interface {
	Create(ctx context.Context, caller domain.Identity, in CategoryInput) (*CategoryView, error)
	List(ctx context.Context) ([]*CategoryView, error)
	Get(ctx context.Context, id string) (*CategoryView, error)
	Update(ctx context.Context, caller domain.Identity, id string, in CategoryInput) (*CategoryView, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
