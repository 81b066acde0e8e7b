package ports

import (
	"context"

	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// UserPatch carries the mutable fields of a user record. Zero-value
// fields are left untouched by the repository.
type UserPatch struct {
	Email string
	Nom   string
	Role  domain.Role
}

// UserRepository defines persistence for user records. Create returns
// domain.ErrEmailTaken when the unique email index is violated.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// Summaries resolves a batch of user ids to public summaries for
	// createdBy expansion. Missing ids are simply absent from the map.
	Summaries(ctx context.Context, ids []string) (map[string]UserSummary, error)
}

// UserSummary is the public projection embedded in createdBy expansions.
type UserSummary struct {
	ID    string `json:"id"`
	Nom   string `json:"nom"`
	Email string `json:"email"`
}
