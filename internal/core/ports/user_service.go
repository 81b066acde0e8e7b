package ports

import (
	"context"

	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// CreateUserInput is the admin payload for creating a user directly,
// including an explicit role.
type CreateUserInput struct {
	Email    string
	Password string
	Nom      string
	Role     domain.Role
}

// UpdateUserInput carries the fields an admin may change on a user.
// Empty fields are left untouched.
type UpdateUserInput struct {
	Email string
	Nom   string
	Role  domain.Role
}

// UserService is the admin-only user management surface.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
	Get(ctx context.Context, id string) (*UserView, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*UserView, error)
	Delete(ctx context.Context, id string) error
}
