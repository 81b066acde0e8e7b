package ports

import (
	"context"
	"time"

	"github.com/petitmarche/catalog-api/internal/core/domain"
)

// UserView is the public projection of a user. The password hash is
// deliberately absent from the type so it can never be serialized.
type UserView struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Nom       string      `json:"nom"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	UserID string    `json:"userId"`
	Token  string    `json:"token"`
	User   *UserView `json:"user"`
}

type AuthService interface {
	// Signup registers a new account with the default user role.
	Signup(ctx context.Context, email, password, nom string) (*UserView, error)
	// Login checks credentials and issues a token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
