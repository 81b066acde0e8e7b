package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

// UserService is the admin-only user management surface. Routes are
// gated by the RBAC middleware; the service itself does no role checks.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*ports.UserView, error) {
	if in.Email == "" || in.Password == "" || in.Nom == "" {
		return nil, domain.ErrMissingFields
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Nom:          in.Nom,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created by admin")
	return userView(created), nil
}

func (s *UserService) List(ctx context.Context) ([]*ports.UserView, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*ports.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	return views, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userView(user), nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*ports.UserView, error) {
	if in.Role != "" && !in.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.users.Update(ctx, id, ports.UserPatch{
		Email: in.Email,
		Nom:   in.Nom,
		Role:  in.Role,
	})
	if err != nil {
		return nil, err
	}
	return userView(updated), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted by admin")
	return nil
}
