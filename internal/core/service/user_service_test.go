package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

func newUserService() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewUserService(repo, zerolog.Nop()), repo
}

func TestUserService_Create_AdminRole(t *testing.T) {
	svc, repo := newUserService()

	view, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "admin@example.com", Password: "Admin123!", Nom: "Admin", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", view.Role)
	}

	stored := repo.users[view.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Admin123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_DefaultsToUserRole(t *testing.T) {
	svc, _ := newUserService()

	view, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "alice@example.com", Password: "secret1", Nom: "Alice",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Role != domain.RoleUser {
		t.Fatalf("expected default user role, got %q", view.Role)
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	svc, _ := newUserService()

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "alice@example.com", Nom: "Alice",
	}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc, repo := newUserService()

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "alice@example.com", Password: "secret1", Nom: "Alice", Role: domain.Role("superadmin"),
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be stored on a rejected role")
	}
}

func TestUserService_Update_RoleChange(t *testing.T) {
	svc, _ := newUserService()

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "alice@example.com", Password: "secret1", Nom: "Alice",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %q", updated.Role)
	}
	// Untouched fields keep their values.
	if updated.Email != "alice@example.com" || updated.Nom != "Alice" {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	svc, _ := newUserService()

	if _, err := svc.Update(context.Background(), "user-1", ports.UpdateUserInput{Role: domain.Role("root")}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Delete_Missing(t *testing.T) {
	svc, _ := newUserService()

	if err := svc.Delete(context.Background(), "user-does-not-exist"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
