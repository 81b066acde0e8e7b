package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

type categoryFixture struct {
	svc      *CategoryService
	users    *stubUserRepo
	products *stubProductRepo
	owner    domain.Identity
	other    domain.Identity
	admin    domain.Identity
}

func newCategoryFixture(t *testing.T) *categoryFixture {
	t.Helper()

	users := newStubUserRepo()
	categories := newStubCategoryRepo()
	products := newStubProductRepo()

	now := time.Now().UTC()
	mkUser := func(email, nom string, role domain.Role) domain.Identity {
		u, err := users.Create(context.Background(), &domain.User{
			Email: email, PasswordHash: "x", Nom: nom, Role: role, CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		return domain.Identity{UserID: u.ID, Role: u.Role, User: u}
	}

	return &categoryFixture{
		svc:      NewCategoryService(categories, products, users, zerolog.Nop()),
		users:    users,
		products: products,
		owner:    mkUser("owner@example.com", "Owner", domain.RoleUser),
		other:    mkUser("other@example.com", "Other", domain.RoleUser),
		admin:    mkUser("admin@example.com", "Admin", domain.RoleAdmin),
	}
}

func TestCategoryService_Create_ExpandsCreator(t *testing.T) {
	f := newCategoryFixture(t)

	view, err := f.svc.Create(context.Background(), f.owner, ports.CategoryInput{Nom: "Livres", Description: "Romans"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.CreatedBy.ID != f.owner.UserID || view.CreatedBy.Nom != "Owner" {
		t.Fatalf("creator not expanded: %+v", view.CreatedBy)
	}
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	f := newCategoryFixture(t)

	if _, err := f.svc.Create(context.Background(), f.owner, ports.CategoryInput{Nom: "Livres"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), f.other, ports.CategoryInput{Nom: "Livres"}); !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestCategoryService_Update_OwnerAndAdmin(t *testing.T) {
	f := newCategoryFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, ports.CategoryInput{Nom: "Livres"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.svc.Update(context.Background(), f.owner, created.ID, ports.CategoryInput{Nom: "Romans"}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}

	// Admins bypass the ownership filter.
	if _, err := f.svc.Update(context.Background(), f.admin, created.ID, ports.CategoryInput{Nom: "BD"}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestCategoryService_Update_NonOwnerIndistinguishableFromMissing(t *testing.T) {
	f := newCategoryFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, ports.CategoryInput{Nom: "Livres"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, errNonOwner := f.svc.Update(context.Background(), f.other, created.ID, ports.CategoryInput{Nom: "X"})
	_, errMissing := f.svc.Update(context.Background(), f.other, "cat-does-not-exist", ports.CategoryInput{Nom: "X"})

	if !errors.Is(errNonOwner, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-owner, got %v", errNonOwner)
	}
	if !errors.Is(errMissing, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for missing id, got %v", errMissing)
	}
}

func TestCategoryService_Delete_RefusedWhileInUse(t *testing.T) {
	f := newCategoryFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, ports.CategoryInput{Nom: "Livres"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.products.Create(context.Background(), &domain.Product{
		Nom: "Roman", Description: "x", Prix: 10, CategoryID: created.ID, CreatedBy: f.owner.UserID,
	}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := f.svc.Delete(context.Background(), f.owner, created.ID); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	// Once the product is gone, deletion succeeds.
	if err := f.products.DeleteOwned(context.Background(), "prod-1", ""); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := f.svc.Delete(context.Background(), f.owner, created.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
}

func TestCategoryService_Delete_NonOwnerInUseIndistinguishable(t *testing.T) {
	f := newCategoryFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, ports.CategoryInput{Nom: "Livres"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.products.Create(context.Background(), &domain.Product{
		Nom: "Roman", Description: "x", Prix: 10, CategoryID: created.ID, CreatedBy: f.owner.UserID,
	}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	// A non-owner deleting an in-use category must get the exact same
	// error as deleting a missing id: neither the category's existence
	// nor its product count may leak.
	errInUse := f.svc.Delete(context.Background(), f.other, created.ID)
	errMissing := f.svc.Delete(context.Background(), f.other, "cat-does-not-exist")

	if !errors.Is(errInUse, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-owner in-use delete, got %v", errInUse)
	}
	if !errors.Is(errMissing, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for missing id, got %v", errMissing)
	}
	if errInUse.Error() != errMissing.Error() {
		t.Fatalf("delete results are distinguishable: %q vs %q", errInUse, errMissing)
	}
}

func TestCategoryService_Delete_NonOwner(t *testing.T) {
	f := newCategoryFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, ports.CategoryInput{Nom: "Livres"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := f.svc.Delete(context.Background(), f.other, created.ID); !errors.Is(err, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}
