package service

import (
	"context"
	"fmt"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They enforce the same filter semantics as
// the real Mongo repositories (unique indexes, combined id+owner filters)
// so the services can be exercised without a database.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) id() string {
	r.nextID++
	return fmt.Sprintf("user-%d", r.nextID)
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	created := cloneUser(user)
	created.ID = r.id()
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if patch.Nom != "" {
		u.Nom = patch.Nom
	}
	if patch.Role != "" {
		u.Role = patch.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Summaries(_ context.Context, ids []string) (map[string]ports.UserSummary, error) {
	out := make(map[string]ports.UserSummary)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = ports.UserSummary{ID: id, Nom: u.Nom, Email: u.Email}
		}
	}
	return out, nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	nextID     int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func cloneCategory(c *domain.Category) *domain.Category {
	clone := *c
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	for _, existing := range r.categories {
		if existing.Nom == category.Nom {
			return nil, domain.ErrDuplicateCategory
		}
	}
	r.nextID++
	created := cloneCategory(category)
	created.ID = fmt.Sprintf("cat-%d", r.nextID)
	r.categories[created.ID] = cloneCategory(created)
	return created, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) FindAll(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, cloneCategory(c))
	}
	return out, nil
}

// UpdateOwned mirrors the real Mongo filter: id and, when ownerID is
// non-empty, createdBy must both match atomically.
func (r *stubCategoryRepo) UpdateOwned(_ context.Context, id, ownerID string, patch ports.CategoryPatch) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok || (ownerID != "" && c.CreatedBy != ownerID) {
		return nil, domain.ErrNotFoundOrForbidden
	}
	c.Nom = patch.Nom
	c.Description = patch.Description
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	c, ok := r.categories[id]
	if !ok || (ownerID != "" && c.CreatedBy != ownerID) {
		return domain.ErrNotFoundOrForbidden
	}
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) Summaries(_ context.Context, ids []string) (map[string]ports.CategorySummary, error) {
	out := make(map[string]ports.CategorySummary)
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out[id] = ports.CategorySummary{ID: id, Nom: c.Nom, Description: c.Description}
		}
	}
	return out, nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
	order    []string
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.nextID++
	created := cloneProduct(product)
	created.ID = fmt.Sprintf("prod-%d", r.nextID)
	r.products[created.ID] = cloneProduct(created)
	r.order = append(r.order, created.ID)
	return created, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

// newestFirst returns live products in reverse insertion order, the
// same ordering the Mongo repository produces with its createdAt sort.
func (r *stubProductRepo) newestFirst() []*domain.Product {
	out := make([]*domain.Product, 0, len(r.products))
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.products[r.order[i]]; ok {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for _, p := range r.newestFirst() {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		matched = append(matched, p)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProductRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.newestFirst() {
		if ownerID != "" && p.CreatedBy != ownerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) ListByCategory(_ context.Context, categoryID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.newestFirst() {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) UpdateOwned(_ context.Context, id, ownerID string, patch ports.ProductPatch) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok || (ownerID != "" && p.CreatedBy != ownerID) {
		return nil, domain.ErrNotFoundOrForbidden
	}
	p.Nom = patch.Nom
	p.Description = patch.Description
	p.Prix = patch.Prix
	p.Quantite = patch.Quantite
	p.CategoryID = patch.CategoryID
	return cloneProduct(p), nil
}

func (r *stubProductRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	p, ok := r.products[id]
	if !ok || (ownerID != "" && p.CreatedBy != ownerID) {
		return domain.ErrNotFoundOrForbidden
	}
	delete(r.products, id)
	return nil
}
