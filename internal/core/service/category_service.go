package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

// CategoryService implements category CRUD with ownership enforcement.
//
// Mutations go through the repository's owner-filtered operations: the
// owner constraint is part of the store filter itself, so authorization
// and mutation happen in one atomic step. Admin callers pass an empty
// owner id, which skips the constraint.
type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	users      ports.UserRepository
	log        zerolog.Logger
}

func NewCategoryService(
	categories ports.CategoryRepository,
	products ports.ProductRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *CategoryService {
	return &CategoryService{categories: categories, products: products, users: users, log: log}
}

// ownerFilter returns the createdBy constraint for a caller: admins get
// no constraint, everyone else is pinned to their own records.
func ownerFilter(caller domain.Identity) string {
	if caller.IsAdmin() {
		return ""
	}
	return caller.UserID
}

func (s *CategoryService) Create(ctx context.Context, caller domain.Identity, in ports.CategoryInput) (*ports.CategoryView, error) {
	now := time.Now().UTC()
	category := &domain.Category{
		Nom:         in.Nom,
		Description: in.Description,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("category_id", created.ID).Str("user_id", caller.UserID).Msg("category created")
	return s.expand(ctx, created)
}

func (s *CategoryService) List(ctx context.Context) ([]*ports.CategoryView, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, categories)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*ports.CategoryView, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, category)
}

func (s *CategoryService) Update(ctx context.Context, caller domain.Identity, id string, in ports.CategoryInput) (*ports.CategoryView, error) {
	updated, err := s.categories.UpdateOwned(ctx, id, ownerFilter(caller), ports.CategoryPatch{
		Nom:         in.Nom,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, updated)
}

// Delete removes a category. Ownership is resolved before the in-use
// guard so a non-owner gets the same conflated not-found whether the
// category is referenced or not. Deletion is refused while any product
// still references the category, so no dangling references are left
// behind.
func (s *CategoryService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.ErrNotFoundOrForbidden
		}
		return err
	}
	if owner := ownerFilter(caller); owner != "" && category.CreatedBy != owner {
		return domain.ErrNotFoundOrForbidden
	}

	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categories.DeleteOwned(ctx, id, ownerFilter(caller)); err != nil {
		return err
	}

	s.log.Info().Str("category_id", id).Str("user_id", caller.UserID).Msg("category deleted")
	return nil
}

func (s *CategoryService) expand(ctx context.Context, c *domain.Category) (*ports.CategoryView, error) {
	views, err := s.expandAll(ctx, []*domain.Category{c})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// expandAll resolves createdBy ids to user summaries in one batch.
func (s *CategoryService) expandAll(ctx context.Context, categories []*domain.Category) ([]*ports.CategoryView, error) {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.CreatedBy)
	}

	creators, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*ports.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, &ports.CategoryView{
			ID:          c.ID,
			Nom:         c.Nom,
			Description: c.Description,
			CreatedBy:   creators[c.CreatedBy],
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		})
	}
	return views, nil
}
