package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductService implements product CRUD with ownership enforcement and
// referential validation of the category reference.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
	log        zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *ProductService {
	return &ProductService{products: products, categories: categories, users: users, log: log}
}

// checkCategoryRef verifies the declared category resolves to an
// existing record. The caller does not have to own the category:
// cross-owner association is allowed.
func (s *ProductService) checkCategoryRef(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return domain.ErrInvalidCategoryRef
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.ErrInvalidCategoryRef
		}
		return err
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, caller domain.Identity, in ports.ProductInput) (*ports.ProductView, error) {
	if err := s.checkCategoryRef(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Nom:         in.Nom,
		Description: in.Description,
		Prix:        in.Prix,
		Quantite:    in.Quantite,
		CategoryID:  in.CategoryID,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("user_id", caller.UserID).Msg("product created")
	return s.expand(ctx, created)
}

func (s *ProductService) List(ctx context.Context, filter ports.ListProductsFilter) (*ports.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views, err := s.expandAll(ctx, products)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ProductPage{
		Products:    views,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
		Total:       total,
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*ports.ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, product)
}

func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]*ports.ProductView, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, products)
}

// ListMine returns the caller's own products; admins see everything.
func (s *ProductService) ListMine(ctx context.Context, caller domain.Identity) ([]*ports.ProductView, error) {
	products, err := s.products.ListByOwner(ctx, ownerFilter(caller))
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, products)
}

func (s *ProductService) Update(ctx context.Context, caller domain.Identity, id string, in ports.ProductInput) (*ports.ProductView, error) {
	if err := s.checkCategoryRef(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	updated, err := s.products.UpdateOwned(ctx, id, ownerFilter(caller), ports.ProductPatch{
		Nom:         in.Nom,
		Description: in.Description,
		Prix:        in.Prix,
		Quantite:    in.Quantite,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, updated)
}

// Delete removes a product through the same owner-filtered atomic
// operation as updates: non-owners cannot tell a refusal apart from a
// missing record.
func (s *ProductService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if err := s.products.DeleteOwned(ctx, id, ownerFilter(caller)); err != nil {
		return err
	}

	s.log.Info().Str("product_id", id).Str("user_id", caller.UserID).Msg("product deleted")
	return nil
}

func (s *ProductService) expand(ctx context.Context, p *domain.Product) (*ports.ProductView, error) {
	views, err := s.expandAll(ctx, []*domain.Product{p})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// expandAll resolves category and creator references to summary
// projections with one batched lookup per collection.
func (s *ProductService) expandAll(ctx context.Context, products []*domain.Product) ([]*ports.ProductView, error) {
	categoryIDs := make([]string, 0, len(products))
	userIDs := make([]string, 0, len(products))
	for _, p := range products {
		categoryIDs = append(categoryIDs, p.CategoryID)
		userIDs = append(userIDs, p.CreatedBy)
	}

	categories, err := s.categories.Summaries(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	creators, err := s.users.Summaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*ports.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, &ports.ProductView{
			ID:          p.ID,
			Nom:         p.Nom,
			Description: p.Description,
			Prix:        p.Prix,
			Quantite:    p.Quantite,
			Category:    categories[p.CategoryID],
			CreatedBy:   creators[p.CreatedBy],
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return views, nil
}
