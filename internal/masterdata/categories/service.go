package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/sk-equipments/storefront/internal/catalog"
	"github.com/sk-equipments/storefront/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, category Category) (Category, error) {
	if err := s.validate(&category); err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, category)
}

func (s *Service) Update(ctx context.Context, id int64, category Category) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.validate(&category); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, category)
}

// Delete refuses to remove a category while products still reference it. The
// rename propagation in Update makes the title join key safe to change, but a
// dangling title would orphan products silently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.ProductCount(ctx, category.Title)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d products still use %q", shared.ErrInUse, n, category.Title)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(c *Category) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return fmt.Errorf("%w: title", shared.ErrRequiredField)
	}
	if c.Slug == "" {
		c.Slug = catalog.Slugify(c.Title)
	} else {
		c.Slug = catalog.Slugify(c.Slug)
	}
	return nil
}
