package subcategories

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]SubCategory, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (SubCategory, error) {
	if id <= 0 {
		return SubCategory{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, sub SubCategory) (SubCategory, error) {
	if err := s.validate(&sub); err != nil {
		return SubCategory{}, err
	}
	return s.repo.Create(ctx, sub)
}

func (s *Service) Update(ctx context.Context, id int64, sub SubCategory) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.validate(&sub); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, sub)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(sub *SubCategory) error {
	sub.Title = strings.TrimSpace(sub.Title)
	sub.Category = strings.TrimSpace(sub.Category)
	if sub.Title == "" {
		return fmt.Errorf("%w: title", shared.ErrRequiredField)
	}
	if sub.Category == "" {
		return fmt.Errorf("%w: category", shared.ErrRequiredField)
	}
	if sub.Slug == "" {
		sub.Slug = catalog.Slugify(sub.Title)
	} else {
		sub.Slug = catalog.Slugify(sub.Slug)
	}
	return nil
}
