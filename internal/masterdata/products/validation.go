package products

import (
	"fmt"
	"strings"

	"github.com/sk-equipments/storefront/internal/masterdata/shared"
)

func (s *Service) validate(p *Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title", shared.ErrRequiredField)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category", shared.ErrRequiredField)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", shared.ErrValidation)
	}
	if p.Reviews < 0 {
		return fmt.Errorf("%w: reviews cannot be negative", shared.ErrValidation)
	}
	if p.Price != nil && p.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", shared.ErrValidation)
	}
	deriveSlug(p)
	if p.Slug == "" {
		return fmt.Errorf("%w: slug", shared.ErrRequiredField)
	}
	return nil
}
