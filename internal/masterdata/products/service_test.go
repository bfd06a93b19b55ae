package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sk-equipments/storefront/internal/masterdata/shared"
)

type fakeRepo struct {
	created Product
	updated Product
	deleted int64
}

func (f *fakeRepo) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Product, error) {
	return Product{ID: id, Title: "Tensile Strength Tester"}, nil
}

func (f *fakeRepo) Create(ctx context.Context, p Product) (Product, error) {
	f.created = p
	p.ID = 1
	return p, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, p Product) error {
	f.updated = p
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = id
	return nil
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Product{
		Title:    "Bursting Strength Tester — Digital",
		Category: "Paper Testing Equipment",
	})
	require.NoError(t, err)
	assert.Equal(t, "bursting-strength-tester-digital", created.Slug)
}

func TestCreateNormalizesProvidedSlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Product{
		Title:    "Cobb Sizing Tester",
		Category: "Paper Testing Equipment",
		Slug:     "  Cobb Sizing TESTER  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "cobb-sizing-tester", created.Slug)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), Product{Category: "Paper Testing Equipment"})
	assert.ErrorIs(t, err, shared.ErrRequiredField)

	_, err = svc.Create(context.Background(), Product{Title: "Sample Cutter"})
	assert.ErrorIs(t, err, shared.ErrRequiredField)

	_, err = svc.Create(context.Background(), Product{
		Title: "Sample Cutter", Category: "Paper Testing Equipment", Rating: 6,
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	neg := decimal.NewFromInt(-10)
	_, err = svc.Create(context.Background(), Product{
		Title: "Sample Cutter", Category: "Paper Testing Equipment", Price: &neg,
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateRejectsInvalidID(t *testing.T) {
	svc := NewService(&fakeRepo{})

	err := svc.Update(context.Background(), 0, Product{Title: "x", Category: "y"})
	assert.ErrorIs(t, err, shared.ErrInvalidID)

	_, err = svc.Get(context.Background(), -1)
	assert.ErrorIs(t, err, shared.ErrInvalidID)
}

func TestDeletePassesThrough(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), 42))
	assert.Equal(t, int64(42), repo.deleted)
}
