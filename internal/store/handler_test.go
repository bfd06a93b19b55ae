package store_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sk-equipments/storefront/internal/catalog"
	"github.com/sk-equipments/storefront/internal/store"
	"github.com/sk-equipments/storefront/internal/view"
	_ "github.com/sk-equipments/storefront/testing"
)

type stubProvider struct {
	snap *catalog.Snapshot
}

func (s *stubProvider) Load(ctx context.Context) *catalog.Snapshot {
	return s.snap
}

func fixtureSnapshot() *catalog.Snapshot {
	day := func(n int) time.Time {
		return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
	}
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	return &catalog.Snapshot{
		Products: []catalog.Product{
			{ID: 1, Title: "Sharp Edge Tester", Slug: "sharp-edge-tester", Category: "Toys Testing Equipment", Rating: 4, Price: price(85000), HasPrice: true, CreatedAt: day(5), IsFeatured: true},
			{ID: 2, Title: "Bursting Strength Tester", Slug: "bursting-strength-tester", Category: "Paper Testing Equipment", SubCategory: "Bursting Strength Tester", Rating: 5, Price: price(125000), HasPrice: true, CreatedAt: day(4), IsBestSelling: true},
			{ID: 3, Title: "Cobb Sizing Tester", Slug: "cobb-sizing-tester", Category: "Paper Testing Equipment", SubCategory: "Cobb Tester", Rating: 3, Price: price(45000), HasPrice: true, CreatedAt: day(3)},
			{ID: 4, Title: "Digital GSM Balance", Slug: "digital-gsm-balance", Category: "Paper Testing Equipment", Rating: 4, Price: price(65000), HasPrice: true, CreatedAt: day(2)},
			{ID: 5, Title: "Salt Spray Chamber", Slug: "salt-spray-chamber", Category: "Surface Testing Equipment", Rating: 5, CreatedAt: day(1)},
		},
		Categories: []catalog.Category{
			{ID: 1, Title: "Paper Testing Equipment", Slug: "paper-testing-equipment"},
			{ID: 2, Title: "Toys Testing Equipment", Slug: "toys-testing-equipment"},
			{ID: 3, Title: "Surface Testing Equipment", Slug: "surface-testing-equipment"},
		},
		Subcategories: []catalog.SubCategory{
			{ID: 1, Title: "Cobb Tester", Category: "Paper Testing Equipment", Slug: "cobb-tester"},
			{ID: 2, Title: "Bursting Strength Tester", Category: "Paper Testing Equipment", Slug: "bursting-strength-tester"},
		},
	}
}

func newStoreRouter(t *testing.T) http.Handler {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := store.NewHandler(logger, &stubProvider{snap: fixtureSnapshot()}, templates, nil, "919999999999")

	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestHomePage(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Sharp Edge Tester")
	assert.Contains(t, body, "Paper Testing Equipment")
}

func TestProductsPageFiltersBySearch(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/products?q=tester")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Sharp Edge Tester")
	assert.Contains(t, body, "Cobb Sizing Tester")
	// Title-only matching on the flat page.
	assert.NotContains(t, body, "Digital GSM Balance")
}

func TestProductsPageMinRating(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/products?rating=5")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Bursting Strength Tester")
	assert.Contains(t, body, "Salt Spray Chamber")
	assert.NotContains(t, body, "Sharp Edge Tester")
}

func TestCategoryPage(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/category/paper-testing-equipment")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Cobb Sizing Tester")
	assert.Contains(t, body, "Digital GSM Balance")
	assert.NotContains(t, body, "Salt Spray Chamber")
}

func TestCategoryPageSubcategoryFilter(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/category/paper-testing-equipment?subcategory=cobb-tester")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Cobb Sizing Tester")
	assert.NotContains(t, body, "Digital GSM Balance")
}

func TestCategoryPageSidebarListsAllCategories(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/category/toys-testing-equipment")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "/category/paper-testing-equipment")
	assert.Contains(t, body, "/category/surface-testing-equipment")
	// Another category's subcategories stay collapsed.
	assert.NotContains(t, body, "Cobb Tester")

	res = get(t, router, "/category/paper-testing-equipment")
	require.Equal(t, http.StatusOK, res.Code)
	body = res.Body.String()
	// The active category's group is open and its chips toggle in place.
	assert.Contains(t, body, "Cobb Tester")
	assert.Contains(t, body, "/category/paper-testing-equipment?subcategory=cobb-tester")
}

func TestCategoryPageSidebarExpandsSelectedSubcategoryParent(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/category/toys-testing-equipment?subcategory=cobb-tester")
	require.Equal(t, http.StatusOK, res.Code)
	// The parent group of the selected subcategory opens even though another
	// category page is active.
	assert.Contains(t, res.Body.String(), "Cobb Tester")
}

func TestPriceFormCarriesActiveFacets(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/products?q=tester&rating=4&categories=Paper+Testing+Equipment&subcategory=cobb-tester")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, `name="q" value="tester"`)
	assert.Contains(t, body, `name="rating" value="4"`)
	assert.Contains(t, body, `name="categories" value="Paper Testing Equipment"`)
	assert.Contains(t, body, `name="subcategory" value="cobb-tester"`)
}

func TestCategoryPageUnknownSlug(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/category/no-such-category")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestProductDetail(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/product/cobb-sizing-tester")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Cobb Sizing Tester")
	assert.Contains(t, body, "wa.me/919999999999")
	// Related products share the category.
	assert.Contains(t, body, "Digital GSM Balance")
}

func TestProductDetailUnknownSlug(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/product/no-such-product")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestSearchSuggest(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/search/suggest?q=paper")
	require.Equal(t, http.StatusOK, res.Code)
	require.True(t, strings.HasPrefix(res.Header().Get("Content-Type"), "application/json"))

	var payload struct {
		Suggestions []struct {
			Title    string `json:"title"`
			Slug     string `json:"slug"`
			Category string `json:"category"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))

	// Suggestions match on category as well as title.
	require.NotEmpty(t, payload.Suggestions)
	for _, s := range payload.Suggestions {
		assert.Equal(t, "Paper Testing Equipment", s.Category)
	}
}

func TestSearchSuggestEmptyQuery(t *testing.T) {
	router := newStoreRouter(t)

	res := get(t, router, "/search/suggest")
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"suggestions":[]}`, res.Body.String())
}
