package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	price := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}
	return &Snapshot{
		Products: []Product{
			{ID: 1, Title: "Sharp Edge Tester For Toys", Category: "Toys Testing Equipment", Rating: 4, Reviews: 12, Price: price("45000"), HasPrice: true, Slug: "sharp-edge-tester-for-toys", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Title: "Bursting Strength Gauge", Category: "Paper Testing Equipment", SubCategory: "Bursting Strength Tester", Rating: 3, Reviews: 8, Price: price("120000"), HasPrice: true, Slug: "bursting-strength-gauge", CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 3, Title: "Cobb Sizing Tester", Category: "Paper Testing Equipment", SubCategory: "Cobb Tester", Rating: 5, Reviews: 20, Price: price("38000"), HasPrice: true, Slug: "cobb-sizing-tester", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 4, Title: "Digital GSM Balance", Category: "Paper Testing Equipment", Rating: 2, Reviews: 3, Slug: "digital-gsm-balance", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 5, Title: "Salt Spray Chamber", Category: "Corrosion Testing Equipment", Rating: 4, Reviews: 9, Price: price("230000"), HasPrice: true, Slug: "salt-spray-chamber", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Categories: []Category{
			{ID: 1, Title: "Paper Testing Equipment", Slug: "paper-testing-equipment"},
			{ID: 2, Title: "Toys Testing Equipment", Slug: "toys-testing-equipment"},
			{ID: 3, Title: "Corrosion Testing Equipment", Slug: "corrosion-testing-equipment"},
		},
		Subcategories: []SubCategory{
			{ID: 1, Title: "Cobb Tester", Category: "Paper Testing Equipment", Slug: "cobb-tester"},
			{ID: 2, Title: "Bursting Strength Tester", Category: "Paper Testing Equipment", Slug: "bursting-strength-tester"},
		},
	}
}

func TestFilterDefaultCriteriaReturnsEverything(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(DefaultCriteria())
	require.Len(t, got, len(snap.Products))
	for i, p := range got {
		assert.Equal(t, snap.Products[i].ID, p.ID, "order must be preserved")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	snap := testSnapshot()
	c := Criteria{Query: "tester", MinRating: 3}
	first := snap.Filter(c)
	second := snap.Filter(c)
	assert.Equal(t, first, second)
}

func TestFilterNeverGrowsResultSet(t *testing.T) {
	snap := testSnapshot()
	cases := []Criteria{
		{},
		{Query: "gauge"},
		{Categories: []string{"Paper Testing Equipment"}},
		{MinRating: 4},
		{PriceMin: decimal.NewFromInt(40000), PriceMax: decimal.NewFromInt(150000)},
		{Query: "tester", MinRating: 3, Categories: []string{"Paper Testing Equipment"}},
	}
	for _, c := range cases {
		got := snap.Filter(c)
		assert.LessOrEqual(t, len(got), len(snap.Products))
	}
}

func TestSearchMatchesTitleSubstringCaseInsensitive(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{Query: "tester"})
	titles := make([]string, 0, len(got))
	for _, p := range got {
		titles = append(titles, p.Title)
	}
	assert.Contains(t, titles, "Sharp Edge Tester For Toys")
	assert.NotContains(t, titles, "Bursting Strength Gauge")
}

func TestSearchOnCategoryPageAlsoMatchesCategory(t *testing.T) {
	snap := testSnapshot()

	// Flat page: title only, so "paper" matches nothing.
	assert.Empty(t, snap.Filter(Criteria{Query: "paper"}))

	// Category page: the category name participates in the match.
	got := snap.Filter(Criteria{CategoryRoute: "paper testing equipment", Query: "paper"})
	assert.Len(t, got, 3)
}

func TestMinRatingBoundary(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{MinRating: 3})
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Rating, 3)
	}
	ids := idsOf(got)
	assert.Contains(t, ids, int64(2), "rating 3 product is included")
	assert.NotContains(t, ids, int64(4), "rating 2 product is excluded")
}

func TestPriceRangeInclusive(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{
		PriceMin: decimal.NewFromInt(38000),
		PriceMax: decimal.NewFromInt(120000),
	})
	ids := idsOf(got)
	assert.Contains(t, ids, int64(3), "lower bound is inclusive")
	assert.Contains(t, ids, int64(2), "upper bound is inclusive")
	assert.NotContains(t, ids, int64(5))
}

func TestUnpricedProductCountsAsZero(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{PriceMin: decimal.NewFromInt(1)})
	assert.NotContains(t, idsOf(got), int64(4), "product without price is below any positive minimum")

	got = snap.Filter(Criteria{PriceMax: decimal.NewFromInt(10)})
	assert.Contains(t, idsOf(got), int64(4))
}

func TestCategoryRouteSegmentDecoding(t *testing.T) {
	snap := testSnapshot()
	name := CategoryNameFromRoute("paper-testing-equipment")
	assert.Equal(t, "paper testing equipment", name)

	got := snap.Filter(Criteria{CategoryRoute: name})
	require.Len(t, got, 3)
	for _, p := range got {
		assert.Equal(t, "Paper Testing Equipment", p.Category)
	}
}

func TestSubcategorySelection(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{
		CategoryRoute: "paper testing equipment",
		Subcategory:   "cobb-tester",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Cobb Sizing Tester", got[0].Title)
}

func TestSubcategoryUnknownSlugMatchesNothing(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{Subcategory: "no-such-slug"})
	assert.Empty(t, got)
}

func TestSubcategoryExcludesProductsWithoutSubcategory(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{Subcategory: "cobb-tester"})
	for _, p := range got {
		assert.NotEmpty(t, p.SubCategory)
	}
}

func TestFlatPageMultiCategorySelection(t *testing.T) {
	snap := testSnapshot()
	got := snap.Filter(Criteria{Categories: []string{
		"Toys Testing Equipment",
		"Corrosion Testing Equipment",
	}})
	assert.Equal(t, []int64{1, 5}, idsOf(got))
}

func TestEveryResultSatisfiesAllActivePredicates(t *testing.T) {
	snap := testSnapshot()
	c := Criteria{
		CategoryRoute: "paper testing equipment",
		MinRating:     3,
		PriceMax:      decimal.NewFromInt(150000),
		Query:         "tester",
	}
	for _, p := range snap.Filter(c) {
		assert.Equal(t, "paper testing equipment", titleFold(p.Category))
		assert.GreaterOrEqual(t, p.Rating, 3)
		assert.True(t, p.Price.LessThanOrEqual(decimal.NewFromInt(150000)))
		assert.True(t, matchSearch(p, "tester", true))
	}
}

func TestResetRestoresFullView(t *testing.T) {
	snap := testSnapshot()
	filtered := snap.Filter(Criteria{Query: "gauge", MinRating: 2})
	require.NotEqual(t, len(snap.Products), len(filtered))

	reset := snap.Filter(DefaultCriteria())
	assert.Len(t, reset, len(snap.Products))
	assert.True(t, DefaultCriteria().IsDefault())
}

func TestFilterNilAndEmptySnapshot(t *testing.T) {
	var nilSnap *Snapshot
	assert.Empty(t, nilSnap.Filter(DefaultCriteria()))
	assert.Empty(t, (&Snapshot{}).Filter(Criteria{Query: "x"}))
}

func TestLatestSortsByCreatedAtDescending(t *testing.T) {
	snap := testSnapshot()
	// Append a record with no parseable date; it must sort last.
	snap.Products = append(snap.Products, Product{ID: 6, Title: "Legacy Tensile Rig", Category: "Paper Testing Equipment"})

	got := snap.Filter(Criteria{Latest: true})
	require.Len(t, got, 6)
	for i := 1; i < len(got)-1; i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
	assert.Equal(t, int64(6), got[len(got)-1].ID)
}

func TestSuggestMatchesTitleOrCategory(t *testing.T) {
	snap := testSnapshot()
	got := snap.Suggest("corrosion", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Salt Spray Chamber", got[0].Title)

	got = snap.Suggest("tester", 2)
	assert.Len(t, got, 2, "limit is honoured")

	assert.Nil(t, snap.Suggest("   ", 5))
}

func TestCategoryTitlesDistinctInSnapshotOrder(t *testing.T) {
	snap := testSnapshot()
	assert.Equal(t, []string{
		"Toys Testing Equipment",
		"Paper Testing Equipment",
		"Corrosion Testing Equipment",
	}, snap.CategoryTitles())
}

func TestFindProductSlugFallbackChain(t *testing.T) {
	snap := testSnapshot()

	p, ok := snap.FindProduct("cobb-sizing-tester")
	require.True(t, ok)
	assert.Equal(t, int64(3), p.ID)

	// Stored slug with odd casing still resolves.
	snap.Products[0].Slug = "Sharp-Edge-Tester-For-Toys"
	p, ok = snap.FindProduct("sharp-edge-tester-for-toys")
	require.True(t, ok)
	assert.Equal(t, int64(1), p.ID)

	// A record without a usable slug falls back to the derived title slug.
	snap.Products[4].Slug = ""
	p, ok = snap.FindProduct("salt-spray-chamber")
	require.True(t, ok)
	assert.Equal(t, int64(5), p.ID)

	_, ok = snap.FindProduct("does-not-exist")
	assert.False(t, ok)
}

func TestRelatedSkipsSelfAndOtherCategories(t *testing.T) {
	snap := testSnapshot()
	got := snap.Related(snap.Products[1], 4)
	assert.Equal(t, []int64{3, 4}, idsOf(got))
}

func idsOf(products []Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func BenchmarkFilter(b *testing.B) {
	snap := &Snapshot{}
	for i := 0; i < 2000; i++ {
		snap.Products = append(snap.Products, Product{
			ID:       int64(i),
			Title:    fmt.Sprintf("Instrument %d", i),
			Category: fmt.Sprintf("Category %d", i%7),
			Rating:   i % 6,
			Price:    decimal.NewFromInt(int64(1000 * i)),
		})
	}
	c := Criteria{Query: "instrument 1", MinRating: 2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		snap.Filter(c)
	}
}
