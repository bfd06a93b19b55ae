package catalog

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sharp Edge Tester For Toys", "sharp-edge-tester-for-toys"},
		{"Bursting Strength Gauge", "bursting-strength-gauge"},
		{"  Cobb   Tester  ", "cobb-tester"},
		{"GSM/Basis Weight (Digital)", "gsm-basis-weight-digital"},
		{"Précision Gauge", "precision-gauge"},
		{"---", ""},
		{"", ""},
		{"100% Cotton Tester", "100-cotton-tester"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	title := "Paper & Packaging — Cobb Tester #2"
	first := Slugify(title)
	for i := 0; i < 5; i++ {
		if got := Slugify(title); got != first {
			t.Fatalf("Slugify not deterministic: %q vs %q", got, first)
		}
	}
}

func TestCategoryNameFromRoute(t *testing.T) {
	if got := CategoryNameFromRoute("paper-testing-equipment"); got != "paper testing equipment" {
		t.Errorf("got %q", got)
	}
	if got := CategoryNameFromRoute("toys"); got != "toys" {
		t.Errorf("got %q", got)
	}
}
