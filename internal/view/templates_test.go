package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderNotFoundPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, "pages/not_found.html", TemplateData{Title: "Not Found"})
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "Page not found")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"85000", "85,000"},
		{"245000", "245,000"},
		{"1250000", "1,250,000"},
		{"-85000", "-85,000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, groupThousands(tc.in), tc.in)
	}
}
