package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqmweb/catalog/internal/core/domain"
)

func TestCategoriesCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "categories")

	require.NoError(t, err)
	assert.Contains(t, out, "tazas")
	assert.Contains(t, out, "ropa")
	assert.NotContains(t, out, "viral", "empty categories are hidden")
	assert.Less(t, strings.Index(out, "tazas"), strings.Index(out, "ropa"), "registry order")
}

func TestCategoriesCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "categories", "--json")

	require.NoError(t, err)
	var counts []domain.CategoryCount
	require.NoError(t, json.Unmarshal([]byte(out), &counts))

	got := make(map[string]int, len(counts))
	for _, c := range counts {
		got[c.Slug] = c.Count
	}
	want := map[string]int{"tazas": 2, "blog": 1, "ropa": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("category counts mismatch (-want +got):\n%s", diff)
	}
}
