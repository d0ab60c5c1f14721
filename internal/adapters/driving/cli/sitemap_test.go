package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "sitemap", "--base-url", "https://example.com/")

	require.NoError(t, err)
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://example.com/producto/taza-friki</loc>")
	assert.Contains(t, out, "<loc>https://example.com/categoria/tazas</loc>")
	assert.Contains(t, out, "<lastmod>2024-01-04</lastmod>")
}

func TestSitemapCmd_DefaultsToSiteURL(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "sitemap")

	require.NoError(t, err)
	assert.Contains(t, out, "<loc>https://www.mierdasquemolan.com</loc>")
}
