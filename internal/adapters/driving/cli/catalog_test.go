package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogStatus(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "catalog", "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Origin:    memory")
	assert.Contains(t, out, "Products:  4")
	assert.Contains(t, out, "Checksum:  v1")
}

func TestCatalogStatus_LoadFailure(t *testing.T) {
	src := setupTestServices(t)
	src.SetError(errors.New("disk on fire"))

	out, err := execute(t, "catalog", "status")

	require.Error(t, err)
	assert.Contains(t, out, "disk on fire")
	assert.Contains(t, out, "Products:  0")
}

func TestCatalogReload(t *testing.T) {
	src := setupTestServices(t)

	_, err := execute(t, "products", "list")
	require.NoError(t, err)

	src.Set(testCatalog()[:2])
	out, err := execute(t, "catalog", "reload")

	require.NoError(t, err)
	assert.Contains(t, out, "Reloaded 2 products from memory.")
	out, err = execute(t, "products", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "calcetines-pizza")
}

func TestCatalogReload_Failure(t *testing.T) {
	src := setupTestServices(t)
	src.SetError(errors.New("gone"))

	_, err := execute(t, "catalog", "reload")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload failed")
}

func TestCatalogValidate(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name    string
		content string
		wantErr bool
		want    string
	}{
		{
			name: "valid",
			content: `[{"id": 7, "title": "Lámpara", "description": "Luz", "price": 20,
				"image": "/i.jpg", "affiliateUrl": "https://a.es/7", "createdAt": "2024-05-01"}]`,
			want: "is valid",
		},
		{
			name:    "missing createdAt warns",
			content: `[{"id": 8, "title": "Lámpara", "description": "Luz", "price": 20, "image": "/i.jpg", "affiliateUrl": "https://a.es/8"}]`,
			want:    "createdAt",
		},
		{
			name:    "invalid record",
			content: `[{"id": 9, "title": "Sin precio", "description": "x", "image": "/i.jpg", "affiliateUrl": "https://a.es/9"}]`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			content: `[{`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "products.json", tt.content)

			out, err := execute(t, "catalog", "validate", path)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "is invalid")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCatalogValidate_NotConfigured(t *testing.T) {
	setupTestServices(t)
	openSource = nil

	_, err := execute(t, "catalog", "validate", "x.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
