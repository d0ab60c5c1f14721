package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqmweb/catalog/internal/core/domain"
)

func TestConfigShow(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "path:            "+domain.DefaultCatalogPath)
	assert.Contains(t, out, "reload_schedule: (none)")
	assert.Contains(t, out, "url:               "+domain.DefaultSiteURL)
	assert.Contains(t, out, "source: mqm-web")
	assert.Contains(t, out, "rate_limit: 20")
	assert.Contains(t, out, "tazas")
}

func TestConfigSet(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "config", "set", "site.products_per_page", "24")
	require.NoError(t, err)
	assert.Contains(t, out, "site.products_per_page = 24")

	out, err = execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "products_per_page: 24")
}

func TestConfigSet_Invalid(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "set", "nope", "1"}},
		{"bad int", []string{"config", "set", "site.products_per_page", "muchos"}},
		{"missing value", []string{"config", "set", "site.name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigKeys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "config", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "catalog.path")
	assert.Contains(t, out, "server.rate_limit")
}

func TestConfig_NotConfigured(t *testing.T) {
	setupTestServices(t)
	settingsService = nil

	_, err := execute(t, "config", "show")

	assert.ErrorIs(t, err, errSettingsNotConfigured)
}
