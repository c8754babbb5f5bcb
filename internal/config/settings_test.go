package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/skinvault/internal/catalog"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/gw2"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	s, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/skinvault/skinvault.db"), s.DBPath)
	assert.Equal(t, gw2.DefaultBaseURL, s.API.BaseURL)
	assert.Equal(t, gw2.DefaultRequestsPerMinute, s.API.RequestsPerMinute)
	assert.Zero(t, s.API.Timeout)
	assert.Equal(t, 200, s.BatchSize)
	assert.Equal(t, 24*time.Hour, s.CacheTTL)
	assert.Equal(t, catalog.PreferLowest, s.Preference)
	assert.Empty(t, s.APIKey)
	assert.False(t, s.NoPersist)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(APIKeyEnv, "FROM-ENV")

	v := newViper()
	v.Set("database.path", "~/vault.db")
	v.Set("api.timeout", "30s")
	v.Set("cache.ttl", "1h")
	v.Set("catalog.prefer_rarity", "HIGHEST")

	s, err := Load(v)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "vault.db"), s.DBPath)
	assert.Equal(t, 30*time.Second, s.API.Timeout)
	assert.Equal(t, time.Hour, s.CacheTTL)
	assert.Equal(t, catalog.PreferHighest, s.Preference)
	assert.Equal(t, "FROM-ENV", s.APIKey)

	v.Set("api.key", "FROM-CONFIG")
	s, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, "FROM-CONFIG", s.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		value any
		name  string
		key   string
	}{
		{name: "unknown preference", key: "catalog.prefer_rarity", value: "median"},
		{name: "zero ttl", key: "cache.ttl", value: "0s"},
		{name: "bad base url", key: "api.base_url", value: "ftp://example.com"},
		{name: "batch too large", key: "api.batch_size", value: 500},
		{name: "negative retries", key: "api.retries", value: -1},
		{name: "negative timeout", key: "api.timeout", value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SKINVAULT_TEST_DIR", "/tmp/vault")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "a/b.db"), ExpandPath("~/a/b.db"))
	assert.Equal(t, "/tmp/vault/x.db", ExpandPath("$SKINVAULT_TEST_DIR/x.db"))
	assert.Equal(t, "/abs/path.db", ExpandPath("/abs/path.db"))
}
