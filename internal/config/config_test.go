package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ppf-order-backend/internal/config"
)

func setRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "anon-key")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")
	for _, key := range []string{"SUPABASE_SERVICE_ROLE_KEY", "SUPABASE_STORAGE_BUCKET", "PORT", "ENVIRONMENT", "MAX_PHOTO_BYTES"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "order-photos", cfg.SupabaseStorageBucket)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, int64(10<<20), cfg.MaxPhotoBytes)
	assert.Equal(t, "anon-key", cfg.StorageKey())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ServiceRoleKeyPreferredForStorage(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "service-key", cfg.StorageKey())
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_JWT_SECRET is required")
}

func TestLoad_InvalidMaxPhotoBytes(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_PHOTO_BYTES", "lots")

	_, err := config.Load()
	assert.Error(t, err)
}
