package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co/")
	t.Setenv("SUPABASE_URL_ANON_KEY", "anon")
	t.Setenv("MONGODB_URI", "mongodb+srv://resort:<password>@cluster.example.net")
	t.Setenv("MONGODB_PASSWORD", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("SUPABASE_JWKS_URL", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://demo.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "https://demo.supabase.co/auth/v1/.well-known/jwks.json", cfg.SupabaseJWKSURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "resort", cfg.MongoDBDatabase)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://resort.example.com, https://staff.example.com ,")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "resort")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://resort.example.com", "https://staff.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.CloudinaryEnabled())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"supabase url", "SUPABASE_URL"},
		{"supabase key", "SUPABASE_URL_ANON_KEY"},
		{"mongo uri", "MONGODB_URI"},
		{"mongo password", "MONGODB_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.unset)
		})
	}
}
