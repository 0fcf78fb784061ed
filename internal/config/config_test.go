package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/venkyden/Roomivo/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "5001", cfg.HTTPPort)
	require.Equal(t, "roomivo", cfg.MongoDatabase)
	require.Equal(t, "roomivo-api", cfg.ServiceName)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGODB_URI", "")

	_, err := config.Load()
	require.ErrorContains(t, err, "MONGODB_URI")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "too-short-for-hs256")

	_, err := config.Load()
	require.ErrorContains(t, err, "at least 32 bytes")
}
