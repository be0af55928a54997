package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"RESTOCK_DB", "RESTOCK_ADDR", "RESTOCK_LOG", "RESTOCK_JWT_SECRET", "RESTOCK_PUBLIC_URL",
	"RESTOCK_ASSET_BACKEND", "RESTOCK_ASSET_DIR",
	"RESTOCK_S3_ENDPOINT", "RESTOCK_S3_REGION", "RESTOCK_S3_BUCKET", "RESTOCK_S3_ACCESS_KEY",
	"RESTOCK_S3_SECRET_KEY", "RESTOCK_S3_USE_SSL", "RESTOCK_S3_PUBLIC_URL",
}

// cleanEnv runs the test from an empty directory with no RESTOCK_ variables
// set, so neither a developer's .env nor their shell leaks in.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "restock.sqlite3", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Equal(t, BackendLocal, cfg.AssetBackend)
	assert.Equal(t, "assets", cfg.AssetDir)
	assert.Equal(t, "restock", cfg.S3.Bucket)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Setenv("RESTOCK_ADDR", "0.0.0.0:9000")
	t.Setenv("RESTOCK_JWT_SECRET", "s3cret")
	t.Setenv("RESTOCK_ASSET_BACKEND", "s3")
	t.Setenv("RESTOCK_S3_ENDPOINT", "minio:9000")
	t.Setenv("RESTOCK_S3_USE_SSL", "true")
	t.Setenv("RESTOCK_S3_ACCESS_KEY", "key")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, "http://0.0.0.0:9000", cfg.PublicURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, BackendS3, cfg.AssetBackend)
	assert.Equal(t, "minio:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, "key", cfg.S3.AccessKey)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Setenv("RESTOCK_DB", "env.sqlite3")

	cfg, err := Load([]string{"-d", "flag.sqlite3", "-addr", ":9090", "-u", "https://stock.example.com/"})
	require.NoError(t, err)

	assert.Equal(t, "flag.sqlite3", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://stock.example.com", cfg.PublicURL)
}

func TestLoadDotEnv(t *testing.T) {
	cleanEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("RESTOCK_ASSET_DIR=/srv/restock/assets\n"), 0o600))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/restock/assets", cfg.AssetDir)
}

func TestLoadErrors(t *testing.T) {
	cleanEnv(t)

	_, err := Load([]string{"-backend", "ftp"})
	assert.ErrorContains(t, err, "unknown asset backend")

	_, err = Load([]string{"-b", "s3"})
	assert.ErrorContains(t, err, "RESTOCK_S3_ENDPOINT")

	_, err = Load([]string{"extra"})
	assert.ErrorContains(t, err, "unexpected argument")

	_, err = Load([]string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}
