package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		App:       App{Port: 3000, AssetDir: "web", DistDir: "dist"},
		YouTube:   YouTube{APIKey: "key"},
		Analysis:  Analysis{Locale: DefaultLocale, Timezone: DefaultTimezone, TimezoneLabel: DefaultTimezoneLabel},
		Favorites: Favorites{Backend: BackendFile, Path: "favorites.json", Key: DefaultFavoritesKey},
	}
}

func TestConfiguration_Defaults(t *testing.T) {
	t.Setenv("FAVORITES_BACKEND", "")
	t.Setenv("ANALYSIS_TIMEZONE", "")

	cfg := Config{}
	initApp(&cfg)
	initAnalysis(&cfg)
	initFavorites(&cfg)

	assert.Equal(t, DefaultTimezone, cfg.Analysis.Timezone)
	assert.Equal(t, DefaultTimezoneLabel, cfg.Analysis.TimezoneLabel)
	assert.Equal(t, DefaultLocale, cfg.Analysis.Locale)
	assert.Equal(t, BackendFile, cfg.Favorites.Backend)
	assert.Equal(t, DefaultFavoritesKey, cfg.Favorites.Key)
	assert.NotZero(t, cfg.App.Port)
}

func TestConfiguration_EnvOverlay(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "8081")
	t.Setenv("YOUTUBE_API_KEY", "from-env")
	t.Setenv("FAVORITES_BACKEND", BackendRedis)

	cfg := Config{YouTube: YouTube{APIKey: "from-file"}}
	initApp(&cfg)
	initFavorites(&cfg)

	assert.Equal(t, 8081, cfg.App.Port)
	assert.Equal(t, "from-env", cfg.YouTube.APIKey)
	assert.Equal(t, BackendRedis, cfg.Favorites.Backend)
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("CI_TEST_VALUE", "")

	assert.Equal(t, "file", getConfigValue("file", "CI_TEST_VALUE", "default"))
	assert.Equal(t, "default", getConfigValue("YOUR_API_KEY", "CI_TEST_VALUE", "default"))
	assert.Equal(t, "default", getConfigValue("", "CI_TEST_VALUE", "default"))

	t.Setenv("CI_TEST_VALUE", "env")
	assert.Equal(t, "env", getConfigValue("file", "CI_TEST_VALUE", "default"))
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate(true))
	})

	t.Run("missing_api_key", func(t *testing.T) {
		cfg := validConfig()
		cfg.YouTube.APIKey = ""
		require.Error(t, cfg.Validate(true))
		require.NoError(t, cfg.Validate(false), "build does not need an API key")
	})

	t.Run("unknown_backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.Favorites.Backend = "localStorage"
		err := cfg.Validate(true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "localStorage")
	})

	t.Run("postgres_without_database", func(t *testing.T) {
		cfg := validConfig()
		cfg.Favorites.Backend = BackendPostgres
		require.Error(t, cfg.Validate(true))
	})

	t.Run("unknown_timezone", func(t *testing.T) {
		cfg := validConfig()
		cfg.Analysis.Timezone = "Mars/Olympus"
		require.Error(t, cfg.Validate(true))
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("FAVORITES_BACKEND", "")

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"app": {"port": 4100, "assetDir": "public"},
		"youtube": {"apiKey": "file-key"},
		"favorites": {"backend": "redis", "key": "favs"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, LoadConfigFile(path))
	assert.Equal(t, 4100, C.App.Port)
	assert.Equal(t, "public", C.App.AssetDir)
	assert.Equal(t, "file-key", C.YouTube.APIKey)
	assert.Equal(t, BackendRedis, C.Favorites.Backend)
	assert.Equal(t, "favs", C.Favorites.Key)
	assert.Equal(t, DefaultTimezone, C.Analysis.Timezone)

	require.Error(t, LoadConfigFile(filepath.Join(t.TempDir(), "missing.json")))
}

func TestLoadEnvFromFile_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nCI_ENV_A=\"one\"\nCI_ENV_B=two\n"), 0o600))
	t.Setenv("CI_ENV_B", "preset")
	os.Unsetenv("CI_ENV_A")
	defer os.Unsetenv("CI_ENV_A")

	loaded := LoadEnvFromFile(path, filepath.Join(t.TempDir(), "absent.env"))

	assert.Equal(t, []string{path}, loaded)

	assert.Equal(t, "one", os.Getenv("CI_ENV_A"))
	assert.Equal(t, "preset", os.Getenv("CI_ENV_B"))
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line string
		key  string
		val  string
		ok   bool
	}{
		{"A=1", "A", "1", true},
		{"export B = 'two'", "B", "two", true},
		{`C="x=y"`, "C", "x=y", true},
		{"# comment", "", "", false},
		{"   ", "", "", false},
		{"NOVALUE", "", "", false},
		{"=orphan", "", "", false},
	}
	for _, tt := range tests {
		key, val, ok := parseEnvLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.key, key, tt.line)
		assert.Equal(t, tt.val, val, tt.line)
	}
}
