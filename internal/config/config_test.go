package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadFrom("", envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, domain.ProviderMock, cfg.Settings.AIProvider)
}

func TestLoadFrom_YAML(t *testing.T) {
	path := writeFile(t, "mindbuffer.yaml", `
settings:
  language: en
  aiProvider: deepseek
  dailyLimit: "5"
storage:
  backend: sqlite
  sqlite_path: /tmp/mb.db
  redact_secrets: true
http_addr: ":9090"
request_timeout: 5s
mock_delay: 0s
`)

	cfg, err := LoadFrom(path, envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, domain.LangEnglish, cfg.Settings.Language)
	assert.Equal(t, domain.ProviderDeepSeek, cfg.Settings.AIProvider)
	assert.Equal(t, 5, cfg.Settings.DailyLimit)
	assert.Equal(t, "Friend", cfg.Settings.Nickname)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/mb.db", cfg.Storage.SQLitePath)
	assert.True(t, cfg.Storage.RedactSecrets)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Zero(t, cfg.MockDelay)
}

func TestLoadFrom_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"storage":{"backend":"redis","redis_addr":"cache:6379","redis_db":2}}`)

	cfg, err := LoadFrom(path, envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "mindbuffer.yaml", "settings:\n  language: ja\nlog_level: warn\n")

	cfg, err := LoadFrom(path, envOf(map[string]string{
		"MINDBUFFER_LANGUAGE":       "zh",
		"MINDBUFFER_API_KEY":        "sk-test",
		"MINDBUFFER_AI_PROVIDER":    "gemini",
		"MINDBUFFER_LOG_LEVEL":      "debug",
		"MINDBUFFER_REDIS_DB":       "3",
		"MINDBUFFER_MOCK_DELAY":     "10ms",
		"MINDBUFFER_ENCRYPTION_KEY": strings.Repeat("ab", 32),
		"MINDBUFFER_TONE":           "   ",
	}))
	require.NoError(t, err)
	assert.Equal(t, domain.LangChinese, cfg.Settings.Language)
	assert.Equal(t, "sk-test", cfg.Settings.APIKey)
	assert.Equal(t, domain.ProviderGemini, cfg.Settings.AIProvider)
	assert.Equal(t, domain.ToneFunny, cfg.Settings.Tone)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.Equal(t, 10*time.Millisecond, cfg.MockDelay)

	key, err := cfg.Storage.Key()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		env  map[string]string
	}{
		{"missing explicit file", filepath.Join(t.TempDir(), "nope.yaml"), nil},
		{"bad yaml", writeFile(t, "bad.yaml", "storage: [\n"), nil},
		{"unknown backend", "", map[string]string{"MINDBUFFER_STORAGE": "mongo"}},
		{"short key", "", map[string]string{"MINDBUFFER_ENCRYPTION_KEY": "abcd"}},
		{"non hex key", "", map[string]string{"MINDBUFFER_ENCRYPTION_KEY": strings.Repeat("zz", 32)}},
		{"bad duration", "", map[string]string{"MINDBUFFER_REQUEST_TIMEOUT": "soon"}},
		{"zero timeout", "", map[string]string{"MINDBUFFER_REQUEST_TIMEOUT": "0s"}},
		{"bad redis db", "", map[string]string{"MINDBUFFER_REDIS_DB": "x"}},
		{"bad daily limit", "", map[string]string{"MINDBUFFER_DAILY_LIMIT": "many"}},
	}
	t.Chdir(t.TempDir())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.path, envOf(tt.env))
			assert.Error(t, err)
		})
	}
}
