package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiURL)
	assert.Equal(t, 20*time.Second, cfg.ContentTimeout)
	assert.Equal(t, 3500*time.Millisecond, cfg.Briefing)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 1.0, cfg.WindowScale)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, SourceOffline, cfg.Source())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NEBULA_GEMINI_API_KEY", "k")
	t.Setenv("NEBULA_CONTENT_TIMEOUT", "5s")
	t.Setenv("NEBULA_SEED", "99")
	t.Setenv("NEBULA_BRIEFING", "0s")
	t.Setenv("NEBULA_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.ContentTimeout)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Zero(t, cfg.Briefing)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceGemini, cfg.Source())
}

func TestExplicitSourceWins(t *testing.T) {
	t.Setenv("NEBULA_GEMINI_API_KEY", "k")
	t.Setenv("NEBULA_CONTENT", " Offline ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceOffline, cfg.Source())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"bad duration": {"NEBULA_CONTENT_TIMEOUT", "soon"},
		"bad source":   {"NEBULA_CONTENT", "telepathy"},
		"gemini key":   {"NEBULA_CONTENT", "gemini"},
		"bad scale":    {"NEBULA_WINDOW_SCALE", "-2"},
		"zero timeout": {"NEBULA_CONTENT_TIMEOUT", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseEnvPrefixesErrors(t *testing.T) {
	var cfg struct {
		Port int `env:"NEBULA_TEST_PORT"`
	}
	t.Setenv("NEBULA_TEST_PORT", "not-an-int")
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
