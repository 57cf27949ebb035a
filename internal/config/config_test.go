package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pong.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
scale = 1.5

[frontend]
kind = "terminal"

[audio]
volume = 0.25

[logging]
level = "debug"
output = "pong.log"

[game]
seed = 42

[debug]
overlay = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Pong", cfg.Window.Title, "unset keys keep their defaults")
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, 1.5, cfg.Window.Scale)
	assert.Equal(t, FrontendTerminal, cfg.Frontend.Kind)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.25, cfg.Audio.Volume)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "pong.log", cfg.Logging.Output)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.True(t, cfg.Debug.Overlay)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[window\nscale = 1", "parse config"},
		{"frontend", "[frontend]\nkind = \"vr\"", `unknown frontend "vr"`},
		{"scale", "[window]\nscale = 0", "window scale"},
		{"volume", "[audio]\nvolume = 2.0", "audio volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		log, err := NewLogger(LoggingConfig{Level: "warn", Format: "console"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		log, err := NewLogger(LoggingConfig{Level: "chatty", Format: "json"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pong.log")
		log, err := NewLogger(LoggingConfig{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		log.Info("point scored")
		_ = log.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"point scored"`)
	})
}
