package prefs

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	data, err := gdata.Open(gdata.Config{AppName: "pong_prefs_test"})
	require.NoError(t, err)
	return data
}

func TestMemoryOnly(t *testing.T) {
	m := NewManager(nil, zaptest.NewLogger(t))
	assert.False(t, m.Persistent())
	assert.Equal(t, Prefs{}, m.Get())

	m.Update(func(p *Prefs) { p.Muted = true })
	assert.True(t, m.Get().Muted)
	assert.NoError(t, m.Save())
}

func TestRoundTrip(t *testing.T) {
	data := openTestStore(t)

	m := NewManager(data, zaptest.NewLogger(t))
	require.True(t, m.Persistent())
	assert.Equal(t, Prefs{}, m.Get(), "fresh store yields defaults")

	m.Update(func(p *Prefs) {
		p.Fullscreen = true
		p.DebugOverlay = true
	})

	reopened := NewManager(data, zaptest.NewLogger(t))
	assert.Equal(t, Prefs{Fullscreen: true, DebugOverlay: true}, reopened.Get())
}

func TestCorruptDataFallsBackToDefaults(t *testing.T) {
	data := openTestStore(t)
	require.NoError(t, data.SaveObjectProp(prefsObject, prefsProperty, []byte("muted: [unterminated")))

	m := NewManager(data, zaptest.NewLogger(t))
	assert.Equal(t, Prefs{}, m.Get())
	assert.Error(t, m.Load())
}
