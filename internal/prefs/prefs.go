// Package prefs persists display and audio preferences between runs.
// Scores are never stored.
package prefs

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "pong"

	prefsObject   = "prefs"
	prefsProperty = "global"
)

type Prefs struct {
	Fullscreen   bool `yaml:"fullscreen"`
	Muted        bool `yaml:"muted"`
	DebugOverlay bool `yaml:"debugOverlay"`
}

// Manager loads and saves Prefs. A nil gdata manager keeps everything in
// memory.
type Manager struct {
	data  *gdata.Manager
	prefs Prefs
	log   *zap.Logger
}

// Open creates a Manager backed by the platform data directory. If that
// directory is unavailable the manager falls back to memory only.
func Open(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	data, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Warn("preferences will not persist", zap.Error(err))
		data = nil
	}
	return NewManager(data, log)
}

func NewManager(data *gdata.Manager, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{data: data, log: log}
	if err := m.Load(); err != nil {
		log.Warn("failed to load preferences, using defaults", zap.Error(err))
	}
	return m
}

// Load replaces the in-memory preferences with the stored ones. Missing data
// resets to the defaults.
func (m *Manager) Load() error {
	m.prefs = Prefs{}
	if m.data == nil || !m.data.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	var loaded Prefs
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("unmarshal prefs: %w", err)
	}
	m.prefs = loaded
	return nil
}

// Save writes the preferences. It is a no-op without a backing store.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}

	raw, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := m.data.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	m.log.Debug("preferences saved", zap.Any("prefs", m.prefs))
	return nil
}

func (m *Manager) Get() Prefs {
	return m.prefs
}

// Update applies fn to the preferences and saves them. Save failures are
// logged; the in-memory change is kept either way.
func (m *Manager) Update(fn func(p *Prefs)) {
	fn(&m.prefs)
	if err := m.Save(); err != nil {
		m.log.Warn("failed to save preferences", zap.Error(err))
	}
}

// Persistent reports whether preferences survive a restart.
func (m *Manager) Persistent() bool {
	return m.data != nil
}
