package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.TickPeriod)
	assert.True(t, cfg.History)
}

func TestParseMergesOntoBase(t *testing.T) {
	data := []byte(`
tick_period: 250ms
history: false
steppers:
  a:
    min: 0
    max: 10
  b:
    step: 5
`)
	cfg, err := Parse(data, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.TickPeriod)
	assert.False(t, cfg.History)
	assert.Equal(t, Stepper{Min: 0, Max: 10, Step: 1}, cfg.A)
	assert.Equal(t, Stepper{Min: -100, Max: 100, Step: 5}, cfg.B)
}

func TestParseEmptyKeepsBase(t *testing.T) {
	cfg, err := Parse([]byte("  \n"), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "colour: blue\n"},
		{"bad period", "tick_period: soon\n"},
		{"zero step", "steppers:\n  a:\n    step: 0\n"},
		{"string bound", "steppers:\n  b:\n    min: low\n"},
		{"min above max", "steppers:\n  a:\n    min: 5\n    max: 1\n"},
		{"zero period", "tick_period: 0s\n"},
		{"not yaml", "steppers: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), DefaultConfig())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sumclock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /from/file.db\nhistory: false\n"), 0o644))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvDB, "/from/env.db")
	t.Setenv(EnvDebug, filepath.Join(dir, "debug.log"))

	cfg, err := FromEnv(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.False(t, cfg.History)
	assert.Equal(t, filepath.Join(dir, "debug.log"), cfg.DebugLog)
}

func TestStepperClamp(t *testing.T) {
	s := Stepper{Min: -2, Max: 3, Step: 1}
	assert.Equal(t, -2, s.Clamp(-10))
	assert.Equal(t, 0, s.Clamp(0))
	assert.Equal(t, 3, s.Clamp(99))
}
