package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"video2audio/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPrompter answers prompts from a queue keyed by kind
type mockPrompter struct {
	inputs   []string
	confirms []bool
	selects  []string
	err      error
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if len(m.inputs) == 0 {
		return defaultValue, nil
	}
	v := m.inputs[0]
	m.inputs = m.inputs[1:]
	return v, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	v := m.confirms[0]
	m.confirms = m.confirms[1:]
	return v, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if len(m.selects) == 0 {
		return defaultValue, nil
	}
	v := m.selects[0]
	m.selects = m.selects[1:]
	return v, nil
}

func TestRunSetup_WritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")
	prompter := &mockPrompter{
		inputs:  []string{"/usr/local/bin/ffmpeg", "320k", "mp4, .MOV webm"},
		selects: []string{"wav"},
	}
	var out bytes.Buffer

	require.NoError(t, RunSetupWithPrompter(prompter, path, &out))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpeg.Path)
	assert.Equal(t, "wav", cfg.Audio.Format)
	assert.Equal(t, "320k", cfg.Audio.Quality)
	assert.Equal(t, []string{"mp4", "mov", "webm"}, cfg.Batch.Extensions)
	assert.Contains(t, out.String(), "Configuration saved to "+path)
}

func TestRunSetup_AcceptDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, RunSetupWithPrompter(&mockPrompter{}, path, &bytes.Buffer{}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestRunSetup_DeclineOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio:\n  quality: 96k\n"), 0644))
	var out bytes.Buffer

	require.NoError(t, RunSetupWithPrompter(&mockPrompter{confirms: []bool{false}}, path, &out))

	assert.Contains(t, out.String(), "Setup cancelled.")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "96k")
}

func TestRunSetup_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := RunSetupWithPrompter(&mockPrompter{err: errors.New("interrupt")}, path, &bytes.Buffer{})
	assert.EqualError(t, err, "prompt cancelled")
	assert.NoFileExists(t, path)
}

func TestRunSetup_NoExtensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	prompter := &mockPrompter{inputs: []string{"ffmpeg", "192k", " , "}}

	err := RunSetupWithPrompter(prompter, path, &bytes.Buffer{})
	assert.ErrorContains(t, err, "at least one video extension")
}

func TestParseExtensionList(t *testing.T) {
	assert.Equal(t, []string{"mp4", "mov", "avi"}, parseExtensionList("mp4, .MOV avi"))
	assert.Empty(t, parseExtensionList(""))
}
