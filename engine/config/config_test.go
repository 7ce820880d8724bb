package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Renderer.VSync)
	assert.Equal(t, uint8(2), cfg.Renderer.MaxFramesInFlight)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[application]
name = "Triangle"
start_width = 1280

[log]
level = "debug"

[renderer]
validation = true
vsync = false

[assets]
watch = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Triangle", cfg.Application.Name)
	assert.Equal(t, uint32(1280), cfg.Application.StartWidth)
	assert.Equal(t, uint32(600), cfg.Application.StartHeight, "keys not in the file keep their default")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Renderer.Validation)
	assert.False(t, cfg.Renderer.VSync)
	assert.True(t, cfg.Assets.Watch)
	assert.Equal(t, "assets", cfg.Assets.Dir)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	err := Decode([]byte("[renderer]\nmsaa = 4\n"), Default())
	assert.Error(t, err)
}

func TestDecodeRejectsZeroSize(t *testing.T) {
	err := Decode([]byte("[application]\nstart_height = 0\n"), Default())
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[application\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
