package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overrideSource = "// override\n"

func TestShaderSourceEmbeddedWhenDirMissing(t *testing.T) {
	am := NewAssetManager(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, am.Initialize(true))
	defer am.Close()

	src, err := am.ShaderSource(BasicShaderName)
	require.NoError(t, err)
	assert.Equal(t, shaders.BasicSource(), src)

	_, err = am.ShaderSource("nope")
	assert.ErrorIs(t, err, ErrUnknownShader)
}

func TestShaderSourceOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "basic.wgsl"), []byte(overrideSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644))

	am := NewAssetManager(dir)
	require.NoError(t, am.Initialize(false))
	defer am.Close()

	src, err := am.ShaderSource(BasicShaderName)
	require.NoError(t, err)
	assert.Equal(t, overrideSource, src)

	indexed := am.Assets()
	require.Len(t, indexed, 1)
	assert.Equal(t, am.ShaderPath(BasicShaderName), indexed[0].Path)
	assert.Equal(t, AssetTypeShader, indexed[0].Type)
}

func TestInitializeRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.Error(t, NewAssetManager(path).Initialize(false))
}

func TestWatcherReportsShaderWrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))

	am := NewAssetManager(dir)
	require.NoError(t, am.Initialize(true))
	defer am.Close()

	assert.Empty(t, am.Reloads())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "notes.txt"), []byte("ignored"), 0o644))
	target := am.ShaderPath(BasicShaderName)
	require.NoError(t, os.WriteFile(target, []byte(overrideSource), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, am.Reloads()...)
		return len(got) > 0
	}, 5*time.Second, 20*time.Millisecond)

	for _, p := range got {
		assert.Equal(t, target, p)
	}
}

func TestShaderNameForPath(t *testing.T) {
	name, ok := ShaderNameForPath(filepath.Join("assets", "shaders", "basic.wgsl"))
	assert.True(t, ok)
	assert.Equal(t, "basic", name)

	_, ok = ShaderNameForPath("assets/shaders/basic.spv")
	assert.False(t, ok)
}

func TestWatcherReportsShaderRemoval(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	target := filepath.Join(dir, "shaders", "basic.wgsl")
	require.NoError(t, os.WriteFile(target, []byte(overrideSource), 0o644))

	am := NewAssetManager(dir)
	require.NoError(t, am.Initialize(true))
	defer am.Close()

	require.NoError(t, os.Remove(target))
	require.Eventually(t, func() bool {
		for _, p := range am.Reloads() {
			if p == target {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)

	src, err := am.ShaderSource(BasicShaderName)
	require.NoError(t, err)
	assert.Equal(t, shaders.BasicSource(), src)
	assert.Empty(t, am.Assets())
}

func TestOverriddenShader(t *testing.T) {
	am := NewAssetManager("assets")

	name, ok := am.OverriddenShader(filepath.Join("assets", "shaders", "basic.wgsl"))
	assert.True(t, ok)
	assert.Equal(t, BasicShaderName, name)

	_, ok = am.OverriddenShader(filepath.Join("assets", "old", "basic.wgsl"))
	assert.False(t, ok)
	_, ok = am.OverriddenShader(filepath.Join("assets", "shaders", "basic.txt"))
	assert.False(t, ok)
}

func TestCloseIsIdempotent(t *testing.T) {
	am := NewAssetManager(t.TempDir())
	require.NoError(t, am.Initialize(true))
	assert.NoError(t, am.Close())
	assert.NoError(t, am.Close())
}
