package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderLoader(t *testing.T) {
	dir := t.TempDir()
	loader := &ShaderLoader{}

	good := filepath.Join(dir, "good.wgsl")
	require.NoError(t, os.WriteFile(good, []byte("@fragment fn main() {}"), 0o644))
	data, err := loader.Load(good)
	require.NoError(t, err)
	assert.Equal(t, "@fragment fn main() {}", string(data))

	empty := filepath.Join(dir, "empty.wgsl")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = loader.Load(empty)
	assert.ErrorIs(t, err, ErrEmptyShader)

	binary := filepath.Join(dir, "binary.wgsl")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe, 0x00}, 0o644))
	_, err = loader.Load(binary)
	assert.Error(t, err)

	_, err = loader.Load(filepath.Join(dir, "missing.wgsl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
