package shaders

import (
	"strings"
	"testing"

	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicSourceDeclaresEntryPoints(t *testing.T) {
	src := BasicSource()
	for _, req := range []string{"@vertex", "@fragment", VertexEntryPoint, FragmentEntryPoint, "@location(0)"} {
		assert.True(t, strings.Contains(src, req), "basic shader missing %q", req)
	}
}

func TestCompileBasicShader(t *testing.T) {
	m, err := Compile("basic", BasicSource())
	require.NoError(t, err)

	words := m.Words()
	require.NotEmpty(t, words)
	assert.Equal(t, spirvMagic, words[0])
	assert.Equal(t, m.Size(), len(words)*4)
	assert.Equal(t, "basic", m.Name)
}

func TestCompileMissingEntryPoint(t *testing.T) {
	_, err := Compile("basic", BasicSource(), "main")
	assert.ErrorIs(t, err, core.ErrShaderCompile)
}

func TestCompileInvalidSource(t *testing.T) {
	_, err := Compile("broken", "@vertex fn basic_vertex( -> {")
	assert.ErrorIs(t, err, core.ErrShaderCompile)
}
