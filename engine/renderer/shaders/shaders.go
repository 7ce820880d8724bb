// Package shaders compiles the WGSL shader module used by the triangle
// pipeline into SPIR-V.
package shaders

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/spaghettifunk/hellotriangle/engine/core"
)

const (
	VertexEntryPoint   = "basic_vertex"
	FragmentEntryPoint = "basic_fragment"

	// First word of every SPIR-V binary.
	spirvMagic uint32 = 0x07230203
)

//go:embed basic.wgsl
var basicShaderWGSL string

// BasicSource returns the embedded WGSL source of the default shader module.
func BasicSource() string {
	return basicShaderWGSL
}

// Module is a compiled SPIR-V shader module.
type Module struct {
	Name string
	code []byte
}

// Compile translates WGSL source into SPIR-V and verifies that the result
// exposes the given entry points. With no entry points the vertex and
// fragment entry points are required.
func Compile(name, source string, entryPoints ...string) (*Module, error) {
	if len(entryPoints) == 0 {
		entryPoints = []string{VertexEntryPoint, FragmentEntryPoint}
	}

	code, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrShaderCompile, name, err)
	}
	if len(code) < 4 || len(code)%4 != 0 {
		return nil, fmt.Errorf("%w: %s: invalid SPIR-V length %d", core.ErrShaderCompile, name, len(code))
	}
	if binary.LittleEndian.Uint32(code) != spirvMagic {
		return nil, fmt.Errorf("%w: %s: missing SPIR-V magic", core.ErrShaderCompile, name)
	}
	for _, ep := range entryPoints {
		// OpEntryPoint stores the name as a nul-terminated literal string.
		if !bytes.Contains(code, append([]byte(ep), 0)) {
			return nil, fmt.Errorf("%w: %s: entry point %q not found", core.ErrShaderCompile, name, ep)
		}
	}

	core.LogDebug("Shader module '%s' compiled (%d bytes).", name, len(code))
	return &Module{Name: name, code: code}, nil
}

// Bytes returns the raw SPIR-V binary.
func (m *Module) Bytes() []byte {
	return m.code
}

// Size is the size of the binary in bytes.
func (m *Module) Size() int {
	return len(m.code)
}

// Words returns the binary as little-endian 32-bit words, the form
// vkCreateShaderModule expects.
func (m *Module) Words() []uint32 {
	words := make([]uint32, len(m.code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(m.code[i*4:])
	}
	return words
}
