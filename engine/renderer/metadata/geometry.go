package metadata

import (
	"encoding/binary"
	stdmath "math"

	"github.com/google/uuid"
	"github.com/spaghettifunk/hellotriangle/engine/math"
)

// Size in bytes of one Vertex3D as laid out in the vertex buffer.
const Vertex3DSize uint32 = 3 * 4

// Vertex3D is a single position-only vertex.
type Vertex3D struct {
	Position math.Vec3
}

// GeometryConfig describes geometry to upload to the GPU.
type GeometryConfig struct {
	Name     string
	Vertices []Vertex3D
}

// Geometry is geometry that has been (or will be) uploaded into a GPU buffer.
type Geometry struct {
	ID           uuid.UUID
	Name         string
	VertexCount  uint32
	VertexSize   uint32
	VertexData   []byte
	InternalData interface{}
}

// NewGeometry packs the config vertices into a tightly packed byte slice.
func NewGeometry(config GeometryConfig) *Geometry {
	return &Geometry{
		ID:          uuid.New(),
		Name:        config.Name,
		VertexCount: uint32(len(config.Vertices)),
		VertexSize:  Vertex3DSize,
		VertexData:  VerticesToBytes(config.Vertices),
	}
}

// VerticesFromFloats groups a flat x, y, z list into vertices. Trailing
// values that do not form a full vertex are ignored.
func VerticesFromFloats(data []float32) []Vertex3D {
	out := make([]Vertex3D, 0, len(data)/3)
	for i := 0; i+2 < len(data); i += 3 {
		out = append(out, Vertex3D{Position: math.NewVec3(data[i], data[i+1], data[i+2])})
	}
	return out
}

// VerticesToBytes encodes positions as little-endian IEEE-754 floats.
func VerticesToBytes(vertices []Vertex3D) []byte {
	buf := make([]byte, 0, len(vertices)*int(Vertex3DSize))
	for _, v := range vertices {
		for _, f := range v.Position.Elements() {
			buf = binary.LittleEndian.AppendUint32(buf, stdmath.Float32bits(f))
		}
	}
	return buf
}

// Size is the total byte size of the vertex data.
func (g *Geometry) Size() uint64 {
	return uint64(len(g.VertexData))
}

// GeometryRenderData is one draw request in a render packet.
type GeometryRenderData struct {
	Geometry *Geometry
}
