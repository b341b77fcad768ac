package graphics

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout shared by every mesh:
// location 0 position, location 1 uv, location 2 normal.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

// VertexStride is the size of one Vertex in bytes
const VertexStride = 8 * 4

// Mesh is indexed triangle geometry living in GPU buffers
type Mesh struct {
	Buffers    MeshBuffers
	IndexCount int32

	dev Device
}

// NewMesh uploads vertices and indices
func NewMesh(dev Device, vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Buffers:    dev.CreateMesh(vertices, indices),
		IndexCount: int32(len(indices)),
		dev:        dev,
	}
}

// Draw issues the draw call with whatever material state is currently applied
func (m *Mesh) Draw() {
	m.dev.DrawElements(m.Buffers.VAO, m.IndexCount)
}

// Delete frees the GL buffers
func (m *Mesh) Delete() {
	if m.Buffers.VAO == 0 {
		return
	}
	m.dev.DeleteMesh(m.Buffers)
	m.Buffers = MeshBuffers{}
}
