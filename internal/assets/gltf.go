package assets

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"mini-render/internal/graphics"
)

var (
	errNoGeometry  = errors.New("gltf document has no triangle geometry")
	errBadAccessor = errors.New("gltf accessor index out of range")
)

// loadGLTF reads every triangle primitive of every mesh in a .gltf/.glb file
// into one vertex/index list, in mesh space. Node transforms are ignored.
func loadGLTF(path string) ([]graphics.Vertex, []uint32, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var (
		vertices []graphics.Vertex
		indices  []uint32
	)
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			v, idx, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, nil, fmt.Errorf("gltf mesh %q: %w", m.Name, err)
			}
			base := uint32(len(vertices))
			vertices = append(vertices, v...)
			for _, i := range idx {
				indices = append(indices, base+i)
			}
		}
	}
	if len(indices) == 0 {
		return nil, nil, errNoGeometry
	}
	return vertices, indices, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]graphics.Vertex, []uint32, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, nil, fmt.Errorf("no POSITION attribute")
	}
	acr, err := accessor(doc, posIdx)
	if err != nil {
		return nil, nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("positions: %w", err)
	}

	var (
		normals [][3]float32
		uvs     [][2]float32
	)
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if acr, err = accessor(doc, idx); err == nil {
			normals, err = modeler.ReadNormal(doc, acr, nil)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if acr, err = accessor(doc, idx); err == nil {
			uvs, err = modeler.ReadTextureCoord(doc, acr, nil)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("texture coordinates: %w", err)
		}
	}

	vertices := make([]graphics.Vertex, len(positions))
	for i, p := range positions {
		v := graphics.Vertex{
			Position: mgl32.Vec3(p),
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
		}
		if i < len(uvs) {
			// glTF puts the uv origin top-left
			v.UV = mgl32.Vec2{uvs[i][0], 1 - uvs[i][1]}
		}
		vertices[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		if acr, err = accessor(doc, *prim.Indices); err == nil {
			indices, err = modeler.ReadIndices(doc, acr, nil)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	return vertices, indices, nil
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: %d", errBadAccessor, idx)
	}
	return doc.Accessors[idx], nil
}
