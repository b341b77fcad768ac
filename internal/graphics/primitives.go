package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Cube returns a unit cube centered on the origin with per-face normals and
// CCW front faces.
func Cube() ([]Vertex, []uint32) {
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	corners := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.normal.Mul(0.5).
				Add(f.u.Mul(c[0] - 0.5)).
				Add(f.v.Mul(c[1] - 0.5))
			vertices = append(vertices, Vertex{Position: p, UV: c, Normal: f.normal})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return vertices, indices
}

// Plane returns a unit quad in the XY plane facing +Z
func Plane() ([]Vertex, []uint32) {
	n := mgl32.Vec3{0, 0, 1}
	vertices := []Vertex{
		{Position: mgl32.Vec3{-0.5, -0.5, 0}, UV: mgl32.Vec2{0, 0}, Normal: n},
		{Position: mgl32.Vec3{0.5, -0.5, 0}, UV: mgl32.Vec2{1, 0}, Normal: n},
		{Position: mgl32.Vec3{0.5, 0.5, 0}, UV: mgl32.Vec2{1, 1}, Normal: n},
		{Position: mgl32.Vec3{-0.5, 0.5, 0}, UV: mgl32.Vec2{0, 1}, Normal: n},
	}
	return vertices, []uint32{0, 1, 2, 2, 3, 0}
}

// Sphere returns a UV sphere of radius 1 with the given number of
// longitude segments (latitude rings are half as many). segments is
// raised to 4 if smaller.
func Sphere(segments int) ([]Vertex, []uint32) {
	if segments < 4 {
		segments = 4
	}
	rings := segments / 2

	vertices := make([]Vertex, 0, (rings+1)*(segments+1))
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		phi := float64(v) * math.Pi
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			theta := float64(u) * 2 * math.Pi
			n := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(-math.Cos(phi)),
				float32(-math.Sin(phi) * math.Sin(theta)),
			}
			vertices = append(vertices, Vertex{Position: n, UV: mgl32.Vec2{u, v}, Normal: n})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			indices = append(indices, a, a+1, b+1, b+1, b, a)
		}
	}
	return vertices, indices
}
