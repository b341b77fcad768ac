// Package light holds the per-light parameters of a scene light and derives
// its world-space position and direction from the owning node's transform.
package light

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/config"
)

// Type selects which light parameters are meaningful
type Type int32

const (
	Directional Type = iota
	Point
	Spot
)

func (t Type) String() string {
	switch t {
	case Directional:
		return "directional"
	case Point:
		return "point"
	case Spot:
		return "spot"
	}
	return "unknown"
}

// ParseType maps a scene file light type. Only "directional" and "point"
// are recognized by name; every other string yields Spot. Callers that see
// the key absent use Directional instead, see Configure.
func ParseType(s string) Type {
	switch s {
	case "directional":
		return Directional
	case "point":
		return Point
	default:
		return Spot
	}
}

// Transformer resolves the local-to-world matrix of the node owning a light
type Transformer interface {
	LocalToWorld() mgl32.Mat4
}

// Light is one light source. The color fields may be changed freely at run
// time; position and direction are never stored.
type Light struct {
	Type Type

	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Ambient  mgl32.Vec3

	// Attenuation is (quadratic, linear, constant). Point and Spot only.
	Attenuation mgl32.Vec3

	// Cone is (outer, inner) in radians. Spot only.
	Cone mgl32.Vec2
}

var defaultCone = mgl32.Vec2{40, 20}

// New returns a directional light with the scene file defaults
func New() *Light {
	return &Light{
		Type:        Directional,
		Ambient:     mgl32.Vec3{1, 1, 1},
		Attenuation: mgl32.Vec3{0.1, 0, 0},
		Cone:        mgl32.Vec2{mgl32.DegToRad(defaultCone[0]), mgl32.DegToRad(defaultCone[1])},
	}
}

// Configure reads a light record. A value that is not an object leaves the
// light untouched. Cone angles are given in degrees and stored in radians.
func (l *Light) Configure(data any) {
	r, ok := config.AsRecord(data)
	if !ok {
		return
	}

	l.Type = Directional
	if v, present := r["lightType"]; present {
		// a non-string value is as unrecognized as an unknown name
		name, _ := v.(string)
		l.Type = ParseType(name)
	}

	l.Diffuse = r.Vec3("diffuse", l.Diffuse)
	l.Specular = r.Vec3("specular", l.Specular)
	l.Ambient = r.Vec3("ambient", l.Ambient)
	l.Attenuation = r.Vec3("attenuation", l.Attenuation)

	if r.Has("cone") {
		current := mgl32.Vec2{mgl32.RadToDeg(l.Cone[0]), mgl32.RadToDeg(l.Cone[1])}
		degrees := r.Vec2("cone", current)
		l.Cone = mgl32.Vec2{mgl32.DegToRad(degrees[0]), mgl32.DegToRad(degrees[1])}
	}
}

// WorldPosition returns the light's position for the given local-to-world matrix
func WorldPosition(m mgl32.Mat4) mgl32.Vec3 {
	return m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// WorldDirection returns the light's direction for the given local-to-world
// matrix: the local down axis under rotation and scale, ignoring translation.
// The result is not normalized.
func WorldDirection(m mgl32.Mat4) mgl32.Vec3 {
	return m.Mul4x1(mgl32.Vec4{0, -1, 0, 0}).Vec3()
}

// Position returns the world position of a light owned by node
func (l *Light) Position(node Transformer) mgl32.Vec3 {
	return WorldPosition(node.LocalToWorld())
}

// Direction returns the world direction of a light owned by node
func (l *Light) Direction(node Transformer) mgl32.Vec3 {
	return WorldDirection(node.LocalToWorld())
}
