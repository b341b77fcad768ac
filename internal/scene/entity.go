// Package scene holds the entity tree the renderer draws: transforms,
// cameras, mesh renderers and lights.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/config"
	"mini-render/internal/light"
)

// Entity is a node of the scene tree. Rotation is in degrees and applied in
// yaw, pitch, roll order (Y, then X, then Z).
type Entity struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Parent   *Entity
	Children []*Entity

	Camera       *Camera
	MeshRenderer *MeshRenderer
	Light        *light.Light
}

// NewEntity returns an entity with identity transform
func NewEntity(name string) *Entity {
	return &Entity{Name: name, Scale: mgl32.Vec3{1, 1, 1}}
}

// LocalTransform returns T * Ry * Rx * Rz * S
func (e *Entity) LocalTransform() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(e.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(e.Rotation.X()))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(e.Rotation.Z())))
	return mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(e.Scale.X(), e.Scale.Y(), e.Scale.Z()))
}

// LocalToWorld composes the local transforms from the root down to e
func (e *Entity) LocalToWorld() mgl32.Mat4 {
	m := e.LocalTransform()
	for p := e.Parent; p != nil; p = p.Parent {
		m = p.LocalTransform().Mul4(m)
	}
	return m
}

// AddChild attaches child under e
func (e *Entity) AddChild(child *Entity) {
	child.Parent = e
	e.Children = append(e.Children, child)
}

func (e *Entity) configureTransform(r config.Record) {
	e.Name = r.String("name", e.Name)
	e.Position = r.Vec3("position", e.Position)
	e.Rotation = r.Vec3("rotation", e.Rotation)
	e.Scale = r.Vec3("scale", e.Scale)
}
