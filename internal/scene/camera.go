package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/config"
)

type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera projects the scene as seen from its owning entity, looking down -Z.
type Camera struct {
	Projection  Projection
	FovY        float32 // radians
	Near        float32
	Far         float32
	OrthoHeight float32

	owner *Entity
}

func newCamera(owner *Entity) *Camera {
	return &Camera{
		Projection:  Perspective,
		FovY:        mgl32.DegToRad(90),
		Near:        0.01,
		Far:         100,
		OrthoHeight: 1,
		owner:       owner,
	}
}

func (c *Camera) configure(r config.Record) {
	if r.String("cameraType", "perspective") == "orthographic" {
		c.Projection = Orthographic
	} else {
		c.Projection = Perspective
	}
	if r.Has("fovY") {
		c.FovY = mgl32.DegToRad(r.Float("fovY", 90))
	}
	c.Near = r.Float("near", c.Near)
	c.Far = r.Float("far", c.Far)
	c.OrthoHeight = r.Float("orthoHeight", c.OrthoHeight)
}

// Owner returns the entity carrying the camera
func (c *Camera) Owner() *Entity {
	return c.owner
}

// Position returns the camera's world-space eye position
func (c *Camera) Position() mgl32.Vec3 {
	return c.owner.LocalToWorld().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// Forward returns the camera's normalized world-space view direction
func (c *Camera) Forward() mgl32.Vec3 {
	return c.owner.LocalToWorld().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	m := c.owner.LocalToWorld()
	eye := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	center := m.Mul4x1(mgl32.Vec4{0, 0, -1, 1}).Vec3()
	up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	return mgl32.LookAtV(eye, center, up)
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if c.Projection == Orthographic {
		halfH := c.OrthoHeight / 2
		halfW := halfH * aspect
		return mgl32.Ortho(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}
