package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/graphics"
	"mini-render/internal/light"
	"mini-render/internal/material"
	"mini-render/internal/scene"
)

// RenderContext is the per-frame state shared by every draw command
type RenderContext struct {
	Camera         *scene.Camera
	View           mgl32.Mat4
	Proj           mgl32.Mat4
	VP             mgl32.Mat4
	CameraPosition mgl32.Vec3
	Lights         []LightData
}

// LightData is a light resolved to world space for upload
type LightData struct {
	Type        light.Type
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Ambient     mgl32.Vec3
	Attenuation mgl32.Vec3
	Cone        mgl32.Vec2
}

// Command is one mesh to draw with one material
type Command struct {
	Entity   *scene.Entity
	Model    mgl32.Mat4
	Center   mgl32.Vec3
	Mesh     *graphics.Mesh
	Material *material.Material
}

func resolveLight(e *scene.Entity) LightData {
	l := e.Light
	dir := l.Direction(e)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return LightData{
		Type:        l.Type,
		Position:    l.Position(e),
		Direction:   dir,
		Diffuse:     l.Diffuse,
		Specular:    l.Specular,
		Ambient:     l.Ambient,
		Attenuation: l.Attenuation,
		Cone:        l.Cone,
	}
}
