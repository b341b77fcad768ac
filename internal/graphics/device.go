package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Device is the GPU context every resource and material talks to. It mirrors
// the OpenGL state machine: texture bindings go to the active unit, uniform
// uploads go to the program in use, and all state is process-wide.
//
// A Device must only be used from the goroutine that owns the GL context.
type Device interface {
	CreateProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v mgl32.Vec2)
	Uniform3f(location int32, v mgl32.Vec3)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix4f(location int32, m mgl32.Mat4)

	CreateTexture2D(img *image.RGBA, mipmaps bool) uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit uint32)
	BindTexture2D(texture uint32)

	CreateSampler() uint32
	SamplerParameteri(sampler, pname uint32, v int32)
	SamplerParameterf(sampler, pname uint32, v float32)
	SamplerParameter4f(sampler, pname uint32, v mgl32.Vec4)
	DeleteSampler(sampler uint32)
	BindSampler(unit, sampler uint32)

	SetCapability(capability uint32, enabled bool)
	CullFace(face uint32)
	FrontFace(mode uint32)
	DepthFunc(fn uint32)
	BlendEquation(mode uint32)
	BlendFunc(src, dst uint32)
	BlendColor(c mgl32.Vec4)
	ColorMask(r, g, b, a bool)
	DepthMask(flag bool)

	CreateMesh(vertices []Vertex, indices []uint32) MeshBuffers
	DeleteMesh(buffers MeshBuffers)
	DrawElements(vao uint32, count int32)

	Viewport(x, y, width, height int32)
	Clear(color mgl32.Vec4)
}

// MeshBuffers names the GL objects backing one mesh
type MeshBuffers struct {
	VAO, VBO, EBO uint32
}
