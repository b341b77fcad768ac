// Package glbackend implements graphics.Device on OpenGL 4.1 core.
package glbackend

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/graphics"
)

// Device issues GL calls against the context current on the calling thread
type Device struct{}

// New initializes the GL function pointers. The window's context must be
// current on the locked OS thread.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &Device{}, nil
}

// Version returns the GL version string of the current context
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}

func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }
func (d *Device) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }
func (d *Device) Uniform2f(location int32, v mgl32.Vec2) { gl.Uniform2f(location, v[0], v[1]) }
func (d *Device) Uniform3f(location int32, v mgl32.Vec3) { gl.Uniform3f(location, v[0], v[1], v[2]) }
func (d *Device) Uniform4f(location int32, v mgl32.Vec4) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (d *Device) UniformMatrix4f(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) CreateTexture2D(img *image.RGBA, mipmaps bool) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	minFilter := int32(gl.LINEAR)
	if mipmaps {
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	size := img.Rect.Size()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}

func (d *Device) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }
func (d *Device) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }
func (d *Device) BindTexture2D(texture uint32) { gl.BindTexture(gl.TEXTURE_2D, texture) }

func (d *Device) CreateSampler() uint32 {
	var sampler uint32
	gl.GenSamplers(1, &sampler)
	return sampler
}

func (d *Device) SamplerParameteri(sampler, pname uint32, v int32) {
	gl.SamplerParameteri(sampler, pname, v)
}

func (d *Device) SamplerParameterf(sampler, pname uint32, v float32) {
	gl.SamplerParameterf(sampler, pname, v)
}

func (d *Device) SamplerParameter4f(sampler, pname uint32, v mgl32.Vec4) {
	gl.SamplerParameterfv(sampler, pname, &v[0])
}

func (d *Device) DeleteSampler(sampler uint32) { gl.DeleteSamplers(1, &sampler) }
func (d *Device) BindSampler(unit, sampler uint32) { gl.BindSampler(unit, sampler) }

func (d *Device) SetCapability(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func (d *Device) CullFace(face uint32) { gl.CullFace(face) }
func (d *Device) FrontFace(mode uint32) { gl.FrontFace(mode) }
func (d *Device) DepthFunc(fn uint32) { gl.DepthFunc(fn) }
func (d *Device) BlendEquation(mode uint32) { gl.BlendEquation(mode) }
func (d *Device) BlendFunc(src, dst uint32) { gl.BlendFunc(src, dst) }
func (d *Device) BlendColor(c mgl32.Vec4) { gl.BlendColor(c[0], c[1], c[2], c[3]) }
func (d *Device) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }
func (d *Device) DepthMask(flag bool) { gl.DepthMask(flag) }

func (d *Device) CreateMesh(vertices []graphics.Vertex, indices []uint32) graphics.MeshBuffers {
	var b graphics.MeshBuffers
	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*graphics.VertexStride, gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &b.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	// position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, graphics.VertexStride, 0)
	// uv
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, graphics.VertexStride, 3*4)
	// normal
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, graphics.VertexStride, 5*4)

	gl.BindVertexArray(0)
	return b
}

func (d *Device) DeleteMesh(b graphics.MeshBuffers) {
	gl.DeleteBuffers(1, &b.EBO)
	gl.DeleteBuffers(1, &b.VBO)
	gl.DeleteVertexArrays(1, &b.VAO)
}

func (d *Device) DrawElements(vao uint32, count int32) {
	gl.BindVertexArray(vao)
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) Clear(color mgl32.Vec4) {
	// depth writes must be on for the depth clear to take effect
	gl.DepthMask(true)
	gl.ColorMask(true, true, true, true)
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

var _ graphics.Device = (*Device)(nil)
