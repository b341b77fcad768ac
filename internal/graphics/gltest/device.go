// Package gltest provides a recording graphics.Device for tests. It tracks
// the GL state a real context would hold (active unit, per-unit texture and
// sampler bindings, the program in use, per-program uniform values and the
// fixed-function state) and logs every call in order.
package gltest

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/graphics"
)

// ErrCompile is returned by CreateProgram when FailCompile is set
var ErrCompile = errors.New("gltest: compile failure")

// Call is one recorded device call
type Call struct {
	Op   string
	Args []any
}

// Draw is one recorded draw call with the state it was issued under
type Draw struct {
	VAO     uint32
	Count   int32
	Program uint32
	State   State
}

// State is the observable GPU state
type State struct {
	ActiveUnit uint32
	Program    uint32
	Textures   map[uint32]uint32
	Samplers   map[uint32]uint32
	Uniforms   map[uint32]map[string]any
	Caps       map[uint32]bool

	CulledFace    uint32
	FrontFace     uint32
	DepthFunc     uint32
	BlendEquation uint32
	BlendSrc      uint32
	BlendDst      uint32
	BlendColor    mgl32.Vec4
	ColorMask     [4]bool
	DepthMask     bool
	Viewport      [4]int32
}

func (s State) clone() State {
	c := s
	c.Textures = cloneMap(s.Textures)
	c.Samplers = cloneMap(s.Samplers)
	c.Caps = cloneMap(s.Caps)
	c.Uniforms = make(map[uint32]map[string]any, len(s.Uniforms))
	for p, u := range s.Uniforms {
		c.Uniforms[p] = cloneMap(u)
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Device is a fake graphics.Device
type Device struct {
	State

	// FailCompile makes CreateProgram fail
	FailCompile bool

	Calls []Call
	Draws []Draw

	Programs map[uint32][2]string
	Images   map[uint32]*image.RGBA
	Params   map[uint32]map[uint32]any
	Meshes   map[uint32]graphics.MeshBuffers
	Deleted  []string

	nextID    uint32
	locations map[uint32]map[string]int32
	names     map[uint32]map[int32]string
}

// New returns a device in GL's initial state
func New() *Device {
	d := &Device{
		Programs:  make(map[uint32][2]string),
		Images:    make(map[uint32]*image.RGBA),
		Params:    make(map[uint32]map[uint32]any),
		Meshes:    make(map[uint32]graphics.MeshBuffers),
		locations: make(map[uint32]map[string]int32),
		names:     make(map[uint32]map[int32]string),
	}
	d.State = State{
		Textures:      make(map[uint32]uint32),
		Samplers:      make(map[uint32]uint32),
		Uniforms:      make(map[uint32]map[string]any),
		Caps:          make(map[uint32]bool),
		CulledFace:    graphics.Back,
		FrontFace:     graphics.CCW,
		DepthFunc:     graphics.Less,
		BlendEquation: graphics.FuncAdd,
		BlendSrc:      graphics.One,
		BlendDst:      graphics.Zero,
		ColorMask:     [4]bool{true, true, true, true},
		DepthMask:     true,
	}
	return d
}

// Snapshot returns a deep copy of the current state
func (d *Device) Snapshot() State {
	return d.State.clone()
}

// ResetCalls clears the call and draw logs, keeping state
func (d *Device) ResetCalls() {
	d.Calls = nil
	d.Draws = nil
}

// CallsTo returns the recorded calls with the given op name
func (d *Device) CallsTo(op string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Uniform returns the value last uploaded to name on program
func (d *Device) Uniform(program uint32, name string) (any, bool) {
	v, ok := d.Uniforms[program][name]
	return v, ok
}

func (d *Device) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	d.record("CreateProgram")
	if d.FailCompile {
		return 0, ErrCompile
	}
	p := d.id()
	d.Programs[p] = [2]string{vertexSrc, fragmentSrc}
	d.locations[p] = make(map[string]int32)
	d.names[p] = make(map[int32]string)
	return p, nil
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	delete(d.Programs, program)
	d.Deleted = append(d.Deleted, fmt.Sprintf("program:%d", program))
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram", program)
	d.Program = program
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", program, name)
	locs, ok := d.locations[program]
	if !ok {
		return -1
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(locs))
	locs[name] = loc
	d.names[program][loc] = name
	return loc
}

func (d *Device) setUniform(op string, location int32, v any) {
	d.record(op, location, v)
	if location < 0 || d.Program == 0 {
		return
	}
	name, ok := d.names[d.Program][location]
	if !ok {
		return
	}
	u, ok := d.Uniforms[d.Program]
	if !ok {
		u = make(map[string]any)
		d.Uniforms[d.Program] = u
	}
	u[name] = v
}

func (d *Device) Uniform1i(location int32, v int32) { d.setUniform("Uniform1i", location, v) }
func (d *Device) Uniform1f(location int32, v float32) { d.setUniform("Uniform1f", location, v) }
func (d *Device) Uniform2f(location int32, v mgl32.Vec2) { d.setUniform("Uniform2f", location, v) }
func (d *Device) Uniform3f(location int32, v mgl32.Vec3) { d.setUniform("Uniform3f", location, v) }
func (d *Device) Uniform4f(location int32, v mgl32.Vec4) { d.setUniform("Uniform4f", location, v) }
func (d *Device) UniformMatrix4f(location int32, m mgl32.Mat4) {
	d.setUniform("UniformMatrix4f", location, m)
}

func (d *Device) CreateTexture2D(img *image.RGBA, mipmaps bool) uint32 {
	d.record("CreateTexture2D", mipmaps)
	t := d.id()
	d.Images[t] = img
	// uploading goes through the active unit and leaves it unbound
	d.Textures[d.ActiveUnit] = 0
	return t
}

func (d *Device) DeleteTexture(texture uint32) {
	d.record("DeleteTexture", texture)
	delete(d.Images, texture)
	d.Deleted = append(d.Deleted, fmt.Sprintf("texture:%d", texture))
}

func (d *Device) ActiveTexture(unit uint32) {
	d.record("ActiveTexture", unit)
	d.ActiveUnit = unit
}

func (d *Device) BindTexture2D(texture uint32) {
	d.record("BindTexture2D", texture)
	d.Textures[d.ActiveUnit] = texture
}

func (d *Device) CreateSampler() uint32 {
	d.record("CreateSampler")
	s := d.id()
	d.Params[s] = make(map[uint32]any)
	return s
}

func (d *Device) SamplerParameteri(sampler, pname uint32, v int32) {
	d.record("SamplerParameteri", sampler, pname, v)
	d.Params[sampler][pname] = v
}

func (d *Device) SamplerParameterf(sampler, pname uint32, v float32) {
	d.record("SamplerParameterf", sampler, pname, v)
	d.Params[sampler][pname] = v
}

func (d *Device) SamplerParameter4f(sampler, pname uint32, v mgl32.Vec4) {
	d.record("SamplerParameter4f", sampler, pname, v)
	d.Params[sampler][pname] = v
}

func (d *Device) DeleteSampler(sampler uint32) {
	d.record("DeleteSampler", sampler)
	delete(d.Params, sampler)
	d.Deleted = append(d.Deleted, fmt.Sprintf("sampler:%d", sampler))
}

func (d *Device) BindSampler(unit, sampler uint32) {
	d.record("BindSampler", unit, sampler)
	d.Samplers[unit] = sampler
}

func (d *Device) SetCapability(capability uint32, enabled bool) {
	d.record("SetCapability", capability, enabled)
	d.Caps[capability] = enabled
}

func (d *Device) CullFace(face uint32) {
	d.record("CullFace", face)
	d.CulledFace = face
}

func (d *Device) FrontFace(mode uint32) {
	d.record("FrontFace", mode)
	d.State.FrontFace = mode
}

func (d *Device) DepthFunc(fn uint32) {
	d.record("DepthFunc", fn)
	d.State.DepthFunc = fn
}

func (d *Device) BlendEquation(mode uint32) {
	d.record("BlendEquation", mode)
	d.State.BlendEquation = mode
}

func (d *Device) BlendFunc(src, dst uint32) {
	d.record("BlendFunc", src, dst)
	d.BlendSrc, d.BlendDst = src, dst
}

func (d *Device) BlendColor(c mgl32.Vec4) {
	d.record("BlendColor", c)
	d.State.BlendColor = c
}

func (d *Device) ColorMask(r, g, b, a bool) {
	d.record("ColorMask", r, g, b, a)
	d.State.ColorMask = [4]bool{r, g, b, a}
}

func (d *Device) DepthMask(flag bool) {
	d.record("DepthMask", flag)
	d.State.DepthMask = flag
}

func (d *Device) CreateMesh(vertices []graphics.Vertex, indices []uint32) graphics.MeshBuffers {
	d.record("CreateMesh", len(vertices), len(indices))
	b := graphics.MeshBuffers{VAO: d.id(), VBO: d.id(), EBO: d.id()}
	d.Meshes[b.VAO] = b
	return b
}

func (d *Device) DeleteMesh(b graphics.MeshBuffers) {
	d.record("DeleteMesh", b.VAO)
	delete(d.Meshes, b.VAO)
	d.Deleted = append(d.Deleted, fmt.Sprintf("mesh:%d", b.VAO))
}

func (d *Device) DrawElements(vao uint32, count int32) {
	d.record("DrawElements", vao, count)
	d.Draws = append(d.Draws, Draw{VAO: vao, Count: count, Program: d.Program, State: d.Snapshot()})
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
	d.State.Viewport = [4]int32{x, y, width, height}
}

func (d *Device) Clear(color mgl32.Vec4) {
	d.record("Clear", color)
}

var _ graphics.Device = (*Device)(nil)
