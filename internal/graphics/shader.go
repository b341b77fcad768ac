package graphics

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader represents an OpenGL shader program
type Shader struct {
	ID uint32

	dev       Device
	locations map[string]int32
}

// NewShader creates a new shader program from vertex and fragment shader source files
func NewShader(dev Device, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %w", err)
	}

	return NewShaderFromSource(dev, string(vertexSource), string(fragmentSource))
}

// NewShaderFromSource compiles and links a program from in-memory sources
func NewShaderFromSource(dev Device, vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := dev.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{ID: program, dev: dev, locations: make(map[string]int32)}, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	s.dev.UseProgram(s.ID)
}

// location caches lookups; a program's uniform locations never change after linking.
func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.dev.UniformLocation(s.ID, name)
	s.locations[name] = loc
	return loc
}

// SetBool sets a boolean uniform
func (s *Shader) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	s.dev.Uniform1i(s.location(name), intValue)
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	s.dev.Uniform1i(s.location(name), value)
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	s.dev.Uniform1f(s.location(name), value)
}

// SetVec2 sets a vec2 uniform
func (s *Shader) SetVec2(name string, value mgl32.Vec2) {
	s.dev.Uniform2f(s.location(name), value)
}

// SetVec3 sets a vec3 uniform
func (s *Shader) SetVec3(name string, value mgl32.Vec3) {
	s.dev.Uniform3f(s.location(name), value)
}

// SetVec4 sets a vec4 uniform
func (s *Shader) SetVec4(name string, value mgl32.Vec4) {
	s.dev.Uniform4f(s.location(name), value)
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, value mgl32.Mat4) {
	s.dev.UniformMatrix4f(s.location(name), value)
}

// Delete frees the GL program
func (s *Shader) Delete() {
	if s.ID == 0 {
		return
	}
	s.dev.DeleteProgram(s.ID)
	s.ID = 0
}
