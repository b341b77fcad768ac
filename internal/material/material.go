// Package material implements the surface materials applied before each draw.
//
// A Material is a tagged union: Kind selects which payloads are in use.
// Flat, Tinted and Textured form a chain where each kind runs the one before
// it and then adds its own state; Lit stands on its own.
//
//	Flat     = common + Flat
//	Tinted   = Flat + Tint
//	Textured = Tinted + Texture
//	Lit      = common + Lit
//
// Apply must run on the goroutine owning the GL context, immediately before
// the draw call of the geometry using the material, and must not interleave
// with another material's Apply.
package material

import (
	"errors"
	"fmt"
	"log/slog"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics"
)

var (
	ErrMissingShader     = errors.New("material missing shader reference")
	ErrUnknownShader     = errors.New("material references unknown shader")
	ErrUnknownType       = errors.New("unknown material type")
	ErrShaderUnavailable = errors.New("material shader has been released")
)

// Kind is the material variant
type Kind int

const (
	KindFlat Kind = iota
	KindTinted
	KindTextured
	KindLit
)

func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindTinted:
		return "tinted"
	case KindTextured:
		return "textured"
	case KindLit:
		return "lit"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps the "type" field of a material record
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "flat", "material":
		return KindFlat, nil
	case "tinted":
		return KindTinted, nil
	case "textured":
		return KindTextured, nil
	case "lit":
		return KindLit, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownType, s)
}

// Resolver turns resource names into handles. Empty or unknown names must
// yield the empty handle.
type Resolver interface {
	Shader(name string) assets.Handle[graphics.Shader]
	Texture(name string) assets.Handle[graphics.Texture2D]
	Sampler(name string) assets.Handle[graphics.Sampler]
}

// Material is one surface description. Shader, texture and sampler
// handles are non-owning; the asset library owns the resources.
type Material struct {
	Name string
	Kind Kind

	Shader      assets.Handle[graphics.Shader]
	Pipeline    graphics.PipelineState
	Transparent bool

	Flat    Flat      // Flat, Tinted, Textured
	Tint    Tint      // Tinted, Textured
	Texture Texturing // Textured
	Lit     Lit       // Lit
}

// New returns a material of the given kind holding the documented defaults
func New(name string, kind Kind) *Material {
	return &Material{
		Name:     name,
		Kind:     kind,
		Pipeline: graphics.DefaultPipelineState(),
		Flat:     defaultFlat(),
		Tint:     defaultTint(),
		Lit:      defaultLit(),
	}
}

// Decode builds a material from a record, taking its kind from the "type" field.
func Decode(name string, data any, res Resolver) (*Material, error) {
	r, ok := config.AsRecord(data)
	if !ok {
		return New(name, KindFlat), nil
	}
	kind, err := ParseKind(r.String("type", ""))
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	m := New(name, kind)
	if err := m.Configure(r, res); err != nil {
		return nil, err
	}
	return m, nil
}

// Configure reads the material's fields from a record, layer by layer in
// chain order. A value that is not an object is ignored. The only error is a
// missing or unresolvable shader.
func (m *Material) Configure(data any, res Resolver) error {
	r, ok := config.AsRecord(data)
	if !ok {
		return nil
	}
	if err := m.configureCommon(r, res); err != nil {
		return fmt.Errorf("material %q: %w", m.Name, err)
	}

	switch m.Kind {
	case KindFlat:
		m.Flat.configure(r)
	case KindTinted:
		m.Flat.configure(r)
		m.Tint.configure(r)
	case KindTextured:
		m.Flat.configure(r)
		m.Tint.configure(r)
		m.Texture.configure(r, res)
	case KindLit:
		m.Lit.configure(r, res)
	}
	return nil
}

func (m *Material) configureCommon(r config.Record, res Resolver) error {
	if ps, ok := r["pipelineState"]; ok {
		m.Pipeline.Configure(ps)
	}

	name, ok := r["shader"].(string)
	if !ok {
		return ErrMissingShader
	}
	shader := res.Shader(name)
	if !shader.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownShader, name)
	}
	m.Shader = shader

	m.Transparent = r.Bool("transparent", false)
	return nil
}

// Apply writes the material's whole GPU state: pipeline state, program,
// uniforms, and texture and sampler bindings. Nothing is skipped based on
// what a previous Apply left behind.
func (m *Material) Apply(dev graphics.Device) error {
	shader := m.Shader.Get()
	if shader == nil {
		return fmt.Errorf("material %q: %w", m.Name, ErrShaderUnavailable)
	}

	m.Pipeline.Setup(dev)
	shader.Use()

	switch m.Kind {
	case KindFlat:
		m.Flat.apply(shader)
	case KindTinted:
		m.Flat.apply(shader)
		m.Tint.apply(shader)
	case KindTextured:
		m.Flat.apply(shader)
		m.Tint.apply(shader)
		m.Texture.apply(dev, shader)
	case KindLit:
		m.Lit.apply(dev, shader)
	}
	return nil
}

// Program returns the material's shader, or nil once it has been released
func (m *Material) Program() *graphics.Shader {
	return m.Shader.Get()
}

// LoadAll decodes every entry of a "materials" section into a cache keyed
// by material name. Entries that are not objects are skipped.
func LoadAll(data any, res Resolver) (*assets.Cache[Material], error) {
	cache := assets.NewCache[Material](nil)
	r, ok := config.AsRecord(data)
	if !ok {
		return cache, nil
	}
	for name, v := range r {
		if _, ok := config.AsRecord(v); !ok {
			slog.Warn("skipping material that is not an object", "name", name)
			continue
		}
		m, err := Decode(name, v, res)
		if err != nil {
			return nil, err
		}
		cache.Put(name, m)
	}
	return cache, nil
}
