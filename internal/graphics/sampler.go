package graphics

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/config"
)

// SamplerParams is the filtering and addressing state of a sampler object
type SamplerParams struct {
	MagFilter     uint32
	MinFilter     uint32
	WrapS         uint32
	WrapT         uint32
	BorderColor   mgl32.Vec4
	MaxAnisotropy float32
}

// DefaultSamplerParams returns linear mipmapped filtering with repeat addressing
func DefaultSamplerParams() SamplerParams {
	return SamplerParams{
		MagFilter:     Linear,
		MinFilter:     LinearMipmapLinear,
		WrapS:         Repeat,
		WrapT:         Repeat,
		MaxAnisotropy: 1,
	}
}

// Configure reads sampler parameters from a record such as
// {"MAG_FILTER": "GL_NEAREST", "WRAP_S": "GL_CLAMP_TO_EDGE"}.
// Absent keys and unknown enum names keep the current value.
func (p *SamplerParams) Configure(data any) {
	r, ok := config.AsRecord(data)
	if !ok {
		return
	}
	readEnum(r, "MAG_FILTER", &p.MagFilter)
	readEnum(r, "MIN_FILTER", &p.MinFilter)
	readEnum(r, "WRAP_S", &p.WrapS)
	readEnum(r, "WRAP_T", &p.WrapT)
	p.BorderColor = r.Vec4("BORDER_COLOR", p.BorderColor)
	p.MaxAnisotropy = r.Float("MAX_ANISOTROPY", p.MaxAnisotropy)
}

// Sampler is a GL sampler object. Binding it to a unit overrides the
// sampling state of whatever texture is bound there.
type Sampler struct {
	ID     uint32
	Params SamplerParams

	dev Device
}

// NewSampler creates a sampler object and uploads params
func NewSampler(dev Device, params SamplerParams) *Sampler {
	s := &Sampler{ID: dev.CreateSampler(), Params: params, dev: dev}
	dev.SamplerParameteri(s.ID, TextureMagFilter, int32(params.MagFilter))
	dev.SamplerParameteri(s.ID, TextureMinFilter, int32(params.MinFilter))
	dev.SamplerParameteri(s.ID, TextureWrapS, int32(params.WrapS))
	dev.SamplerParameteri(s.ID, TextureWrapT, int32(params.WrapT))
	dev.SamplerParameter4f(s.ID, TextureBorderColor, params.BorderColor)
	// core only from 4.6; below that it needs the anisotropic filtering extension
	if params.MaxAnisotropy != 1 {
		dev.SamplerParameterf(s.ID, TextureMaxAnisotropy, params.MaxAnisotropy)
	}
	return s
}

// Bind binds the sampler to the given texture unit
func (s *Sampler) Bind(unit uint32) {
	s.dev.BindSampler(unit, s.ID)
}

// Delete frees the GL sampler
func (s *Sampler) Delete() {
	if s.ID == 0 {
		return
	}
	s.dev.DeleteSampler(s.ID)
	s.ID = 0
}

func readEnum(r config.Record, key string, dst *uint32) {
	name, ok := r[key].(string)
	if !ok {
		return
	}
	v, ok := ParseEnum(name)
	if !ok {
		slog.Warn("unknown GL enum name", "key", key, "value", name)
		return
	}
	*dst = v
}
