package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics"
)

// Slot is one of the texture maps of a Lit material. A slot's value is also
// the texture unit it binds to.
type Slot int

const (
	Albedo Slot = iota
	SpecularMap
	Roughness
	AmbientOcclusion
	Emissive

	SlotCount
)

// FallbackUnit is the texture unit holding the 1x1 black texture. The
// renderer binds it before any Lit material is applied; empty slots point
// their sampler uniform here.
const FallbackUnit uint32 = 5

var slotKeys = [SlotCount]string{"albedo", "specular", "roughness", "ambientOcclusion", "emissive"}

// Key returns the record key and uniform suffix of the slot
func (s Slot) Key() string {
	return slotKeys[s]
}

// Uniform returns the sampler uniform of the slot
func (s Slot) Uniform() string {
	return "tex_mat." + slotKeys[s]
}

// Lit is the texture-mapped payload of a Lit material
type Lit struct {
	Maps [SlotCount]assets.Handle[graphics.Texture2D]

	AlbedoTint     mgl32.Vec3
	SpecularTint   mgl32.Vec3
	EmissiveTint   mgl32.Vec3
	RoughnessRange mgl32.Vec2

	Sampler        assets.Handle[graphics.Sampler]
	AlphaThreshold float32
}

func defaultLit() Lit {
	return Lit{
		AlbedoTint:     mgl32.Vec3{1, 1, 1},
		SpecularTint:   mgl32.Vec3{1, 1, 1},
		EmissiveTint:   mgl32.Vec3{1, 1, 1},
		RoughnessRange: mgl32.Vec2{0, 1},
	}
}

func (l *Lit) configure(r config.Record, res Resolver) {
	white := mgl32.Vec3{1, 1, 1}
	l.AlbedoTint = r.Vec3("albedoTint", white)
	l.SpecularTint = r.Vec3("specularTint", white)
	l.RoughnessRange = r.Vec2("roughnessRange", mgl32.Vec2{0, 1})
	l.EmissiveTint = r.Vec3("emissiveTint", white)
	l.AlphaThreshold = r.Float("alphaThreshold", 0)

	for slot := Slot(0); slot < SlotCount; slot++ {
		l.Maps[slot] = res.Texture(r.String(slot.Key(), ""))
	}
	l.Sampler = res.Sampler(r.String("sampler", ""))
}

func (l *Lit) apply(dev graphics.Device, s *graphics.Shader) {
	s.SetVec3(uniformAlbedoTint, l.AlbedoTint)
	s.SetVec3(uniformSpecularTint, l.SpecularTint)
	s.SetVec2(uniformRoughnessRange, l.RoughnessRange)
	s.SetVec3(uniformEmissiveTint, l.EmissiveTint)
	s.SetFloat(uniformAlphaThreshold, l.AlphaThreshold)

	var populated [SlotCount]bool
	for slot := Slot(0); slot < SlotCount; slot++ {
		tex := l.Maps[slot].Get()
		if tex == nil {
			s.SetInt(slot.Uniform(), int32(FallbackUnit))
			continue
		}
		unit := uint32(slot)
		dev.ActiveTexture(unit)
		tex.Bind()
		s.SetInt(slot.Uniform(), int32(unit))
		populated[slot] = true
	}

	// One sampler serves every populated unit. Without one, populated units
	// fall back to each texture's own parameters.
	sampler := l.Sampler.Get()
	for slot, ok := range populated {
		if !ok {
			continue
		}
		if sampler != nil {
			sampler.Bind(uint32(slot))
		} else {
			dev.BindSampler(uint32(slot), 0)
		}
	}
}

// Populated reports how many texture slots currently hold a texture
func (l *Lit) Populated() int {
	n := 0
	for _, h := range l.Maps {
		if h.Valid() {
			n++
		}
	}
	return n
}
