package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics"
)

// Uniform names shared with the shaders
const (
	uniformDiffuse        = "material.diffuse"
	uniformSpecular       = "material.specular"
	uniformAmbient        = "material.ambient"
	uniformShininess      = "material.shininess"
	uniformTint           = "tint"
	uniformAlphaThreshold = "alphaThreshold"
	uniformTexture        = "tex"

	uniformAlbedoTint     = "tex_mat.albedoTint"
	uniformSpecularTint   = "tex_mat.specularTint"
	uniformRoughnessRange = "tex_mat.roughnessRange"
	uniformEmissiveTint   = "tex_mat.emissiveTint"
)

// textureUnit is the unit a Textured material samples from
const textureUnit uint32 = 0

// Flat holds the untextured shading constants
type Flat struct {
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Ambient   mgl32.Vec3
	Shininess float32
}

func defaultFlat() Flat {
	return Flat{Ambient: mgl32.Vec3{1, 1, 1}, Shininess: 1}
}

func (f *Flat) configure(r config.Record) {
	f.Diffuse = r.Vec3("diffuse", f.Diffuse)
	f.Specular = r.Vec3("specular", f.Specular)
	f.Ambient = r.Vec3("ambient", f.Ambient)
	f.Shininess = r.Float("shininess", f.Shininess)
}

func (f *Flat) apply(s *graphics.Shader) {
	s.SetVec3(uniformDiffuse, f.Diffuse)
	s.SetVec3(uniformSpecular, f.Specular)
	s.SetVec3(uniformAmbient, f.Ambient)
	s.SetFloat(uniformShininess, f.Shininess)
}

// Tint multiplies the final color
type Tint struct {
	Color mgl32.Vec4
}

func defaultTint() Tint {
	return Tint{Color: mgl32.Vec4{1, 1, 1, 1}}
}

func (t *Tint) configure(r config.Record) {
	t.Color = r.Vec4("tint", mgl32.Vec4{1, 1, 1, 1})
}

func (t *Tint) apply(s *graphics.Shader) {
	s.SetVec4(uniformTint, t.Color)
}

// Texturing is the single diffuse texture of a Textured material
type Texturing struct {
	Texture        assets.Handle[graphics.Texture2D]
	Sampler        assets.Handle[graphics.Sampler]
	AlphaThreshold float32
}

func (t *Texturing) configure(r config.Record, res Resolver) {
	t.AlphaThreshold = r.Float("alphaThreshold", 0)
	t.Texture = res.Texture(r.String("texture", ""))
	t.Sampler = res.Sampler(r.String("sampler", ""))
}

// apply binds the texture to unit 0. An empty texture or sampler handle
// binds 0 so nothing from an earlier material is sampled through the unit.
func (t *Texturing) apply(dev graphics.Device, s *graphics.Shader) {
	s.SetFloat(uniformAlphaThreshold, t.AlphaThreshold)

	dev.ActiveTexture(textureUnit)
	if tex := t.Texture.Get(); tex != nil {
		tex.Bind()
	} else {
		dev.BindTexture2D(0)
	}
	if sampler := t.Sampler.Get(); sampler != nil {
		sampler.Bind(textureUnit)
	} else {
		dev.BindSampler(textureUnit, 0)
	}
	s.SetInt(uniformTexture, int32(textureUnit))
}
