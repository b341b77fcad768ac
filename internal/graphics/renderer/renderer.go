package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics"
	"mini-render/internal/material"
	"mini-render/internal/profiling"
	"mini-render/internal/scene"
)

var ErrNoFallback = errors.New("fallback texture unavailable")

// Renderer is a forward renderer: every mesh is drawn once with its material
// and the scene's lights.
type Renderer struct {
	dev graphics.Device
	lib *assets.Library
	log *slog.Logger

	width, height int

	// material names whose errors were already logged
	reported map[string]bool
}

// NewRenderer creates a renderer drawing with the resources of lib
func NewRenderer(dev graphics.Device, lib *assets.Library, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		dev:      dev,
		lib:      lib,
		log:      log,
		reported: make(map[string]bool),
	}
}

// Init sets the viewport and binds the black fallback texture to the
// fallback unit, which lit materials sample through their empty slots.
func (r *Renderer) Init(width, height int) error {
	r.UpdateViewport(width, height)

	fallback := r.lib.EnsureFallback()
	if fallback == nil {
		return ErrNoFallback
	}
	r.dev.ActiveTexture(material.FallbackUnit)
	fallback.Bind()
	r.dev.BindSampler(material.FallbackUnit, 0)
	r.dev.ActiveTexture(0)
	return nil
}

// UpdateViewport updates the framebuffer size
func (r *Renderer) UpdateViewport(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
	r.dev.Viewport(0, 0, int32(r.width), int32(r.height))
}

// Render draws the world from its first camera. Opaque commands are drawn
// in scene order, then transparent ones from far to near.
func (r *Renderer) Render(w *scene.World) {
	defer profiling.Track("renderer.Render")()

	r.dev.Clear(config.GetClearColor())

	cam := w.Camera()
	if cam == nil {
		profiling.Count("renderer.noCamera", 1)
		return
	}

	ctx := r.frameContext(cam, w)
	opaque, transparent := collect(w)
	sortBackToFront(transparent, ctx.CameraPosition, cam.Forward())

	for _, cmd := range opaque {
		r.draw(ctx, cmd)
	}
	for _, cmd := range transparent {
		r.draw(ctx, cmd)
	}
}

func (r *Renderer) frameContext(cam *scene.Camera, w *scene.World) RenderContext {
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(float32(r.width) / float32(r.height))

	maxLights := config.GetMaxLights()
	var lights []LightData
	for _, e := range w.Entities {
		if e.Light == nil {
			continue
		}
		if len(lights) == maxLights {
			profiling.Count("renderer.lightsDropped", 1)
			continue
		}
		lights = append(lights, resolveLight(e))
	}

	return RenderContext{
		Camera:         cam,
		View:           view,
		Proj:           proj,
		VP:             proj.Mul4(view),
		CameraPosition: cam.Position(),
		Lights:         lights,
	}
}

func collect(w *scene.World) (opaque, transparent []Command) {
	for _, e := range w.Entities {
		mr := e.MeshRenderer
		if mr == nil {
			continue
		}
		mesh, mat := mr.Mesh.Get(), mr.Material.Get()
		if mesh == nil || mat == nil {
			profiling.Count("renderer.released", 1)
			continue
		}
		model := e.LocalToWorld()
		cmd := Command{
			Entity:   e,
			Model:    model,
			Center:   model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3(),
			Mesh:     mesh,
			Material: mat,
		}
		if mat.Transparent {
			transparent = append(transparent, cmd)
		} else {
			opaque = append(opaque, cmd)
		}
	}
	return opaque, transparent
}

// sortBackToFront orders commands by decreasing depth along the camera's
// forward axis.
func sortBackToFront(cmds []Command, eye, forward mgl32.Vec3) {
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].Center.Sub(eye).Dot(forward) > cmds[j].Center.Sub(eye).Dot(forward)
	})
}

func (r *Renderer) draw(ctx RenderContext, cmd Command) {
	if err := cmd.Material.Apply(r.dev); err != nil {
		profiling.Count("renderer.skipped", 1)
		if !r.reported[cmd.Material.Name] {
			r.reported[cmd.Material.Name] = true
			r.log.Error("skipping draw", "entity", cmd.Entity.Name, "err", err)
		}
		return
	}

	s := cmd.Material.Program()
	s.SetMatrix4("transform", ctx.VP.Mul4(cmd.Model))
	s.SetMatrix4("M", cmd.Model)
	s.SetMatrix4("M_IT", cmd.Model.Inv().Transpose())
	s.SetMatrix4("VP", ctx.VP)
	s.SetVec3("camera_position", ctx.CameraPosition)

	s.SetInt("light_count", int32(len(ctx.Lights)))
	for i, l := range ctx.Lights {
		prefix := fmt.Sprintf("lights[%d].", i)
		s.SetInt(prefix+"type", int32(l.Type))
		s.SetVec3(prefix+"position", l.Position)
		s.SetVec3(prefix+"direction", l.Direction)
		s.SetVec3(prefix+"diffuse", l.Diffuse)
		s.SetVec3(prefix+"specular", l.Specular)
		s.SetVec3(prefix+"ambient", l.Ambient)
		s.SetVec3(prefix+"attenuation", l.Attenuation)
		s.SetVec2(prefix+"cone_angles", l.Cone)
	}

	cmd.Mesh.Draw()
	profiling.Count("renderer.draws", 1)
}

// ResetErrors forgets which materials already had an error logged
func (r *Renderer) ResetErrors() {
	clear(r.reported)
}
