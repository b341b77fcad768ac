package renderer_test

import (
	"bytes"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics"
	"mini-render/internal/graphics/gltest"
	"mini-render/internal/graphics/renderer"
	"mini-render/internal/material"
	"mini-render/internal/profiling"
	"mini-render/internal/scene"
)

type harness struct {
	dev  *gltest.Device
	lib  *assets.Library
	mats *assets.Cache[material.Material]
	r    *renderer.Renderer
	logs *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	config.ResetRenderSettings()
	t.Cleanup(config.ResetRenderSettings)

	dev := gltest.New()
	lib := assets.NewLibrary(dev, nil)
	s, err := graphics.NewShaderFromSource(dev, "v", "f")
	require.NoError(t, err)
	lib.Shaders.Put("lit", s)
	lib.Textures.Put("wood", graphics.NewSolidTexture(dev, color.RGBA{R: 128, A: 255}))
	require.NoError(t, lib.LoadMesh("cube", "builtin:cube"))
	require.NoError(t, lib.LoadMesh("plane", "builtin:plane"))

	mats, err := material.LoadAll(map[string]any{
		"solid": map[string]any{"type": "lit", "shader": "lit", "albedo": "wood"},
		"glass": map[string]any{"type": "tinted", "shader": "lit", "transparent": true},
	}, lib)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	r := renderer.NewRenderer(dev, lib, slog.New(slog.NewTextHandler(logs, nil)))
	require.NoError(t, r.Init(800, 400))
	return &harness{dev: dev, lib: lib, mats: mats, r: r, logs: logs}
}

func (h *harness) world(t *testing.T, entities ...any) *scene.World {
	t.Helper()
	w := &scene.World{}
	require.NoError(t, w.Deserialize(entities, scene.Assets{Library: h.lib, Materials: h.mats}))
	return w
}

func camera() map[string]any {
	return map[string]any{
		"name":       "camera",
		"position":   []any{0.0, 0.0, 10.0},
		"components": []any{map[string]any{"type": "Camera"}},
	}
}

func drawable(name, mesh, mat string, z float64) map[string]any {
	return map[string]any{
		"name":     name,
		"position": []any{0.0, 0.0, z},
		"components": []any{
			map[string]any{"type": "Mesh Renderer", "mesh": mesh, "material": mat},
		},
	}
}

func lamp(kind string) map[string]any {
	return map[string]any{
		"name":       "lamp",
		"position":   []any{1.0, 2.0, 3.0},
		"components": []any{map[string]any{"type": "Light", "lightType": kind, "diffuse": []any{1.0, 1.0, 1.0}}},
	}
}

func TestInitBindsFallbackToUnitFive(t *testing.T) {
	h := newHarness(t)

	black, ok := h.lib.Textures.Lookup(assets.FallbackTextureName)
	require.True(t, ok)
	assert.Equal(t, black.ID, h.dev.State.Textures[material.FallbackUnit])
	assert.Equal(t, [4]int32{0, 0, 800, 400}, h.dev.State.Viewport)
	assert.Equal(t, uint32(0), h.dev.ActiveUnit)
}

func TestTextureCreatedAfterInitKeepsFallbackBound(t *testing.T) {
	h := newHarness(t)
	h.r.Render(h.world(t, camera(), drawable("box", "cube", "solid", 0)))

	h.lib.Textures.Put("late", graphics.NewSolidTexture(h.dev, color.RGBA{G: 255, A: 255}))

	black, ok := h.lib.Textures.Lookup(assets.FallbackTextureName)
	require.True(t, ok)
	assert.Equal(t, black.ID, h.dev.State.Textures[material.FallbackUnit])
}

func TestRenderOrdersOpaqueThenTransparentFarToNear(t *testing.T) {
	h := newHarness(t)
	w := h.world(t,
		camera(),
		drawable("near-glass", "plane", "glass", 5),
		drawable("box", "cube", "solid", 0),
		drawable("far-glass", "plane", "glass", -5),
	)

	h.dev.ResetCalls()
	h.r.Render(w)
	require.Len(t, h.dev.Draws, 3)

	cube, _ := h.lib.Meshes.Lookup("cube")
	plane, _ := h.lib.Meshes.Lookup("plane")
	assert.Equal(t, cube.Buffers.VAO, h.dev.Draws[0].VAO)
	assert.Equal(t, plane.Buffers.VAO, h.dev.Draws[1].VAO)
	assert.Equal(t, plane.Buffers.VAO, h.dev.Draws[2].VAO)

	program := h.dev.Draws[1].Program
	far := h.dev.Draws[1].State.Uniforms[program]["M"].(mgl32.Mat4)
	near := h.dev.Draws[2].State.Uniforms[program]["M"].(mgl32.Mat4)
	assert.Equal(t, float32(-5), far.Col(3).Z())
	assert.Equal(t, float32(5), near.Col(3).Z())

	assert.Len(t, h.dev.CallsTo("Clear"), 1)
}

func TestRenderUploadsTransformsAndLights(t *testing.T) {
	h := newHarness(t)
	w := h.world(t, camera(), drawable("box", "cube", "solid", -2), lamp("point"), lamp("spot"))

	h.r.Render(w)
	require.Len(t, h.dev.Draws, 1)
	d := h.dev.Draws[0]
	u := d.State.Uniforms[d.Program]

	model := mgl32.Translate3D(0, 0, -2)
	vp := u["VP"].(mgl32.Mat4)
	assert.Equal(t, model, u["M"])
	assert.True(t, vp.Mul4(model).ApproxEqual(u["transform"].(mgl32.Mat4)))
	assert.True(t, model.Inv().Transpose().ApproxEqual(u["M_IT"].(mgl32.Mat4)))
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, u["camera_position"])

	assert.Equal(t, int32(2), u["light_count"])
	assert.Equal(t, int32(1), u["lights[0].type"])
	assert.Equal(t, int32(2), u["lights[1].type"])
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, u["lights[0].position"])
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, u["lights[0].direction"])
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, u["lights[0].diffuse"])

	// the lit material's empty slots sample the fallback bound at init
	black, _ := h.lib.Textures.Lookup(assets.FallbackTextureName)
	assert.Equal(t, black.ID, d.State.Textures[material.FallbackUnit])
	assert.Equal(t, int32(material.FallbackUnit), u["tex_mat.emissive"])
}

func TestRenderClampsLightCount(t *testing.T) {
	h := newHarness(t)
	config.SetMaxLights(1)
	w := h.world(t, camera(), drawable("box", "cube", "solid", 0), lamp("point"), lamp("spot"))

	profiling.ResetFrame()
	h.r.Render(w)
	d := h.dev.Draws[0]
	assert.Equal(t, int32(1), d.State.Uniforms[d.Program]["light_count"])
	assert.Equal(t, 1, profiling.Counts()["renderer.lightsDropped"])
}

func TestRenderSkipsFailingMaterialAndLogsOnce(t *testing.T) {
	h := newHarness(t)
	w := h.world(t, camera(), drawable("a", "cube", "solid", 0), drawable("b", "cube", "solid", 1))
	require.True(t, h.lib.Shaders.Release("lit"))

	profiling.ResetFrame()
	h.dev.ResetCalls()
	h.r.Render(w)
	h.r.Render(w)

	assert.Empty(t, h.dev.Draws)
	assert.Equal(t, 4, profiling.Counts()["renderer.skipped"])
	assert.Equal(t, 1, strings.Count(h.logs.String(), "skipping draw"))
	assert.Contains(t, h.logs.String(), "shader has been released")
}

func TestRenderWithoutCameraOnlyClears(t *testing.T) {
	h := newHarness(t)
	w := h.world(t, drawable("box", "cube", "solid", 0))

	h.dev.ResetCalls()
	h.r.Render(w)
	assert.Empty(t, h.dev.Draws)
	assert.Len(t, h.dev.CallsTo("Clear"), 1)
}

func TestDemoSceneRenders(t *testing.T) {
	config.ResetRenderSettings()
	t.Cleanup(config.ResetRenderSettings)

	path := filepath.Join("..", "..", "..", "scenes", "demo", "demo.yaml")
	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	r, _ := cfg.Record("renderer")
	config.ApplyRendererRecord(r)
	assert.Equal(t, 4, config.GetMaxLights())

	dev := gltest.New()
	lib := assets.NewLibrary(dev, nil)
	require.NoError(t, lib.Deserialize(cfg["assets"], filepath.Dir(path)))

	a, _ := cfg.Record("assets")
	mats, err := material.LoadAll(a["materials"], lib)
	require.NoError(t, err)

	w := &scene.World{}
	require.NoError(t, w.Deserialize(cfg["world"], scene.Assets{Library: lib, Materials: mats}))

	rr := renderer.NewRenderer(dev, lib, nil)
	require.NoError(t, rr.Init(640, 480))
	rr.Render(w)

	require.Len(t, dev.Draws, 3)
	last := dev.Draws[2]
	assert.True(t, last.State.Caps[graphics.CapBlend])
	assert.False(t, last.State.DepthMask)
	assert.Equal(t, int32(2), last.State.Uniforms[last.Program]["light_count"])
}
