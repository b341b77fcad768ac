package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAccessorsFallBackOnWrongShape(t *testing.T) {
	r := Record{
		"name":   "lamp",
		"on":     true,
		"power":  2.5,
		"count":  int64(3),
		"color":  []any{1.0, 0.5, 0.25},
		"short":  []any{1.0},
		"mixed":  []any{1.0, "x", 3.0},
		"mask":   []any{true, false, true, true},
		"nested": map[string]any{"a": 1},
	}

	assert.Equal(t, "lamp", r.String("name", "x"))
	assert.Equal(t, "x", r.String("power", "x"))
	assert.True(t, r.Bool("on", false))
	assert.Equal(t, float32(2.5), r.Float("power", 0))
	assert.Equal(t, float32(3), r.Float("count", 0))
	assert.Equal(t, 3, r.Int("count", 0))
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0.25}, r.Vec3("color", mgl32.Vec3{}))
	assert.Equal(t, mgl32.Vec3{9, 9, 9}, r.Vec3("short", mgl32.Vec3{9, 9, 9}))
	assert.Equal(t, mgl32.Vec3{9, 9, 9}, r.Vec3("mixed", mgl32.Vec3{9, 9, 9}))
	assert.Equal(t, mgl32.Vec2{1, 0.5}, r.Vec2("color", mgl32.Vec2{}))
	assert.Equal(t, [4]bool{true, false, true, true}, r.Bool4("mask", [4]bool{}))

	nested, ok := r.Record("nested")
	require.True(t, ok)
	assert.Equal(t, 1, nested.Int("a", 0))

	_, ok = r.Record("name")
	assert.False(t, ok)
}

func TestAsRecord(t *testing.T) {
	_, ok := AsRecord(nil)
	assert.False(t, ok)
	_, ok = AsRecord([]any{1})
	assert.False(t, ok)
	_, ok = AsRecord("object")
	assert.False(t, ok)

	r, ok := AsRecord(map[any]any{"k": "v"})
	require.True(t, ok)
	assert.Equal(t, "v", r.String("k", ""))
}

func TestParseFormatsAgree(t *testing.T) {
	inputs := map[string]string{
		".json": `{"scene": {"light": {"lightType": "point", "cone": [30, 10], "on": true}}}`,
		".yaml": "scene:\n  light:\n    lightType: point\n    cone: [30, 10]\n    on: true\n",
		".toml": "[scene.light]\nlightType = \"point\"\ncone = [30, 10]\non = true\n",
	}
	for ext, src := range inputs {
		t.Run(ext, func(t *testing.T) {
			root, err := Parse([]byte(src), ext)
			require.NoError(t, err)
			light, ok := root.Record("light")
			require.True(t, ok)
			assert.Equal(t, "point", light.String("lightType", ""))
			assert.Equal(t, mgl32.Vec2{30, 10}, light.Vec2("cone", mgl32.Vec2{}))
			assert.True(t, light.Bool("on", false))
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{}`), ".ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse([]byte(`[1, 2]`), ".json")
	assert.ErrorIs(t, err, ErrNotAnObject)

	_, err = Parse([]byte(`{`), ".json")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yml")
	require.NoError(t, os.WriteFile(path, []byte("assets:\n  textures:\n    wood: wood.png\n"), 0o644))

	root, err := LoadFile(path)
	require.NoError(t, err)
	assets, ok := root.Record("assets")
	require.True(t, ok)
	textures, ok := assets.Record("textures")
	require.True(t, ok)
	assert.Equal(t, "wood.png", textures.String("wood", ""))

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestRenderSettingsClamp(t *testing.T) {
	t.Cleanup(ResetRenderSettings)

	SetMaxLights(0)
	assert.Equal(t, 1, GetMaxLights())
	SetMaxLights(100)
	assert.Equal(t, MaxLightsLimit, GetMaxLights())

	SetClearColor(mgl32.Vec4{2, -1, 0.5, 1})
	assert.Equal(t, mgl32.Vec4{1, 0, 0.5, 1}, GetClearColor())

	SetSlowFrameThreshold(time.Microsecond)
	assert.Equal(t, time.Millisecond, GetSlowFrameThreshold())

	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, MaxFPSLimit, GetFPSLimit())
}

func TestApplyRendererRecord(t *testing.T) {
	t.Cleanup(ResetRenderSettings)

	ApplyRendererRecord("not an object")
	assert.Equal(t, DefaultMaxLights, GetMaxLights())

	ApplyRendererRecord(map[string]any{
		"maxLights":   4.0,
		"clearColor":  []any{0.1, 0.2, 0.3, 1.0},
		"slowFrameMs": 50.0,
		"fpsLimit":    144,
	})
	assert.Equal(t, 4, GetMaxLights())
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, GetClearColor())
	assert.Equal(t, 50*time.Millisecond, GetSlowFrameThreshold())
	assert.Equal(t, 144, GetFPSLimit())
}
