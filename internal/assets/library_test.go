package assets_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-render/internal/assets"
	"mini-render/internal/graphics"
	"mini-render/internal/graphics/gltest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, f.Close())
}

func writeTriangleGLB(t *testing.T, path string, extra map[string]int) {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	attrs := map[string]int{"POSITION": pos}
	for k, v := range extra {
		attrs[k] = v
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: attrs,
		}},
	}}
	require.NoError(t, gltf.SaveBinary(doc, path))
}

func TestLibraryDeserialize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lit.vert"), "vertex")
	writeFile(t, filepath.Join(dir, "lit.frag"), "fragment")
	writePNG(t, filepath.Join(dir, "wood.png"))
	writeTriangleGLB(t, filepath.Join(dir, "tri.glb"), nil)

	dev := gltest.New()
	lib := assets.NewLibrary(dev, nil)
	err := lib.Deserialize(map[string]any{
		"shaders": map[string]any{
			"lit": map[string]any{"vs": "lit.vert", "fs": "lit.frag"},
		},
		"textures": map[string]any{"wood": "wood.png"},
		"samplers": map[string]any{
			"pixelated": map[string]any{"MAG_FILTER": "GL_NEAREST"},
		},
		"meshes": map[string]any{
			"cube":     "builtin:cube",
			"triangle": "tri.glb",
		},
	}, dir)
	require.NoError(t, err)

	shader, ok := lib.Shaders.Lookup("lit")
	require.True(t, ok)
	assert.Equal(t, [2]string{"vertex", "fragment"}, dev.Programs[shader.ID])

	wood, ok := lib.Textures.Lookup("wood")
	require.True(t, ok)
	assert.Equal(t, 2, wood.Width)

	sampler, ok := lib.Samplers.Lookup("pixelated")
	require.True(t, ok)
	assert.Equal(t, graphics.Nearest, sampler.Params.MagFilter)

	cube, ok := lib.Meshes.Lookup("cube")
	require.True(t, ok)
	assert.Equal(t, int32(36), cube.IndexCount)

	tri, ok := lib.Meshes.Lookup("triangle")
	require.True(t, ok)
	assert.Equal(t, int32(3), tri.IndexCount)
}

func TestLibraryDeserializeSoftAndHardFailures(t *testing.T) {
	dev := gltest.New()
	lib := assets.NewLibrary(dev, nil)

	assert.NoError(t, lib.Deserialize("not an object", ""))
	assert.NoError(t, lib.Deserialize(map[string]any{"textures": []any{"x"}}, ""))

	err := lib.Deserialize(map[string]any{
		"shaders": map[string]any{"broken": map[string]any{"vs": "only.vert"}},
	}, "")
	assert.ErrorIs(t, err, assets.ErrBadAssetRecord)

	err = lib.Deserialize(map[string]any{"textures": map[string]any{"gone": "missing.png"}}, t.TempDir())
	assert.Error(t, err)

	err = lib.Deserialize(map[string]any{"meshes": map[string]any{"m": "builtin:torus"}}, "")
	assert.ErrorIs(t, err, assets.ErrBadAssetRecord)
}

func TestLibraryEnsureFallbackIsIdempotent(t *testing.T) {
	dev := gltest.New()
	lib := assets.NewLibrary(dev, nil)

	black := lib.EnsureFallback()
	require.NotNil(t, black)
	assert.Equal(t, uint8(0), dev.Images[black.ID].Pix[0])
	assert.Equal(t, uint8(255), dev.Images[black.ID].Pix[3])

	assert.Same(t, black, lib.EnsureFallback())
	assert.Len(t, dev.CallsTo("CreateTexture2D"), 1)
}

func TestLibraryClearDeletesGPUObjects(t *testing.T) {
	dev := gltest.New()
	lib := assets.NewLibrary(dev, nil)
	lib.EnsureFallback()
	lib.AddSampler("s", nil)
	require.NoError(t, lib.LoadMesh("plane", "builtin:plane"))

	lib.Clear()
	assert.Len(t, dev.Deleted, 3)
	assert.Zero(t, lib.Textures.Len()+lib.Samplers.Len()+lib.Meshes.Len())
}

func TestLibraryLoadTexturesAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		writePNG(t, filepath.Join(dir, name+".png"))
	}

	dev := gltest.New()
	lib := assets.NewLibrary(dev, nil)
	require.NoError(t, lib.LoadTextures(map[string]string{
		"a": filepath.Join(dir, "a.png"),
		"b": filepath.Join(dir, "b.png"),
		"c": filepath.Join(dir, "c.png"),
	}))
	assert.Equal(t, []string{"a", "b", "c"}, lib.Textures.Names())

	// uploads happen in name order
	a, _ := lib.Textures.Lookup("a")
	c, _ := lib.Textures.Lookup("c")
	assert.Less(t, a.ID, c.ID)

	other := assets.NewLibrary(gltest.New(), nil)
	err := other.LoadTextures(map[string]string{
		"ok":     filepath.Join(dir, "a.png"),
		"zz":     filepath.Join(dir, "missing.png"),
		"broken": filepath.Join(dir, "also-missing.png"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `texture "broken"`)
	assert.Zero(t, other.Textures.Len())
}

func TestLibraryLoadMeshRejectsBrokenAttributes(t *testing.T) {
	for _, attr := range []string{"NORMAL", "TEXCOORD_0"} {
		t.Run(attr, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "broken.glb")
			writeTriangleGLB(t, path, map[string]int{attr: 42})

			lib := assets.NewLibrary(gltest.New(), nil)
			err := lib.LoadMesh("broken", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), `mesh "broken"`)
			_, ok := lib.Meshes.Lookup("broken")
			assert.False(t, ok)
		})
	}
}
