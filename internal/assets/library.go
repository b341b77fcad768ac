package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"mini-render/internal/config"
	"mini-render/internal/graphics"
)

// FallbackTextureName names the 1x1 black texture sampled by lit materials
// through their unpopulated texture slots.
const FallbackTextureName = "black"

var ErrBadAssetRecord = errors.New("malformed asset record")

// Library holds every GPU resource a scene references, keyed by name. It is
// the only owner of those resources; materials hold handles into it.
type Library struct {
	Shaders  *Cache[graphics.Shader]
	Textures *Cache[graphics.Texture2D]
	Samplers *Cache[graphics.Sampler]
	Meshes   *Cache[graphics.Mesh]

	dev graphics.Device
	log *slog.Logger
}

// NewLibrary creates an empty library whose resources live on dev
func NewLibrary(dev graphics.Device, log *slog.Logger) *Library {
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		Shaders:  NewCache(func(s *graphics.Shader) { s.Delete() }),
		Textures: NewCache(func(t *graphics.Texture2D) { t.Delete() }),
		Samplers: NewCache(func(s *graphics.Sampler) { s.Delete() }),
		Meshes:   NewCache(func(m *graphics.Mesh) { m.Delete() }),
		dev:      dev,
		log:      log,
	}
}

// Device returns the device the library's resources were created on
func (l *Library) Device() graphics.Device {
	return l.dev
}

// Shader resolves a shader name to a handle; empty and unknown names give the empty handle
func (l *Library) Shader(name string) Handle[graphics.Shader] { return l.Shaders.Get(name) }

// Texture resolves a texture name to a handle; empty and unknown names give the empty handle
func (l *Library) Texture(name string) Handle[graphics.Texture2D] { return l.Textures.Get(name) }

// Sampler resolves a sampler name to a handle; empty and unknown names give the empty handle
func (l *Library) Sampler(name string) Handle[graphics.Sampler] { return l.Samplers.Get(name) }

// Mesh resolves a mesh name to a handle; empty and unknown names give the empty handle
func (l *Library) Mesh(name string) Handle[graphics.Mesh] { return l.Meshes.Get(name) }

// Deserialize loads the "shaders", "textures", "samplers" and "meshes"
// sections of an assets record. Relative file paths resolve against baseDir.
// Sections that are not objects are skipped.
func (l *Library) Deserialize(data any, baseDir string) error {
	r, ok := config.AsRecord(data)
	if !ok {
		return nil
	}

	if shaders, ok := r.Record("shaders"); ok {
		for name, v := range shaders {
			rec, ok := config.AsRecord(v)
			if !ok {
				return fmt.Errorf("shader %q: %w", name, ErrBadAssetRecord)
			}
			vs, fs := rec.String("vs", ""), rec.String("fs", "")
			if vs == "" || fs == "" {
				return fmt.Errorf("shader %q needs vs and fs: %w", name, ErrBadAssetRecord)
			}
			if err := l.LoadShader(name, resolve(baseDir, vs), resolve(baseDir, fs)); err != nil {
				return err
			}
		}
	}

	if textures, ok := r.Record("textures"); ok {
		paths := make(map[string]string, len(textures))
		for name, v := range textures {
			path, ok := v.(string)
			if !ok {
				return fmt.Errorf("texture %q: %w", name, ErrBadAssetRecord)
			}
			paths[name] = resolve(baseDir, path)
		}
		if err := l.LoadTextures(paths); err != nil {
			return err
		}
	}

	if samplers, ok := r.Record("samplers"); ok {
		for name, v := range samplers {
			l.AddSampler(name, v)
		}
	}

	if meshes, ok := r.Record("meshes"); ok {
		for name, v := range meshes {
			src, ok := v.(string)
			if !ok {
				return fmt.Errorf("mesh %q: %w", name, ErrBadAssetRecord)
			}
			if !strings.HasPrefix(src, builtinPrefix) {
				src = resolve(baseDir, src)
			}
			if err := l.LoadMesh(name, src); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadShader compiles a program from two source files and stores it under name
func (l *Library) LoadShader(name, vertexPath, fragmentPath string) error {
	s, err := graphics.NewShader(l.dev, vertexPath, fragmentPath)
	if err != nil {
		return fmt.Errorf("shader %q: %w", name, err)
	}
	l.Shaders.Put(name, s)
	l.log.Debug("loaded shader", "name", name, "program", s.ID)
	return nil
}

// LoadTexture decodes an image file and stores it under name
func (l *Library) LoadTexture(name, path string) error {
	t, err := graphics.LoadTexture(l.dev, path)
	if err != nil {
		return fmt.Errorf("texture %q: %w", name, err)
	}
	l.Textures.Put(name, t)
	l.log.Debug("loaded texture", "name", name, "width", t.Width, "height", t.Height)
	return nil
}

// LoadTextures decodes several image files in parallel and stores each under
// its name. Nothing is stored if any file fails to decode.
func (l *Library) LoadTextures(paths map[string]string) error {
	if len(paths) == 0 {
		return nil
	}
	pool := NewDecodePool(min(len(paths), runtime.GOMAXPROCS(0)), len(paths))
	defer pool.Shutdown()

	results := make(chan DecodeResult, len(paths))
	for name, path := range paths {
		job := DecodeJob{Name: name, Path: path, ResultChan: results}
		if !pool.SubmitJob(job) {
			pool.SubmitJobBlocking(job)
		}
	}
	l.log.Debug("decoding textures", "count", len(paths), "queued", pool.QueueLength())

	decoded := make(map[string]*image.RGBA, len(paths))
	var failed []string
	errs := make(map[string]error)
	for range paths {
		res := <-results
		if res.Error != nil {
			failed = append(failed, res.Name)
			errs[res.Name] = res.Error
			continue
		}
		decoded[res.Name] = res.Image
	}
	if len(failed) > 0 {
		sort.Strings(failed)
		return fmt.Errorf("texture %q: %w", failed[0], errs[failed[0]])
	}

	names := make([]string, 0, len(decoded))
	for name := range decoded {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := graphics.NewTexture(l.dev, decoded[name])
		l.Textures.Put(name, t)
		l.log.Debug("loaded texture", "name", name, "width", t.Width, "height", t.Height)
	}
	return nil
}

// AddSampler creates a sampler from a parameter record and stores it under name
func (l *Library) AddSampler(name string, data any) {
	params := graphics.DefaultSamplerParams()
	params.Configure(data)
	s := graphics.NewSampler(l.dev, params)
	l.Samplers.Put(name, s)
	l.log.Debug("created sampler", "name", name, "sampler", s.ID)
}

const builtinPrefix = "builtin:"

// LoadMesh stores a mesh under name. src is "builtin:cube", "builtin:plane",
// "builtin:sphere" or the path of a .gltf/.glb file.
func (l *Library) LoadMesh(name, src string) error {
	var (
		vertices []graphics.Vertex
		indices  []uint32
	)
	switch {
	case src == builtinPrefix+"cube":
		vertices, indices = graphics.Cube()
	case src == builtinPrefix+"plane":
		vertices, indices = graphics.Plane()
	case src == builtinPrefix+"sphere":
		vertices, indices = graphics.Sphere(32)
	case strings.HasPrefix(src, builtinPrefix):
		return fmt.Errorf("mesh %q: unknown builtin %q: %w", name, src, ErrBadAssetRecord)
	default:
		var err error
		vertices, indices, err = loadGLTF(src)
		if err != nil {
			return fmt.Errorf("mesh %q: %w", name, err)
		}
	}
	l.Meshes.Put(name, graphics.NewMesh(l.dev, vertices, indices))
	l.log.Debug("loaded mesh", "name", name, "vertices", len(vertices), "indices", len(indices))
	return nil
}

// EnsureFallback registers the 1x1 black fallback texture if no texture is
// stored under FallbackTextureName yet, and returns it.
func (l *Library) EnsureFallback() *graphics.Texture2D {
	h, _ := l.Textures.GetOrCreate(FallbackTextureName, func() (*graphics.Texture2D, error) {
		return graphics.NewSolidTexture(l.dev, color.RGBA{A: 255}), nil
	})
	return h.Get()
}

// Clear releases every resource in the library
func (l *Library) Clear() {
	l.Meshes.Clear()
	l.Samplers.Clear()
	l.Textures.Clear()
	l.Shaders.Clear()
}

func resolve(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
