package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics"
	"mini-render/internal/light"
	"mini-render/internal/material"
)

var ErrUnknownAsset = errors.New("unknown asset")

// Resolver gives entities handles to the meshes and materials they draw with
type Resolver interface {
	Mesh(name string) assets.Handle[graphics.Mesh]
	Material(name string) assets.Handle[material.Material]
}

// Assets resolves meshes from a library and materials from a material cache
type Assets struct {
	*assets.Library
	Materials *assets.Cache[material.Material]
}

func (a Assets) Material(name string) assets.Handle[material.Material] {
	return a.Materials.Get(name)
}

// MeshRenderer draws a mesh with a material at its entity's transform
type MeshRenderer struct {
	Mesh     assets.Handle[graphics.Mesh]
	Material assets.Handle[material.Material]
}

// World is the flat, ordered set of entities of a scene. Parents come
// before their children.
type World struct {
	Entities []*Entity
}

// Add appends e and its subtree to the world
func (w *World) Add(e *Entity) {
	w.Entities = append(w.Entities, e)
	for _, c := range e.Children {
		w.Add(c)
	}
}

// Camera returns the first camera in scene order, or nil
func (w *World) Camera() *Camera {
	for _, e := range w.Entities {
		if e.Camera != nil {
			return e.Camera
		}
	}
	return nil
}

// Clear drops every entity
func (w *World) Clear() {
	w.Entities = nil
}

// Deserialize adds the entities of a world record: a list of entity objects
// with optional "components" and "children" lists.
func (w *World) Deserialize(data any, res Resolver) error {
	list, ok := data.([]any)
	if !ok {
		return nil
	}
	for _, item := range list {
		e, err := decodeEntity(item, nil, res)
		if err != nil {
			return err
		}
		if e != nil {
			w.Add(e)
		}
	}
	return nil
}

func decodeEntity(data any, parent *Entity, res Resolver) (*Entity, error) {
	r, ok := config.AsRecord(data)
	if !ok {
		return nil, nil
	}
	e := NewEntity("")
	e.configureTransform(r)
	if parent != nil {
		parent.AddChild(e)
	}

	components, _ := r.List("components")
	for _, c := range components {
		cr, ok := config.AsRecord(c)
		if !ok {
			continue
		}
		if err := e.addComponent(cr, res); err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.Name, err)
		}
	}

	children, _ := r.List("children")
	for _, c := range children {
		if _, err := decodeEntity(c, e, res); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Entity) addComponent(r config.Record, res Resolver) error {
	switch typ := r.String("type", ""); typ {
	case "Camera":
		e.Camera = newCamera(e)
		e.Camera.configure(r)
	case "Mesh Renderer":
		meshName, matName := r.String("mesh", ""), r.String("material", "")
		mr := &MeshRenderer{Mesh: res.Mesh(meshName), Material: res.Material(matName)}
		if !mr.Mesh.Valid() {
			return fmt.Errorf("mesh %q: %w", meshName, ErrUnknownAsset)
		}
		if !mr.Material.Valid() {
			return fmt.Errorf("material %q: %w", matName, ErrUnknownAsset)
		}
		e.MeshRenderer = mr
	case "Light":
		l := light.New()
		l.Configure(r)
		e.Light = l
	default:
		slog.Warn("skipping unknown component", "entity", e.Name, "type", typ)
	}
	return nil
}
