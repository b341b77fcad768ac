package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/glfw/v3.3/glfw"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics/glbackend"
	"mini-render/internal/graphics/renderer"
	"mini-render/internal/material"
	"mini-render/internal/scene"
)

func setupWindow(opts options) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	title := "mini-render - " + filepath.Base(opts.scene)
	window, err := glfw.CreateWindow(opts.width, opts.height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if opts.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

// setupViewer loads the scene file and builds everything the frame loop needs
func setupViewer(window *glfw.Window, opts options, logger *slog.Logger) (*Viewer, error) {
	dev, err := glbackend.New()
	if err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}
	logger.Info("opengl ready", "version", dev.Version())

	cfg, err := config.LoadFile(opts.scene)
	if err != nil {
		return nil, err
	}
	if r, ok := cfg.Record("renderer"); ok {
		config.ApplyRendererRecord(r)
	}
	if opts.fps >= 0 {
		config.SetFPSLimit(opts.fps)
	}

	lib := assets.NewLibrary(dev, logger)
	if err := lib.Deserialize(cfg["assets"], filepath.Dir(opts.scene)); err != nil {
		lib.Clear()
		return nil, fmt.Errorf("load assets: %w", err)
	}

	var materialsRecord any
	if a, ok := cfg.Record("assets"); ok {
		materialsRecord = a["materials"]
	}
	mats, err := material.LoadAll(materialsRecord, lib)
	if err != nil {
		lib.Clear()
		return nil, fmt.Errorf("load materials: %w", err)
	}

	world := &scene.World{}
	if err := world.Deserialize(cfg["world"], scene.Assets{Library: lib, Materials: mats}); err != nil {
		lib.Clear()
		return nil, fmt.Errorf("load world: %w", err)
	}
	logger.Info("scene loaded",
		"file", opts.scene,
		"entities", len(world.Entities),
		"shaders", lib.Shaders.Len(),
		"textures", lib.Textures.Len(),
		"materials", mats.Len())

	r := renderer.NewRenderer(dev, lib, logger)
	fbW, fbH := window.GetFramebufferSize()
	if err := r.Init(fbW, fbH); err != nil {
		lib.Clear()
		return nil, err
	}

	v := &Viewer{
		window:    window,
		renderer:  r,
		world:     world,
		lib:       lib,
		materials: mats,
		log:       logger,
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return v, nil
}
