package main

import (
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"mini-render/internal/assets"
	"mini-render/internal/config"
	"mini-render/internal/graphics/renderer"
	"mini-render/internal/material"
	"mini-render/internal/profiling"
	"mini-render/internal/scene"
)

// Viewer owns the frame loop state
type Viewer struct {
	window    *glfw.Window
	renderer  *renderer.Renderer
	world     *scene.World
	lib       *assets.Library
	materials *assets.Cache[material.Material]
	log       *slog.Logger

	fpsLimiter FPSLimiter

	frames           int
	lastFPSCheckTime time.Time
}

// Run draws frames until the window is asked to close
func (v *Viewer) Run() {
	v.lastFPSCheckTime = time.Now()
	for !v.window.ShouldClose() {
		v.tick()
	}
}

func (v *Viewer) tick() {
	profiling.ResetFrame()
	start := time.Now()

	v.renderer.Render(v.world)

	func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	frameDur := time.Since(start)
	if threshold := config.GetSlowFrameThreshold(); frameDur > threshold {
		v.log.Warn("slow frame",
			"took", frameDur,
			"threshold", threshold,
			"top", profiling.TopN(3),
			"draws", profiling.Counts()["renderer.draws"])
	}

	v.fpsLimiter.Wait()

	v.frames++
	if time.Since(v.lastFPSCheckTime) >= time.Second {
		v.log.Debug("fps", "frames", v.frames)
		v.frames = 0
		v.lastFPSCheckTime = time.Now()
	}
}

// Close drops the world and releases every GPU resource
func (v *Viewer) Close() {
	v.world.Clear()
	v.materials.Clear()
	v.lib.Clear()
}
