package config

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderSettings holds render configuration
type RenderSettings struct {
	mu                 sync.RWMutex
	maxLights          int
	clearColor         mgl32.Vec4
	slowFrameThreshold time.Duration
	fpsLimit           int
}

const (
	DefaultMaxLights          = 8
	MaxLightsLimit            = 16
	DefaultSlowFrameThreshold = 20 * time.Millisecond
	MaxFPSLimit               = 1000
)

var globalRenderSettings = newRenderSettings()

func newRenderSettings() *RenderSettings {
	return &RenderSettings{
		maxLights:          DefaultMaxLights,
		clearColor:         mgl32.Vec4{0, 0, 0, 1},
		slowFrameThreshold: DefaultSlowFrameThreshold,
	}
}

// GetMaxLights returns how many lights the renderer uploads per draw
func GetMaxLights() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.maxLights
}

// SetMaxLights sets the per-draw light budget. The shaders declare a fixed
// size light array, so the value is clamped to [1, MaxLightsLimit].
func SetMaxLights(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if n < 1 {
		n = 1
	}
	if n > MaxLightsLimit {
		n = MaxLightsLimit
	}

	globalRenderSettings.maxLights = n
}

// GetClearColor returns the framebuffer clear color
func GetClearColor() mgl32.Vec4 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.clearColor
}

// SetClearColor sets the framebuffer clear color, clamping each channel to [0, 1]
func SetClearColor(c mgl32.Vec4) {
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	globalRenderSettings.mu.Lock()
	globalRenderSettings.clearColor = c
	globalRenderSettings.mu.Unlock()
}

// GetSlowFrameThreshold returns the frame time above which the viewer logs a warning
func GetSlowFrameThreshold() time.Duration {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.slowFrameThreshold
}

// SetSlowFrameThreshold sets the slow frame threshold, clamped to [1ms, 1s]
func SetSlowFrameThreshold(d time.Duration) {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	if d > time.Second {
		d = time.Second
	}
	globalRenderSettings.mu.Lock()
	globalRenderSettings.slowFrameThreshold = d
	globalRenderSettings.mu.Unlock()
}

// GetFPSLimit returns the frame rate cap, 0 meaning uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Values <= 0 remove the cap.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > MaxFPSLimit {
		limit = MaxFPSLimit
	}

	globalRenderSettings.fpsLimit = limit
}

// ApplyRendererRecord overrides the render settings from the "renderer"
// section of a scene file. Keys that are absent keep their current value.
func ApplyRendererRecord(data any) {
	r, ok := AsRecord(data)
	if !ok {
		return
	}
	if r.Has("maxLights") {
		SetMaxLights(r.Int("maxLights", GetMaxLights()))
	}
	if r.Has("clearColor") {
		SetClearColor(r.Vec4("clearColor", GetClearColor()))
	}
	if r.Has("slowFrameMs") {
		ms := r.Float("slowFrameMs", float32(GetSlowFrameThreshold().Milliseconds()))
		SetSlowFrameThreshold(time.Duration(float64(ms) * float64(time.Millisecond)))
	}
	if r.Has("fpsLimit") {
		SetFPSLimit(r.Int("fpsLimit", GetFPSLimit()))
	}
}

// ResetRenderSettings restores the defaults
func ResetRenderSettings() {
	d := newRenderSettings()
	globalRenderSettings.mu.Lock()
	globalRenderSettings.maxLights = d.maxLights
	globalRenderSettings.clearColor = d.clearColor
	globalRenderSettings.slowFrameThreshold = d.slowFrameThreshold
	globalRenderSettings.fpsLimit = d.fpsLimit
	globalRenderSettings.mu.Unlock()
}
