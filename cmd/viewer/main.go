// Command viewer loads a scene file and draws it with the forward renderer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type options struct {
	scene  string
	width  int
	height int
	debug  bool
	vsync  bool
	fps    int
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.scene, "scene", "scene.json", "scene file (.json, .yaml, .yml or .toml)")
	flag.IntVar(&o.width, "width", 1280, "window width")
	flag.IntVar(&o.height, "height", 720, "window height")
	flag.BoolVar(&o.debug, "debug", false, "enable debug logging")
	flag.BoolVar(&o.vsync, "vsync", true, "wait for vertical sync")
	flag.IntVar(&o.fps, "fps", -1, "frame rate cap, 0 for none (overrides the scene file)")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(opts, logger); err != nil {
		fmt.Fprintln(os.Stderr, "viewer:", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(opts)
	if err != nil {
		return err
	}
	defer window.Destroy()

	v, err := setupViewer(window, opts, logger)
	if err != nil {
		return err
	}
	defer v.Close()

	v.Run()
	return nil
}
