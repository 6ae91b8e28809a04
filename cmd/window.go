package cmd

import (
	"context"
	"fmt"

	"github.com/gekko3d/nucleus/config"
	"github.com/gekko3d/nucleus/logging"
	"github.com/gekko3d/nucleus/rt/app"
	"github.com/gekko3d/nucleus/rt/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// runWindow owns the main thread until the window closes or ctx is done:
// PollEvents, then Update, then Render, once per displayed frame.
func runWindow(ctx context.Context, cfg *config.Config, scene *core.Scene, logger logging.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	application := app.NewApp(window, app.Options{
		Scene:  scene,
		Camera: cfg.NewCamera(),
		Logger: logger,
		Debug:  cfg.Debug,
	})
	if err := application.Init(); err != nil {
		return fmt.Errorf("renderer init: %w", err)
	}
	defer application.Release()
	application.InstallCallbacks(window)

	for !window.ShouldClose() {
		if ctx.Err() != nil {
			logger.Infof("interrupted, closing window")
			break
		}
		glfw.PollEvents()
		application.Update()
		application.Render()
	}
	return nil
}
