package app

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/nucleus/logging"
	"github.com/gekko3d/nucleus/rt/core"
	"github.com/gekko3d/nucleus/rt/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	pointScaleStep float32 = 1.1
	minPointScale  float32 = 0.01
	maxPointScale  float32 = 2

	overlayFontSize = 18
)

var overlayColor = [4]float32{1, 1, 0, 1}

type Options struct {
	Scene  *core.Scene
	Camera *core.CameraState
	Logger logging.Logger
	Debug  bool
}

type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Scene  *core.Scene
	Camera *core.CameraState

	Points *gpu.PointRenderPass
	Text   *gpu.TextRenderPass

	TextRenderer *core.TextRenderer
	TextItems    []core.TextItem

	Profiler *Profiler
	Logger   logging.Logger

	// framebuffer size in pixels, window size in screen coordinates
	Width, Height             int
	WindowWidth, WindowHeight int

	DebugMode bool
	StartTime float64

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64

	uniforms core.GPUUniforms
	now      func() float64
}

func NewApp(window *glfw.Window, opts Options) *App {
	a := &App{
		Window:    window,
		Scene:     opts.Scene,
		Camera:    opts.Camera,
		Profiler:  NewProfiler(),
		Logger:    logging.OrNop(opts.Logger),
		DebugMode: opts.Debug,
		now:       glfw.GetTime,
	}
	if a.Camera == nil {
		a.Camera = core.NewCameraState()
	}
	if a.Scene == nil {
		a.Scene = core.NewScene(core.Options{PointScale: core.DefaultPointScale, Logger: opts.Logger})
	}
	return a
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	a.Width, a.Height = a.Window.GetFramebufferSize()
	a.WindowWidth, a.WindowHeight = a.Window.GetSize()

	a.Config, err = surfaceConfiguration(a.Surface.GetCapabilities(adapter), a.Width, a.Height)
	if err != nil {
		return err
	}
	a.Surface.Configure(adapter, a.Device, a.Config)

	a.Points, err = gpu.NewPointRenderPass(a.Device, a.Config.Format, a.Scene.Geometry())
	if err != nil {
		return err
	}

	// the overlay is optional; the effect still runs without it
	a.TextRenderer, err = core.NewDefaultTextRenderer(overlayFontSize)
	if err != nil {
		a.Logger.Warnf("text renderer disabled: %v", err)
	} else if a.Text, err = gpu.NewTextRenderPass(a.Device, a.Config.Format, a.TextRenderer); err != nil {
		a.Logger.Warnf("text pass disabled: %v", err)
		a.Text = nil
	}

	a.StartTime = a.now()
	a.Logger.Infof("renderer ready: %dx%d, format %v, %d points", a.Width, a.Height, a.Config.Format, a.Points.InstanceCount)
	return nil
}

// surfaceConfiguration picks the first supported format and alpha mode.
func surfaceConfiguration(caps wgpu.SurfaceCapabilities, width, height int) (*wgpu.SurfaceConfiguration, error) {
	if len(caps.Formats) == 0 {
		return nil, fmt.Errorf("surface reports no texture formats")
	}
	if len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reports no alpha modes")
	}
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}, nil
}

// InstallCallbacks routes GLFW input to the app. Callbacks run on the main
// thread inside glfw.PollEvents.
func (a *App) InstallCallbacks(w *glfw.Window) {
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.Resize(width, height)
	})
	w.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		a.WindowWidth, a.WindowHeight = width, height
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		a.HandleCursorPos(x, y)
	})
	w.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		a.HandleCursorEnter(entered)
	})
	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		a.HandleMouseButton(button, action, x, y)
	})
	w.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		a.Camera.Zoom(yoff)
	})
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if a.HandleKey(key, action) {
			w.SetShouldClose(true)
		}
	})
}

// Resize reconfigures the surface. A minimized window reports 0x0; the
// surface is left alone and rendering pauses until it comes back.
func (a *App) Resize(w, h int) {
	a.Width, a.Height = w, h
	if w <= 0 || h <= 0 || a.Surface == nil {
		return
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	a.Logger.Debugf("surface resized to %dx%d", w, h)
}

func (a *App) HandleCursorPos(x, y float64) {
	if a.WindowWidth <= 0 || a.WindowHeight <= 0 {
		return
	}
	a.Scene.OnPointerMove(x, y, float64(a.WindowWidth), float64(a.WindowHeight))
	a.Camera.Drag(x, y, a.WindowHeight)
}

func (a *App) HandleCursorEnter(entered bool) {
	if !entered {
		a.Scene.ResetPointer()
		a.Camera.EndDrag()
	}
}

func (a *App) HandleMouseButton(button glfw.MouseButton, action glfw.Action, x, y float64) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		a.Camera.BeginDrag(x, y)
	case glfw.Release:
		a.Camera.EndDrag()
	}
}

// HandleKey applies the keyboard bindings and reports whether the window
// should close.
func (a *App) HandleKey(key glfw.Key, action glfw.Action) bool {
	if action == glfw.Release {
		return false
	}

	switch key {
	case glfw.KeyEscape:
		return action == glfw.Press
	case glfw.KeyR:
		if action == glfw.Press {
			a.Logger.Infof("autoRotate=%v", a.Scene.ToggleAutoRotate())
		}
	case glfw.KeyF3:
		if action == glfw.Press {
			a.DebugMode = !a.DebugMode
		}
	case glfw.KeyEqual, glfw.KeyKPAdd:
		a.Scene.SetPointScale(mgl32.Clamp(a.Scene.PointScale()*pointScaleStep, minPointScale, maxPointScale))
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		a.Scene.SetPointScale(mgl32.Clamp(a.Scene.PointScale()/pointScaleStep, minPointScale, maxPointScale))
	}
	return false
}

// FrameUniforms packs the scene state with the current camera.
func (a *App) FrameUniforms() core.GPUUniforms {
	aspect := float32(1)
	if a.Width > 0 && a.Height > 0 {
		aspect = float32(a.Width) / float32(a.Height)
	}
	modelView := a.Camera.GetViewMatrix().Mul4(a.Scene.ModelMatrix())
	return a.Scene.Uniforms().Pack(modelView, a.Camera.GetProjectionMatrix(aspect), float32(a.Width), float32(a.Height))
}

func (a *App) Update() {
	a.Profiler.BeginScope("update")
	defer a.Profiler.EndScope("update")

	a.Camera.Update()
	a.Scene.Tick(float32(a.now() - a.StartTime))
	a.uniforms = a.FrameUniforms()
	if a.Points != nil {
		a.Points.Update(a.Queue, &a.uniforms)
	}

	a.ClearText()
	if a.DebugMode {
		a.DrawText(a.OverlayText(), 10, 10, 1.0, overlayColor)
	}
	if a.Text != nil {
		a.Text.Update(a.Queue, a.TextRenderer.BuildVertices(a.TextItems, a.Width, a.Height))
	}
}

// OverlayText is the F3 debug readout.
func (a *App) OverlayText() string {
	p := a.Scene.Pointer()
	a.Profiler.SetCount("points", a.Scene.Geometry().Len())
	return fmt.Sprintf("FPS: %.1f\nscale: %.3f  autoRotate: %v\npointer: %.2f, %.2f\n%s",
		a.FPS, a.Scene.PointScale(), a.Scene.AutoRotate(), p.X(), p.Y(), a.Profiler.GetStatsString())
}

func (a *App) ClearText() {
	a.TextItems = a.TextItems[:0]
}

func (a *App) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	a.TextItems = append(a.TextItems, core.TextItem{
		Text:     text,
		Position: [2]float32{x, y},
		Scale:    scale,
		Color:    color,
	})
}

func (a *App) Render() {
	if a.Width <= 0 || a.Height <= 0 {
		return
	}
	a.Profiler.BeginScope("render")
	defer a.Profiler.EndScope("render")

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		a.Logger.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		a.Logger.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		a.Logger.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	a.Points.Draw(rPass)
	if a.Text != nil {
		a.Text.Draw(rPass)
	}
	if err = rPass.End(); err != nil {
		a.Logger.Errorf("render pass End failed: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		a.Logger.Errorf("encoder Finish failed: %v", err)
		return
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()

	a.countFrame(a.now())
}

func (a *App) countFrame(now float64) {
	if a.LastRenderTime > 0 {
		a.FrameCount++
		a.FPSTime += now - a.LastRenderTime
		if a.FPSTime >= 1.0 {
			a.FPS = float64(a.FrameCount) / a.FPSTime
			a.FrameCount = 0
			a.FPSTime = 0
		}
	}
	a.LastRenderTime = now
}

func (a *App) Release() {
	if a.Points != nil {
		a.Points.Release()
	}
	if a.Text != nil {
		a.Text.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}
