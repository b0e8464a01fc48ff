package showroom

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/catalog"
	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/debug"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/renderer"
	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/engine/window"
	"github.com/Faultbox/showroom/internal/gallery"
	"github.com/Faultbox/showroom/internal/logger"
)

// maxFrameTime caps dt so a stall (window drag, breakpoint) does not make
// springs and follows jump.
const maxFrameTime = 0.1

// App is the showroom instance.
type App struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	ui          *ui2d.Context
	input       *input.Input
	tweens      *tween.Engine
	env         *Env
	pages       *Manager
	screenshots *debug.ScreenshotCapture

	title   string
	click   *input.Event
	capture bool
}

// New creates the window, GL resources and the start page.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")
	gfx := cfg.Graphics
	log.Info("initializing showroom",
		zap.Int("width", gfx.Width),
		zap.Int("height", gfx.Height),
		zap.String("assets", cfg.Showroom.AssetsRoot),
		zap.String("start_page", cfg.Showroom.StartPage),
	)

	a := &App{
		config: cfg,
		log:    log,
		tweens: tween.NewEngine(),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      "Showroom",
		Width:      gfx.Width,
		Height:     gfx.Height,
		Fullscreen: gfx.Fullscreen,
		VSync:      gfx.VSync,
		MSAA:       gfx.MSAA,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh}, logger.Named("renderer"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := a.window.Size()
	a.ui, err = ui2d.NewContext(w, h)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	a.input = input.New(w, h)
	a.input.NotchDelta = cfg.Input.WheelNotchDelta
	if cfg.Input.TapSlop > 0 {
		a.input.Slop = cfg.Input.TapSlop
	}

	vp := gallery.NewViewport(float32(w), float32(h))
	vp.Breakpoint = float32(cfg.Showroom.MobileBreakpoint)

	a.env = &Env{
		Config:   cfg,
		Loader:   assets.NewLoader(cfg.Showroom.AssetsRoot, logger.Named("assets")),
		Tweens:   a.tweens,
		Renderer: a.renderer,
		Viewport: vp,
		Log:      logger.Named("page"),
		Navigate: a.navigate,
	}
	a.pages = NewManager(a.newPage, logger.Named("pages"))
	a.screenshots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, "showroom", cfg.Screenshots.Format)

	if err := a.pages.Navigate(cfg.Showroom.StartPage); err != nil {
		a.Close()
		return nil, err
	}

	log.Info("showroom initialized successfully")
	return a, nil
}

// newPage is the page factory.
func (a *App) newPage(name string) (Page, error) {
	if name == catalog.Landing {
		return NewLandingPage(a.env)
	}
	return NewGalleryPage(a.env, name)
}

// navigate schedules a page change requested by a page.
func (a *App) navigate(name string) {
	if err := a.pages.Navigate(name); err != nil {
		a.log.Error("navigation failed", zap.Error(err))
	}
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	fps := 0

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := float32(min(now.Sub(lastTime).Seconds(), maxFrameTime))
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Advance tweens, then the page
		a.tweens.Update(dt)
		if err := a.pages.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		a.syncTitle()

		// 3. Render scene, then overlay
		if err := a.pages.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.drawOverlay(fps)

		if a.capture {
			a.capture = false
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			fps = frameCount
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents feeds the overlay input state and forwards events to the
// page. Clicks are held back until the overlay had its chance at them.
func (a *App) handleEvents() {
	in := a.ui.Input()
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.resize(e.Width, e.Height)
		case input.EventKeyDown:
			if e.Key == sdl.SCANCODE_F12 {
				a.capture = true
				continue
			}
		case input.EventMouseMove, input.EventTouchMove:
			in.MouseX, in.MouseY = e.X, e.Y
		case input.EventMouseDown, input.EventTouchStart:
			in.MouseX, in.MouseY = e.X, e.Y
			in.MouseLeftDown = e.Type == input.EventTouchStart || e.Button == sdl.BUTTON_LEFT
		case input.EventMouseUp, input.EventTouchEnd:
			in.MouseLeftDown = false
		case input.EventMouseLeave:
			in.MouseX, in.MouseY = -1, -1
		case input.EventClick:
			in.MouseX, in.MouseY = e.X, e.Y
			in.MouseLeftClicked = true
			click := e
			a.click = &click
			continue
		}
		a.pages.Handle(e)
	}
}

func (a *App) resize(width, height int) {
	dw, dh := a.window.DrawableSize()
	a.renderer.Resize(dw, dh)
	a.ui.Resize(width, height)
	a.env.Viewport.Resize(float32(width), float32(height))
	a.log.Debug("window resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("narrow", a.env.Viewport.Narrow()),
	)
}

// drawOverlay draws page widgets, then delivers a click no widget took.
func (a *App) drawOverlay(fps int) {
	a.ui.Begin()
	r := a.ui.Renderer()
	in := a.ui.Input()

	a.pages.Overlay(r, in)
	if a.config.Showroom.ShowFPS {
		w, _ := a.ui.ScreenSize()
		r.DrawText(w-90, 10, fmt.Sprintf("%d FPS", fps), 14, ui2d.ColorWhite.WithAlpha(0.7))
	}

	if a.click != nil {
		if in.MouseLeftClicked {
			a.pages.Handle(*a.click)
		}
		a.click = nil
	}

	cursor := window.CursorArrow
	if a.pages.Hovering() {
		cursor = window.CursorHand
	}
	a.window.SetCursor(cursor)

	a.ui.End()
}

func (a *App) syncTitle() {
	p := a.pages.Current()
	if p == nil || p.Title() == a.title {
		return
	}
	a.title = p.Title()
	a.window.SetTitle(a.title)
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up showroom resources.
func (a *App) Close() {
	a.log.Info("closing showroom")

	if a.pages != nil {
		if err := a.pages.Close(); err != nil {
			a.log.Warn("closing page", zap.Error(err))
		}
	}
	if a.ui != nil {
		a.ui.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
