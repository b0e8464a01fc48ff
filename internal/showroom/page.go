// Package showroom hosts the showroom pages in one window: the landing
// carousel and the gallery pages, plus the frame loop that drives them.
package showroom

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/gallery"
	"github.com/Faultbox/showroom/internal/ui"
)

// Page is one showroom page. Entering a page builds its scene and starts its
// loads; exiting tears all of it down.
type Page interface {
	// Name is the catalog name the page was built from.
	Name() string
	// Title is shown in the window title bar.
	Title() string

	// Enter is called when the page becomes current.
	Enter() error

	// Exit is called when leaving the page.
	Exit() error

	// Update is called every frame after the tween engine.
	Update(dt float32) error

	// Render draws the 3D scene.
	Render() error

	// Handle processes one input event. Clicks arrive only when no overlay
	// widget consumed them.
	Handle(e input.Event)

	// Overlay draws the page's 2D widgets over the scene.
	Overlay(p ui.Painter, in *ui2d.InputState)

	// Hovering reports whether the pointer is over something clickable.
	Hovering() bool
}

// SceneRenderer is the part of the renderer pages use.
type SceneRenderer interface {
	Render(sc *scene.Scene, cam *camera.Perspective)
	Release(n *scene.Node)
	ReleaseEnvironment(c *scene.CubeFaces)
}

// Env is what every page shares with the app.
type Env struct {
	Config   *config.Config
	Loader   *assets.Loader
	Tweens   *tween.Engine
	Renderer SceneRenderer
	Viewport *gallery.Viewport
	Log      *zap.Logger

	// Navigate schedules a full navigation to the named page.
	Navigate func(name string)
}

func (e *Env) navigate(name string) {
	if e.Navigate != nil {
		e.Navigate(name)
	}
}

func (e *Env) catalogDir() string {
	if e.Config == nil {
		return ""
	}
	return e.Config.Showroom.CatalogDir
}

func (e *Env) render(sc *scene.Scene, cam *camera.Perspective) {
	if e.Renderer != nil {
		e.Renderer.Render(sc, cam)
	}
}

// cacheStats reports the loader's byte cache counters as log fields.
func (e *Env) cacheStats() []zap.Field {
	if e.Loader == nil {
		return nil
	}
	hits, misses := e.Loader.Cache().Stats()
	return []zap.Field{zap.Int("cache_hits", hits), zap.Int("cache_misses", misses)}
}

// release frees the GPU side of a page's scene.
func (e *Env) release(sc *scene.Scene) {
	if e.Renderer == nil || sc == nil {
		return
	}
	e.Renderer.Release(sc.Root)
	e.Renderer.ReleaseEnvironment(sc.Environment)
}

// Factory builds the page for a catalog name.
type Factory func(name string) (Page, error)

// Manager manages page transitions.
type Manager struct {
	current Page
	next    Page
	factory Factory
	log     *zap.Logger
}

// NewManager creates a new page manager.
func NewManager(factory Factory, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{factory: factory, log: log}
}

// Current returns the current page.
func (m *Manager) Current() Page {
	return m.current
}

// Change schedules a page change. The swap happens on the next Update, so
// it is safe to call from input handlers and tween callbacks.
func (m *Manager) Change(next Page) {
	m.next = next
}

// Navigate builds the named page and schedules it.
func (m *Manager) Navigate(name string) error {
	if m.factory == nil {
		return fmt.Errorf("navigate to %s: no page factory", name)
	}
	p, err := m.factory(name)
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", name, err)
	}
	m.log.Info("navigating", zap.String("page", name))
	m.Change(p)
	return nil
}

// Update processes page changes and updates the current page.
func (m *Manager) Update(dt float32) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return fmt.Errorf("exit %s: %w", m.current.Name(), err)
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return fmt.Errorf("enter %s: %w", m.current.Name(), err)
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// Render renders the current page.
func (m *Manager) Render() error {
	if m.current != nil {
		return m.current.Render()
	}
	return nil
}

// Handle forwards an event to the current page.
func (m *Manager) Handle(e input.Event) {
	if m.current != nil {
		m.current.Handle(e)
	}
}

// Overlay draws the current page's widgets.
func (m *Manager) Overlay(p ui.Painter, in *ui2d.InputState) {
	if m.current != nil {
		m.current.Overlay(p, in)
	}
}

// Hovering reports whether the current page wants the hand cursor.
func (m *Manager) Hovering() bool {
	return m.current != nil && m.current.Hovering()
}

// Close exits the current page and drops any scheduled one.
func (m *Manager) Close() error {
	m.next = nil
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
