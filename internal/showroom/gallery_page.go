package showroom

import (
	"context"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/catalog"
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/gallery"
	"github.com/Faultbox/showroom/internal/ui"
)

// GalleryPage is one scroll gallery: comics, cars or cassettes.
type GalleryPage struct {
	env  *Env
	name string
	doc  *catalog.Gallery
	log  *zap.Logger

	scene  *scene.Scene
	camera *camera.Perspective
	ctrl   *gallery.Controller
	panel  *ui.DetailPanel
	back   *ui.Button

	cancel context.CancelFunc
	loads  <-chan assets.Result
	cube   <-chan assets.CubeResult
	touch  bool
}

// NewGalleryPage reads the catalog for name. Nothing is built until Enter.
func NewGalleryPage(env *Env, name string) (*GalleryPage, error) {
	doc, err := catalog.LoadGallery(env.catalogDir(), name)
	if err != nil {
		return nil, err
	}
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &GalleryPage{
		env:  env,
		name: name,
		doc:  doc,
		log:  log.With(zap.String("page", name)),
	}, nil
}

// Name implements Page.
func (p *GalleryPage) Name() string {
	return p.name
}

// Title implements Page.
func (p *GalleryPage) Title() string {
	if p.doc.Title != "" {
		return p.doc.Title
	}
	return p.name
}

// Controller returns the gallery controller while the page is entered.
func (p *GalleryPage) Controller() *gallery.Controller {
	return p.ctrl
}

// Panel returns the detail panel, or nil when the catalog disables it.
func (p *GalleryPage) Panel() *ui.DetailPanel {
	return p.panel
}

// Enter implements Page.
func (p *GalleryPage) Enter() error {
	doc := p.doc
	vp := p.env.Viewport
	if vp == nil {
		vp = gallery.NewViewport(1, 1)
		p.env.Viewport = vp
	}

	p.scene = scene.New()
	doc.Apply(p.scene)
	p.camera = camera.NewPerspective(doc.Camera.FOV, vp.Aspect(), doc.Camera.Near, doc.Camera.Far)

	theme := ui2d.ThemeNamed(doc.Overlay.Theme)
	var overlay gallery.Overlay
	p.panel = nil
	if doc.Overlay.Enabled {
		p.panel = ui.NewDetailPanel(theme, p.env.Tweens)
		overlay = p.panel
	}

	p.ctrl = gallery.New(doc.GalleryConfig(), doc.Specs(), p.camera, p.env.Tweens, vp, overlay, p.log.Named("gallery"))
	p.scene.Add(p.ctrl.Group)
	if p.panel != nil {
		p.panel.OnClose = func() { p.ctrl.Close() }
	}

	label := doc.Back.Label
	if label == "" {
		label = "Back"
	}
	p.back = ui.NewButton(label, ui.TopLeft, theme)
	target := doc.Back.Target
	p.back.OnClick = func() { p.env.navigate(target) }

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	reqs := make([]assets.Request, len(p.ctrl.Items))
	for i, it := range p.ctrl.Items {
		reqs[i] = assets.Request{ID: it.ID, Path: it.Path}
	}
	if p.env.Loader != nil {
		p.loads = p.env.Loader.Start(ctx, reqs)
		if len(doc.Environment.Faces) == 6 {
			p.cube = p.env.Loader.StartCube(ctx, doc.Environment.Faces)
		}
	}

	p.log.Info("gallery entered", zap.Int("items", len(reqs)))
	return nil
}

// Exit implements Page.
func (p *GalleryPage) Exit() error {
	if p.cancel != nil {
		p.cancel()
	}
	if p.env.Tweens != nil {
		p.env.Tweens.Clear()
	}
	p.env.release(p.scene)
	if p.ctrl != nil {
		p.ctrl.Detach()
	}
	p.loads, p.cube = nil, nil
	p.log.Info("gallery exited")
	return nil
}

// Update implements Page.
func (p *GalleryPage) Update(dt float32) error {
	p.drain()
	p.ctrl.Step(dt)
	return nil
}

// drain attaches whatever the loader finished since the last frame.
func (p *GalleryPage) drain() {
	if p.loads != nil {
		open := assets.Drain(p.loads, func(r assets.Result) {
			if r.Err != nil {
				p.ctrl.Fail(r.ID, r.Err)
				return
			}
			if err := p.ctrl.Attach(r.ID, r.Node); err != nil {
				p.log.Warn("discarding load result", zap.Error(err))
			}
		})
		if !open {
			p.loads = nil
			p.log.Info("gallery loads finished", append(p.env.cacheStats(),
				zap.Int("loaded", p.ctrl.Loaded()),
				zap.Int("items", len(p.ctrl.Items)))...)
		}
	}
	if p.cube != nil {
		select {
		case r, ok := <-p.cube:
			p.cube = nil
			if !ok {
				break
			}
			if r.Err != nil {
				p.log.Warn("environment map unavailable, reflections disabled", zap.Error(r.Err))
				break
			}
			p.scene.Environment = r.Cube
		default:
		}
	}
}

// Render implements Page.
func (p *GalleryPage) Render() error {
	p.env.render(p.scene, p.camera)
	return nil
}

// Handle implements Page.
func (p *GalleryPage) Handle(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		p.ctrl.Resize(float32(e.Width), float32(e.Height))
	case input.EventWheel:
		p.ctrl.HandleWheel(e.DeltaY)
	case input.EventMouseMove:
		p.ctrl.PointerMove(e.X, e.Y)
	case input.EventMouseLeave:
		p.ctrl.PointerLeave()
	case input.EventTouchStart:
		p.touch = true
		p.ctrl.BeginDrag(e.X, e.Y)
	case input.EventTouchMove:
		if p.touch {
			p.ctrl.MoveDrag(e.X)
		}
	case input.EventTouchEnd:
		p.touch = false
		p.ctrl.EndDrag()
	case input.EventClick:
		p.ctrl.PointerMove(e.X, e.Y)
		p.ctrl.Click()
	case input.EventKeyDown:
		if e.Key == sdl.SCANCODE_ESCAPE {
			p.escape()
		}
	}
}

// escape leaves the detail view, or the page when already browsing.
func (p *GalleryPage) escape() {
	if p.ctrl.Close() {
		return
	}
	p.env.navigate(p.doc.Back.Target)
}

// Overlay implements Page. The panel goes first so it swallows clicks that
// land on it.
func (p *GalleryPage) Overlay(pt ui.Painter, in *ui2d.InputState) {
	vp := p.env.Viewport
	if p.panel != nil {
		p.panel.Draw(pt, in, vp)
	}
	p.back.Draw(pt, in, vp.Width, vp.Height)
}

// Hovering implements Page.
func (p *GalleryPage) Hovering() bool {
	return p.ctrl.Hovering() || p.back.Hovered()
}
