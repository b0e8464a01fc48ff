package showroom

import (
	"context"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/carousel"
	"github.com/Faultbox/showroom/internal/catalog"
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/gallery"
	"github.com/Faultbox/showroom/internal/ui"
)

// startFade is how long the start button takes to disappear.
const startFade = 0.5

// Request ids: portal models use their index, labels are offset by the
// portal count, the stage uses stageID.
const stageID = -1

// LandingPage is the portal carousel.
type LandingPage struct {
	env *Env
	doc *catalog.LandingPage
	log *zap.Logger

	scene    *scene.Scene
	camera   *camera.Perspective
	orbit    *camera.OrbitCamera
	carousel *carousel.Carousel
	start    *ui.Button

	cancel context.CancelFunc
	loads  <-chan assets.Result
	cube   <-chan assets.CubeResult

	dragging   bool
	lastX      float32
	lastY      float32
	stageReady bool
}

// NewLandingPage reads the landing catalog. Nothing is built until Enter.
func NewLandingPage(env *Env) (*LandingPage, error) {
	doc, err := catalog.LoadLanding(env.catalogDir())
	if err != nil {
		return nil, err
	}
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &LandingPage{
		env: env,
		doc: doc,
		log: log.With(zap.String("page", catalog.Landing)),
	}, nil
}

// Name implements Page.
func (p *LandingPage) Name() string {
	return catalog.Landing
}

// Title implements Page.
func (p *LandingPage) Title() string {
	if p.doc.Title != "" {
		return p.doc.Title
	}
	return catalog.Landing
}

// Carousel returns the ring while the page is entered.
func (p *LandingPage) Carousel() *carousel.Carousel {
	return p.carousel
}

// StartButton returns the start button while the page is entered.
func (p *LandingPage) StartButton() *ui.Button {
	return p.start
}

func (p *LandingPage) carouselConfig() carousel.Config {
	doc := p.doc
	cfg := carousel.DefaultConfig()
	r := doc.Carousel
	cfg.Radius = r.Radius
	cfg.ModelY = r.ModelY
	cfg.LabelY = r.LabelY
	cfg.ActiveScale = r.ActiveScale
	cfg.WheelSensitivity = r.WheelSensitivity
	cfg.IdleSpin = r.IdleSpin
	if r.Dolly > 0 {
		cfg.Dolly = r.Dolly
	}
	cfg.DollyDuration = r.DollyDuration

	cfg.Start = doc.Camera.Start.Vec()
	cfg.StartDuration = doc.Camera.StartDuration
	if fn, err := tween.Ease(doc.Camera.StartEase); err == nil {
		cfg.StartEase = fn
	} else {
		p.log.Warn("unknown start ease, using default", zap.String("ease", doc.Camera.StartEase))
	}
	return cfg
}

// Enter implements Page.
func (p *LandingPage) Enter() error {
	doc := p.doc
	vp := p.env.Viewport
	if vp == nil {
		vp = gallery.NewViewport(1, 1)
		p.env.Viewport = vp
	}

	p.scene = scene.New()
	doc.Apply(p.scene)
	p.camera = camera.NewPerspective(doc.Camera.FOV, vp.Aspect(), doc.Camera.Near, doc.Camera.Far)
	p.orbit = camera.OrbitFrom(doc.Camera.Position.Vec(), doc.Camera.Target.Vec())

	specs := make([]carousel.Spec, len(doc.Portals))
	for i, pt := range doc.Portals {
		specs[i] = carousel.Spec{Name: pt.Name, Target: pt.Target, Scale: pt.Scale}
	}
	p.carousel = carousel.New(p.carouselConfig(), specs, p.camera, p.orbit, p.env.Tweens, p.log.Named("carousel"))
	p.carousel.OnNavigate = p.env.navigate
	p.scene.Add(p.carousel.Group)

	p.start = ui.NewButton(doc.Start, ui.BottomCenter, ui2d.ThemeDark)
	p.start.Size = 22
	p.start.OnClick = p.begin

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	if p.env.Loader != nil {
		p.loads = p.env.Loader.Start(ctx, p.requests())
		if len(doc.Environment.Faces) == 6 {
			p.cube = p.env.Loader.StartCube(ctx, doc.Environment.Faces)
		}
	}

	p.log.Info("landing entered", zap.Int("portals", len(doc.Portals)))
	return nil
}

func (p *LandingPage) requests() []assets.Request {
	n := len(p.doc.Portals)
	var reqs []assets.Request
	for i, pt := range p.doc.Portals {
		reqs = append(reqs, assets.Request{ID: i, Path: pt.Path})
		if pt.Label != "" {
			reqs = append(reqs, assets.Request{ID: n + i, Path: pt.Label})
		}
	}
	if p.doc.Stage.Path != "" {
		reqs = append(reqs, assets.Request{ID: stageID, Path: p.doc.Stage.Path})
	}
	return reqs
}

// begin fades the start button and flies the camera to the ring.
func (p *LandingPage) begin() {
	if !p.carousel.Start() {
		return
	}
	p.dragging = false
	p.start.FadeAway(p.env.Tweens, startFade)
}

// Exit implements Page.
func (p *LandingPage) Exit() error {
	if p.cancel != nil {
		p.cancel()
	}
	if p.env.Tweens != nil {
		p.env.Tweens.Clear()
	}
	p.env.release(p.scene)
	p.loads, p.cube = nil, nil
	p.log.Info("landing exited")
	return nil
}

// Update implements Page.
func (p *LandingPage) Update(dt float32) error {
	p.drain()
	p.carousel.Step(dt)
	return nil
}

func (p *LandingPage) drain() {
	if p.loads != nil {
		n := len(p.doc.Portals)
		open := assets.Drain(p.loads, func(r assets.Result) {
			if r.Err != nil {
				p.log.Error("asset load failed", zap.Int("id", r.ID), zap.String("path", r.Path), zap.Error(r.Err))
				return
			}
			var err error
			switch {
			case r.ID == stageID:
				p.attachStage(r.Node)
			case r.ID < n:
				err = p.carousel.AttachModel(r.ID, r.Node)
			default:
				id := r.ID - n
				err = p.carousel.AttachLabel(id, r.Node, p.doc.Portals[id].LabelScale)
			}
			if err != nil {
				p.log.Warn("discarding load result", zap.Error(err))
			}
		})
		if !open {
			p.loads = nil
			p.log.Info("landing loads finished", p.env.cacheStats()...)
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

func (p *LandingPage) attachStage(n *scene.Node) {
	if p.stageReady {
		return
	}
	n.Name = "stage"
	n.Position = p.doc.Stage.Position.Vec()
	n.SetScale(p.doc.Stage.Scale)
	p.scene.Add(n)
	p.stageReady = true
}

// Render implements Page.
func (p *LandingPage) Render() error {
	p.env.render(p.scene, p.camera)
	return nil
}

// Handle implements Page.
func (p *LandingPage) Handle(e input.Event) {
	vp := p.env.Viewport
	switch e.Type {
	case input.EventWindowResize:
		vp.Resize(float32(e.Width), float32(e.Height))
		p.camera.SetAspect(vp.Width, vp.Height)
	case input.EventWheel:
		if !p.carousel.HandleWheel(e.DeltaY) && p.carousel.Phase() == carousel.Idle {
			p.orbit.HandleZoom(-e.DeltaY / input.WheelNotchDelta)
		}
	case input.EventMouseDown, input.EventTouchStart:
		if e.Type == input.EventTouchStart || e.Button == sdl.BUTTON_LEFT {
			p.dragging = true
			p.lastX, p.lastY = e.X, e.Y
		}
	case input.EventMouseUp, input.EventTouchEnd:
		p.dragging = false
	case input.EventMouseMove, input.EventTouchMove:
		p.carousel.PointerMove(vp.NDC(e.X, e.Y))
		if p.dragging && p.carousel.Phase() == carousel.Idle {
			p.orbit.HandleDrag(e.X-p.lastX, e.Y-p.lastY)
		}
		p.lastX, p.lastY = e.X, e.Y
	case input.EventMouseLeave:
		p.dragging = false
		p.carousel.PointerLeave()
	case input.EventClick:
		p.carousel.PointerMove(vp.NDC(e.X, e.Y))
		p.carousel.Click()
	case input.EventKeyDown:
		switch e.Key {
		case sdl.SCANCODE_RETURN, sdl.SCANCODE_SPACE:
			p.begin()
		}
	}
}

// Overlay implements Page.
func (p *LandingPage) Overlay(pt ui.Painter, in *ui2d.InputState) {
	vp := p.env.Viewport
	p.start.Draw(pt, in, vp.Width, vp.Height)
}

// Hovering implements Page.
func (p *LandingPage) Hovering() bool {
	return p.carousel.Hovered() >= 0 || p.start.Hovered()
}
