package gallery

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/tween"
)

// Mode is the interaction mode of a gallery page.
type Mode int

// Modes.
const (
	Browsing Mode = iota
	Inspecting
)

func (m Mode) String() string {
	if m == Inspecting {
		return "inspecting"
	}
	return "browsing"
}

// Overlay is the detail panel. Every call is optional UI: a nil Overlay
// simply shows nothing.
type Overlay interface {
	// Populate fills title, description and stats.
	Populate(d Details)
	// Display switches the panel into or out of the layout.
	Display(visible bool)
	// FadeIn makes the panel opaque and interactive.
	FadeIn()
	// FadeOut makes the panel transparent and click-through.
	FadeOut()
}

// Framing is a detail camera preset: X is relative to the item, Y and Z are
// absolute.
type Framing struct {
	OffsetX float32
	Y       float32
	Z       float32
}

// Rest is the browsing camera height and depth.
type Rest struct {
	Y float32
	Z float32
}

// Timing holds detail transition durations in seconds.
type Timing struct {
	Open      float32
	Close     float32
	FadeDelay float32
	HideDelay float32
	OpenEase  ease.TweenFunc
	CloseEase ease.TweenFunc
}

// DefaultTiming matches the gallery pages: 1.5 s in, 1 s out, a 10 ms
// deferred fade-in and a 500 ms hide after fade-out.
func DefaultTiming() Timing {
	return Timing{
		Open:      1.5,
		Close:     1.0,
		FadeDelay: 0.01,
		HideDelay: 0.5,
		OpenEase:  tween.MustEase("power2.inOut"),
		CloseEase: tween.MustEase("power2.inOut"),
	}
}

// DetailView is the Browsing <-> Inspecting state machine.
type DetailView struct {
	Desktop Framing
	Mobile  Framing
	Rest    Rest
	Timing  Timing

	mode     Mode
	selected int

	camera   *camera.Perspective
	tweens   *tween.Engine
	viewport *Viewport
	overlay  Overlay
	log      *zap.Logger

	opens int
}

// NewDetailView creates a view in Browsing mode. With a nil overlay the
// view never leaves Browsing.
func NewDetailView(cam *camera.Perspective, tw *tween.Engine, vp *Viewport, overlay Overlay, log *zap.Logger) *DetailView {
	if log == nil {
		log = zap.NewNop()
	}
	return &DetailView{
		Timing:   DefaultTiming(),
		selected: -1,
		camera:   cam,
		tweens:   tw,
		viewport: vp,
		overlay:  overlay,
		log:      log,
	}
}

// Mode returns the current mode.
func (d *DetailView) Mode() Mode {
	return d.mode
}

// Inspecting implements Locker.
func (d *DetailView) Inspecting() bool {
	return d.mode == Inspecting
}

// Selected returns the inspected item id.
func (d *DetailView) Selected() (int, bool) {
	return d.selected, d.mode == Inspecting
}

// Opens counts successful Open transitions.
func (d *DetailView) Opens() int {
	return d.opens
}

// Framing returns the preset for the current viewport width.
func (d *DetailView) Framing() Framing {
	if d.viewport != nil && d.viewport.Narrow() {
		return d.Mobile
	}
	return d.Desktop
}

// Open moves from Browsing to Inspecting(item). It is a no-op returning
// false when already inspecting, when the item has no geometry yet, or when
// the page has no overlay to show it in.
func (d *DetailView) Open(item *Item) bool {
	if d.mode != Browsing || d.overlay == nil || item == nil || item.Node == nil {
		return false
	}
	d.mode = Inspecting
	d.selected = item.ID
	d.opens++

	d.overlay.Populate(item.Details())
	d.overlay.Display(true)
	id := item.ID
	// Fade after the panel is in the layout, unless the view moved on.
	d.after(d.Timing.FadeDelay, func() {
		if d.mode == Inspecting && d.selected == id {
			d.overlay.FadeIn()
		}
	})

	f := d.Framing()
	target := mgl32.Vec3{item.Node.Position[0] + f.OffsetX, f.Y, f.Z}
	d.tweenCamera(target, d.Timing.Open, d.Timing.OpenEase)

	d.log.Debug("open detail",
		zap.Int("item", item.ID),
		zap.String("name", item.Name),
		zap.Bool("narrow", d.viewport != nil && d.viewport.Narrow()))
	return true
}

// Close moves from Inspecting back to Browsing and returns the camera to the
// rest height and depth. The horizontal position is left to the camera
// follow. It is a no-op returning false when already browsing.
func (d *DetailView) Close() bool {
	if d.mode != Inspecting {
		return false
	}
	prev := d.selected
	d.mode = Browsing
	d.selected = -1

	if d.overlay != nil {
		d.overlay.FadeOut()
		// A re-open during the fade keeps the panel.
		d.after(d.Timing.HideDelay, func() {
			if d.mode == Browsing {
				d.overlay.Display(false)
			}
		})
	}

	// The follow owns x again from the next frame.
	if d.camera != nil && d.tweens != nil {
		p := &d.camera.Position
		d.tweens.To(d.Timing.Close, d.Timing.CloseEase, nil,
			tween.P(&p[1], d.Rest.Y),
			tween.P(&p[2], d.Rest.Z),
		)
	}

	d.log.Debug("close detail", zap.Int("item", prev))
	return true
}

func (d *DetailView) after(delay float32, fn func()) {
	if d.tweens == nil {
		fn()
		return
	}
	d.tweens.After(delay, fn)
}

func (d *DetailView) tweenCamera(to mgl32.Vec3, duration float32, easing ease.TweenFunc) {
	if d.camera == nil || d.tweens == nil {
		return
	}
	p := &d.camera.Position
	d.tweens.To(duration, easing, nil,
		tween.P(&p[0], to[0]),
		tween.P(&p[1], to[1]),
		tween.P(&p[2], to[2]),
	)
}
