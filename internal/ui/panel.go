package ui

import (
	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/gallery"
)

// Elements selects which parts of the detail panel exist. Missing parts are
// neither filled nor drawn.
type Elements struct {
	Title       bool
	Description bool
	Stats       bool
	Close       bool
}

// AllElements enables every part.
func AllElements() Elements {
	return Elements{Title: true, Description: true, Stats: true, Close: true}
}

// Type sizes in pixels.
const (
	titleSize = 30
	bodySize  = 16
	labelSize = 12
	valueSize = 18
	closeSize = 22
)

// DetailPanel shows the selected item's title, description and stats. It
// implements gallery.Overlay.
type DetailPanel struct {
	Theme        ui2d.Theme
	Elements     Elements
	FadeDuration float32
	OnClose      func()

	details     gallery.Details
	visible     bool
	opacity     float32
	interactive bool

	tweens *tween.Engine
}

var _ gallery.Overlay = (*DetailPanel)(nil)

// NewDetailPanel creates a hidden panel with every element.
func NewDetailPanel(theme ui2d.Theme, tw *tween.Engine) *DetailPanel {
	if tw == nil {
		tw = tween.NewEngine()
	}
	return &DetailPanel{
		Theme:        theme,
		Elements:     AllElements(),
		FadeDuration: 0.5,
		tweens:       tw,
	}
}

// Populate implements gallery.Overlay.
func (p *DetailPanel) Populate(d gallery.Details) {
	var out gallery.Details
	if p.Elements.Title {
		out.Title = d.Title
	}
	if p.Elements.Description {
		out.Description = d.Description
	}
	if p.Elements.Stats {
		out.Stats = append(out.Stats, d.Stat(0), d.Stat(1))
	}
	p.details = out
}

// Display implements gallery.Overlay.
func (p *DetailPanel) Display(visible bool) {
	p.visible = visible
}

// FadeIn implements gallery.Overlay.
func (p *DetailPanel) FadeIn() {
	p.interactive = true
	p.tweens.To(p.FadeDuration, tween.MustEase("power1.inOut"), nil, tween.P(&p.opacity, 1))
}

// FadeOut implements gallery.Overlay.
func (p *DetailPanel) FadeOut() {
	p.interactive = false
	p.tweens.To(p.FadeDuration, tween.MustEase("power1.inOut"), nil, tween.P(&p.opacity, 0))
}

// Visible reports whether the panel takes part in layout.
func (p *DetailPanel) Visible() bool {
	return p.visible
}

// Opacity returns the current fade level.
func (p *DetailPanel) Opacity() float32 {
	return p.opacity
}

// Interactive reports whether the panel receives clicks.
func (p *DetailPanel) Interactive() bool {
	return p.interactive
}

// Details returns what the panel currently shows.
func (p *DetailPanel) Details() gallery.Details {
	return p.details
}

// PanelLayout is the computed geometry of one frame.
type PanelLayout struct {
	Panel       ui2d.Rect
	Close       ui2d.Rect
	Narrow      bool
	Description []string
}

// Layout places the panel: a side card on wide screens, a bottom sheet on
// narrow ones.
func (p *DetailPanel) Layout(pt Painter, vp *gallery.Viewport) PanelLayout {
	const pad = 28
	l := PanelLayout{Narrow: vp.Narrow()}

	w := min(380, vp.Width*0.4)
	if l.Narrow {
		w = vp.Width
	}
	inner := w - 2*pad

	h := float32(pad)
	if p.Elements.Title {
		h += pt.LineHeight(titleSize) + 16
	}
	if p.Elements.Description && p.details.Description != "" {
		l.Description = pt.WrapText(p.details.Description, bodySize, inner)
		h += float32(len(l.Description))*pt.LineHeight(bodySize) + 20
	}
	if p.Elements.Stats {
		h += pt.LineHeight(labelSize) + pt.LineHeight(valueSize) + 8
	}
	h += pad

	if l.Narrow {
		h = min(h, vp.Height*0.5)
		l.Panel = ui2d.Rect{X: 0, Y: vp.Height - h, W: w, H: h}
	} else {
		h = min(h, vp.Height-80)
		l.Panel = ui2d.Rect{X: vp.Width - w - 40, Y: (vp.Height - h) / 2, W: w, H: h}
	}
	if p.Elements.Close {
		l.Close = ui2d.Rect{X: l.Panel.X + l.Panel.W - 44, Y: l.Panel.Y + 8, W: 36, H: 36}
	}
	return l
}

// Draw renders the panel and handles its close button. Clicks inside an
// interactive panel are consumed so they do not reach the scene. Returns true
// when the close button was clicked.
func (p *DetailPanel) Draw(pt Painter, in *ui2d.InputState, vp *gallery.Viewport) bool {
	if !p.visible || p.opacity <= 0 {
		return false
	}
	l := p.Layout(pt, vp)
	a := p.opacity
	th := p.Theme

	closed := false
	closeHover := false
	if p.interactive && in != nil {
		if p.Elements.Close {
			closeHover, closed = in.Hit(l.Close)
		}
		in.Hit(l.Panel)
	}

	pt.DrawRect(l.Panel.X, l.Panel.Y, l.Panel.W, l.Panel.H, th.Panel.Fade(a))
	pt.DrawRectOutline(l.Panel.X, l.Panel.Y, l.Panel.W, l.Panel.H, 1, th.Border.Fade(a))

	const pad = 28
	x, y := l.Panel.X+pad, l.Panel.Y+pad
	if p.Elements.Title {
		pt.DrawText(x, y, p.details.Title, titleSize, th.Title.Fade(a))
		y += pt.LineHeight(titleSize) + 4
		pt.DrawRect(x, y, 48, 3, th.Accent.Fade(a))
		y += 12
	}
	for _, line := range l.Description {
		pt.DrawText(x, y, line, bodySize, th.Text.Fade(a))
		y += pt.LineHeight(bodySize)
	}
	if len(l.Description) > 0 {
		y += 20
	}
	if p.Elements.Stats {
		col := (l.Panel.W - 2*pad) / 2
		for i := range 2 {
			s := p.details.Stat(i)
			sx := x + float32(i)*col
			pt.DrawText(sx, y, s.Label, labelSize, th.Dim.Fade(a))
			pt.DrawText(sx, y+pt.LineHeight(labelSize), s.Value, valueSize, th.Text.Fade(a))
		}
	}
	if p.Elements.Close {
		c := th.Dim
		if closeHover {
			c = th.Title
		}
		tw, tht := pt.MeasureText("×", closeSize)
		pt.DrawText(l.Close.X+(l.Close.W-tw)/2, l.Close.Y+(l.Close.H-tht)/2, "×", closeSize, c.Fade(a))
	}

	if closed && p.OnClose != nil {
		p.OnClose()
	}
	return closed
}
