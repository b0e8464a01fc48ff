package ui

import (
	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
)

// Anchor places a button relative to the screen.
type Anchor int

// Anchors.
const (
	TopLeft Anchor = iota
	BottomCenter
)

// Button is a labelled screen-anchored button.
type Button struct {
	Label    string
	Size     float32 // Font size in pixels
	Padding  float32
	Margin   float32
	Anchor   Anchor
	Theme    ui2d.Theme
	Alpha    float32
	Disabled bool
	Hidden   bool
	OnClick  func()

	hovered bool
}

// NewButton returns a visible button.
func NewButton(label string, anchor Anchor, theme ui2d.Theme) *Button {
	return &Button{
		Label:   label,
		Size:    18,
		Padding: 14,
		Margin:  24,
		Anchor:  anchor,
		Theme:   theme,
		Alpha:   1,
	}
}

// Hovered reports whether the pointer was over the button last frame.
func (b *Button) Hovered() bool {
	return b.hovered
}

// Rect returns the button bounds on a width x height screen.
func (b *Button) Rect(p Painter, width, height float32) ui2d.Rect {
	tw, th := p.MeasureText(b.Label, b.Size)
	w, h := tw+2*b.Padding, th+b.Padding
	switch b.Anchor {
	case BottomCenter:
		return ui2d.Rect{X: (width - w) / 2, Y: height - h - b.Margin*3, W: w, H: h}
	default:
		return ui2d.Rect{X: b.Margin, Y: b.Margin, W: w, H: h}
	}
}

// Draw renders the button and reports a click. Hidden buttons draw nothing;
// disabled ones draw but ignore clicks.
func (b *Button) Draw(p Painter, in *ui2d.InputState, width, height float32) bool {
	b.hovered = false
	if b.Hidden || b.Alpha <= 0 {
		return false
	}
	r := b.Rect(p, width, height)

	clicked := false
	if !b.Disabled && in != nil {
		b.hovered, clicked = in.Hit(r)
	}

	bg := b.Theme.Button
	if b.hovered {
		bg = b.Theme.ButtonHover
	}
	p.DrawRect(r.X, r.Y, r.W, r.H, bg.Fade(b.Alpha))
	p.DrawRectOutline(r.X, r.Y, r.W, r.H, 1, b.Theme.Border.Fade(b.Alpha))
	tw, th := p.MeasureText(b.Label, b.Size)
	p.DrawText(r.X+(r.W-tw)/2, r.Y+(r.H-th)/2, b.Label, b.Size, b.Theme.ButtonText.Fade(b.Alpha))

	if clicked && b.OnClick != nil {
		b.OnClick()
	}
	return clicked
}

// FadeAway disables the button, fades it out and hides it when the fade
// ends.
func (b *Button) FadeAway(tw *tween.Engine, duration float32) {
	b.Disabled = true
	if tw == nil || duration <= 0 {
		b.Alpha, b.Hidden = 0, true
		return
	}
	tw.To(duration, tween.Default, func() { b.Hidden = true }, tween.P(&b.Alpha, 0))
}
