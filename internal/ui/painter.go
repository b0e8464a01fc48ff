// Package ui holds the showroom overlay widgets: the detail panel that
// implements gallery.Overlay, and simple buttons.
package ui

import "github.com/Faultbox/showroom/internal/engine/ui2d"

// Painter is the drawing surface widgets render to. *ui2d.Renderer
// implements it.
type Painter interface {
	DrawRect(x, y, w, h float32, c ui2d.Color)
	DrawRectOutline(x, y, w, h, thickness float32, c ui2d.Color)
	DrawText(x, y float32, text string, size float32, c ui2d.Color)
	MeasureText(text string, size float32) (float32, float32)
	WrapText(text string, size, maxWidth float32) []string
	LineHeight(size float32) float32
}

var _ Painter = (*ui2d.Renderer)(nil)
