package ui2d

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Basic colors.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Fade multiplies alpha by f.
func (c Color) Fade(f float32) Color {
	return Color{c.R, c.G, c.B, c.A * f}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}

// Theme is the palette of one overlay style.
type Theme struct {
	Panel       Color
	Border      Color
	Title       Color
	Text        Color
	Dim         Color
	Accent      Color
	Button      Color
	ButtonHover Color
	ButtonText  Color
}

// Overlay themes. Light suits bright gallery backgrounds, Dark the rest.
var (
	ThemeLight = Theme{
		Panel:       RGBA(255, 255, 255, 235),
		Border:      RGB(220, 220, 220),
		Title:       RGB(17, 17, 17),
		Text:        RGB(51, 51, 51),
		Dim:         RGB(120, 120, 120),
		Accent:      RGB(230, 57, 70),
		Button:      RGB(17, 17, 17),
		ButtonHover: RGB(60, 60, 60),
		ButtonText:  ColorWhite,
	}
	ThemeDark = Theme{
		Panel:       RGBA(20, 20, 20, 235),
		Border:      RGB(60, 60, 60),
		Title:       ColorWhite,
		Text:        RGB(221, 221, 221),
		Dim:         RGB(150, 150, 150),
		Accent:      RGB(255, 183, 3),
		Button:      RGB(240, 240, 240),
		ButtonHover: RGB(200, 200, 200),
		ButtonText:  RGB(17, 17, 17),
	}
)

// ThemeNamed returns the theme called name. Anything but "dark" is light.
func ThemeNamed(name string) Theme {
	if strings.EqualFold(name, "dark") {
		return ThemeDark
	}
	return ThemeLight
}
