package ui2d

import (
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const atlasWidth = 512

// Glyph locates one rasterized rune in the atlas. Offsets and sizes are in
// pixels at the atlas size.
type Glyph struct {
	U0, V0, U1, V1 float32
	W, H           float32
	OffX, OffY     float32 // Pen position (on the baseline) to quad top-left
	Advance        float32
}

// Atlas is a glyph sheet rasterized once from a TrueType font. It holds no
// GL state; the renderer uploads Image.
type Atlas struct {
	Size float32

	ascent     float32
	lineHeight float32
	glyphs     map[rune]Glyph
	fallback   Glyph
	img        *image.Alpha
}

// atlasRunes is printable ASCII and Latin-1 plus common typographic marks.
func atlasRunes() []rune {
	var rs []rune
	for r := rune(32); r < 127; r++ {
		rs = append(rs, r)
	}
	for r := rune(160); r < 256; r++ {
		rs = append(rs, r)
	}
	return append(rs, '–', '—', '‘', '’', '“', '”', '…', '€')
}

// DefaultAtlas rasterizes Go Regular at size pixels.
func DefaultAtlas(size float64) (*Atlas, error) {
	return NewAtlas(goregular.TTF, size)
}

// NewAtlas rasterizes ttf at size pixels.
func NewAtlas(ttf []byte, size float64) (*Atlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	a := &Atlas{
		Size:       float32(size),
		ascent:     float32(m.Ascent.Ceil()),
		lineHeight: float32(m.Height.Ceil()),
		glyphs:     make(map[rune]Glyph),
	}

	type cell struct {
		r      rune
		bounds fixed.Rectangle26_6
		adv    fixed.Int26_6
		x, y   int
	}
	const pad = 1
	var cells []cell
	x, y, rowH := pad, pad, 0
	for _, r := range atlasRunes() {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		w := (b.Max.X - b.Min.X).Ceil() + 1
		h := (b.Max.Y - b.Min.Y).Ceil() + 1
		if x+w+pad > atlasWidth {
			x, y, rowH = pad, y+rowH+pad, 0
		}
		cells = append(cells, cell{r: r, bounds: b, adv: adv, x: x, y: y})
		x += w + pad
		rowH = max(rowH, h)
	}
	height := 1
	for height < y+rowH+pad {
		height *= 2
	}
	a.img = image.NewAlpha(image.Rect(0, 0, atlasWidth, height))

	for _, c := range cells {
		dot := fixed.P(c.x-c.bounds.Min.X.Floor(), c.y-c.bounds.Min.Y.Floor())
		g := Glyph{Advance: float32(c.adv) / 64}
		dr, mask, maskp, _, ok := face.Glyph(dot, c.r)
		if ok && !dr.Empty() {
			draw.DrawMask(a.img, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)
			g.U0 = float32(dr.Min.X) / atlasWidth
			g.V0 = float32(dr.Min.Y) / float32(height)
			g.U1 = float32(dr.Max.X) / atlasWidth
			g.V1 = float32(dr.Max.Y) / float32(height)
			g.W, g.H = float32(dr.Dx()), float32(dr.Dy())
			g.OffX = float32(dr.Min.X - dot.X.Floor())
			g.OffY = float32(dr.Min.Y - dot.Y.Floor())
		}
		a.glyphs[c.r] = g
	}
	a.fallback = a.glyphs['?']
	return a, nil
}

// Image returns the 8-bit coverage sheet.
func (a *Atlas) Image() *image.Alpha {
	return a.img
}

// Ascent is the baseline offset from the top of a line.
func (a *Atlas) Ascent() float32 {
	return a.ascent
}

// LineHeight is the distance between baselines.
func (a *Atlas) LineHeight() float32 {
	return a.lineHeight
}

// Has reports whether r was rasterized.
func (a *Atlas) Has(r rune) bool {
	_, ok := a.glyphs[r]
	return ok
}

// Glyph returns the glyph for r, or the '?' glyph.
func (a *Atlas) Glyph(r rune) Glyph {
	if g, ok := a.glyphs[r]; ok {
		return g
	}
	return a.fallback
}

// Measure returns the size of text at the atlas size. Lines break on '\n'.
func (a *Atlas) Measure(text string) (w, h float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		w = max(w, a.lineWidth(line))
	}
	return w, float32(len(lines)) * a.lineHeight
}

func (a *Atlas) lineWidth(line string) float32 {
	var w float32
	for _, r := range line {
		w += a.Glyph(r).Advance
	}
	return w
}

// Wrap breaks text into lines no wider than maxWidth at the atlas size.
// Explicit newlines are kept; a single word wider than maxWidth gets its own
// line.
func (a *Atlas) Wrap(text string, maxWidth float32) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if next := line + " " + w; a.lineWidth(next) <= maxWidth {
				line = next
				continue
			}
			out = append(out, line)
			line = w
		}
		out = append(out, line)
	}
	return out
}

// Truncate shortens text with an ellipsis so it fits maxWidth.
func (a *Atlas) Truncate(text string, maxWidth float32) string {
	if a.lineWidth(text) <= maxWidth {
		return text
	}
	for len(text) > 0 {
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
		if s := text + "…"; a.lineWidth(s) <= maxWidth {
			return s
		}
	}
	return ""
}
