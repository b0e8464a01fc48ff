// Package catalog loads the page documents that parameterize the showroom:
// one YAML file per page describing its look, camera presets, animation
// tuning and items. Default documents are compiled in; a directory on disk
// may override any of them.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/scene"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Page names.
const (
	Landing   = "landing"
	Comics    = "comics"
	Cars      = "cars"
	Cassettes = "cassettes"
)

// Galleries lists the gallery pages in navigation order.
var Galleries = []string{Comics, Cars, Cassettes}

// Validation errors.
var (
	ErrUnknownPage = errors.New("unknown page")
	ErrNoItems     = errors.New("catalog has no items")
	ErrMissingPath = errors.New("item has no model path")
)

// Vec3 is a YAML {x, y, z} triple. Missing components are zero.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Vec returns the triple as an mgl32 vector.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Color is an RGB color written as "#rrggbb" or "#rgb" in YAML.
type Color mgl32.Vec3

// ParseColor parses a CSS-style hex color.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// Vec returns the color as an mgl32 vector.
func (c Color) Vec() mgl32.Vec3 {
	return mgl32.Vec3(c)
}

// Fog is linear fog from Near to Far.
type Fog struct {
	Color Color   `yaml:"color"`
	Near  float32 `yaml:"near"`
	Far   float32 `yaml:"far"`
}

// Environment is a six-face cube map in +X, -X, +Y, -Y, +Z, -Z order.
type Environment struct {
	Faces      []string `yaml:"faces"`
	Background bool     `yaml:"background"`
	Intensity  float32  `yaml:"intensity"`
}

// Light is an ambient light.
type Light struct {
	Color     *Color  `yaml:"color"`
	Intensity float32 `yaml:"intensity"`
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     *Color  `yaml:"color"`
	Intensity float32 `yaml:"intensity"`
	Position  Vec3    `yaml:"position"`
}

// Lights is the page lighting rig.
type Lights struct {
	Ambient     Light            `yaml:"ambient"`
	Directional DirectionalLight `yaml:"directional"`
}

// Look is the part of a page document shared by every page kind.
type Look struct {
	Title       string      `yaml:"title"`
	Background  Color       `yaml:"background"`
	Fog         Fog         `yaml:"fog"`
	Environment Environment `yaml:"environment"`
	Lights      Lights      `yaml:"lights"`
}

// Apply writes background, fog and lights into sc. The environment faces
// are loaded separately.
func (l Look) Apply(sc *scene.Scene) {
	sc.Background = l.Background.Vec()
	sc.Fog = scene.Fog{Color: l.Fog.Color.Vec(), Near: l.Fog.Near, Far: l.Fog.Far}
	sc.EnvironmentBackground = l.Environment.Background
	if l.Environment.Intensity > 0 {
		sc.EnvIntensity = l.Environment.Intensity
	}
	sc.Ambient = lighting.Ambient{Color: colorOr(l.Lights.Ambient.Color), Intensity: l.Lights.Ambient.Intensity}
	sc.Directional = lighting.Directional{
		Position:  l.Lights.Directional.Position.Vec(),
		Color:     colorOr(l.Lights.Directional.Color),
		Intensity: l.Lights.Directional.Intensity,
	}
}

func colorOr(c *Color) mgl32.Vec3 {
	if c == nil {
		return lighting.White
	}
	return c.Vec()
}

// read returns the raw document for page name: dir/<name>.yaml when dir
// holds one, the embedded default otherwise.
func read(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name+".yaml"))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read catalog %s: %w", name, err)
		}
	}
	data, err := dataFS.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", name, ErrUnknownPage)
	}
	return data, nil
}

func decode(dir, name string, out any) error {
	data, err := read(dir, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}
	return nil
}

// IsGallery reports whether name is one of the gallery pages.
func IsGallery(name string) bool {
	return slices.Contains(Galleries, name)
}
