package catalog

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/gallery"
)

// Framing is a detail camera preset.
type Framing struct {
	OffsetX float32 `yaml:"offset_x"`
	Y       float32 `yaml:"y"`
	Z       float32 `yaml:"z"`
}

// Camera holds projection and the browse and detail presets.
type Camera struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	Rest struct {
		Y float32 `yaml:"y"`
		Z float32 `yaml:"z"`
	} `yaml:"rest"`
	InspectDesktop Framing `yaml:"inspect_desktop"`
	InspectMobile  Framing `yaml:"inspect_mobile"`
}

// Layout places items along the gallery axis.
type Layout struct {
	Gap          float32 `yaml:"gap"`
	Slack        float32 `yaml:"slack"`
	BaseY        float32 `yaml:"base_y"`
	BaseRotation Vec3    `yaml:"base_rotation"`
	Smoothing    float32 `yaml:"smoothing"`
}

// Wave is a sin oscillation.
type Wave struct {
	Axis      string  `yaml:"axis"`
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
	Phase     float32 `yaml:"phase"`
	PerItem   bool    `yaml:"per_item"`
}

func (w Wave) wave() gallery.Wave {
	return gallery.Wave{
		Axis:      gallery.ParseAxis(w.Axis),
		Amplitude: w.Amplitude,
		Frequency: w.Frequency,
		Phase:     w.Phase,
		PerItem:   w.PerItem,
	}
}

// Browse tunes the browsing animation.
type Browse struct {
	Sway Wave `yaml:"sway"`
	Tilt struct {
		Axis   string  `yaml:"axis"`
		Factor float32 `yaml:"factor"`
	} `yaml:"tilt"`
	Bob Wave `yaml:"bob"`
}

// Inspect tunes the idle animation of the inspected item.
type Inspect struct {
	Kind      string  `yaml:"kind"` // spin, oscillate or none
	Axis      string  `yaml:"axis"`
	Speed     float32 `yaml:"speed"`
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
}

// Timing overrides the detail transition durations and eases.
type Timing struct {
	Open  float32 `yaml:"open"`
	Close float32 `yaml:"close"`
	Ease  string  `yaml:"ease"`
}

// Overlay configures the detail panel.
type Overlay struct {
	Enabled bool   `yaml:"enabled"`
	Theme   string `yaml:"theme"` // light or dark
}

// Back is the page the back button and Escape lead to.
type Back struct {
	Target string `yaml:"target"`
	Label  string `yaml:"label"`
}

// Stat is a labeled value.
type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Item is one catalog entry.
type Item struct {
	Name        string  `yaml:"name"`
	Path        string  `yaml:"path"`
	Scale       float32 `yaml:"scale"`
	Rotation    Vec3    `yaml:"rotation"`
	Offset      Vec3    `yaml:"offset"`
	Description string  `yaml:"description"`
	Stats       []Stat  `yaml:"stats"`
}

// Gallery is a gallery page document.
type Gallery struct {
	Look    `yaml:",inline"`
	Camera  Camera  `yaml:"camera"`
	Layout  Layout  `yaml:"layout"`
	Browse  Browse  `yaml:"browse"`
	Inspect Inspect `yaml:"inspect"`
	Timing  Timing  `yaml:"timing"`
	Overlay Overlay `yaml:"overlay"`
	Back    Back    `yaml:"back"`
	Items   []Item  `yaml:"items"`
}

// LoadGallery reads and validates the gallery document for page name.
// dir may be empty.
func LoadGallery(dir, name string) (*Gallery, error) {
	if !IsGallery(name) {
		return nil, fmt.Errorf("gallery %q: %w", name, ErrUnknownPage)
	}
	var g Gallery
	if err := decode(dir, name, &g); err != nil {
		return nil, err
	}
	g.defaults()
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", name, err)
	}
	return &g, nil
}

func (g *Gallery) defaults() {
	if g.Camera.FOV == 0 {
		g.Camera.FOV = 75
	}
	if g.Camera.Near == 0 {
		g.Camera.Near = 0.1
	}
	if g.Camera.Far == 0 {
		g.Camera.Far = 100
	}
	if g.Layout.Gap == 0 {
		g.Layout.Gap = 6
	}
	if g.Back.Target == "" {
		g.Back.Target = Landing
	}
	for i := range g.Items {
		if g.Items[i].Scale == 0 {
			g.Items[i].Scale = 1
		}
	}
}

// Validate reports every structural problem at once: an empty item list,
// items without a model path, and unusable eases. Missing optional fields
// are never errors.
func (g *Gallery) Validate() error {
	var err error
	if len(g.Items) == 0 {
		err = multierr.Append(err, ErrNoItems)
	}
	for i, it := range g.Items {
		if it.Path == "" {
			err = multierr.Append(err, fmt.Errorf("item %d (%q): %w", i, it.Name, ErrMissingPath))
		}
	}
	if _, e := tween.Ease(g.Timing.Ease); e != nil {
		err = multierr.Append(err, fmt.Errorf("timing: %w", e))
	}
	if n := len(g.Environment.Faces); n != 0 && n != 6 {
		err = multierr.Append(err, fmt.Errorf("environment: want 6 faces, got %d", n))
	}
	return err
}

// Specs converts the items for gallery.New, in catalog order.
func (g *Gallery) Specs() []gallery.Spec {
	specs := make([]gallery.Spec, len(g.Items))
	for i, it := range g.Items {
		stats := make([]gallery.Stat, len(it.Stats))
		for j, s := range it.Stats {
			stats[j] = gallery.Stat{Label: s.Label, Value: s.Value}
		}
		specs[i] = gallery.Spec{
			Name:        it.Name,
			Path:        it.Path,
			Description: it.Description,
			Stats:       stats,
			Scale:       it.Scale,
			Rotation:    it.Rotation.Vec(),
			Offset:      it.Offset.Vec(),
		}
	}
	return specs
}

// GalleryConfig converts the document into the controller configuration.
func (g *Gallery) GalleryConfig() gallery.Config {
	cfg := gallery.DefaultConfig()
	cfg.Layout = gallery.LinearLayout{Gap: g.Layout.Gap, BaseY: g.Layout.BaseY}
	if g.Layout.Slack > 0 {
		cfg.Slack = g.Layout.Slack
	}
	if g.Layout.Smoothing > 0 {
		cfg.Smoothing = g.Layout.Smoothing
	}
	cfg.BaseRotation = g.Layout.BaseRotation.Vec()

	cfg.Rest = gallery.Rest{Y: g.Camera.Rest.Y, Z: g.Camera.Rest.Z}
	cfg.Desktop = gallery.Framing(g.Camera.InspectDesktop)
	cfg.Mobile = gallery.Framing(g.Camera.InspectMobile)

	if g.Timing.Open > 0 {
		cfg.Timing.Open = g.Timing.Open
	}
	if g.Timing.Close > 0 {
		cfg.Timing.Close = g.Timing.Close
	}
	if g.Timing.Ease != "" {
		if fn, err := tween.Ease(g.Timing.Ease); err == nil {
			cfg.Timing.OpenEase = fn
			cfg.Timing.CloseEase = fn
		}
	}

	cfg.Browse = gallery.BrowseAnimation{
		Sway: g.Browse.Sway.wave(),
		Tilt: gallery.Tilt{Axis: gallery.ParseAxis(g.Browse.Tilt.Axis), Factor: g.Browse.Tilt.Factor},
		Bob:  g.Browse.Bob.wave(),
	}
	cfg.Inspect = gallery.InspectAnimation{
		Kind:  gallery.ParseInspectKind(g.Inspect.Kind),
		Speed: g.Inspect.Speed,
		Wave: gallery.Wave{
			Axis:      gallery.ParseAxis(g.Inspect.Axis),
			Amplitude: g.Inspect.Amplitude,
			Frequency: g.Inspect.Frequency,
		},
	}
	return cfg
}
