package catalog

import (
	"fmt"

	"go.uber.org/multierr"
)

// LandingCamera positions the landing camera before and after start.
type LandingCamera struct {
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
	Start    Vec3    `yaml:"start"`
	// StartDuration is the intro flight length in seconds.
	StartDuration float32 `yaml:"start_duration"`
	StartEase     string  `yaml:"start_ease"`
}

// Stage is the static backdrop model.
type Stage struct {
	Path     string  `yaml:"path"`
	Scale    float32 `yaml:"scale"`
	Position Vec3    `yaml:"position"`
}

// Carousel tunes the portal ring.
type Carousel struct {
	Radius           float32 `yaml:"radius"`
	ModelY           float32 `yaml:"model_y"`
	LabelY           float32 `yaml:"label_y"`
	ActiveScale      float32 `yaml:"active_scale"`
	WheelSensitivity float32 `yaml:"wheel_sensitivity"`
	IdleSpin         float32 `yaml:"idle_spin"` // radians per second
	Dolly            float32 `yaml:"dolly"`
	DollyDuration    float32 `yaml:"dolly_duration"`
}

// Portal is one carousel entry leading to a gallery page.
type Portal struct {
	Name       string  `yaml:"name"`
	Path       string  `yaml:"path"`
	Scale      float32 `yaml:"scale"`
	Label      string  `yaml:"label"`
	LabelScale float32 `yaml:"label_scale"`
	Target     string  `yaml:"target"`
}

// LandingPage is the landing page document.
type LandingPage struct {
	Look     `yaml:",inline"`
	Camera   LandingCamera `yaml:"camera"`
	Stage    Stage         `yaml:"stage"`
	Carousel Carousel      `yaml:"carousel"`
	Start    string        `yaml:"start"` // start button label
	Portals  []Portal      `yaml:"portals"`
}

// LoadLanding reads and validates the landing document.
func LoadLanding(dir string) (*LandingPage, error) {
	var l LandingPage
	if err := decode(dir, Landing, &l); err != nil {
		return nil, err
	}
	l.defaults()
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", Landing, err)
	}
	return &l, nil
}

func (l *LandingPage) defaults() {
	c := &l.Camera
	if c.FOV == 0 {
		c.FOV = 75
	}
	if c.Near == 0 {
		c.Near = 1
	}
	if c.Far == 0 {
		c.Far = 2000
	}
	if c.StartDuration == 0 {
		c.StartDuration = 4
	}
	if c.StartEase == "" {
		c.StartEase = "power2.inOut"
	}
	r := &l.Carousel
	if r.Radius == 0 {
		r.Radius = 5
	}
	if r.ActiveScale == 0 {
		r.ActiveScale = 1.5
	}
	if r.WheelSensitivity == 0 {
		r.WheelSensitivity = 0.002
	}
	if r.DollyDuration == 0 {
		r.DollyDuration = 1
	}
	if l.Stage.Scale == 0 {
		l.Stage.Scale = 1
	}
	if l.Start == "" {
		l.Start = "Start"
	}
	for i := range l.Portals {
		p := &l.Portals[i]
		if p.Scale == 0 {
			p.Scale = 1
		}
		if p.LabelScale == 0 {
			p.LabelScale = 1
		}
	}
}

// Validate reports every portal without a model or a known gallery target.
func (l *LandingPage) Validate() error {
	var err error
	if len(l.Portals) == 0 {
		err = multierr.Append(err, ErrNoItems)
	}
	for i, p := range l.Portals {
		if p.Path == "" {
			err = multierr.Append(err, fmt.Errorf("portal %d (%q): %w", i, p.Name, ErrMissingPath))
		}
		if !IsGallery(p.Target) {
			err = multierr.Append(err, fmt.Errorf("portal %d (%q) target %q: %w", i, p.Name, p.Target, ErrUnknownPage))
		}
	}
	if n := len(l.Environment.Faces); n != 0 && n != 6 {
		err = multierr.Append(err, fmt.Errorf("environment: want 6 faces, got %d", n))
	}
	return err
}
