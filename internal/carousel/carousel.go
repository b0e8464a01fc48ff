// Package carousel implements the landing page: a ring of portals that the
// wheel spins, with the portal nearest the camera highlighted and a click
// flying into the portal's gallery.
package carousel

import (
	"fmt"
	gomath "math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/picking"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/tween"
)

// Phase is the landing page lifecycle.
type Phase int

// Phases.
const (
	// Idle: free orbit look, waiting for the start button.
	Idle Phase = iota
	// Starting: the intro flight is running.
	Starting
	// Active: the wheel spins the ring and portals can be clicked.
	Active
	// Leaving: the camera is dollying into a portal.
	Leaving
)

func (p Phase) String() string {
	switch p {
	case Starting:
		return "starting"
	case Active:
		return "active"
	case Leaving:
		return "leaving"
	default:
		return "idle"
	}
}

// Config tunes the ring.
type Config struct {
	Radius           float32
	ModelY           float32
	LabelY           float32
	ActiveScale      float32
	WheelSensitivity float32
	IdleSpin         float32 // radians per second for inactive portals

	Start         mgl32.Vec3
	StartDuration float32
	StartEase     ease.TweenFunc

	Dolly         float32
	DollyDuration float32

	// Spring tuning for the ring spin.
	SpinFrequency float64
	SpinDamping   float64
}

// DefaultConfig returns the landing defaults.
func DefaultConfig() Config {
	return Config{
		Radius:           5,
		ModelY:           -1,
		LabelY:           2,
		ActiveScale:      1.5,
		WheelSensitivity: 0.002,
		IdleSpin:         0.6,
		Start:            mgl32.Vec3{0, 2, 12},
		StartDuration:    4,
		StartEase:        tween.MustEase("power2.inOut"),
		Dolly:            4,
		DollyDuration:    1,
		SpinFrequency:    4,
		SpinDamping:      1,
	}
}

// Spec describes one portal.
type Spec struct {
	Name   string
	Target string
	Scale  float32
}

// Portal is one ring entry. Pivot is placed on the ring at construction;
// Model and Label arrive from the loader.
type Portal struct {
	ID     int
	Name   string
	Target string

	Angle     float32
	BaseScale float32

	Pivot *scene.Node
	Model *scene.Node
	Label *scene.Node
}

// Placement returns the pivot position and yaw of portal i of n on a ring
// of radius r. Each pivot faces outward.
func Placement(i, n int, r float32) (pos mgl32.Vec3, angle, yaw float32) {
	angle = float32(i) * 2 * gomath.Pi / float32(max(n, 1))
	c, s := gomath.Cos(float64(angle)), gomath.Sin(float64(angle))
	pos = mgl32.Vec3{float32(c) * r, 0, float32(s) * r}
	yaw = -angle - gomath.Pi/2
	return pos, angle, yaw
}

// Carousel is the landing page controller.
type Carousel struct {
	cfg     Config
	Group   *scene.Node
	Portals []*Portal
	Orbit   *camera.OrbitCamera

	phase  Phase
	active int

	spring   harmonica.Spring
	springDT float32
	angle    float64
	velocity float64
	target   float64

	camera  *camera.Perspective
	tweens  *tween.Engine
	picker  *picking.Index
	pointer struct {
		x, y   float32
		inside bool
	}
	hovered int
	log     *zap.Logger

	// OnNavigate is called once the dolly into a portal finishes.
	OnNavigate func(target string)
}

// New lays out the ring. The camera is driven by orbit until Start.
func New(cfg Config, specs []Spec, cam *camera.Perspective, orbit *camera.OrbitCamera, tw *tween.Engine, log *zap.Logger) *Carousel {
	if log == nil {
		log = zap.NewNop()
	}
	if tw == nil {
		tw = tween.NewEngine()
	}
	if cfg.StartEase == nil {
		cfg.StartEase = tween.MustEase("power2.inOut")
	}
	c := &Carousel{
		cfg:     cfg,
		Group:   scene.NewNode("carousel"),
		Orbit:   orbit,
		active:  -1,
		hovered: -1,
		camera:  cam,
		tweens:  tw,
		picker:  picking.NewIndex(),
		log:     log,
	}
	for i, s := range specs {
		pos, angle, yaw := Placement(i, len(specs), cfg.Radius)
		pivot := scene.NewNode("pivot:" + s.Name)
		pivot.Position = pos
		pivot.Rotation[1] = yaw
		c.Group.Add(pivot)

		scale := s.Scale
		if scale == 0 {
			scale = 1
		}
		c.Portals = append(c.Portals, &Portal{
			ID:        i,
			Name:      s.Name,
			Target:    s.Target,
			Angle:     angle,
			BaseScale: scale,
			Pivot:     pivot,
		})
	}
	if orbit != nil && cam != nil {
		orbit.Apply(cam)
	}
	return c
}

// Phase returns the lifecycle phase.
func (c *Carousel) Phase() Phase {
	return c.phase
}

// Active returns the highlighted portal, or -1.
func (c *Carousel) Active() int {
	return c.active
}

// Hovered returns the portal under the pointer, or -1.
func (c *Carousel) Hovered() int {
	return c.hovered
}

// Angle returns the current ring rotation.
func (c *Carousel) Angle() float32 {
	return float32(c.angle)
}

// SpinTarget returns the rotation the ring is easing toward.
func (c *Carousel) SpinTarget() float32 {
	return float32(c.target)
}

// Portal returns portal id, or nil.
func (c *Carousel) Portal(id int) *Portal {
	if id < 0 || id >= len(c.Portals) {
		return nil
	}
	return c.Portals[id]
}

// AttachModel places a loaded portal model under its pivot and makes it
// clickable.
func (c *Carousel) AttachModel(id int, node *scene.Node) error {
	p := c.Portal(id)
	if p == nil {
		return fmt.Errorf("attach model: no portal %d", id)
	}
	if node == nil {
		return fmt.Errorf("attach model %q: nil node", p.Name)
	}
	if p.Model != nil {
		return fmt.Errorf("attach model %q: already loaded", p.Name)
	}
	node.Position[1] = c.cfg.ModelY
	node.SetScale(p.BaseScale)
	p.Model = node
	p.Pivot.Add(node)
	node.Primitives(func(owner *scene.Node, prim *scene.Primitive) {
		c.picker.Add(p.ID, prim.ID, prim, owner)
	})
	if id == c.active {
		c.activate(p)
	}
	c.log.Info("portal loaded", zap.Int("portal", id), zap.String("name", p.Name))
	return nil
}

// AttachLabel places a loaded label above the portal. Label faces render
// from both sides.
func (c *Carousel) AttachLabel(id int, node *scene.Node, scale float32) error {
	p := c.Portal(id)
	if p == nil {
		return fmt.Errorf("attach label: no portal %d", id)
	}
	if node == nil {
		return fmt.Errorf("attach label %q: nil node", p.Name)
	}
	if scale == 0 {
		scale = 1
	}
	node.Position[1] = c.cfg.LabelY
	node.SetScale(scale)
	node.Primitives(func(_ *scene.Node, prim *scene.Primitive) {
		if prim.Material != nil {
			m := *prim.Material
			m.DoubleSided = true
			prim.Material = &m
		}
	})
	if p.Label != nil {
		p.Pivot.Remove(p.Label)
	}
	p.Label = node
	p.Pivot.Add(node)
	c.faceLabel(p)
	return nil
}

// Start begins the intro flight from the orbit pose to the ring. Only the
// first call does anything.
func (c *Carousel) Start() bool {
	if c.phase != Idle {
		return false
	}
	c.phase = Starting
	if c.Orbit != nil {
		c.Orbit.Enabled = false
	}
	if c.camera == nil {
		c.phase = Active
		return true
	}

	// Unwind yaw so the flight takes the short way round.
	r := &c.camera.Rotation
	r[1] = wrapPi(r[1])

	pos := &c.camera.Position
	c.tweens.To(c.cfg.StartDuration, c.cfg.StartEase, func() {
		if c.phase == Starting {
			c.phase = Active
			c.log.Debug("carousel active")
		}
	},
		tween.P(&pos[0], c.cfg.Start[0]),
		tween.P(&pos[1], c.cfg.Start[1]),
		tween.P(&pos[2], c.cfg.Start[2]),
		tween.P(&r[0], 0),
		tween.P(&r[1], 0),
		tween.P(&r[2], 0),
	)
	return true
}

// HandleWheel spins the ring by a browser-style wheel delta. Ignored until
// the carousel is active.
func (c *Carousel) HandleWheel(deltaY float32) bool {
	if c.phase != Active {
		return false
	}
	c.target += float64(deltaY * c.cfg.WheelSensitivity)
	return true
}

// PointerMove records the pointer in normalized coordinates.
func (c *Carousel) PointerMove(ndcX, ndcY float32) {
	c.pointer.x, c.pointer.y = ndcX, ndcY
	c.pointer.inside = true
}

// PointerLeave forgets the pointer.
func (c *Carousel) PointerLeave() {
	c.pointer.inside = false
	c.hovered = -1
}

// Pick returns the portal under the pointer.
func (c *Carousel) Pick() (*Portal, bool) {
	if c.camera == nil || !c.pointer.inside {
		return nil, false
	}
	hit, ok := c.picker.Pick(c.camera.RayAt(c.pointer.x, c.pointer.y))
	if !ok {
		return nil, false
	}
	p := c.Portal(hit.ItemID)
	return p, p != nil
}

// Click flies into the portal under the pointer and navigates to its
// target when the dolly lands.
func (c *Carousel) Click() bool {
	if c.phase != Active {
		return false
	}
	p, ok := c.Pick()
	if !ok {
		return false
	}
	c.phase = Leaving
	c.log.Info("entering portal", zap.String("name", p.Name), zap.String("target", p.Target))

	target := p.Target
	z := &c.camera.Position[2]
	c.tweens.To(c.cfg.DollyDuration, tween.MustEase("power2.in"), func() {
		if c.OnNavigate != nil {
			c.OnNavigate(target)
		}
	}, tween.P(z, *z-c.cfg.Dolly))
	return true
}

// Step advances one frame after the tween engine.
func (c *Carousel) Step(dt float32) {
	switch c.phase {
	case Idle:
		if c.Orbit != nil && c.camera != nil {
			c.Orbit.Update()
			c.Orbit.Apply(c.camera)
		}
		return
	case Starting:
		return
	}

	c.spin(dt)
	for _, p := range c.Portals {
		c.faceLabel(p)
	}
	c.highlight()

	for _, p := range c.Portals {
		if p.ID == c.active || p.Model == nil {
			continue
		}
		yaw := &p.Model.Rotation[1]
		if !c.tweens.Animating(yaw) {
			*yaw = wrapPi(*yaw + c.cfg.IdleSpin*dt)
		}
	}

	c.hovered = -1
	if p, ok := c.Pick(); ok {
		c.hovered = p.ID
	}
}

// spin eases the ring toward the wheel target with a critically damped
// spring.
func (c *Carousel) spin(dt float32) {
	if dt <= 0 {
		return
	}
	if dt != c.springDT {
		c.spring = harmonica.NewSpring(float64(dt), c.cfg.SpinFrequency, c.cfg.SpinDamping)
		c.springDT = dt
	}
	c.angle, c.velocity = c.spring.Update(c.angle, c.velocity, c.target)
	c.Group.Rotation[1] = float32(c.angle)
}

// faceLabel counter-rotates a label so it keeps facing the front.
func (c *Carousel) faceLabel(p *Portal) {
	if p.Label == nil {
		return
	}
	p.Label.Rotation[1] = -c.Group.Rotation[1] + p.Angle + gomath.Pi/2
}

// highlight makes the pivot nearest the camera the active portal.
func (c *Carousel) highlight() {
	if c.camera == nil || len(c.Portals) == 0 {
		return
	}
	nearest, best := -1, float32(gomath.MaxFloat32)
	for _, p := range c.Portals {
		if d := c.camera.DistanceTo(p.Pivot.WorldPosition()); d < best {
			nearest, best = p.ID, d
		}
	}
	if nearest == c.active {
		return
	}

	if prev := c.Portal(c.active); prev != nil && prev.Model != nil {
		c.scaleTo(prev, prev.BaseScale, 0.5, tween.Default)
	}
	c.active = nearest
	next := c.Portal(nearest)
	if next.Model != nil {
		c.activate(next)
	}
	c.log.Debug("active portal", zap.String("name", next.Name))
}

// activate grows the portal and eases its spin back to the front.
func (c *Carousel) activate(p *Portal) {
	c.scaleTo(p, p.BaseScale*c.cfg.ActiveScale, 0.6, tween.BackOut(2))
	c.tweens.To(1, tween.MustEase("power2.out"), nil, tween.P(&p.Model.Rotation[1], 0))
}

func (c *Carousel) scaleTo(p *Portal, s, duration float32, easing ease.TweenFunc) {
	sc := &p.Model.Scale
	c.tweens.To(duration, easing, nil,
		tween.P(&sc[0], s),
		tween.P(&sc[1], s),
		tween.P(&sc[2], s),
	)
}

// wrapPi maps an angle into [-pi, pi).
func wrapPi(a float32) float32 {
	w := gomath.Mod(float64(a)+gomath.Pi, 2*gomath.Pi)
	if w < 0 {
		w += 2 * gomath.Pi
	}
	return float32(w - gomath.Pi)
}
