// Package gallery implements the scroll gallery interaction: bounded
// scrolling, camera follow, pointer picking and the detail view.
//
// Everything here runs on the frame loop's goroutine. Input handlers and
// load completions mutate the Controller between frames; Step advances it
// once per frame after the tween engine has updated.
package gallery

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/picking"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/tween"
)

// Config parameterizes one gallery category.
type Config struct {
	Layout       LinearLayout
	Slack        float32
	BaseRotation mgl32.Vec3
	Smoothing    float32

	Desktop Framing
	Mobile  Framing
	Rest    Rest
	Timing  Timing

	Browse  BrowseAnimation
	Inspect InspectAnimation
}

// DefaultConfig returns the comics-style defaults.
func DefaultConfig() Config {
	return Config{
		Layout:    LinearLayout{Gap: 6},
		Slack:     2,
		Smoothing: DefaultSmoothing,
		Desktop:   Framing{OffsetX: 1.5, Y: 0, Z: 3},
		Mobile:    Framing{OffsetX: 0, Y: 0, Z: 4},
		Rest:      Rest{Y: 0, Z: 6},
		Timing:    DefaultTiming(),
	}
}

// Controller owns the whole interaction state of a gallery page.
type Controller struct {
	cfg Config

	Items    []*Item
	Group    *scene.Node
	Scroll   *ScrollState
	Pointer  *PointerState
	Viewport *Viewport

	scroller *ScrollController
	follow   *CameraFollow
	detail   *DetailView
	picker   *picking.Index

	camera *camera.Perspective
	log    *zap.Logger

	clock    float32
	hovering bool
}

// New builds a controller for specs, in catalog order. Item ids are the
// catalog indices. The camera is placed at the rest pose.
func New(cfg Config, specs []Spec, cam *camera.Perspective, tw *tween.Engine, vp *Viewport, overlay Overlay, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if vp == nil {
		vp = NewViewport(1, 1)
	}
	if tw == nil {
		tw = tween.NewEngine()
	}
	if cfg.Smoothing <= 0 {
		cfg.Smoothing = DefaultSmoothing
	}

	c := &Controller{
		cfg:      cfg,
		Group:    scene.NewNode("gallery"),
		Scroll:   NewScrollState(cfg.Layout.MaxScroll(len(specs)), cfg.Slack),
		Pointer:  &PointerState{},
		Viewport: vp,
		follow:   &CameraFollow{Smoothing: cfg.Smoothing},
		picker:   picking.NewIndex(),
		camera:   cam,
		log:      log,
	}

	c.detail = NewDetailView(cam, tw, vp, overlay, log)
	c.detail.Desktop = cfg.Desktop
	c.detail.Mobile = cfg.Mobile
	c.detail.Rest = cfg.Rest
	c.detail.Timing = cfg.Timing

	c.scroller = NewScrollController(c.Scroll, c.Pointer, c.detail)

	for i, s := range specs {
		scale := s.Scale
		if scale == 0 {
			scale = 1
		}
		c.Items = append(c.Items, &Item{
			ID:           i,
			Name:         s.Name,
			Path:         s.Path,
			Description:  s.Description,
			Stats:        s.Stats,
			BasePosition: cfg.Layout.Position(i, s.Offset),
			BaseRotation: cfg.BaseRotation.Add(s.Rotation),
			Scale:        scale,
		})
	}

	if cam != nil {
		cam.SetAspect(vp.Width, vp.Height)
		cam.Position = mgl32.Vec3{c.Scroll.Current, cfg.Rest.Y, cfg.Rest.Z}
	}
	return c
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode {
	return c.detail.Mode()
}

// Selected returns the inspected item, if any.
func (c *Controller) Selected() (*Item, bool) {
	id, ok := c.detail.Selected()
	if !ok {
		return nil, false
	}
	return c.Item(id), true
}

// Detail exposes the detail state machine.
func (c *Controller) Detail() *DetailView {
	return c.detail
}

// Velocity returns the follow velocity of the last frame.
func (c *Controller) Velocity() float32 {
	return c.follow.Velocity()
}

// Hovering reports whether the last frame's pointer ray hit an item.
func (c *Controller) Hovering() bool {
	return c.hovering
}

// Item returns the item with the given id, or nil.
func (c *Controller) Item(id int) *Item {
	if id < 0 || id >= len(c.Items) {
		return nil
	}
	return c.Items[id]
}

// Loaded returns how many items have geometry attached.
func (c *Controller) Loaded() int {
	n := 0
	for _, it := range c.Items {
		if it.Loaded() {
			n++
		}
	}
	return n
}

// Attach hands a loaded asset to item id: the node is placed at the item's
// rest pose, added to the gallery group and registered for picking.
// Results for unknown or already attached items are rejected.
func (c *Controller) Attach(id int, node *scene.Node) error {
	it := c.Item(id)
	if it == nil {
		return fmt.Errorf("attach: no item %d", id)
	}
	if node == nil {
		return fmt.Errorf("attach %q: nil node", it.Name)
	}
	if it.Node != nil {
		return fmt.Errorf("attach %q: already loaded", it.Name)
	}

	node.Name = it.Name
	node.Position = it.BasePosition
	node.Rotation = it.BaseRotation
	node.SetScale(it.Scale)
	it.Node = node
	it.Err = nil
	c.Group.Add(node)

	prims := 0
	node.Primitives(func(owner *scene.Node, p *scene.Primitive) {
		c.picker.Add(it.ID, p.ID, p, owner)
		prims++
	})

	c.log.Info("item loaded",
		zap.Int("item", it.ID),
		zap.String("name", it.Name),
		zap.Int("primitives", prims))
	return nil
}

// Fail records a load failure. The item stays out of the gallery.
func (c *Controller) Fail(id int, err error) {
	it := c.Item(id)
	if it == nil {
		return
	}
	it.Err = err
	c.log.Error("item load failed",
		zap.Int("item", it.ID),
		zap.String("name", it.Name),
		zap.String("path", it.Path),
		zap.Error(err))
}

// Detach removes every item from the scene and the pick index.
func (c *Controller) Detach() {
	for _, it := range c.Items {
		if it.Node != nil {
			c.Group.Remove(it.Node)
			c.picker.Remove(it.ID)
			it.Node = nil
		}
	}
}

// Resize updates the viewport and camera aspect.
func (c *Controller) Resize(width, height float32) {
	c.Viewport.Resize(width, height)
	if c.camera != nil {
		c.camera.SetAspect(width, height)
	}
}

// HandleWheel applies a browser-style wheel delta.
func (c *Controller) HandleWheel(deltaY float32) bool {
	return c.scroller.ApplyWheel(deltaY)
}

// BeginDrag starts a touch drag at logical pixel (x, y).
func (c *Controller) BeginDrag(x, y float32) {
	c.PointerMove(x, y)
	c.scroller.BeginDrag(x)
}

// MoveDrag continues a touch drag.
func (c *Controller) MoveDrag(x float32) bool {
	return c.scroller.MoveDrag(x)
}

// EndDrag finishes a touch drag.
func (c *Controller) EndDrag() {
	c.scroller.EndDrag()
}

// PointerMove records the pointer at logical pixel (x, y).
func (c *Controller) PointerMove(x, y float32) {
	c.Pointer.Set(c.Viewport.NDC(x, y))
}

// PointerLeave forgets the pointer so hover feedback stops.
func (c *Controller) PointerLeave() {
	c.Pointer.Leave()
	c.hovering = false
}

// Pick casts the current pointer into the gallery.
func (c *Controller) Pick() (*Item, bool) {
	if c.camera == nil || !c.Pointer.Inside {
		return nil, false
	}
	hit, ok := c.picker.Pick(c.camera.RayAt(c.Pointer.X, c.Pointer.Y))
	if !ok {
		return nil, false
	}
	it := c.Item(hit.ItemID)
	return it, it != nil
}

// Click selects the item under the pointer. Ignored while inspecting.
func (c *Controller) Click() bool {
	if c.detail.Inspecting() {
		return false
	}
	it, ok := c.Pick()
	if !ok {
		return false
	}
	return c.detail.Open(it)
}

// Open inspects item id directly.
func (c *Controller) Open(id int) bool {
	return c.detail.Open(c.Item(id))
}

// Close leaves the detail view.
func (c *Controller) Close() bool {
	return c.detail.Close()
}

// Step advances one frame: camera follow and item animation, then hover
// picking while browsing.
func (c *Controller) Step(dt float32) {
	c.clock += dt

	if c.detail.Mode() == Browsing {
		x := c.follow.Step(c.Scroll, dt)
		if c.camera != nil {
			c.camera.Position[0] = x
		}
		v := c.follow.Velocity()
		for _, it := range c.Items {
			if it.Node != nil {
				c.cfg.Browse.apply(it, c.clock, v)
			}
		}
	} else if it, ok := c.Selected(); ok && it != nil && it.Node != nil {
		c.cfg.Inspect.apply(it, c.clock, dt, c.cfg.Browse.Tilt)
	}

	// Without a detail panel nothing is clickable.
	if c.detail.Mode() == Browsing && c.detail.overlay != nil {
		_, c.hovering = c.Pick()
	} else {
		c.hovering = false
	}
}
