package gallery

import "math"

// Axis selects a rotation or position component.
type Axis int

// Axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis maps "x", "y", "z" to an Axis. Anything else is Y.
func ParseAxis(s string) Axis {
	switch s {
	case "x", "X":
		return AxisX
	case "z", "Z":
		return AxisZ
	default:
		return AxisY
	}
}

// Wave is amplitude * sin(frequency*t + phase [+ item id]).
type Wave struct {
	Axis      Axis
	Amplitude float32
	Frequency float32
	Phase     float32
	// PerItem offsets the phase by the item id so items move out of step.
	PerItem bool
}

// Active reports whether the wave moves anything.
func (w Wave) Active() bool {
	return w.Amplitude != 0
}

// At evaluates the wave at time t for item id.
func (w Wave) At(t float32, id int) float32 {
	phase := w.Phase
	if w.PerItem {
		phase += float32(id)
	}
	return w.Amplitude * float32(math.Sin(float64(w.Frequency*t+phase)))
}

// Tilt leans items against the scroll velocity: base - velocity*Factor.
type Tilt struct {
	Axis   Axis
	Factor float32
}

// BrowseAnimation is applied to every loaded item while browsing.
type BrowseAnimation struct {
	Sway Wave // Rotation oscillation around the base rotation
	Tilt Tilt
	Bob  Wave // Vertical float; Axis is ignored
}

// InspectKind selects the idle animation of the inspected item.
type InspectKind int

// Inspect kinds.
const (
	InspectNone InspectKind = iota
	InspectSpin
	InspectOscillate
)

// ParseInspectKind maps "spin" and "oscillate"; anything else is none.
func ParseInspectKind(s string) InspectKind {
	switch s {
	case "spin":
		return InspectSpin
	case "oscillate":
		return InspectOscillate
	default:
		return InspectNone
	}
}

// InspectAnimation is applied to the inspected item only.
type InspectAnimation struct {
	Kind  InspectKind
	Speed float32 // Spin, radians per second around Wave.Axis
	Wave  Wave    // Oscillate
}

// apply writes the browsing pose of one item.
func (a BrowseAnimation) apply(it *Item, t, velocity float32) {
	n := it.Node
	rot := it.BaseRotation
	if a.Sway.Active() {
		rot[a.Sway.Axis] += a.Sway.At(t, it.ID)
	}
	if a.Tilt.Factor != 0 {
		rot[a.Tilt.Axis] -= velocity * a.Tilt.Factor
	}
	n.Rotation = rot

	pos := it.BasePosition
	if a.Bob.Active() {
		pos[1] += a.Bob.At(t, it.ID)
	}
	n.Position = pos
}

// apply writes the inspecting pose of the selected item. The tilt axis
// returns to rest so velocity no longer shows.
func (a InspectAnimation) apply(it *Item, t, dt float32, tilt Tilt) {
	n := it.Node
	switch a.Kind {
	case InspectSpin:
		if tilt.Factor != 0 {
			n.Rotation[tilt.Axis] = it.BaseRotation[tilt.Axis]
		}
		n.Rotation[a.Wave.Axis] = wrapAngle(n.Rotation[a.Wave.Axis] + a.Speed*dt)
	case InspectOscillate:
		rot := it.BaseRotation
		rot[a.Wave.Axis] += a.Wave.At(t, it.ID)
		n.Rotation = rot
	default:
		if tilt.Factor != 0 {
			n.Rotation[tilt.Axis] = it.BaseRotation[tilt.Axis]
		}
	}
}

// wrapAngle keeps a spinning angle from growing without bound.
func wrapAngle(a float32) float32 {
	const twoPi = 2 * math.Pi
	if a > twoPi || a < -twoPi {
		return float32(math.Mod(float64(a), twoPi))
	}
	return a
}
