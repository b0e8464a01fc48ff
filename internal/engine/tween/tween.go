// Package tween animates float properties over time and runs frame-driven
// timers. Both advance only when Update is called from the frame loop.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Prop is one property animation: the value behind Ptr moves to To.
type Prop struct {
	Ptr *float32
	To  float32
}

// P builds a Prop.
func P(ptr *float32, to float32) Prop {
	return Prop{Ptr: ptr, To: to}
}

type track struct {
	ptr  *float32
	tw   *gween.Tween
	done bool
}

// Tween is a handle to a running animation.
type Tween struct {
	tracks     []*track
	onComplete func()
	killed     bool
}

// Kill stops the tween where it is. Its completion callback never runs.
func (t *Tween) Kill() {
	t.killed = true
}

// Active reports whether the tween is still running.
func (t *Tween) Active() bool {
	return !t.killed && t.live() > 0
}

func (t *Tween) live() int {
	n := 0
	for _, tr := range t.tracks {
		if tr.ptr != nil && !tr.done {
			n++
		}
	}
	return n
}

// Timer is a handle to a pending After callback.
type Timer struct {
	delay   float32
	elapsed float32
	fn      func()
	stopped bool
}

// Stop cancels the timer if it has not fired.
func (t *Timer) Stop() {
	t.stopped = true
}

// Engine owns all running tweens and timers of one page.
type Engine struct {
	tweens []*Tween
	timers []*Timer
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// To animates every prop from its current value to its target over duration
// seconds. A property already animated by another tween is taken over: the
// older tween stops driving it, and it stops entirely once it drives nothing.
func (e *Engine) To(duration float32, easing ease.TweenFunc, onComplete func(), props ...Prop) *Tween {
	if easing == nil {
		easing = Default
	}
	t := &Tween{onComplete: onComplete}
	for _, p := range props {
		if p.Ptr == nil {
			continue
		}
		e.release(p.Ptr)
		t.tracks = append(t.tracks, &track{
			ptr: p.Ptr,
			tw:  gween.New(*p.Ptr, p.To, duration, easing),
		})
	}
	e.tweens = append(e.tweens, t)
	return t
}

// After calls fn once delay seconds of Update time have passed.
func (e *Engine) After(delay float32, fn func()) *Timer {
	tm := &Timer{delay: delay, fn: fn}
	e.timers = append(e.timers, tm)
	return tm
}

// Animating reports whether any running tween drives ptr.
func (e *Engine) Animating(ptr *float32) bool {
	for _, t := range e.tweens {
		if t.killed {
			continue
		}
		for _, tr := range t.tracks {
			if tr.ptr == ptr && !tr.done {
				return true
			}
		}
	}
	return false
}

// Len returns the number of running tweens and pending timers.
func (e *Engine) Len() (tweens, timers int) {
	for _, t := range e.tweens {
		if t.Active() {
			tweens++
		}
	}
	for _, tm := range e.timers {
		if !tm.stopped {
			timers++
		}
	}
	return tweens, timers
}

// Update advances tweens then timers by dt seconds. Callbacks run after all
// values are written, so a callback may start new tweens or timers.
func (e *Engine) Update(dt float32) {
	var callbacks []func()

	tweens := e.tweens[:0]
	for _, t := range e.tweens {
		if t.killed {
			continue
		}
		if t.live() == 0 {
			// Every track was taken over by a newer tween.
			if len(t.tracks) == 0 && t.onComplete != nil {
				callbacks = append(callbacks, t.onComplete)
			}
			continue
		}
		finished := true
		for _, tr := range t.tracks {
			if tr.ptr == nil || tr.done {
				continue
			}
			v, ok := tr.tw.Update(dt)
			*tr.ptr = v
			if ok {
				tr.done = true
			} else {
				finished = false
			}
		}
		if finished {
			if t.onComplete != nil {
				callbacks = append(callbacks, t.onComplete)
			}
			continue
		}
		tweens = append(tweens, t)
	}
	e.tweens = tweens

	timers := e.timers[:0]
	for _, tm := range e.timers {
		if tm.stopped {
			continue
		}
		tm.elapsed += dt
		if tm.elapsed >= tm.delay {
			tm.stopped = true
			callbacks = append(callbacks, tm.fn)
			continue
		}
		timers = append(timers, tm)
	}
	e.timers = timers

	for _, fn := range callbacks {
		if fn != nil {
			fn()
		}
	}
}

// Clear drops every tween and timer without running callbacks.
func (e *Engine) Clear() {
	for _, t := range e.tweens {
		t.killed = true
	}
	for _, tm := range e.timers {
		tm.stopped = true
	}
	e.tweens = nil
	e.timers = nil
}

// release detaches ptr from any running tween.
func (e *Engine) release(ptr *float32) {
	for _, t := range e.tweens {
		for _, tr := range t.tracks {
			if tr.ptr == ptr {
				tr.ptr = nil
			}
		}
	}
}
