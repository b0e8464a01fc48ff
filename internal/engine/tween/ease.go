package tween

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Named eases. The power family follows the GSAP naming used in catalogs:
// power1 is quadratic, power2 cubic, power3 quartic.
var eases = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"none":         ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,
	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inOut": ease.InOutQuart,
	"sine.inOut":   ease.InOutSine,
	"back.out":     ease.OutBack,
	"back.in":      ease.InBack,
	"back.inOut":   ease.InOutBack,
	"bounce.out":   ease.OutBounce,
}

// Default is the ease used when none is named.
var Default = ease.OutQuad

// Ease looks up an easing function by name. "back.out(2)" style names set the
// overshoot. An empty name returns Default.
func Ease(name string) (ease.TweenFunc, error) {
	if name == "" {
		return Default, nil
	}
	if fn, ok := eases[name]; ok {
		return fn, nil
	}
	if rest, ok := strings.CutPrefix(name, "back.out("); ok && strings.HasSuffix(rest, ")") {
		s, err := strconv.ParseFloat(strings.TrimSuffix(rest, ")"), 32)
		if err != nil {
			return nil, fmt.Errorf("ease %q: %w", name, err)
		}
		return BackOut(float32(s)), nil
	}
	return nil, fmt.Errorf("unknown ease %q", name)
}

// MustEase is Ease for names known at compile time.
func MustEase(name string) ease.TweenFunc {
	fn, err := Ease(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// BackOut returns an out-back ease with overshoot s.
func BackOut(s float32) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		t = t/d - 1
		return c*(t*t*((s+1)*t+s)+1) + b
	}
}
