package ui2d

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ffffff", ColorWhite, false},
		{"#000", ColorBlack, false},
		{"ff0000", Color{1, 0, 0, 1}, false},
		{"#00ff0080", Color{0, 1, 0, 128.0 / 255}, false},
		{" #fff ", ColorWhite, false},
		{"#ff", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestColorHelpers(t *testing.T) {
	c := Color{0.5, 0.5, 0.5, 0.8}
	if got := c.Fade(0.5); got.A != 0.4 || got.R != 0.5 {
		t.Errorf("Fade = %+v", got)
	}
	if got := c.WithAlpha(1); got.A != 1 {
		t.Errorf("WithAlpha = %+v", got)
	}
	if got := c.Darken(1); got.R != 0 || got.A != 0.8 {
		t.Errorf("Darken = %+v", got)
	}
	if got := c.Lighten(1); got.R != 1 {
		t.Errorf("Lighten = %+v", got)
	}
}

func TestThemeNamed(t *testing.T) {
	if ThemeNamed("dark") != ThemeDark || ThemeNamed("DARK") != ThemeDark {
		t.Error("dark theme not selected")
	}
	for _, name := range []string{"light", "", "sepia"} {
		if ThemeNamed(name) != ThemeLight {
			t.Errorf("ThemeNamed(%q) is not light", name)
		}
	}
}

func TestInputEdges(t *testing.T) {
	var in InputState

	in.MouseLeftDown = true
	in.Update()
	if !in.MouseLeftPressed || in.MouseLeftReleased {
		t.Error("press edge not detected")
	}
	in.Update()
	if in.MouseLeftPressed {
		t.Error("press edge repeated while held")
	}
	in.MouseLeftDown = false
	in.Update()
	if !in.MouseLeftReleased {
		t.Error("release edge not detected")
	}
}

func TestHitConsumesClick(t *testing.T) {
	in := InputState{MouseX: 15, MouseY: 15, MouseLeftClicked: true}
	a := Rect{10, 10, 20, 20}
	b := Rect{0, 0, 40, 40}

	if hovered, clicked := in.Hit(a); !hovered || !clicked {
		t.Fatalf("Hit(a) = %v, %v", hovered, clicked)
	}
	if hovered, clicked := in.Hit(b); !hovered || clicked {
		t.Errorf("second widget got the click: %v, %v", hovered, clicked)
	}

	in.MouseLeftClicked = true
	if hovered, clicked := in.Hit(Rect{100, 100, 5, 5}); hovered || clicked {
		t.Error("miss reported as hit")
	}
	if !in.MouseLeftClicked {
		t.Error("missed click was consumed")
	}
	in.EndFrame()
	if in.MouseLeftClicked {
		t.Error("click survives the frame")
	}
}

func TestRect(t *testing.T) {
	r := Rect{10, 20, 30, 40}
	tests := []struct {
		x, y float32
		want bool
	}{
		{10, 20, true},
		{39.9, 59.9, true},
		{40, 30, false},
		{9.9, 30, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v", tt.x, tt.y, got)
		}
	}
	if got := r.Inset(5); got != (Rect{15, 25, 20, 30}) {
		t.Errorf("Inset = %+v", got)
	}
	if got := r.Inset(100); got.W != 0 || got.H != 0 {
		t.Errorf("over-inset = %+v", got)
	}
}
