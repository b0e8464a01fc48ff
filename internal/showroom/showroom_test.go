package showroom

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/carousel"
	"github.com/Faultbox/showroom/internal/catalog"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/gallery"
	"github.com/Faultbox/showroom/internal/ui"
)

// fakePage records lifecycle calls into a shared journal.
type fakePage struct {
	name     string
	journal  *[]string
	enterErr error
	handled  []input.EventType
}

func (p *fakePage) Name() string { return p.name }
func (p *fakePage) Title() string { return strings.ToUpper(p.name) }
func (p *fakePage) Enter() error {
	*p.journal = append(*p.journal, p.name+".enter")
	return p.enterErr
}
func (p *fakePage) Exit() error {
	*p.journal = append(*p.journal, p.name+".exit")
	return nil
}
func (p *fakePage) Update(float32) error {
	*p.journal = append(*p.journal, p.name+".update")
	return nil
}
func (p *fakePage) Render() error { return nil }
func (p *fakePage) Handle(e input.Event) { p.handled = append(p.handled, e.Type) }
func (p *fakePage) Overlay(ui.Painter, *ui2d.InputState) {}
func (p *fakePage) Hovering() bool { return p.name == "hover" }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestManagerDefersChange(t *testing.T) {
	var journal []string
	a := &fakePage{name: "a", journal: &journal}
	b := &fakePage{name: "b", journal: &journal}

	m := NewManager(nil, nil)
	m.Change(a)
	if m.Current() != nil {
		t.Fatal("change applied before Update")
	}
	if err := m.Update(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}
	m.Change(b)
	if m.Current() != Page(a) {
		t.Fatal("second change applied before Update")
	}
	if err := m.Update(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := []string{"a.enter", "a.update", "a.exit", "b.enter", "b.update"}
	if !equal(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
}

func TestManagerEnterError(t *testing.T) {
	var journal []string
	boom := errors.New("boom")
	m := NewManager(nil, nil)
	m.Change(&fakePage{name: "bad", journal: &journal, enterErr: boom})

	err := m.Update(0)
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want %v", err, boom)
	}
	if !strings.Contains(err.Error(), "enter bad") {
		t.Errorf("error %q does not name the page", err)
	}
}

func TestManagerNavigate(t *testing.T) {
	var journal []string
	factory := func(name string) (Page, error) {
		if name == "missing" {
			return nil, catalog.ErrUnknownPage
		}
		return &fakePage{name: name, journal: &journal}, nil
	}
	m := NewManager(factory, nil)

	if err := m.Navigate("home"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := m.Update(0); err != nil {
		t.Fatal(err)
	}
	if err := m.Navigate("missing"); !errors.Is(err, catalog.ErrUnknownPage) {
		t.Fatalf("Navigate(missing) = %v, want ErrUnknownPage", err)
	}
	if err := m.Update(0); err != nil {
		t.Fatal(err)
	}
	if got := m.Current().Name(); got != "home" {
		t.Errorf("current = %q after failed navigation, want home", got)
	}

	if err := NewManager(nil, nil).Navigate("home"); err == nil {
		t.Error("expected error without a factory")
	}
}

func TestManagerRoutesToCurrent(t *testing.T) {
	var journal []string
	p := &fakePage{name: "hover", journal: &journal}
	m := NewManager(nil, nil)

	m.Handle(input.Event{Type: input.EventWheel})
	if m.Hovering() {
		t.Error("hovering without a page")
	}

	m.Change(p)
	if err := m.Update(0); err != nil {
		t.Fatal(err)
	}
	m.Handle(input.Event{Type: input.EventWheel})
	m.Handle(input.Event{Type: input.EventClick})
	if len(p.handled) != 2 || p.handled[1] != input.EventClick {
		t.Errorf("handled = %v", p.handled)
	}
	if !m.Hovering() {
		t.Error("Hovering not forwarded")
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if m.Current() != nil || journal[len(journal)-1] != "hover.exit" {
		t.Errorf("Close did not exit the page: %v", journal)
	}
}

// painter measures every rune as half the font size wide.
type painter struct{}

func (painter) DrawRect(x, y, w, h float32, c ui2d.Color) {}
func (painter) DrawRectOutline(x, y, w, h, t float32, c ui2d.Color) {}
func (painter) DrawText(x, y float32, s string, size float32, c ui2d.Color) {}
func (painter) MeasureText(s string, size float32) (float32, float32) {
	return float32(len([]rune(s))) * size / 2, size
}
func (painter) WrapText(s string, size, maxW float32) []string { return []string{s} }
func (painter) LineHeight(size float32) float32 { return size * 1.25 }

type testEnv struct {
	*Env
	navigated []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{}
	te.Env = &Env{
		Tweens:   tween.NewEngine(),
		Viewport: gallery.NewViewport(1280, 720),
		Navigate: func(name string) { te.navigated = append(te.navigated, name) },
	}
	return te
}

func enterGallery(t *testing.T, env *Env, name string) *GalleryPage {
	t.Helper()
	p, err := NewGalleryPage(env, name)
	if err != nil {
		t.Fatalf("NewGalleryPage(%s): %v", name, err)
	}
	if err := p.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	t.Cleanup(func() { p.Exit() })
	return p
}

func TestGalleryPageUnknown(t *testing.T) {
	te := newTestEnv(t)
	if _, err := NewGalleryPage(te.Env, "posters"); !errors.Is(err, catalog.ErrUnknownPage) {
		t.Errorf("NewGalleryPage(posters) = %v, want ErrUnknownPage", err)
	}
}

func TestGalleryEscape(t *testing.T) {
	te := newTestEnv(t)
	p := enterGallery(t, te.Env, catalog.Comics)
	ctrl := p.Controller()
	esc := input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE}

	if err := ctrl.Attach(0, scene.NewNode("model")); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if !ctrl.Open(0) {
		t.Fatal("Open(0) failed")
	}

	p.Handle(esc)
	if ctrl.Mode() != gallery.Browsing {
		t.Errorf("mode after escape = %v, want browsing", ctrl.Mode())
	}
	if len(te.navigated) != 0 {
		t.Fatalf("escape while inspecting navigated to %v", te.navigated)
	}

	p.Handle(esc)
	if len(te.navigated) != 1 || te.navigated[0] != catalog.Landing {
		t.Errorf("navigated = %v, want [landing]", te.navigated)
	}
}

func TestGalleryBackButton(t *testing.T) {
	te := newTestEnv(t)
	p := enterGallery(t, te.Env, catalog.Cars)

	in := &ui2d.InputState{MouseX: 30, MouseY: 30, MouseLeftClicked: true}
	p.Overlay(painter{}, in)

	if in.MouseLeftClicked {
		t.Error("back button did not consume the click")
	}
	if len(te.navigated) != 1 || te.navigated[0] != catalog.Landing {
		t.Errorf("navigated = %v, want [landing]", te.navigated)
	}
}

func TestGalleryClickOutsideWidgetsPassesThrough(t *testing.T) {
	te := newTestEnv(t)
	p := enterGallery(t, te.Env, catalog.Comics)

	in := &ui2d.InputState{MouseX: 640, MouseY: 360, MouseLeftClicked: true}
	p.Overlay(painter{}, in)
	if !in.MouseLeftClicked {
		t.Error("click in empty space was consumed by the overlay")
	}
}

func TestGalleryLoadFailuresLeaveItemsOut(t *testing.T) {
	te := newTestEnv(t)
	te.Loader = assets.NewLoader(t.TempDir(), nil)
	p := enterGallery(t, te.Env, catalog.Cassettes)

	deadline := time.Now().Add(5 * time.Second)
	for p.loads != nil || p.cube != nil {
		if time.Now().After(deadline) {
			t.Fatal("loads did not finish")
		}
		if err := p.Update(1.0 / 60); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	ctrl := p.Controller()
	if ctrl.Loaded() != 0 {
		t.Errorf("loaded = %d, want 0", ctrl.Loaded())
	}
	for _, it := range ctrl.Items {
		if it.Err == nil {
			t.Errorf("item %q has no load error", it.Name)
		}
	}
	if p.scene.Environment != nil {
		t.Error("environment set despite missing faces")
	}

	fields := te.cacheStats()
	if len(fields) != 2 || fields[1].Key != "cache_misses" || fields[1].Integer == 0 {
		t.Errorf("cache stats = %v, want misses from the failed reads", fields)
	}
	if (&Env{}).cacheStats() != nil {
		t.Error("cache stats without a loader")
	}
}

func TestLandingStart(t *testing.T) {
	te := newTestEnv(t)
	p, err := NewLandingPage(te.Env)
	if err != nil {
		t.Fatalf("NewLandingPage: %v", err)
	}
	if err := p.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	defer p.Exit()

	c := p.Carousel()
	if c.Phase() != carousel.Idle {
		t.Fatalf("phase = %v, want idle", c.Phase())
	}
	// The ring ignores the wheel before start.
	p.Handle(input.Event{Type: input.EventWheel, DeltaY: 500})
	if c.SpinTarget() != 0 {
		t.Errorf("spin target = %v before start, want 0", c.SpinTarget())
	}

	p.Handle(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_RETURN})
	if c.Phase() != carousel.Starting {
		t.Fatalf("phase = %v, want starting", c.Phase())
	}
	btn := p.StartButton()
	if !btn.Disabled {
		t.Error("start button still enabled")
	}

	te.Tweens.Update(1)
	if !btn.Hidden {
		t.Error("start button not hidden after the fade")
	}
}

func TestLandingStartButtonClick(t *testing.T) {
	te := newTestEnv(t)
	p, err := NewLandingPage(te.Env)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Enter(); err != nil {
		t.Fatal(err)
	}
	defer p.Exit()

	r := p.StartButton().Rect(painter{}, 1280, 720)
	in := &ui2d.InputState{MouseX: r.X + r.W/2, MouseY: r.Y + r.H/2, MouseLeftClicked: true}
	p.Overlay(painter{}, in)

	if p.Carousel().Phase() != carousel.Starting {
		t.Errorf("phase = %v after clicking start, want starting", p.Carousel().Phase())
	}
	if in.MouseLeftClicked {
		t.Error("start click not consumed")
	}
}
