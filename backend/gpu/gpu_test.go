package gpu

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/entrylabs/ge/backend"
	"github.com/gogpu/gg"
)

func solidTexture(w, h int, c color.RGBA) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return NewTextureFromImage(img)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func newTestApp(t *testing.T, opts ...AppOption) *Application {
	t.Helper()
	app, err := NewApplication(backend.Surface{ID: "test", Width: 64, Height: 64}, opts...)
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	return app
}

type foreign struct{}

func (foreign) Engine() string { return backend.NameCanvas }

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.NameGPU) {
		t.Fatal("gpu engine not registered")
	}
	b, err := backend.Select(true, backend.Config{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !b.GPU() || b.Name() != backend.NameGPU {
		t.Errorf("Select(true) = %s, GPU=%v", b.Name(), b.GPU())
	}
	if b.OffsetScale() != 1.0/255 {
		t.Errorf("OffsetScale() = %v", b.OffsetScale())
	}
}

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(n *Node)
		in, want gg.Point
	}{
		{
			name:  "identity",
			setup: func(*Node) {},
			in:    gg.Pt(3, 4),
			want:  gg.Pt(3, 4),
		},
		{
			name:  "pivot lands on position",
			setup: func(n *Node) { n.SetTransform(10, 20, 1, 1, 0, 0, 0, 5, 5) },
			in:    gg.Pt(5, 5),
			want:  gg.Pt(10, 20),
		},
		{
			name:  "quarter turn",
			setup: func(n *Node) { n.Rotation = math.Pi / 2 },
			in:    gg.Pt(1, 0),
			want:  gg.Pt(0, 1),
		},
		{
			name:  "scale",
			setup: func(n *Node) { n.ScaleX, n.ScaleY = 2, 3 },
			in:    gg.Pt(1, 1),
			want:  gg.Pt(2, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNode("")
			tt.setup(&n)
			got := n.LocalTransform().TransformPoint(tt.in)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWorldTransformAndToLocal(t *testing.T) {
	root := NewContainer("root")
	root.X, root.Y = 10, 10
	s := NewSprite(nil)
	s.X = 5
	root.AddChild(s)

	p := s.WorldTransform().TransformPoint(gg.Pt(0, 0))
	if !near(p.X, 15) || !near(p.Y, 10) {
		t.Errorf("world origin = %v, want (15, 10)", p)
	}
	x, y, ok := s.ToLocal(15, 10)
	if !ok || !near(x, 0) || !near(y, 0) {
		t.Errorf("ToLocal(15, 10) = (%v, %v, %v), want (0, 0, true)", x, y, ok)
	}

	root.ScaleX = 0
	if _, _, ok := s.ToLocal(15, 10); ok {
		t.Error("ToLocal under a zero-scale parent should report no mapping")
	}
}

func TestContainerReparent(t *testing.T) {
	a, b := NewContainer("a"), NewContainer("b")
	s := NewSprite(nil)
	a.AddChild(s)
	b.AddChild(s)
	if len(a.Children()) != 0 || len(b.Children()) != 1 || s.Parent() != b {
		t.Errorf("reparent: a=%d b=%d parent=%v", len(a.Children()), len(b.Children()), s.Parent())
	}
	if !b.RemoveChild(s) || b.RemoveChild(s) {
		t.Error("RemoveChild should succeed once")
	}
}

func TestTransformedBounds(t *testing.T) {
	b := NewBackend(backend.Config{})
	s := NewSprite(solidTexture(20, 10, color.RGBA{255, 0, 0, 255}))
	s.X, s.Y, s.ScaleX = 10, 5, 2

	r, err := b.TransformedBounds(s)
	if err != nil {
		t.Fatalf("TransformedBounds: %v", err)
	}
	want := backend.Rect{X: 10, Y: 5, Width: 40, Height: 10}
	if !near(r.X, want.X) || !near(r.Y, want.Y) || !near(r.Width, want.Width) || !near(r.Height, want.Height) {
		t.Errorf("TransformedBounds = %+v, want %+v", r, want)
	}

	parent := NewContainer("parent")
	parent.X = 100
	parent.AddChild(s)
	r, _ = b.TransformedBounds(s)
	if !near(r.X, 110) {
		t.Errorf("bounds ignore parent transform: X = %v, want 110", r.X)
	}
}

func TestRenderSprite(t *testing.T) {
	app := newTestApp(t)
	s := NewSprite(solidTexture(10, 10, color.RGBA{255, 0, 0, 255}))
	s.X, s.Y = 20, 20
	app.Root().AddChild(s)

	if err := app.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := app.Frame().RGBAAt(25, 25)
	if got.R < 250 || got.A < 250 {
		t.Errorf("inside sprite = %v, want red", got)
	}
	if got := app.Frame().RGBAAt(5, 5); got.A != 0 {
		t.Errorf("outside sprite = %v, want transparent", got)
	}
}

func TestRenderGraphics(t *testing.T) {
	app := newTestApp(t)
	g := NewGraphics().BeginFill(0x0000ff, 1).DrawRect(0, 0, 32, 32).EndFill()
	app.Root().AddChild(g)

	if err := app.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := app.Frame().RGBAAt(16, 16); got.B < 250 || got.R > 5 {
		t.Errorf("inside rect = %v, want blue", got)
	}
	if got := app.Frame().RGBAAt(48, 48); got.A != 0 {
		t.Errorf("outside rect = %v, want transparent", got)
	}
}

func TestFilterApplied(t *testing.T) {
	b := NewBackend(backend.Config{})
	app := newTestApp(t)
	s := NewSprite(solidTexture(10, 10, color.RGBA{255, 0, 0, 255}))
	// Move red into green.
	f := b.ColorMatrixFilter([]float64{
		0, 0, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}).(*ColorMatrixFilter)
	s.Filters = []*ColorMatrixFilter{f}
	app.Root().AddChild(s)

	if err := app.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := app.Frame().RGBAAt(5, 5)
	if got.R > 5 || got.G < 250 {
		t.Errorf("filtered pixel = %v, want green", got)
	}

	f.Enabled = false
	_ = app.Render()
	if got := app.Frame().RGBAAt(5, 5); got.R < 250 {
		t.Errorf("disabled filter pixel = %v, want red", got)
	}
}

func TestColorMatrixFilterPadding(t *testing.T) {
	b := NewBackend(backend.Config{})
	in := []float64{0.5, 0, 0}
	f := b.ColorMatrixFilter(in).(*ColorMatrixFilter)
	m := f.Matrix()
	if len(m) != 20 {
		t.Fatalf("len = %d, want 20", len(m))
	}
	if m[0] != 0.5 || m[6] != 1 || m[12] != 1 || m[18] != 1 {
		t.Errorf("matrix not padded from identity: %v", m)
	}

	long := make([]float64, 25)
	long[24] = 7
	f = b.ColorMatrixFilter(long).(*ColorMatrixFilter)
	if len(f.Matrix()) != 20 || len(long) != 25 {
		t.Error("matrix must be truncated to 20 without touching the input")
	}
}

func TestHitTest(t *testing.T) {
	b := NewBackend(backend.Config{})
	app := newTestApp(t)
	s := NewSprite(solidTexture(20, 20, color.RGBA{0, 0, 0, 255}))
	s.X, s.Y = 10, 10
	app.Root().AddChild(s)

	tests := []struct {
		x, y float64
		want bool
	}{
		{15, 15, true},
		{29, 29, true},
		{30, 30, false},
		{5, 15, false},
	}
	for _, tt := range tests {
		app.PointerMove(tt.x, tt.y)
		got, err := b.HitTest(app, s)
		if err != nil {
			t.Fatalf("HitTest: %v", err)
		}
		if got != tt.want {
			t.Errorf("HitTest at (%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitTestZeroScale(t *testing.T) {
	b := NewBackend(backend.Config{})
	app := newTestApp(t)
	s := NewSprite(solidTexture(20, 20, color.RGBA{0, 0, 0, 255}))
	app.Root().AddChild(s)
	app.PointerMove(5, 5)

	for _, scale := range [][2]float64{{0, 1}, {1, 0}, {0, 0}} {
		s.ScaleX, s.ScaleY = scale[0], scale[1]
		if hit, err := b.HitTest(app, s); err != nil || hit {
			t.Errorf("HitTest with scale %v = %v, %v, want false", scale, hit, err)
		}
	}
	s.ScaleX, s.ScaleY = 1, 1
	if hit, _ := b.HitTest(app, s); !hit {
		t.Error("HitTest with scale restored = false")
	}
}

func TestHitTestWithoutInteractionPanics(t *testing.T) {
	b := NewBackend(backend.Config{})
	app := newTestApp(t, WithoutInteraction())
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	_, _ = b.HitTest(app, NewSprite(nil))
}

func TestPointerDownDispatch(t *testing.T) {
	app := newTestApp(t)
	back := NewSprite(solidTexture(40, 40, color.RGBA{0, 0, 0, 255}))
	front := NewSprite(solidTexture(10, 10, color.RGBA{0, 0, 0, 255}))
	var pressed []string
	back.Interactive, back.Name = true, "back"
	back.OnPointerDown = func() { pressed = append(pressed, "back") }
	front.Interactive, front.Name = true, "front"
	front.OnPointerDown = func() { pressed = append(pressed, "front") }
	app.Root().AddChild(back, front)

	app.PointerDown(5, 5)
	if len(pressed) != 0 {
		t.Fatalf("dispatch before first render: %v", pressed)
	}
	_ = app.Render()
	app.PointerDown(5, 5)
	app.PointerDown(30, 30)
	if len(pressed) != 2 || pressed[0] != "front" || pressed[1] != "back" {
		t.Errorf("pressed = %v, want [front back]", pressed)
	}
}

func TestCloneStamp(t *testing.T) {
	b := NewBackend(backend.Config{})
	tex := solidTexture(4, 4, color.RGBA{1, 2, 3, 255})
	src := NewSprite(tex)
	src.Interactive = true
	src.Visible = false
	src.SetTransform(1, 2, 3, 4, 0.5, 0.1, 0.2, 7, 8)

	obj, err := b.CloneStamp(src)
	if err != nil {
		t.Fatalf("CloneStamp: %v", err)
	}
	stamp := obj.(*Sprite)
	if stamp == src {
		t.Fatal("CloneStamp returned the source")
	}
	if stamp.Texture() != tex {
		t.Error("stamp does not share the source texture")
	}
	if stamp.Interactive || stamp.InteractiveChildren || stamp.Visible {
		t.Errorf("stamp flags: interactive=%v children=%v visible=%v",
			stamp.Interactive, stamp.InteractiveChildren, stamp.Visible)
	}
	if stamp.LocalTransform() != src.LocalTransform() {
		t.Errorf("stamp transform = %+v, want %+v", stamp.LocalTransform(), src.LocalTransform())
	}
}

func TestForeignObject(t *testing.T) {
	b := NewBackend(backend.Config{})
	if _, err := b.TransformedBounds(foreign{}); !errors.Is(err, backend.ErrForeignObject) {
		t.Errorf("TransformedBounds(foreign) err = %v", err)
	}
	if _, err := b.NewSprite(foreign{}); !errors.Is(err, backend.ErrForeignObject) {
		t.Errorf("NewSprite(foreign) err = %v", err)
	}
	if err := b.SetTextColor(foreign{}, "#fff"); !errors.Is(err, backend.ErrForeignObject) {
		t.Errorf("SetTextColor(foreign) err = %v", err)
	}
	if _, err := b.NewSprite(NewContainer("")); !errors.Is(err, backend.ErrUnsupportedObject) {
		t.Errorf("NewSprite(container) err = %v", err)
	}
}

func TestTextSetters(t *testing.T) {
	b := NewBackend(backend.Config{})
	txt := b.NewText("hi", "20px sans-serif", "#ff0000", "alphabetic", "left").(*Text)
	if err := b.SetTextColor(txt, "#00ff00"); err != nil {
		t.Fatalf("SetTextColor: %v", err)
	}
	if txt.Style.Fill != "#00ff00" {
		t.Errorf("Fill = %q", txt.Style.Fill)
	}
	before := txt.Style
	w := 100.0
	for _, err := range []error{
		b.SetTextUnderline(txt, true),
		b.SetTextStrike(txt, true),
		b.SetTextFont(txt, "bold 30px serif"),
		b.SetTextLineHeight(txt, 40),
		b.SetTextAlign(txt, "center"),
		b.SetTextLineWidth(txt, &w),
		b.SetTextMaxHeight(txt, 50),
	} {
		if err != nil {
			t.Errorf("setter: %v", err)
		}
	}
	if txt.Style != before {
		t.Errorf("unsupported setters changed the style: %+v", txt.Style)
	}
	if w, h := txt.Measure(); w <= 0 || h <= 0 {
		t.Errorf("Measure() = (%v, %v)", w, h)
	}
}

func TestTextBaseline(t *testing.T) {
	top := func(baseline string) float64 {
		txt := NewText("Hg", TextStyle{Font: "20px sans-serif", Fill: "#000", TextBaseline: baseline})
		r, ok := txt.localBounds()
		if !ok {
			t.Fatalf("localBounds(%q) empty", baseline)
		}
		return r.Y
	}
	face := NewText("", TextStyle{Font: "20px sans-serif"}).face()
	if face == nil {
		t.Fatal("no face for 20px sans-serif")
	}
	m := face.Metrics()

	tests := []struct {
		baseline string
		want     float64
	}{
		{"", 0},
		{"top", 0},
		{"alphabetic", -m.Ascent},
		{"middle", (m.Ascent-m.Descent)/2 - m.Ascent},
		{"bottom", -m.Descent - m.Ascent},
	}
	for _, tt := range tests {
		if got := top(tt.baseline); !near(got, tt.want) {
			t.Errorf("bounds top with baseline %q = %v, want %v", tt.baseline, got, tt.want)
		}
	}
	if top("bottom") >= top("middle") || top("middle") >= top("top") {
		t.Error("bottom and middle baselines should raise the box above top")
	}
}

func TestTextureFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex := TextureFromPath(path)
	if !tex.Valid() || tex.Width() != 3 || tex.Height() != 2 {
		t.Fatalf("texture %dx%d valid=%v err=%v", int(tex.Width()), int(tex.Height()), tex.Valid(), tex.Err())
	}
	if TextureFromPath(path) != tex {
		t.Error("texture not cached")
	}
	DestroyTexture(path)
	if _, ok := CachedTexture(path); ok {
		t.Error("destroyed texture still cached")
	}

	missing := TextureFromPath(filepath.Join(dir, "missing.png"))
	if missing.Valid() || missing.Err() == nil {
		t.Error("missing file should produce an invalid texture with an error")
	}
}

func TestApplicationDestroy(t *testing.T) {
	app := newTestApp(t)
	tex := solidTexture(2, 2, color.RGBA{0, 0, 0, 255})
	s := NewSprite(tex)
	app.Root().AddChild(s)

	app.Destroy(backend.DestroyOptions{Children: true, Texture: true})
	if app.Stage() != nil {
		t.Error("Stage() after Destroy should be nil")
	}
	if !s.Destroyed() || tex.Valid() {
		t.Error("children and textures should be destroyed")
	}
	if err := app.Render(); !errors.Is(err, ErrApplicationDestroyed) {
		t.Errorf("Render after Destroy = %v", err)
	}
}

func TestNewApplicationInvalid(t *testing.T) {
	if _, err := NewApplication(backend.Surface{Width: 0, Height: 10}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestBackendLoggerIsolated(t *testing.T) {
	debug := &slog.HandlerOptions{Level: slog.LevelDebug}
	var bufA, bufB bytes.Buffer
	a := NewBackend(backend.Config{Logger: slog.New(slog.NewTextHandler(&bufA, debug))})
	b := NewBackend(backend.Config{Logger: slog.New(slog.NewTextHandler(&bufB, debug))})

	appA, err := a.NewApp(backend.Surface{ID: "first", Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	appB, err := b.NewApp(backend.Surface{ID: "second", Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	appA.Destroy(backend.DestroyOptions{})
	appB.Destroy(backend.DestroyOptions{})

	if out := bufA.String(); !strings.Contains(out, "surface=first") || strings.Contains(out, "surface=second") {
		t.Errorf("first backend log = %q", out)
	}
	if out := bufB.String(); !strings.Contains(out, "surface=second") || strings.Contains(out, "surface=first") {
		t.Errorf("second backend log = %q", out)
	}
	if !strings.Contains(bufA.String(), "engine=gpu") {
		t.Errorf("backend log lacks the engine attribute: %q", bufA.String())
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("NewBackend changed the package logger")
	}
}

func TestBaseReturnsEmbeddedNode(t *testing.T) {
	c, s, g, txt := NewContainer("c"), NewSprite(nil), NewGraphics(), NewText("", TextStyle{})
	tests := []struct {
		name string
		obj  DisplayObject
		want *Node
	}{
		{"container", c, &c.Node},
		{"sprite", s, &s.Node},
		{"graphics", g, &g.Node},
		{"text", txt, &txt.Node},
	}
	for _, tt := range tests {
		if got := tt.obj.Base(); got != tt.want {
			t.Errorf("%s Base() = %p, want the embedded node %p", tt.name, got, tt.want)
		}
	}
}
