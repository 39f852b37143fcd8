package ge

import (
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/backend/canvas"
	"github.com/entrylabs/ge/backend/gpu"
	"github.com/entrylabs/ge/internal/filter"
)

type fakeAtlas struct {
	activated, removed []string
}

func (a *fakeAtlas) ActivateScene(id string) { a.activated = append(a.activated, id) }
func (a *fakeAtlas) RemoveScene(id string)   { a.removed = append(a.removed, id) }

type fakeDrag struct {
	calls int
	gpu   bool
}

func (d *fakeDrag) Init(isGPU bool) { d.calls++; d.gpu = isGPU }

type entity struct{ obj backend.Object }

func (e entity) Object() backend.Object { return e.obj }

func newHelper(t *testing.T, useGPU bool, opts ...Option) *Helper {
	t.Helper()
	h := New(opts...)
	if err := h.Init(useGPU); err != nil {
		t.Fatalf("Init(%v): %v", useGPU, err)
	}
	return h
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// matrixOf returns the 4x5 part of a filter from either engine.
func matrixOf(t *testing.T, obj backend.Object) []float64 {
	t.Helper()
	switch f := obj.(type) {
	case *gpu.ColorMatrixFilter:
		return f.Matrix()
	case *canvas.ColorMatrixFilter:
		m := f.Matrix.Matrix4x5()
		return m[:]
	}
	t.Fatalf("not a color matrix filter: %T", obj)
	return nil
}

func waitImage(img *canvas.Image) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return img.Wait(ctx)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestUseBeforeInitPanics(t *testing.T) {
	h := New()
	calls := map[string]func(){
		"IsGPU":        func() { h.IsGPU() },
		"NewContainer": func() { h.NewContainer("x") },
		"Hue":          func() { h.ColorFilter().Hue(10) },
		"NewText":      func() { h.TextHelper().NewText("", "", "", "", "") },
		"RemoveScene":  func() { h.RemoveScene("s") },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != errNotInitialized {
					t.Errorf("recover() = %v, want %q", r, errNotInitialized)
				}
			}()
			call()
		})
	}
}

func TestInitOnce(t *testing.T) {
	d := &fakeDrag{}
	h := newHelper(t, false, WithDragHelper(d))
	if err := h.Init(true); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init = %v, want ErrAlreadyInitialized", err)
	}
	if h.IsGPU() || h.RotateRead() != 1 {
		t.Error("second Init changed the mode")
	}
	if d.calls != 1 || d.gpu {
		t.Errorf("drag helper calls=%d gpu=%v, want 1 and false", d.calls, d.gpu)
	}
}

func TestRotateFactors(t *testing.T) {
	tests := []struct {
		gpu         bool
		read, write float64
	}{
		{true, 180 / math.Pi, math.Pi / 180},
		{false, 1, 1},
	}
	for _, tt := range tests {
		d := &fakeDrag{}
		h := newHelper(t, tt.gpu, WithDragHelper(d))
		if h.RotateRead() != tt.read || h.RotateWrite() != tt.write {
			t.Errorf("gpu=%v: RotateRead=%v RotateWrite=%v, want %v %v",
				tt.gpu, h.RotateRead(), h.RotateWrite(), tt.read, tt.write)
		}
		if !near(90*h.RotateWrite()*h.RotateRead(), 90) {
			t.Errorf("gpu=%v: rotation round trip broken", tt.gpu)
		}
		if d.gpu != tt.gpu {
			t.Errorf("drag helper gpu = %v, want %v", d.gpu, tt.gpu)
		}
		if h.IsGPU() != tt.gpu {
			t.Errorf("IsGPU() = %v, want %v", h.IsGPU(), tt.gpu)
		}
	}
}

func TestSceneForwarding(t *testing.T) {
	a := &fakeAtlas{}
	h := newHelper(t, false, WithAtlas(a))
	h.ActivateScene("s1")
	h.RemoveScene("s1")
	if len(a.activated)+len(a.removed) != 0 {
		t.Errorf("canvas engine reached the atlas: %+v", a)
	}

	a = &fakeAtlas{}
	h = newHelper(t, true, WithAtlas(a))
	h.ActivateScene("s1")
	h.RemoveScene("s2")
	if len(a.activated) != 1 || a.activated[0] != "s1" || len(a.removed) != 1 || a.removed[0] != "s2" {
		t.Errorf("gpu forwarding = %+v", a)
	}
}

func TestHueMatchesAcrossEngines(t *testing.T) {
	g := newHelper(t, true)
	c := newHelper(t, false)
	for _, deg := range []float64{0, 30, -90, 179, 180, 200, -540, 725} {
		gm := matrixOf(t, g.ColorFilter().Hue(deg))
		cm := matrixOf(t, c.ColorFilter().Hue(deg))
		want := filter.Hue(wrapDegrees(deg))
		for i := range want {
			if math.Abs(gm[i]-cm[i]) > 1e-9 || math.Abs(gm[i]-want[i]) > 1e-9 {
				t.Fatalf("Hue(%v)[%d]: gpu=%v canvas=%v want %v", deg, i, gm[i], cm[i], want[i])
			}
		}
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{90, 90},
		{180, -180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{720, 0},
	}
	for _, tt := range tests {
		if got := wrapDegrees(tt.in); !near(got, tt.want) {
			t.Errorf("wrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name   string
		gpu    bool
		v      float64
		offset float64
	}{
		{"gpu zero", true, 0, 0},
		{"canvas zero", false, 0, 0},
		{"gpu full", true, 255, 1},
		{"canvas full", false, 255, 255},
		{"gpu negative", true, -51, -0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHelper(t, tt.gpu)
			m := matrixOf(t, h.ColorFilter().Brightness(tt.v))
			want := filter.Identity()
			want[4], want[9], want[14] = tt.offset, tt.offset, tt.offset
			for i := range want {
				if !near(m[i], want[i]) {
					t.Errorf("Brightness(%v)[%d] = %v, want %v", tt.v, i, m[i], want[i])
				}
			}
		})
	}
}

func TestColorMatrixFilterPadding(t *testing.T) {
	in := []float64{0.5, 0, 0, 0, 7}

	g := newHelper(t, true)
	gm := g.ColorFilter().ColorMatrixFilter(in).(*gpu.ColorMatrixFilter).Matrix()
	if len(gm) != 20 || gm[0] != 0.5 || gm[4] != 7 || gm[6] != 1 || gm[18] != 1 {
		t.Errorf("gpu matrix = %v", gm)
	}
	long := make([]float64, 25)
	long[19], long[24] = 0.25, 9
	if gm := g.ColorFilter().ColorMatrixFilter(long).(*gpu.ColorMatrixFilter).Matrix(); len(gm) != 20 || gm[19] != 0.25 {
		t.Errorf("gpu matrix from 25 entries = %v", gm)
	}

	c := newHelper(t, false)
	cm := c.ColorFilter().ColorMatrixFilter(in).(*canvas.ColorMatrixFilter).Matrix
	if len(cm) != 25 || cm[0] != 0.5 || cm[4] != 7 || cm[6] != 1 || cm[24] != 1 || cm[20] != 0 {
		t.Errorf("canvas matrix = %v", cm)
	}

	if len(in) != 5 || in[0] != 0.5 || in[4] != 7 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestSetCache(t *testing.T) {
	g := newHelper(t, true)
	if err := g.ColorFilter().SetCache(g.NewGraphic(), true); err != nil {
		t.Errorf("gpu SetCache = %v", err)
	}

	c := newHelper(t, false)
	shape := c.NewGraphic().(*canvas.Shape)
	shape.Graphics.BeginFill("#f00").DrawRect(0, 0, 4, 4)
	if err := c.ColorFilter().SetCache(shape, true); err != nil || !shape.IsCached() {
		t.Errorf("canvas SetCache(true) = %v, cached=%v", err, shape.IsCached())
	}
	if err := c.ColorFilter().SetCache(shape, false); err != nil || shape.IsCached() {
		t.Errorf("canvas SetCache(false) = %v, cached=%v", err, shape.IsCached())
	}
}

func TestCloneStamp(t *testing.T) {
	path := writePNG(t, 4, 4)
	t.Cleanup(func() { gpu.DestroyTexture(path) })

	t.Run("gpu", func(t *testing.T) {
		h := newHelper(t, true)
		src := h.NewSpriteWithURL(path).(*gpu.Sprite)
		src.Interactive = true
		src.SetTransform(10, 20, 2, 3, 0.5, 0.1, 0.2, 1, 2)
		obj, err := h.CloneStamp(entity{src})
		if err != nil {
			t.Fatalf("CloneStamp: %v", err)
		}
		stamp := obj.(*gpu.Sprite)
		if stamp == src || stamp.Texture() != src.Texture() {
			t.Fatal("stamp should be a new sprite sharing the texture")
		}
		if stamp.Interactive || stamp.InteractiveChildren {
			t.Error("stamp is interactive")
		}
		if stamp.LocalTransform() != src.LocalTransform() {
			t.Errorf("stamp transform = %+v, want %+v", stamp.LocalTransform(), src.LocalTransform())
		}
	})

	t.Run("canvas", func(t *testing.T) {
		h := newHelper(t, false)
		src := h.NewGraphic().(*canvas.Shape)
		src.X, src.Rotation, src.RegX = 5, 30, 2
		obj, err := h.CloneStamp(entity{src})
		if err != nil {
			t.Fatalf("CloneStamp: %v", err)
		}
		stamp := obj.(*canvas.Shape)
		if stamp == src {
			t.Fatal("stamp is the source")
		}
		if stamp.MouseEnabled || stamp.TickEnabled || stamp.Filters != nil {
			t.Error("stamp still receives input or ticks")
		}
		if stamp.GetMatrix() != src.GetMatrix() {
			t.Errorf("stamp matrix = %+v, want %+v", stamp.GetMatrix(), src.GetMatrix())
		}
	})
}

func TestNewSpriteWithURL(t *testing.T) {
	path := writePNG(t, 3, 2)
	t.Cleanup(func() { gpu.DestroyTexture(path) })

	g := newHelper(t, true)
	s, ok := g.NewSpriteWithURL(path).(*gpu.Sprite)
	if !ok || s.Texture() == nil || !s.Texture().Valid() {
		t.Errorf("gpu sprite = %#v", s)
	}

	c := newHelper(t, false)
	if _, ok := c.NewSpriteWithURL(path).(*canvas.Bitmap); !ok {
		t.Error("canvas NewSpriteWithURL did not return a *canvas.Bitmap")
	}
}

func TestNewTextureAndSprite(t *testing.T) {
	path := writePNG(t, 3, 2)
	t.Cleanup(func() { gpu.DestroyTexture(path) })

	c := newHelper(t, false)
	tex := c.NewTexture(path)
	img, ok := tex.(*canvas.Image)
	if !ok || img.Src() != path {
		t.Fatalf("canvas NewTexture = %#v", tex)
	}
	if _, err := c.NewSpriteWithTexture(tex); err != nil {
		t.Errorf("canvas NewSpriteWithTexture: %v", err)
	}

	g := newHelper(t, true)
	if _, err := g.NewSpriteWithTexture(tex); !errors.Is(err, backend.ErrForeignObject) {
		t.Errorf("gpu sprite from canvas image err = %v, want ErrForeignObject", err)
	}
	if _, err := g.NewSpriteWithTexture(g.NewTexture(path)); err != nil {
		t.Errorf("gpu NewSpriteWithTexture: %v", err)
	}
}

func TestHitTestMouse(t *testing.T) {
	h := newHelper(t, false)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("HitTestMouse without an application should panic")
			}
		}()
		_, _ = h.HitTestMouse(h.NewGraphic())
	}()

	app, err := h.NewApp(backend.Surface{ID: "stage", Width: 32, Height: 32})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	shape := h.NewGraphic().(*canvas.Shape)
	shape.Graphics.BeginFill("#000").DrawRect(0, 0, 10, 10)
	app.(*canvas.LegacyApplication).Root().AddChild(shape)

	app.PointerMove(4, 4)
	if hit, err := h.HitTestMouse(shape); err != nil || !hit {
		t.Errorf("HitTestMouse over shape = %v, %v", hit, err)
	}
	app.PointerMove(20, 20)
	if hit, _ := h.HitTestMouse(shape); hit {
		t.Error("HitTestMouse away from shape = true")
	}

	h.DestroyApp(backend.DestroyOptions{})
	if h.App() != nil {
		t.Error("App() not cleared by DestroyApp")
	}
}

func TestTransformedBoundsSpaces(t *testing.T) {
	path := writePNG(t, 10, 10)
	t.Cleanup(func() { gpu.DestroyTexture(path) })

	g := newHelper(t, true)
	parent := g.NewContainer("parent").(*gpu.Container)
	parent.X = 100
	sprite := g.NewSpriteWithURL(path).(*gpu.Sprite)
	sprite.X = 5
	parent.AddChild(sprite)
	r, err := g.TransformedBounds(sprite)
	if err != nil || !near(r.X, 105) {
		t.Errorf("gpu TransformedBounds = %+v, %v; want X 105", r, err)
	}

	c := newHelper(t, false)
	cparent := c.NewContainer("parent").(*canvas.Container)
	cparent.X = 100
	bm := c.NewSpriteWithURL(path).(*canvas.Bitmap)
	if err := waitImage(bm.Image()); err != nil {
		t.Fatal(err)
	}
	bm.X = 5
	cparent.AddChild(bm)
	r, err = c.TransformedBounds(bm)
	if err != nil || !near(r.X, 5) {
		t.Errorf("canvas TransformedBounds = %+v, %v; want X 5", r, err)
	}
}

func TestTextHelper(t *testing.T) {
	c := newHelper(t, false)
	obj := c.NewText("hello", "20px sans-serif", "#112233", "alphabetic", "")
	txt := obj.(*canvas.Text)
	if txt.Text != "20px sans-serif" || txt.TextBaseline != "alphabetic" || txt.TextAlign != "left" {
		t.Errorf("canvas text = %q baseline %q align %q", txt.Text, txt.TextBaseline, txt.TextAlign)
	}
	th := c.TextHelper()
	w := 120.0
	if err := errors.Join(
		th.SetColor(txt, "#fff"),
		th.SetUnderLine(txt, true),
		th.SetStrike(txt, true),
		th.SetFontFace(txt, "bold 12px serif"),
		th.SetLineHeight(txt, 18),
		th.SetTextAlign(txt, "center"),
		th.SetLineWidth(txt, &w),
		th.SetMaxHeight(txt, 60),
	); err != nil {
		t.Fatalf("canvas setters: %v", err)
	}
	if txt.Color != "#fff" || !txt.UnderLine || !txt.Strike || txt.LineHeight != 18 || *txt.LineWidth != 120 {
		t.Errorf("canvas text fields = %+v", txt)
	}

	g := newHelper(t, true)
	gt := g.TextHelper().NewText("hello", "20px sans-serif", "#112233", "top", "center").(*gpu.Text)
	if gt.Text != "hello" || gt.Style.Fill != "#112233" || gt.Style.Align != "center" {
		t.Errorf("gpu text = %q style %+v", gt.Text, gt.Style)
	}
	if err := g.TextHelper().SetColor(gt, "#abcdef"); err != nil || gt.Style.Fill != "#abcdef" {
		t.Errorf("gpu SetColor = %v, fill %q", err, gt.Style.Fill)
	}
	if err := g.TextHelper().SetUnderLine(gt, true); err != nil {
		t.Errorf("gpu SetUnderLine = %v", err)
	}
	if err := g.TextHelper().SetUnderLine(txt, true); !errors.Is(err, backend.ErrForeignObject) {
		t.Errorf("gpu SetUnderLine(canvas text) = %v, want ErrForeignObject", err)
	}
}

func TestDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })
	SetDefault(nil)
	d := Default()
	if d == nil || d != Default() {
		t.Fatal("Default() should return one helper")
	}
	if d.Initialized() {
		t.Error("fresh default helper is initialized")
	}
	h := New()
	SetDefault(h)
	if Default() != h {
		t.Error("SetDefault did not replace the default helper")
	}
}
