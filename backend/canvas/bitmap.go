package canvas

import (
	"image"

	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

// Bitmap draws an Image. Nothing is drawn until the image has loaded.
type Bitmap struct {
	Display
	noChildren

	// SourceRect, when set, selects the part of the image to draw.
	SourceRect *image.Rectangle

	image *Image
}

// NewBitmap creates a bitmap showing img.
func NewBitmap(img *Image) *Bitmap {
	if img == nil {
		img = NewImage()
	}
	return &Bitmap{Display: newDisplay(), image: img}
}

// NewBitmapFromURL creates a bitmap and starts loading url.
func NewBitmapFromURL(url string) *Bitmap {
	img := NewImage()
	img.SetSrc(url)
	return NewBitmap(img)
}

// Image returns the bitmap's image source.
func (b *Bitmap) Image() *Image { return b.image }

func (b *Bitmap) source() image.Image {
	src := b.image.Data()
	if src == nil || b.SourceRect == nil {
		return src
	}
	if si, ok := src.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return si.SubImage(b.SourceRect.Add(src.Bounds().Min))
	}
	return src
}

func (b *Bitmap) bounds() (backend.Rect, bool) {
	src := b.source()
	if src == nil {
		return backend.Rect{}, false
	}
	sz := src.Bounds().Size()
	return backend.Rect{Width: float64(sz.X), Height: float64(sz.Y)}, true
}

func (b *Bitmap) draw(dst *image.RGBA, m gg.Matrix, alpha float64) {
	if src := b.source(); src != nil {
		compose.Image(dst, src, m, alpha)
	}
}

// The clone shares the image source.
func (b *Bitmap) clone() DisplayObject {
	n := &Bitmap{image: b.image}
	b.Display.copyTo(&n.Display)
	if b.SourceRect != nil {
		r := *b.SourceRect
		n.SourceRect = &r
	}
	return n
}
