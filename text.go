package ge

import "github.com/entrylabs/ge/backend"

// TextHelper creates text objects and writes their properties. Properties
// the GPU engine does not model are accepted and ignored.
type TextHelper struct {
	h *Helper
}

// NewText creates a text object. Under the canvas engine the font string
// is also used as the text; empty baseline and align keep the defaults.
func (t *TextHelper) NewText(str, font, color, baseline, align string) backend.Object {
	return t.h.mustBackend().NewText(str, font, color, baseline, align)
}

// SetColor sets the fill color as a CSS color.
func (t *TextHelper) SetColor(obj backend.Object, color string) error {
	return t.h.mustBackend().SetTextColor(obj, color)
}

func (t *TextHelper) SetUnderLine(obj backend.Object, on bool) error {
	return t.h.mustBackend().SetTextUnderline(obj, on)
}

func (t *TextHelper) SetStrike(obj backend.Object, on bool) error {
	return t.h.mustBackend().SetTextStrike(obj, on)
}

// SetFontFace sets the CSS font shorthand, e.g. "bold 20px NanumGothic".
func (t *TextHelper) SetFontFace(obj backend.Object, font string) error {
	return t.h.mustBackend().SetTextFont(obj, font)
}

func (t *TextHelper) SetLineHeight(obj backend.Object, height float64) error {
	return t.h.mustBackend().SetTextLineHeight(obj, height)
}

func (t *TextHelper) SetTextAlign(obj backend.Object, align string) error {
	return t.h.mustBackend().SetTextAlign(obj, align)
}

// SetLineWidth sets the wrap width. Nil turns wrapping off.
func (t *TextHelper) SetLineWidth(obj backend.Object, width *float64) error {
	return t.h.mustBackend().SetTextLineWidth(obj, width)
}

func (t *TextHelper) SetMaxHeight(obj backend.Object, height float64) error {
	return t.h.mustBackend().SetTextMaxHeight(obj, height)
}
