package main

import (
	"context"
	"fmt"
	"math"

	"github.com/entrylabs/ge"
	"github.com/entrylabs/ge/backend"
	"github.com/entrylabs/ge/backend/canvas"
	"github.com/entrylabs/ge/backend/gpu"
	"github.com/entrylabs/ge/internal/compose"
	"github.com/gogpu/gg"
)

// build creates the display object for o, placed and filtered.
func build(ctx context.Context, h *ge.Helper, o Object) (backend.Object, error) {
	var obj backend.Object
	switch o.Kind {
	case "sprite":
		obj = h.NewSpriteWithURL(o.Image)
		if bm, ok := obj.(*canvas.Bitmap); ok {
			if err := bm.Image().Wait(ctx); err != nil {
				return nil, err
			}
		}
	case "rect", "circle":
		g, err := drawShape(h.NewGraphic(), o)
		if err != nil {
			return nil, err
		}
		obj = g
	case "text":
		obj = h.TextHelper().NewText(o.Text, o.Font, o.Color, "top", "left")
		// Canvas text takes its content from the font argument.
		if t, ok := obj.(*canvas.Text); ok {
			t.Text = o.Text
		}
	}

	var filters []backend.Object
	cf := h.ColorFilter()
	if o.Hue != 0 {
		filters = append(filters, cf.Hue(o.Hue))
	}
	if o.Brightness != 0 {
		filters = append(filters, cf.Brightness(o.Brightness))
	}
	if o.Saturation != 0 {
		filters = append(filters, cf.Saturation(o.Saturation))
	}

	alpha := 1.0
	if o.Alpha != nil {
		alpha = *o.Alpha
	}
	rotation := o.Rotation * h.RotateWrite()

	switch n := obj.(type) {
	case gpu.DisplayObject:
		nd := n.Base()
		nd.SetTransform(o.X, o.Y, o.Scale, o.Scale, rotation, 0, 0, 0, 0)
		nd.Alpha = alpha
		for _, f := range filters {
			nd.Filters = append(nd.Filters, f.(*gpu.ColorMatrixFilter))
		}
	case canvas.DisplayObject:
		d := n.Base()
		d.X, d.Y = o.X, o.Y
		d.ScaleX, d.ScaleY = o.Scale, o.Scale
		d.Rotation = rotation
		d.Alpha = alpha
		for _, f := range filters {
			d.Filters = append(d.Filters, f.(*canvas.ColorMatrixFilter))
		}
	default:
		return nil, fmt.Errorf("%w: %T", backend.ErrUnsupportedObject, obj)
	}
	if len(filters) > 0 {
		if err := cf.SetCache(obj, true); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func drawShape(obj backend.Object, o Object) (backend.Object, error) {
	fill, err := compose.ParseColor(o.Fill)
	if err != nil {
		return nil, err
	}
	switch g := obj.(type) {
	case *gpu.Graphics:
		g.BeginFill(rgbHex(fill), fill.A)
		if o.Kind == "circle" {
			g.DrawCircle(0, 0, o.Radius)
		} else {
			g.DrawRect(0, 0, o.Width, o.Height)
		}
		g.EndFill()
	case *canvas.Shape:
		g.Graphics.BeginFill(o.Fill)
		if o.Kind == "circle" {
			g.Graphics.DrawCircle(0, 0, o.Radius)
		} else {
			g.Graphics.DrawRect(0, 0, o.Width, o.Height)
		}
		g.Graphics.EndFill()
	default:
		return nil, fmt.Errorf("%w: %T", backend.ErrUnsupportedObject, obj)
	}
	return obj, nil
}

// rgbHex packs c into 0xRRGGBB, rounding each channel to the nearest byte.
func rgbHex(c gg.RGBA) uint32 {
	channel := func(v float64) uint32 {
		return uint32(math.Round(min(max(v, 0), 1) * 255))
	}
	return channel(c.R)<<16 | channel(c.G)<<8 | channel(c.B)
}

func addToStage(app backend.Application, obj backend.Object) error {
	switch stage := app.Stage().(type) {
	case *gpu.Container:
		stage.AddChild(obj.(gpu.DisplayObject))
	case *canvas.Stage:
		stage.AddChild(obj.(canvas.DisplayObject))
	default:
		return fmt.Errorf("%w: stage %T", backend.ErrUnsupportedObject, stage)
	}
	return nil
}
