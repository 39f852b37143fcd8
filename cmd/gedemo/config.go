package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scene is the YAML description of a demo scene.
type Scene struct {
	Mode    string   `yaml:"mode,omitempty"`
	Width   int      `yaml:"width,omitempty"`
	Height  int      `yaml:"height,omitempty"`
	Objects []Object `yaml:"objects"`
}

// Object is one display object of a scene. Kind is "sprite", "rect",
// "circle" or "text".
type Object struct {
	Kind string `yaml:"kind"`

	Image  string  `yaml:"image,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Fill   string  `yaml:"fill,omitempty"`

	Text  string `yaml:"text,omitempty"`
	Font  string `yaml:"font,omitempty"`
	Color string `yaml:"color,omitempty"`

	X        float64  `yaml:"x,omitempty"`
	Y        float64  `yaml:"y,omitempty"`
	Rotation float64  `yaml:"rotation,omitempty"` // degrees
	Scale    float64  `yaml:"scale,omitempty"`
	Alpha    *float64 `yaml:"alpha,omitempty"`

	Hue        float64 `yaml:"hue,omitempty"`
	Brightness float64 `yaml:"brightness,omitempty"`
	Saturation float64 `yaml:"saturation,omitempty"`
}

// LoadScene reads a scene file and fills in defaults.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := s.resolve(); err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scene) resolve() error {
	s.Mode = strings.ToLower(strings.TrimSpace(s.Mode))
	if s.Mode == "" {
		s.Mode = "canvas"
	}
	if s.Width == 0 {
		s.Width = 480
	}
	if s.Height == 0 {
		s.Height = 270
	}
	if err := validateMode(s.Mode); err != nil {
		return err
	}
	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Scale == 0 {
			o.Scale = 1
		}
		if o.Font == "" {
			o.Font = "20px sans-serif"
		}
		if o.Color == "" {
			o.Color = "#000000"
		}
		switch o.Kind {
		case "sprite":
			if o.Image == "" {
				return fmt.Errorf("object %d: sprite without image", i)
			}
		case "rect", "circle", "text":
		default:
			return fmt.Errorf("object %d: unknown kind %q", i, o.Kind)
		}
	}
	return nil
}

func validateMode(mode string) error {
	if mode != "gpu" && mode != "canvas" {
		return fmt.Errorf("mode must be gpu or canvas, got %q", mode)
	}
	return nil
}
