// Command gedemo renders a YAML-described scene with either engine and
// saves the frame as an image.
//
//	gedemo -config scene.yaml -mode gpu -output out.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/entrylabs/ge"
	"github.com/entrylabs/ge/backend"

	// Registers the GPU accelerator with gg when a device is available.
	_ "github.com/gogpu/gg/gpu"
)

const loadTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gedemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		config  = fs.String("config", "", "scene file (YAML)")
		mode    = fs.String("mode", "", "engine: gpu or canvas (overrides the scene)")
		output  = fs.String("output", "gedemo.png", "output image")
		width   = fs.Int("width", 0, "surface width (overrides the scene)")
		height  = fs.Int("height", 0, "surface height (overrides the scene)")
		verbose = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *config == "" {
		return errors.New("gedemo: -config is required")
	}

	scene, err := LoadScene(*config)
	if err != nil {
		return err
	}
	if *mode != "" {
		if err := validateMode(*mode); err != nil {
			return err
		}
		scene.Mode = *mode
	}
	if *width > 0 {
		scene.Width = *width
	}
	if *height > 0 {
		scene.Height = *height
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	h := ge.New(ge.WithLogger(logger))
	if err := h.Init(scene.Mode == "gpu"); err != nil {
		return err
	}
	app, err := h.NewApp(backend.Surface{ID: "gedemo", Width: scene.Width, Height: scene.Height})
	if err != nil {
		return err
	}
	defer h.DestroyApp(backend.DestroyOptions{Children: true})

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	for i, o := range scene.Objects {
		obj, err := build(ctx, h, o)
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		if err := addToStage(app, obj); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}

	if err := app.Render(); err != nil {
		return err
	}
	if err := imaging.Save(app.Frame(), *output); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	logger.Info("frame saved", "output", *output, "engine", h.Backend().Name(),
		"width", scene.Width, "height", scene.Height)
	return nil
}
