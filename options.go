package ge

import (
	"log/slog"

	"github.com/gogpu/gpucontext"
)

// SceneAtlas activates and removes the texture sets of scenes. It is only
// consulted under the GPU engine.
type SceneAtlas interface {
	ActivateScene(sceneID string)
	RemoveScene(sceneID string)
}

// DragHelper receives the engine mode at Init.
type DragHelper interface {
	Init(isGPU bool)
}

// Option configures a Helper during creation.
//
// Example:
//
//	h := ge.New(
//		ge.WithLogger(logger),
//		ge.WithDeviceProvider(window),
//	)
type Option func(*options)

type options struct {
	atlas    SceneAtlas
	drag     DragHelper
	provider gpucontext.DeviceProvider
	logger   *slog.Logger
}

// WithAtlas sets the scene atlas. The default is an atlas.Manager.
func WithAtlas(a SceneAtlas) Option {
	return func(o *options) {
		o.atlas = a
	}
}

// WithDragHelper sets the drag helper told about the engine mode. The
// default is a drag.Helper.
func WithDragHelper(d DragHelper) Option {
	return func(o *options) {
		o.drag = d
	}
}

// WithDeviceProvider shares a host-owned GPU device with the GPU engine's
// accelerator. It is ignored under the canvas engine.
//
// Example:
//
//	// gogpu.App implements gpucontext.DeviceProvider
//	h := ge.New(ge.WithDeviceProvider(app))
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithLogger routes this helper's and its engine's logs to l instead of
// the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
