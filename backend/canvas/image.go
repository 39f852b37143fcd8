package canvas

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/entrylabs/ge/backend"
)

// httpClient fetches remote image sources.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Image is an image source that loads in the background. Setting Src
// starts a load; listeners registered with OnLoad and OnError run on the
// loading goroutine once it finishes. An Image without a source is
// complete and empty.
type Image struct {
	mu       sync.Mutex
	src      string
	gen      uint64
	data     image.Image
	err      error
	complete bool
	done     chan struct{}
	onLoad   []func()
	onError  []func(error)
}

// NewImage returns an empty, complete image.
func NewImage() *Image {
	done := make(chan struct{})
	close(done)
	return &Image{complete: true, done: done}
}

// NewImageFromImage returns a complete image holding img.
func NewImageFromImage(img image.Image) *Image {
	i := NewImage()
	i.data = img
	return i
}

// Engine reports the owning engine.
func (i *Image) Engine() string { return backend.NameCanvas }

// SetSrc starts loading src, a file path or an http(s) URL. A load still
// in flight for an earlier source is discarded when it finishes.
func (i *Image) SetSrc(src string) {
	i.mu.Lock()
	i.gen++
	gen := i.gen
	i.src = src
	i.data, i.err = nil, nil
	i.complete = false
	done := make(chan struct{})
	i.done = done
	i.mu.Unlock()

	go i.load(gen, src, done)
}

func (i *Image) load(gen uint64, src string, done chan struct{}) {
	img, err := decodeSource(src)

	i.mu.Lock()
	if gen != i.gen {
		i.mu.Unlock()
		return
	}
	i.data, i.err = img, err
	i.complete = true
	onLoad := append([]func(){}, i.onLoad...)
	onError := append([]func(error){}, i.onError...)
	close(done)
	i.mu.Unlock()

	if err != nil {
		Logger().Warn("image load failed", "src", src, "err", err)
		for _, fn := range onError {
			fn(err)
		}
		return
	}
	Logger().Debug("image loaded", "src", src)
	for _, fn := range onLoad {
		fn()
	}
}

func decodeSource(src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := httpClient.Get(src)
		if err != nil {
			return nil, fmt.Errorf("canvas: fetch %q: %w", src, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("canvas: fetch %q: %s", src, resp.Status)
		}
		img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("canvas: decode %q: %w", src, err)
		}
		return img, nil
	}
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("canvas: open %q: %w", src, err)
	}
	return img, nil
}

// OnLoad registers fn to run after a successful load. If the image has
// already loaded, fn runs immediately.
func (i *Image) OnLoad(fn func()) {
	i.mu.Lock()
	if i.complete && i.data != nil {
		i.mu.Unlock()
		fn()
		return
	}
	i.onLoad = append(i.onLoad, fn)
	i.mu.Unlock()
}

// OnError registers fn to run when a load fails. If the last load has
// already failed, fn runs immediately.
func (i *Image) OnError(fn func(error)) {
	i.mu.Lock()
	if i.complete && i.err != nil {
		err := i.err
		i.mu.Unlock()
		fn(err)
		return
	}
	i.onError = append(i.onError, fn)
	i.mu.Unlock()
}

// Wait blocks until the current load finishes or ctx is done.
func (i *Image) Wait(ctx context.Context) error {
	i.mu.Lock()
	done := i.done
	i.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil {
		return fmt.Errorf("%w: %w", ErrImageNotLoaded, i.err)
	}
	return nil
}

// Src returns the current source.
func (i *Image) Src() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.src
}

// Complete reports whether no load is in flight.
func (i *Image) Complete() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.complete
}

// Data returns the decoded image, nil until a load succeeds.
func (i *Image) Data() image.Image {
	if i == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.data
}

// Err returns the error of the last finished load.
func (i *Image) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}
