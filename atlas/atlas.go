// Package atlas tracks which GPU textures each scene uses so a scene's
// textures can be released when the scene is removed.
//
// A texture shared by several scenes stays cached until the last of them
// is removed. Textures are loaded through the GPU engine's path-keyed
// texture cache, so tracking the same path twice costs one load.
package atlas

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/entrylabs/ge/backend/gpu"
)

// ErrUnknownScene is returned when a scene was never tracked.
var ErrUnknownScene = errors.New("atlas: unknown scene")

// Manager records texture paths per scene.
type Manager struct {
	mu     sync.Mutex
	scenes map[string]map[string]struct{}
	active string
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{scenes: make(map[string]map[string]struct{})}
}

// Track records that sceneID uses the texture at path and returns it,
// loading it on first use.
func (m *Manager) Track(sceneID, path string) *gpu.Texture {
	m.mu.Lock()
	paths, ok := m.scenes[sceneID]
	if !ok {
		paths = make(map[string]struct{})
		m.scenes[sceneID] = paths
	}
	paths[path] = struct{}{}
	m.mu.Unlock()

	return gpu.TextureFromPath(path)
}

// ActivateScene makes sceneID the active scene and reloads any of its
// textures that were released in the meantime.
func (m *Manager) ActivateScene(sceneID string) {
	m.mu.Lock()
	m.active = sceneID
	paths := m.pathsLocked(sceneID)
	m.mu.Unlock()

	for _, p := range paths {
		if _, ok := gpu.CachedTexture(p); !ok {
			gpu.TextureFromPath(p)
		}
	}
	gpu.Logger().Debug("atlas: scene activated", "scene", sceneID, "textures", len(paths))
}

// RemoveScene forgets sceneID and destroys the textures no other scene
// uses.
func (m *Manager) RemoveScene(sceneID string) {
	m.mu.Lock()
	paths := m.pathsLocked(sceneID)
	delete(m.scenes, sceneID)
	if m.active == sceneID {
		m.active = ""
	}
	var orphaned []string
	for _, p := range paths {
		if !m.usedLocked(p) {
			orphaned = append(orphaned, p)
		}
	}
	m.mu.Unlock()

	for _, p := range orphaned {
		gpu.DestroyTexture(p)
	}
	gpu.Logger().Debug("atlas: scene removed", "scene", sceneID, "released", len(orphaned))
}

// Active returns the active scene, or "" when none is.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Paths returns the sorted texture paths tracked for sceneID.
func (m *Manager) Paths(sceneID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scenes[sceneID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, sceneID)
	}
	return m.pathsLocked(sceneID), nil
}

func (m *Manager) pathsLocked(sceneID string) []string {
	paths := make([]string, 0, len(m.scenes[sceneID]))
	for p := range m.scenes[sceneID] {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (m *Manager) usedLocked(path string) bool {
	for _, paths := range m.scenes {
		if _, ok := paths[path]; ok {
			return true
		}
	}
	return false
}
