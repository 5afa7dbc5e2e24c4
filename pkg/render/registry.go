package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrRendererNotFound is returned by Get for names nobody registered.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrDuplicateRenderer is returned by Register when the name is taken.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)

// Registry resolves renderers by name ("tui", "html"). Names are matched
// case-insensitively so flag values pass through unchanged.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry registers every renderer given, failing on the first
// duplicate or unnamed one.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	reg := &Registry{byName: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := reg.Register(renderer); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds renderer under its Name.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: nil renderer")
	}
	key := rendererKey(renderer.Name())
	if key == "" {
		return errors.New("render: renderer has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[key]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, key)
	}
	r.byName[key] = renderer
	return nil
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[rendererKey(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrRendererNotFound, name, strings.Join(r.Names(), ", "))
	}
	return renderer, nil
}

// Names lists the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func rendererKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
