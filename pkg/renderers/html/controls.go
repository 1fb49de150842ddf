package html

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-dynform/pkg/model"
)

const controlTemplatePrefix = "templates/controls/"

// ControlTemplate is the template path used for kind when nothing else is
// registered: templates/controls/<kind>.tmpl.
func ControlTemplate(kind model.ControlType) string {
	return controlTemplatePrefix + string(kind) + ".tmpl"
}

// Descriptor binds a control type to the template that draws it.
type Descriptor struct {
	// Template is the template path inside the renderer's template FS.
	Template string
	// PartialKey names the theme partial that may replace Template, for
	// example "controls.select".
	PartialKey string
}

// ControlRegistry maps control types to templates. It is the rendering
// counterpart of the evaluator registry in package form.
type ControlRegistry struct {
	mu       sync.RWMutex
	controls map[model.ControlType]Descriptor
}

// NewControlRegistry returns an empty registry.
func NewControlRegistry() *ControlRegistry {
	return &ControlRegistry{controls: make(map[model.ControlType]Descriptor)}
}

// DefaultControlRegistry registers the built-in select, number and
// multiselect templates.
func DefaultControlRegistry() *ControlRegistry {
	reg := NewControlRegistry()
	for _, kind := range model.ControlTypes() {
		reg.MustRegister(kind, Descriptor{})
	}
	return reg
}

// Register associates kind with descriptor, replacing any existing entry.
// Blank fields fall back to the naming convention.
func (r *ControlRegistry) Register(kind model.ControlType, descriptor Descriptor) error {
	kind = model.ControlType(strings.TrimSpace(string(kind)))
	if kind == "" {
		return fmt.Errorf("html: control type is required")
	}
	if descriptor.Template == "" {
		descriptor.Template = ControlTemplate(kind)
	}
	if descriptor.PartialKey == "" {
		descriptor.PartialKey = "controls." + string(kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls[kind] = descriptor
	return nil
}

// MustRegister panics on registration failure.
func (r *ControlRegistry) MustRegister(kind model.ControlType, descriptor Descriptor) {
	if err := r.Register(kind, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor returns the descriptor for kind.
func (r *ControlRegistry) Descriptor(kind model.ControlType) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.controls[kind]
	return descriptor, ok
}

// Types returns the registered control types, sorted.
func (r *ControlRegistry) Types() []model.ControlType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]model.ControlType, 0, len(r.controls))
	for kind := range r.controls {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// resolve picks the template for kind, preferring a theme partial.
func (r *ControlRegistry) resolve(kind model.ControlType, partials map[string]string) (string, error) {
	descriptor, ok := r.Descriptor(kind)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoControlTemplate, kind)
	}
	if candidate := strings.TrimSpace(partials[descriptor.PartialKey]); candidate != "" {
		return candidate, nil
	}
	return descriptor.Template, nil
}
