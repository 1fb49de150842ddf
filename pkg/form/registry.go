package form

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Registry maps control types to evaluators.
type Registry struct {
	mu         sync.RWMutex
	evaluators map[model.ControlType]Evaluator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{evaluators: make(map[model.ControlType]Evaluator)}
}

// DefaultRegistry returns a registry with the select, number and multiselect
// evaluators registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(model.ControlTypeSelect, SelectEvaluator())
	reg.MustRegister(model.ControlTypeNumber, NumberEvaluator())
	reg.MustRegister(model.ControlTypeMultiSelect, MultiSelectEvaluator())
	return reg
}

// Register adds an evaluator for kind. Duplicate kinds return an error.
func (r *Registry) Register(kind model.ControlType, evaluator Evaluator) error {
	if evaluator == nil {
		return fmt.Errorf("form: evaluator is required")
	}
	if kind == "" {
		return fmt.Errorf("form: control type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evaluators[kind]; exists {
		return fmt.Errorf("form: evaluator for %q already registered", kind)
	}
	r.evaluators[kind] = evaluator
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(kind model.ControlType, evaluator Evaluator) {
	if err := r.Register(kind, evaluator); err != nil {
		panic(err)
	}
}

// Get retrieves the evaluator for kind.
func (r *Registry) Get(kind model.ControlType) (Evaluator, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControlType, kind)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	evaluator, ok := r.evaluators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControlType, kind)
	}
	return evaluator, nil
}

// List returns the registered control types, sorted.
func (r *Registry) List() []model.ControlType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]model.ControlType, 0, len(r.evaluators))
	for kind := range r.evaluators {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Normalize rewrites every control value in meta into its evaluator's
// canonical form, returning a new tree. Controls with unregistered types keep
// their value.
func (r *Registry) Normalize(meta model.FormMeta) model.FormMeta {
	out := meta.Clone()
	for s := range out.ControlSections {
		for g := range out.ControlSections[s].ControlGroups {
			controls := out.ControlSections[s].ControlGroups[g].Controls
			for c := range controls {
				evaluator, err := r.Get(controls[c].Type)
				if err != nil {
					continue
				}
				controls[c].Value = evaluator.Normalize(controls[c].Value)
			}
		}
	}
	return out
}
