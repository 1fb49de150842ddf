package form

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/model"
)

type eventKind int

const (
	eventChange eventKind = iota
	eventValidate
	eventConfirm
	eventSubmit
)

type event struct {
	kind    eventKind
	meta    model.FormMeta
	valid   bool
	payload any
	data    model.FormData
}

// Form owns the working copy of a host's metadata tree. Edits arrive as new
// control, group or section records addressed by position; the form merges
// them upward into a new tree, recomputes validity and notifies handlers.
//
// Handlers run synchronously after the state change they describe has been
// applied and the internal lock released, so a handler may call back into the
// form (for example SetMeta to complete a two-way binding).
type Form struct {
	mu sync.Mutex

	cfg      Config
	registry *Registry
	logger   *zap.Logger

	onChange   []func(model.FormMeta)
	onValidate []func(bool)
	onConfirm  []func(any)
	onSubmit   []func(model.FormData)

	meta        model.FormMeta
	valid       bool
	initialised bool
	sections    []SectionState
	seen        map[string]struct{}
}

// New builds a form around meta. The host's tree is copied and never
// mutated. Select controls that exclude the null option and have no value
// are prefilled with their first option, each emitting one change event, and
// then a single initial validate event is emitted.
func New(meta model.FormMeta, options ...Option) *Form {
	f := &Form{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
		seen:   make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.cfg = f.cfg.withDefaults()
	if f.registry == nil {
		f.registry = DefaultRegistry()
	}

	f.mu.Lock()
	next := f.registry.Normalize(meta)
	f.sections = reconcileSections(nil, next)
	events := f.commitLocked(next, false)
	f.initialised = true
	f.mu.Unlock()

	f.dispatch(events)
	return f
}

// Config returns the effective configuration.
func (f *Form) Config() Config {
	return f.cfg
}

// Meta returns a copy of the current tree.
func (f *Form) Meta() model.FormMeta {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meta.Clone()
}

// Valid reports the current aggregate validity.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid
}

// Data serialises the current tree without emitting a submit event.
func (f *Form) Data() model.FormData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return SerializeWith(f.registry, f.meta)
}

// SetMeta replaces the working copy with a new host-supplied tree. Section
// display state is kept by position, newly seen controls are prefilled, and
// validate is emitted only if the aggregate validity changed.
func (f *Form) SetMeta(meta model.FormMeta) {
	f.mu.Lock()
	next := f.registry.Normalize(meta)
	f.sections = reconcileSections(f.sections, next)
	events := f.commitLocked(next, false)
	f.mu.Unlock()

	f.dispatch(events)
}

// UpdateControl replaces the control at ref and merges the change upward.
func (f *Form) UpdateControl(ref model.Ref, control model.Control) error {
	f.mu.Lock()
	events, err := f.updateControlLocked(ref, f.normalizeControl(control))
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.dispatch(events)
	return nil
}

// UpdateGroup replaces the group at the given position.
func (f *Form) UpdateGroup(section, group int, next model.ControlGroup) error {
	f.mu.Lock()
	if section < 0 || section >= len(f.meta.ControlSections) ||
		group < 0 || group >= len(f.meta.ControlSections[section].ControlGroups) {
		f.mu.Unlock()
		return fmt.Errorf("%w: section %d group %d", ErrOutOfRange, section, group)
	}
	normalized := f.registry.Normalize(model.FormMeta{
		ControlSections: []model.ControlSection{{ControlGroups: []model.ControlGroup{next}}},
	}).ControlSections[0].ControlGroups[0]
	current := f.meta.ControlSections[section]
	merged := f.meta.WithSection(section, current.WithGroup(group, normalized))
	events := f.commitLocked(merged, true)
	f.mu.Unlock()

	f.dispatch(events)
	return nil
}

// UpdateSection replaces the section at index. Its display state is kept.
func (f *Form) UpdateSection(index int, next model.ControlSection) error {
	f.mu.Lock()
	if index < 0 || index >= len(f.meta.ControlSections) {
		f.mu.Unlock()
		return fmt.Errorf("%w: section %d", ErrOutOfRange, index)
	}
	normalized := f.registry.Normalize(model.FormMeta{
		ControlSections: []model.ControlSection{next},
	}).ControlSections[0]
	events := f.commitLocked(f.meta.WithSection(index, normalized), true)
	f.mu.Unlock()

	f.dispatch(events)
	return nil
}

// Input applies raw user input to the control at ref.
func (f *Form) Input(ref model.Ref, raw ...string) error {
	f.mu.Lock()
	control, ok := f.meta.Control(ref)
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrOutOfRange, ref)
	}
	updated, err := ApplyInput(f.registry, control, raw...)
	if err != nil {
		f.mu.Unlock()
		return fmt.Errorf("form: input %q: %w", control.Name, err)
	}
	events, err := f.updateControlLocked(ref, updated)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.dispatch(events)
	return nil
}

// InputByName applies raw user input to the first control named name.
func (f *Form) InputByName(name string, raw ...string) error {
	f.mu.Lock()
	ref, ok := f.meta.Find(name)
	f.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrControlNotFound, name)
	}
	return f.Input(ref, raw...)
}

// Confirm forwards an opaque interaction signal to confirm handlers.
func (f *Form) Confirm(payload any) {
	f.dispatch([]event{{kind: eventConfirm, payload: payload}})
}

// Submit serialises the current tree, emits it to submit handlers and
// returns it.
func (f *Form) Submit() model.FormData {
	f.mu.Lock()
	data := SerializeWith(f.registry, f.meta)
	f.mu.Unlock()

	f.logger.Debug("form submitted", zap.String("form", f.cfg.ID), zap.Int("fields", len(data)))
	f.dispatch([]event{{kind: eventSubmit, data: data}})
	return data
}

// ToggleSection flips a collapsible section and reports whether it is now
// collapsed. Non-collapsible sections stay expanded.
func (f *Form) ToggleSection(index int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.sections) {
		return false, fmt.Errorf("%w: section %d", ErrOutOfRange, index)
	}
	return f.sections[index].Toggle(f.meta.ControlSections[index]), nil
}

// ToggleDocumentation flips a section's documentation panel and reports
// whether it is now open.
func (f *Form) ToggleDocumentation(index int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.sections) {
		return false, fmt.Errorf("%w: section %d", ErrOutOfRange, index)
	}
	return f.sections[index].ToggleDocumentation(), nil
}

// SectionState returns the display state of the section at index.
func (f *Form) SectionState(index int) (SectionState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.sections) {
		return SectionState{}, false
	}
	return f.sections[index], true
}

func (f *Form) normalizeControl(control model.Control) model.Control {
	evaluator, err := f.registry.Get(control.Type)
	if err != nil {
		return control
	}
	return control.WithValue(evaluator.Normalize(control.Value))
}

func (f *Form) updateControlLocked(ref model.Ref, control model.Control) ([]event, error) {
	if _, ok := f.meta.Control(ref); !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, ref)
	}
	return f.commitLocked(mergeControl(f.meta, ref, control), true), nil
}

// commitLocked installs next as the working tree and returns the events the
// transition produces: the change itself (when requested), one change per
// prefilled control, and validate when validity toggled or on first commit.
func (f *Form) commitLocked(next model.FormMeta, emitChange bool) []event {
	f.meta = next

	var events []event
	if emitChange {
		events = append(events, event{kind: eventChange, meta: f.meta.Clone()})
	}
	events = append(events, f.prefillLocked()...)

	valid := FormValid(f.meta)
	if !f.initialised || valid != f.valid {
		if f.initialised {
			f.logger.Debug("form validity changed",
				zap.String("form", f.cfg.ID),
				zap.Bool("valid", valid),
			)
		}
		f.valid = valid
		events = append(events, event{kind: eventValidate, valid: valid})
	}
	return events
}

// prefillLocked applies evaluator prefills to controls seen for the first
// time. Each prefill is merged on its own and yields its own change event.
func (f *Form) prefillLocked() []event {
	type pending struct {
		ref   model.Ref
		value any
	}
	var fills []pending
	f.meta.Walk(func(ref model.Ref, control model.Control) bool {
		if _, seen := f.seen[control.Name]; seen {
			return true
		}
		f.seen[control.Name] = struct{}{}
		evaluator, err := f.registry.Get(control.Type)
		if err != nil {
			f.logger.Warn("no evaluator for control type",
				zap.String("control", control.Name),
				zap.String("type", string(control.Type)),
			)
			return true
		}
		if value, ok := evaluator.Prefill(control); ok {
			fills = append(fills, pending{ref: ref, value: value})
		}
		return true
	})

	var events []event
	for _, fill := range fills {
		control, _ := f.meta.Control(fill.ref)
		f.logger.Debug("prefilling control",
			zap.String("form", f.cfg.ID),
			zap.String("control", control.Name),
			zap.Any("value", fill.value),
		)
		f.meta = mergeControl(f.meta, fill.ref, control.WithValue(fill.value))
		events = append(events, event{kind: eventChange, meta: f.meta.Clone()})
	}
	return events
}

func (f *Form) dispatch(events []event) {
	for _, ev := range events {
		switch ev.kind {
		case eventChange:
			for _, fn := range f.onChange {
				fn(ev.meta)
			}
		case eventValidate:
			for _, fn := range f.onValidate {
				fn(ev.valid)
			}
		case eventConfirm:
			for _, fn := range f.onConfirm {
				fn(ev.payload)
			}
		case eventSubmit:
			for _, fn := range f.onSubmit {
				fn(ev.data)
			}
		}
	}
}

func mergeControl(meta model.FormMeta, ref model.Ref, control model.Control) model.FormMeta {
	section := meta.ControlSections[ref.Section]
	group := section.ControlGroups[ref.Group]
	return meta.WithSection(ref.Section, section.WithGroup(ref.Group, group.WithControl(ref.Control, control)))
}

func reconcileSections(current []SectionState, meta model.FormMeta) []SectionState {
	out := make([]SectionState, len(meta.ControlSections))
	for i, section := range meta.ControlSections {
		if i < len(current) {
			out[i] = current[i]
			continue
		}
		out[i] = NewSectionState(section)
	}
	return out
}
