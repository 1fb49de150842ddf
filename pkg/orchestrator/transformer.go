package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Transformer mutates metadata before the form is built.
type Transformer interface {
	Transform(ctx context.Context, meta *model.FormMeta) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, meta *model.FormMeta) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, meta *model.FormMeta) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, meta)
}

// PresetTransformer applies declarative patches read from a JSON or YAML
// document. Sections are addressed by label, controls by name:
//
//	sections:
//	  Inputs: {label: Values, collapsed: true}
//	controls:
//	  id_1: {label: Amount, required: true, value: 5}
//	  id_4: {rename: region}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Sections map[string]sectionPatch `json:"sections" yaml:"sections"`
	Controls map[string]controlPatch `json:"controls" yaml:"controls"`
}

type sectionPatch struct {
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Collapsible *bool  `json:"collapsible" yaml:"collapsible"`
	Collapsed   *bool  `json:"collapsed" yaml:"collapsed"`
}

type controlPatch struct {
	Label    string   `json:"label" yaml:"label"`
	HelpText string   `json:"helpText" yaml:"helpText"`
	Required *bool    `json:"required" yaml:"required"`
	Value    any      `json:"value" yaml:"value"`
	Min      *float64 `json:"min" yaml:"min"`
	Max      *float64 `json:"max" yaml:"max"`
	Rename   string   `json:"rename" yaml:"rename"`
}

// NewPresetTransformer parses a preset document.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Unknown section labels or control names are
// errors.
func (t *PresetTransformer) Transform(ctx context.Context, meta *model.FormMeta) error {
	if meta == nil {
		return errors.New("preset transformer: metadata is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for label, patch := range t.document.Sections {
		idx := sectionIndex(*meta, label)
		if idx < 0 {
			return fmt.Errorf("preset transformer: section %q not found", label)
		}
		applySectionPatch(&meta.ControlSections[idx], patch)
	}

	for name, patch := range t.document.Controls {
		ref, ok := meta.Find(name)
		if !ok {
			return fmt.Errorf("preset transformer: control %q not found", name)
		}
		control := &meta.ControlSections[ref.Section].ControlGroups[ref.Group].Controls[ref.Control]
		applyControlPatch(control, patch)
	}
	return nil
}

func sectionIndex(meta model.FormMeta, label string) int {
	for idx, section := range meta.ControlSections {
		if section.Label == label {
			return idx
		}
	}
	return -1
}

func applySectionPatch(section *model.ControlSection, patch sectionPatch) {
	if patch.Label != "" {
		section.Label = patch.Label
	}
	if patch.Description != "" {
		section.Description = patch.Description
	}
	if patch.Collapsible != nil {
		section.Collapsible = *patch.Collapsible
	}
	if patch.Collapsed != nil {
		section.Collapsed = *patch.Collapsed
	}
}

func applyControlPatch(control *model.Control, patch controlPatch) {
	if patch.Label != "" {
		control.Label = patch.Label
	}
	if patch.HelpText != "" {
		control.HelpText = patch.HelpText
	}
	if patch.Required != nil {
		control.Required = *patch.Required
	}
	if patch.Value != nil {
		control.Value = patch.Value
	}
	if patch.Min != nil {
		lower := *patch.Min
		control.Min = &lower
	}
	if patch.Max != nil {
		upper := *patch.Max
		control.Max = &upper
	}
	if name := strings.TrimSpace(patch.Rename); name != "" {
		control.Name = name
	}
}
