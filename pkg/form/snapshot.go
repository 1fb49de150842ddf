package form

import "github.com/goliatone/go-dynform/pkg/model"

const (
	ButtonClassBase     = "btn"
	ButtonClassSubmit   = "btn-submit"
	ButtonClassDisabled = "btn-secondary"
)

// SubmitButton describes the submit affordance. Classes carries exactly one
// of ButtonClassSubmit (valid form) or ButtonClassDisabled (invalid form).
type SubmitButton struct {
	Visible bool     `json:"visible"`
	Enabled bool     `json:"enabled"`
	Text    string   `json:"text"`
	Classes []string `json:"classes"`
}

// SubmitButton returns the current submit affordance.
func (f *Form) SubmitButton() SubmitButton {
	f.mu.Lock()
	defer f.mu.Unlock()
	return submitButton(f.cfg, f.valid)
}

func submitButton(cfg Config, valid bool) SubmitButton {
	state := ButtonClassDisabled
	if valid {
		state = ButtonClassSubmit
	}
	return SubmitButton{
		Visible: cfg.IncludeSubmitButton,
		Enabled: valid,
		Text:    cfg.SubmitText,
		Classes: []string{ButtonClassBase, state},
	}
}

// Snapshot is an immutable, render-ready view of a form.
type Snapshot struct {
	Config   Config         `json:"config"`
	Meta     model.FormMeta `json:"meta"`
	Valid    bool           `json:"valid"`
	Button   SubmitButton   `json:"button"`
	Sections []SectionView  `json:"sections"`
	Data     model.FormData `json:"data"`
}

// SectionView pairs a section with its display state and validity.
type SectionView struct {
	Index         int          `json:"index"`
	Label         string       `json:"label"`
	Description   string       `json:"description,omitempty"`
	Documentation string       `json:"documentation,omitempty"`
	Collapsible   bool         `json:"collapsible"`
	State         SectionState `json:"state"`
	Visible       bool         `json:"visible"`
	Valid         bool         `json:"valid"`
	Groups        []GroupView  `json:"groups"`
}

// GroupView pairs a group with its validity and layout width.
type GroupView struct {
	Index       int           `json:"index"`
	Label       string        `json:"label,omitempty"`
	Valid       bool          `json:"valid"`
	ColumnWidth int           `json:"columnWidth"`
	Controls    []ControlView `json:"controls"`
	// Single is set when the group holds exactly one control; renderers show
	// that control's required indicator and help text on the group label.
	Single *ControlView `json:"single,omitempty"`
}

// ControlView is one control ready for rendering.
type ControlView struct {
	Ref         model.Ref          `json:"ref"`
	Control     model.Control      `json:"control"`
	Valid       bool               `json:"valid"`
	Empty       bool               `json:"empty"`
	ColumnWidth int                `json:"columnWidth"`
	Options     []model.FlatOption `json:"options,omitempty"`
	// Selected lists the selected option ids for select-style controls.
	Selected []string `json:"selected,omitempty"`
	// Display is the current value formatted for an input element.
	Display string `json:"display"`
}

// Snapshot captures the current state for renderers.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	meta := f.meta.Clone()
	snap := Snapshot{
		Config:   f.cfg,
		Meta:     meta,
		Valid:    f.valid,
		Button:   submitButton(f.cfg, f.valid),
		Sections: make([]SectionView, 0, len(meta.ControlSections)),
		Data:     SerializeWith(f.registry, meta),
	}

	for s, section := range meta.ControlSections {
		state := NewSectionState(section)
		if s < len(f.sections) {
			state = f.sections[s]
		}
		sv := SectionView{
			Index:         s,
			Label:         section.Label,
			Description:   section.Description,
			Documentation: section.Documentation,
			Collapsible:   section.Collapsible,
			State:         state,
			Visible:       state.Visible(section),
			Valid:         SectionValid(section),
			Groups:        make([]GroupView, 0, len(section.ControlGroups)),
		}
		for g, group := range section.ControlGroups {
			width := ColumnWidth(group)
			gv := GroupView{
				Index:       g,
				Label:       group.Label,
				Valid:       GroupValid(group),
				ColumnWidth: width,
				Controls:    make([]ControlView, 0, len(group.Controls)),
			}
			for c, control := range group.Controls {
				gv.Controls = append(gv.Controls, ControlView{
					Ref:         model.Ref{Section: s, Group: g, Control: c},
					Control:     control,
					Valid:       ControlValid(control),
					Empty:       model.IsEmpty(control.Value),
					ColumnWidth: width,
					Options:     model.FlattenOptions(control.Options),
					Selected:    selectedIDs(control),
					Display:     displayValue(control),
				})
			}
			if len(gv.Controls) == 1 {
				single := gv.Controls[0]
				gv.Single = &single
			}
			sv.Groups = append(sv.Groups, gv)
		}
		snap.Sections = append(snap.Sections, sv)
	}
	return snap
}

func selectedIDs(control model.Control) []string {
	switch v := control.Value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	default:
		return nil
	}
}

func displayValue(control model.Control) string {
	if model.IsEmpty(control.Value) {
		return ""
	}
	switch v := control.Value.(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	default:
		return ""
	}
}

// Clone returns a copy of s that shares no slices with the receiver.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Meta = s.Meta.Clone()
	out.Button.Classes = append([]string(nil), s.Button.Classes...)
	out.Data = make(model.FormData, len(s.Data))
	for key, value := range s.Data {
		out.Data[key] = value
	}
	out.Sections = make([]SectionView, len(s.Sections))
	for i, section := range s.Sections {
		section.Groups = append([]GroupView(nil), section.Groups...)
		for g := range section.Groups {
			group := &section.Groups[g]
			group.Controls = append([]ControlView(nil), group.Controls...)
			for c := range group.Controls {
				control := &group.Controls[c]
				control.Control = control.Control.Clone()
				control.Options = append([]model.FlatOption(nil), control.Options...)
				control.Selected = append([]string(nil), control.Selected...)
			}
			if group.Single != nil && len(group.Controls) > 0 {
				single := group.Controls[0]
				group.Single = &single
			}
		}
		out.Sections[i] = section
	}
	return out
}
