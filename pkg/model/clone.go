package model

// Clone returns a deep copy of the option tree.
func (o Option) Clone() Option {
	out := o
	out.Children = cloneOptions(o.Children)
	return out
}

func cloneOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	out := make([]Option, len(in))
	for i, opt := range in {
		out[i] = opt.Clone()
	}
	return out
}

// Clone returns a deep copy of the control. Slice values and numeric bounds
// are copied so the clone shares no mutable state with the receiver.
func (c Control) Clone() Control {
	out := c
	out.Value = cloneValue(c.Value)
	out.Options = cloneOptions(c.Options)
	if c.Min != nil {
		v := *c.Min
		out.Min = &v
	}
	if c.Max != nil {
		v := *c.Max
		out.Max = &v
	}
	return out
}

// WithValue returns a copy of the control carrying value.
func (c Control) WithValue(value any) Control {
	out := c
	out.Value = cloneValue(value)
	return out
}

// Clone returns a deep copy of the group.
func (g ControlGroup) Clone() ControlGroup {
	out := g
	if g.Controls != nil {
		out.Controls = make([]Control, len(g.Controls))
		for i, control := range g.Controls {
			out.Controls[i] = control.Clone()
		}
	}
	return out
}

// WithControl returns a copy of the group with the control at index replaced.
// Only the controls slice is copied; untouched controls are shared. An out of
// range index returns the group unchanged.
func (g ControlGroup) WithControl(index int, control Control) ControlGroup {
	if index < 0 || index >= len(g.Controls) {
		return g
	}
	out := g
	out.Controls = append([]Control(nil), g.Controls...)
	out.Controls[index] = control
	return out
}

// Clone returns a deep copy of the section.
func (s ControlSection) Clone() ControlSection {
	out := s
	if s.ControlGroups != nil {
		out.ControlGroups = make([]ControlGroup, len(s.ControlGroups))
		for i, group := range s.ControlGroups {
			out.ControlGroups[i] = group.Clone()
		}
	}
	return out
}

// WithGroup returns a copy of the section with the group at index replaced.
func (s ControlSection) WithGroup(index int, group ControlGroup) ControlSection {
	if index < 0 || index >= len(s.ControlGroups) {
		return s
	}
	out := s
	out.ControlGroups = append([]ControlGroup(nil), s.ControlGroups...)
	out.ControlGroups[index] = group
	return out
}

// Clone returns a deep copy of the form metadata.
func (m FormMeta) Clone() FormMeta {
	out := m
	if m.ControlSections != nil {
		out.ControlSections = make([]ControlSection, len(m.ControlSections))
		for i, section := range m.ControlSections {
			out.ControlSections[i] = section.Clone()
		}
	}
	return out
}

// WithSection returns a copy of the metadata with the section at index
// replaced.
func (m FormMeta) WithSection(index int, section ControlSection) FormMeta {
	if index < 0 || index >= len(m.ControlSections) {
		return m
	}
	out := m
	out.ControlSections = append([]ControlSection(nil), m.ControlSections...)
	out.ControlSections[index] = section
	return out
}

// Control returns the control addressed by ref.
func (m FormMeta) Control(ref Ref) (Control, bool) {
	if ref.Section < 0 || ref.Section >= len(m.ControlSections) {
		return Control{}, false
	}
	groups := m.ControlSections[ref.Section].ControlGroups
	if ref.Group < 0 || ref.Group >= len(groups) {
		return Control{}, false
	}
	controls := groups[ref.Group].Controls
	if ref.Control < 0 || ref.Control >= len(controls) {
		return Control{}, false
	}
	return controls[ref.Control], true
}

// Find returns the position of the first control named name.
func (m FormMeta) Find(name string) (Ref, bool) {
	for s, section := range m.ControlSections {
		for g, group := range section.ControlGroups {
			for c, control := range group.Controls {
				if control.Name == name {
					return Ref{Section: s, Group: g, Control: c}, true
				}
			}
		}
	}
	return Ref{}, false
}

// Walk visits every control in traversal order. Returning false stops the
// walk.
func (m FormMeta) Walk(fn func(ref Ref, control Control) bool) {
	if fn == nil {
		return
	}
	for s, section := range m.ControlSections {
		for g, group := range section.ControlGroups {
			for c, control := range group.Controls {
				if !fn(Ref{Section: s, Group: g, Control: c}, control) {
					return
				}
			}
		}
	}
}

// ControlNames lists control names in traversal order.
func (m FormMeta) ControlNames() []string {
	var names []string
	m.Walk(func(_ Ref, control Control) bool {
		names = append(names, control.Name)
		return true
	})
	return names
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		if v == nil {
			return v
		}
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		copy(out, v)
		return out
	default:
		return value
	}
}
