package form

import "github.com/goliatone/go-dynform/pkg/model"

// SectionState is the display-only state of a section. It is seeded once
// from the section metadata and then only changes through explicit toggles.
type SectionState struct {
	Collapsed         bool `json:"collapsed"`
	DocumentationOpen bool `json:"documentationOpen"`
}

// NewSectionState seeds the state from section: a section starts collapsed
// only when it is both collapsible and marked collapsed. Documentation
// starts hidden.
func NewSectionState(section model.ControlSection) SectionState {
	return SectionState{Collapsed: section.Collapsible && section.Collapsed}
}

// Toggle flips the collapsed flag when the section is collapsible and reports
// the resulting value.
func (s *SectionState) Toggle(section model.ControlSection) bool {
	if section.Collapsible {
		s.Collapsed = !s.Collapsed
	}
	return s.Collapsed
}

// ToggleDocumentation flips the documentation panel and reports whether it
// is now open.
func (s *SectionState) ToggleDocumentation() bool {
	s.DocumentationOpen = !s.DocumentationOpen
	return s.DocumentationOpen
}

// Visible reports whether the section body is shown for section.
func (s SectionState) Visible(section model.ControlSection) bool {
	return !section.Collapsible || !s.Collapsed
}
