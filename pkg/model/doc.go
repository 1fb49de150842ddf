// Package model defines the form metadata tree consumed by the form
// orchestrator and renderers: sections hold groups, groups hold controls, and
// select-style controls carry (optionally nested) option lists. The tree is
// treated as copy-on-write. Helpers such as Control.WithValue and
// ControlSection.WithGroup return new nodes and leave the receiver untouched,
// so a host's copy only changes when it accepts an emitted update.
//
// Values are kept loosely typed (any) so JSON and YAML payloads decode
// directly; IsEmpty is the single arbiter of whether a value satisfies a
// required control. The Is* guards perform structural checks on externally
// decoded documents and never panic. Validate performs stricter checks
// (struct tags plus unique control names).
package model
