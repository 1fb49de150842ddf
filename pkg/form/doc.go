// Package form evaluates and orchestrates dynamic form metadata.
//
// The pure functions (ControlValid, GroupValid, SectionValid, FormValid,
// ColumnWidth, Serialize) compute validity, layout and output from a
// model.FormMeta tree. Form wraps a tree with the stateful behaviour a host
// needs: it applies user input through per-type Evaluators, merges edits
// upward into a new tree, tracks per-section display state and emits change,
// validate, confirm and submit events.
//
//	f := form.New(meta,
//		form.WithChangeHandler(func(next model.FormMeta) { meta = next }),
//		form.WithValidateHandler(func(ok bool) { log.Println("valid:", ok) }),
//	)
//	_ = f.InputByName("id_2", "10")
//	data := f.Submit()
package form
