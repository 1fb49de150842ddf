// Package loader reads form metadata documents from files, fs.FS entries or
// HTTP endpoints. Documents may be JSON or YAML; both are shape checked with
// model.IsDynamicFormMeta before decoding, validated, and normalised through
// the evaluator registry so control values arrive in canonical form.
package loader
