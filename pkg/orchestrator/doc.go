// Package orchestrator wires the source → metadata → form → renderer
// pipeline behind a single Generate call. Metadata comes from a form document,
// an OpenAPI operation or the caller directly; optional transformers patch it
// before the form is built and handed to a named renderer.
package orchestrator
