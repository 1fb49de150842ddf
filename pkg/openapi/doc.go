// Package openapi builds form metadata from OpenAPI 3 documents. The request
// body schema of an operation becomes a FormMeta: string and number enums map
// to select controls, numbers and integers to number controls, arrays of
// enums to multiselect controls and booleans to a yes/no select. Nested
// objects become their own collapsible sections. Properties of any other
// shape are skipped.
package openapi
