package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data renderers use to customise output
// without touching the form state.
type RenderOptions struct {
	// Theme selects the theme, variant, tokens and asset resolver. Nil means
	// the renderer's unstyled defaults.
	Theme *theme.RendererConfig
	// Action and Method populate the form element. Method defaults to POST.
	Action string
	Method string
	// Errors holds server-side messages keyed by control name. Use
	// MapErrorPayload to build it from a looser payload.
	Errors map[string][]string
	// FormErrors are messages not tied to a control.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs in name order.
	HiddenFields map[string]string
	// Locale and Translator localise labels via LocalizeSnapshot.
	Locale     string
	Translator Translator
	// OnMissing decides the text used when a translation is missing.
	OnMissing MissingTranslationHandler
}

// ThemeName returns the configured theme name or "".
func (o RenderOptions) ThemeName() string {
	if o.Theme == nil {
		return ""
	}
	return o.Theme.Theme
}

// ThemeVariant returns the configured theme variant or "".
func (o RenderOptions) ThemeVariant() string {
	if o.Theme == nil {
		return ""
	}
	return o.Theme.Variant
}

// AssetURL resolves a theme asset, returning path unchanged when no resolver
// is configured.
func (o RenderOptions) AssetURL(path string) string {
	if o.Theme == nil || o.Theme.AssetURL == nil {
		return path
	}
	return o.Theme.AssetURL(path)
}
