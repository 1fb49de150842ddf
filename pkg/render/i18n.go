package render

import (
	"strings"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the text used when key cannot be
// translated. fallback is the untranslated label.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// LocalizeSnapshot translates the human-readable text of snap in place.
// Labels are their own translation keys: section labels, descriptions,
// group and control labels, help text, option labels and the configured
// submit, required, select and documentation texts. Documentation HTML is left untouched.
//
// Translation is best-effort; misses go through opts.OnMissing, which
// defaults to keeping the original text.
func LocalizeSnapshot(snap *form.Snapshot, opts RenderOptions) {
	if snap == nil || opts.Translator == nil && opts.OnMissing == nil {
		return
	}
	tr := translator{locale: opts.Locale, t: opts.Translator, onMissing: opts.OnMissing}
	if tr.onMissing == nil {
		tr.onMissing = missingTranslationDefault
	}

	snap.Config.SubmitText = tr.text(snap.Config.SubmitText)
	snap.Config.RequiredText = tr.text(snap.Config.RequiredText)
	snap.Config.SelectText = tr.text(snap.Config.SelectText)
	snap.Config.DocumentationText = tr.text(snap.Config.DocumentationText)
	snap.Button.Text = tr.text(snap.Button.Text)

	for s := range snap.Sections {
		section := &snap.Sections[s]
		section.Label = tr.text(section.Label)
		section.Description = tr.text(section.Description)
		for g := range section.Groups {
			group := &section.Groups[g]
			group.Label = tr.text(group.Label)
			for c := range group.Controls {
				tr.control(&group.Controls[c])
			}
			if group.Single != nil {
				single := group.Controls[0]
				group.Single = &single
			}
		}
	}
}

type translator struct {
	locale    string
	t         Translator
	onMissing MissingTranslationHandler
}

func (tr translator) control(view *form.ControlView) {
	view.Control = view.Control.Clone()
	view.Control.Label = tr.text(view.Control.Label)
	view.Control.HelpText = tr.text(view.Control.HelpText)
	if len(view.Options) == 0 {
		return
	}
	options := make([]model.FlatOption, len(view.Options))
	copy(options, view.Options)
	for i := range options {
		options[i].Label = tr.text(options[i].Label)
	}
	view.Options = options
}

func (tr translator) text(value string) string {
	key := strings.TrimSpace(value)
	if key == "" {
		return value
	}
	if tr.t == nil {
		return tr.onMissing(tr.locale, key, value, ErrMissingTranslator)
	}
	result, err := tr.t.Translate(tr.locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return tr.onMissing(tr.locale, key, value, err)
}
