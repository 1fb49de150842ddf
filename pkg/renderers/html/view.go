package html

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/form"
)

type optionView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Depth    int    `json:"depth"`
	Selected bool   `json:"selected"`
}

type controlView struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              string       `json:"type"`
	Label             string       `json:"label"`
	HelpText          string       `json:"helpText"`
	Required          bool         `json:"required"`
	RequiredClass     string       `json:"requiredClass"`
	Empty             bool         `json:"empty"`
	Valid             bool         `json:"valid"`
	ExcludeNullOption bool         `json:"excludeNullOption"`
	ColumnWidth       int          `json:"columnWidth"`
	Options           []optionView `json:"options"`
	Display           string       `json:"display"`
	Min               string       `json:"min"`
	Max               string       `json:"max"`
	Errors            []string     `json:"errors"`
}

type groupView struct {
	Label  string       `json:"label"`
	Valid  bool         `json:"valid"`
	Single *controlView `json:"single"`
}

type sectionView struct {
	Index             int    `json:"index"`
	Label             string `json:"label"`
	Description       string `json:"description"`
	Documentation     string `json:"documentation"`
	DocumentationOpen bool   `json:"documentationOpen"`
	Collapsible       bool   `json:"collapsible"`
	Visible           bool   `json:"visible"`
	Valid             bool   `json:"valid"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type themeView struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	CSSVarsStyle string            `json:"cssVarsStyle"`
	Tokens       map[string]string `json:"tokens"`
}

func newControlView(formID string, view form.ControlView, errors []string) controlView {
	control := view.Control
	out := controlView{
		ID:                formID + "-" + control.Name,
		Name:              control.Name,
		Type:              string(control.Type),
		Label:             control.Label,
		HelpText:          control.HelpText,
		Required:          control.Required,
		RequiredClass:     RequiredFilledClass,
		Empty:             view.Empty,
		Valid:             view.Valid,
		ExcludeNullOption: control.ExcludeNullOption,
		ColumnWidth:       view.ColumnWidth,
		Options:           make([]optionView, 0, len(view.Options)),
		Display:           view.Display,
		Min:               formatBound(control.Min),
		Max:               formatBound(control.Max),
		Errors:            errors,
	}
	if view.Empty {
		out.RequiredClass = RequiredEmptyClass
	}

	selected := make(map[string]struct{}, len(view.Selected))
	for _, id := range view.Selected {
		selected[id] = struct{}{}
	}
	for _, option := range view.Options {
		_, isSelected := selected[option.ID]
		out.Options = append(out.Options, optionView{
			ID:       option.ID,
			Label:    option.Label,
			Depth:    option.Depth,
			Selected: isSelected,
		})
	}
	return out
}

func formatBound(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
		Tokens:       cfg.Tokens,
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(vars[key]))
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
