// Package config loads dynform CLI settings from defaults, an optional JSON
// file and DYNFORM_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nesting levels: DYNFORM_TUI__FORMAT sets tui.format.
const EnvPrefix = "DYNFORM_"

// Configuration holds every CLI setting.
type Configuration struct {
	Renderer    string        `koanf:"renderer" validate:"required,oneof=html tui"`
	HTTPTimeout time.Duration `koanf:"http_timeout" validate:"min=0"`
	Form        FormSettings  `koanf:"form"`
	HTML        HTMLSettings  `koanf:"html"`
	TUI         TUISettings   `koanf:"tui"`
	Log         LogSettings   `koanf:"log"`
}

// FormSettings mirrors form.Config.
type FormSettings struct {
	ID                  string `koanf:"id" validate:"required"`
	IncludeSubmitButton bool   `koanf:"include_submit_button"`
	SubmitText          string `koanf:"submit_text"`
	RequiredText        string `koanf:"required_text"`
	SelectText          string `koanf:"select_text"`
	DocumentationText   string `koanf:"documentation_text"`
}

// HTMLSettings configures the HTML renderer.
type HTMLSettings struct {
	TemplatesDir string `koanf:"templates_dir"`
	Stylesheet   bool   `koanf:"stylesheet"`
	Theme        string `koanf:"theme"`
	Variant      string `koanf:"variant"`
	Action       string `koanf:"action"`
	Method       string `koanf:"method" validate:"omitempty,oneof=get post GET POST"`
}

// TUISettings configures the terminal renderer.
type TUISettings struct {
	Format        string `koanf:"format" validate:"oneof=json form pretty"`
	ConfirmSubmit bool   `koanf:"confirm_submit"`
	Documentation bool   `koanf:"documentation"`
}

// LogSettings selects the zap logger flavour.
type LogSettings struct {
	Level       string `koanf:"level" validate:"oneof=debug info warn error"`
	Development bool   `koanf:"development"`
}

// Defaults returns the flattened default values.
func Defaults() map[string]any {
	return map[string]any{
		"renderer":                   "html",
		"http_timeout":               "10s",
		"form.id":                    "d-form",
		"form.include_submit_button": true,
		"form.submit_text":           "Submit",
		"form.required_text":         "required",
		"form.select_text":           "Select...",
		"form.documentation_text":    "Documentation",
		"html.stylesheet":            false,
		"html.method":                "post",
		"tui.format":                 "json",
		"tui.confirm_submit":         false,
		"tui.documentation":          true,
		"log.level":                  "warn",
		"log.development":            false,
	}
}

// Load builds the configuration. path is optional; when set the file must
// exist.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("config: set default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func Validate(cfg Configuration) error {
	if err := validator.New().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("config: validate: %w", err)
		}
		problems := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s failed %q (%v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
