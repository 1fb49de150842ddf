package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/render"
)

type renderFlags struct {
	sourceFlags
	renderer   string
	output     string
	action     string
	method     string
	theme      string
	variant    string
	errorsPath string
	hidden     map[string]string
	csrf       string
}

func newRenderCmd(a *app) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a form (HTML by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, flags, args[0])
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.renderer, "renderer", "r", "", "Renderer name (html, tui); defaults to the configured renderer")
	cmd.Flags().StringVarP(&flags.output, "output", "O", "", "Write output to a file instead of stdout")
	cmd.Flags().StringVar(&flags.action, "action", "", "Form action URL")
	cmd.Flags().StringVar(&flags.method, "method", "", "Form method")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "Theme name")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "Theme variant")
	cmd.Flags().StringVar(&flags.errorsPath, "errors", "", "JSON file of server errors keyed by control name or path")
	cmd.Flags().StringToStringVar(&flags.hidden, "hidden", nil, "Hidden fields as name=value")
	cmd.Flags().StringVar(&flags.csrf, "csrf", "", "CSRF token emitted as the _csrf hidden field")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, flags *renderFlags, location string) error {
	ctx := cmd.Context()
	registry, err := a.registry()
	if err != nil {
		return err
	}
	orch, err := a.orchestrator(flags.preset, registry)
	if err != nil {
		return err
	}
	req, err := flags.request(location)
	if err != nil {
		return err
	}

	meta, err := orch.Resolve(ctx, req)
	if err != nil {
		return err
	}
	cfg := a.formConfig()
	req.Meta = &meta
	req.Config = &cfg
	req.Renderer = flags.renderer

	opts := render.RenderOptions{
		Action:       firstNonEmpty(flags.action, a.cfg.HTML.Action),
		Method:       firstNonEmpty(flags.method, a.cfg.HTML.Method),
		HiddenFields: flags.hidden,
	}
	if flags.csrf != "" {
		opts.HiddenFields = render.MergeHiddenFields(opts.HiddenFields, render.CSRFToken("_csrf", flags.csrf))
	}
	if name, variant := firstNonEmpty(flags.theme, a.cfg.HTML.Theme), firstNonEmpty(flags.variant, a.cfg.HTML.Variant); name != "" || variant != "" {
		opts.Theme = &theme.RendererConfig{Theme: name, Variant: variant}
	}
	if flags.errorsPath != "" {
		payload, err := readErrors(flags.errorsPath)
		if err != nil {
			return err
		}
		mapping := render.MapErrorPayload(meta, payload)
		opts.Errors = mapping.Controls
		opts.FormErrors = mapping.Form
	}
	req.RenderOptions = opts

	out, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	return writeOutput(ctx, a.stdout, flags.output, out)
}

func readErrors(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read errors: %w", err)
	}
	var payload map[string][]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse errors %s: %w", path, err)
	}
	return payload, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
