package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/internal/config"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	cfg    *config.Configuration
	logger *zap.Logger
	driver tui.PromptDriver

	loader   *loader.Loader
	importer *openapi.Importer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "dynform",
		Short: "Render and fill dynamic forms",
		Long: `dynform works with dynamic form metadata: sections of groups of
select, multiselect and number controls.

Metadata is read from JSON or YAML files, URLs, or generated from the request
body of an OpenAPI operation.`,
		Example: `  # Render a form as HTML
  dynform render settings.yaml

  # Fill a form in the terminal and print the data as JSON
  dynform fill settings.yaml

  # Check structure and validity
  dynform check settings.yaml --strict

  # Generate metadata from an OpenAPI operation
  dynform import api.yaml --operation createJob`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a JSON config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRenderCmd(a),
		newFillCmd(a),
		newCheckCmd(a),
		newImportCmd(a),
	)
	return root
}

// execute runs cmd and prints any error once.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.loader = loader.New(
		loader.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		loader.WithLogger(logger),
	)
	a.importer = openapi.New(openapi.WithLogger(logger))
	return nil
}

func (a *app) formConfig() form.Config {
	s := a.cfg.Form
	return form.Config{
		ID:                  s.ID,
		IncludeSubmitButton: s.IncludeSubmitButton,
		SubmitText:          s.SubmitText,
		RequiredText:        s.RequiredText,
		SelectText:          s.SelectText,
		DocumentationText:   s.DocumentationText,
	}
}

// registry holds the HTML and TUI renderers configured from a.cfg.
func (a *app) registry(tuiOptions ...tui.Option) (*render.Registry, error) {
	htmlOptions := []html.Option{
		html.WithLogger(a.logger),
		html.WithStylesheetLink(a.cfg.HTML.Stylesheet),
	}
	if dir := a.cfg.HTML.TemplatesDir; dir != "" {
		htmlOptions = append(htmlOptions, html.WithTemplatesDir(dir))
	}
	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		return nil, err
	}

	driver := a.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(a.stderr)
	}
	base := []tui.Option{
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormat(a.cfg.TUI.Format)),
		tui.WithConfirmSubmit(a.cfg.TUI.ConfirmSubmit),
		tui.WithDocumentation(a.cfg.TUI.Documentation),
		tui.WithLogger(a.logger),
	}
	tuiRenderer, err := tui.New(append(base, tuiOptions...)...)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(tuiRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}

func (a *app) orchestrator(presetPath string, registry *render.Registry) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithLoader(a.loader),
		orchestrator.WithImporter(a.importer),
		orchestrator.WithDefaultRenderer(a.cfg.Renderer),
		orchestrator.WithLogger(a.logger),
	}
	if registry != nil {
		options = append(options, orchestrator.WithRegistry(registry))
	}
	if presetPath != "" {
		data, err := os.ReadFile(presetPath)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformers(preset))
	}
	return orchestrator.New(options...), nil
}

// sourceFlags are shared by every command that reads metadata.
type sourceFlags struct {
	operation string
	preset    string
}

func (f *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.operation, "operation", "o", "", "Treat the source as an OpenAPI document and use this operation")
	cmd.Flags().StringVar(&f.preset, "preset", "", "JSON or YAML preset patching sections and controls")
}

func (f *sourceFlags) request(location string) (orchestrator.Request, error) {
	src, err := loader.SourceFor(strings.TrimSpace(location))
	if err != nil {
		return orchestrator.Request{}, err
	}
	return orchestrator.Request{Source: src, OperationID: f.operation}, nil
}

func writeOutput(ctx context.Context, stdout io.Writer, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
