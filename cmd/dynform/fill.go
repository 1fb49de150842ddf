package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

type fillFlags struct {
	sourceFlags
	format  string
	confirm bool
	output  string
}

func newFillCmd(a *app) *cobra.Command {
	flags := &fillFlags{}
	cmd := &cobra.Command{
		Use:   "fill <source>",
		Short: "Fill a form interactively and print the submitted data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var options []tui.Option
			if flags.format != "" {
				options = append(options, tui.WithOutputFormat(tui.OutputFormat(flags.format)))
			}
			if cmd.Flags().Changed("confirm") {
				options = append(options, tui.WithConfirmSubmit(flags.confirm))
			}
			registry, err := a.registry(options...)
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(flags.preset, registry)
			if err != nil {
				return err
			}
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}
			cfg := a.formConfig()
			req.Config = &cfg
			req.Renderer = "tui"

			out, err := orch.Generate(ctx, req)
			if err != nil {
				return err
			}
			return writeOutput(ctx, a.stdout, flags.output, out)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: json, form or pretty")
	cmd.Flags().BoolVar(&flags.confirm, "confirm", false, "Ask for confirmation before submitting")
	cmd.Flags().StringVarP(&flags.output, "output", "O", "", "Write output to a file instead of stdout")
	return cmd
}
