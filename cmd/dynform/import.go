package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type importFlags struct {
	sourceFlags
	format string
	list   bool
	output string
}

func newImportCmd(a *app) *cobra.Command {
	flags := &importFlags{}
	cmd := &cobra.Command{
		Use:   "import <openapi-document>",
		Short: "Generate form metadata from an OpenAPI operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}

			if flags.list {
				data, err := a.loader.Read(ctx, req.Source)
				if err != nil {
					return err
				}
				ops, err := a.importer.Operations(ctx, data)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
				for _, op := range ops {
					body := ""
					if op.HasBody {
						body = "body"
					}
					fmt.Fprintf(w, "%s\t%s %s\t%s\n", op.ID, op.Method, op.Path, body)
				}
				return w.Flush()
			}

			if req.OperationID == "" {
				return fmt.Errorf("--operation is required unless --list is set")
			}
			orch, err := a.orchestrator(flags.preset, nil)
			if err != nil {
				return err
			}
			meta, err := orch.Resolve(ctx, req)
			if err != nil {
				return err
			}

			var out []byte
			switch strings.ToLower(flags.format) {
			case "json":
				out, err = json.MarshalIndent(meta, "", "  ")
				out = append(out, '\n')
			case "yaml", "yml", "":
				out, err = yaml.Marshal(meta)
			default:
				return fmt.Errorf("unsupported format %q", flags.format)
			}
			if err != nil {
				return fmt.Errorf("encode metadata: %w", err)
			}
			return writeOutput(ctx, a.stdout, flags.output, out)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().BoolVar(&flags.list, "list", false, "List the operations of the document")
	cmd.Flags().StringVarP(&flags.output, "output", "O", "", "Write output to a file instead of stdout")
	return cmd
}
