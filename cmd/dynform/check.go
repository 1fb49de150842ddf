package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

var errInvalidForm = errors.New("form is not valid")

type checkReport struct {
	Valid    bool           `json:"valid"`
	Sections []sectionCheck `json:"sections"`
	Invalid  []string       `json:"invalid,omitempty"`
	Data     model.FormData `json:"data"`
}

type sectionCheck struct {
	Label    string `json:"label"`
	Valid    bool   `json:"valid"`
	Controls int    `json:"controls"`
}

type checkFlags struct {
	sourceFlags
	strict bool
}

func newCheckCmd(a *app) *cobra.Command {
	flags := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check <source>",
		Short: "Validate metadata structure and report form validity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			orch, err := a.orchestrator(flags.preset, nil)
			if err != nil {
				return err
			}
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}
			meta, err := orch.Resolve(ctx, req)
			if err != nil {
				return err
			}
			if err := model.Validate(meta); err != nil {
				return err
			}

			report := buildReport(meta)
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			if err := writeOutput(ctx, a.stdout, "", append(out, '\n')); err != nil {
				return err
			}
			if flags.strict && !report.Valid {
				return errInvalidForm
			}
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with an error when the form is invalid")
	return cmd
}

func buildReport(meta model.FormMeta) checkReport {
	meta = form.DefaultRegistry().Normalize(meta)
	report := checkReport{
		Valid:    form.FormValid(meta),
		Sections: make([]sectionCheck, 0, len(meta.ControlSections)),
		Data:     form.Serialize(meta),
	}
	for _, section := range meta.ControlSections {
		count := 0
		for _, group := range section.ControlGroups {
			count += len(group.Controls)
		}
		report.Sections = append(report.Sections, sectionCheck{
			Label:    section.Label,
			Valid:    form.SectionValid(section),
			Controls: count,
		})
	}
	meta.Walk(func(_ model.Ref, control model.Control) bool {
		if !form.ControlValid(control) {
			report.Invalid = append(report.Invalid, control.Name)
		}
		return true
	})
	return report
}
