package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration without touching the database",
		Long: `Validate loads the configuration file, resolves extends chains and reports
every problem of every context: empty table entries, malformed patterns,
incomplete relation declarations and missing target settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contexts, err := opts.contexts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			invalid := 0
			for _, c := range contexts {
				problems := c.Problems()
				if len(problems) == 0 {
					fmt.Fprintf(out, "%s %s\n", color.GreenString("ok"), c.ID)
					continue
				}
				invalid++
				fmt.Fprintf(out, "%s %s\n", color.RedString("invalid"), c.ID)
				for _, p := range problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
			}
			opts.logger.Debug().Int("contexts", len(contexts)).Int("invalid", invalid).Msg("validated")
			if invalid > 0 {
				return fmt.Errorf("%d of %d contexts invalid", invalid, len(contexts))
			}
			return nil
		},
	}
}
