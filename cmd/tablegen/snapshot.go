package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/compiler/load"
)

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	var (
		ddlPath string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save introspected table metadata for offline runs",
		Long: `Snapshot introspects the database of one context (or parses a DDL file)
and writes the catalog to a file that resolve --snapshot can read back
without a database connection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			contexts, err := root.contexts()
			if err != nil {
				return err
			}
			if len(contexts) != 1 {
				return fmt.Errorf("snapshot needs exactly one context, found %d; use --context", len(contexts))
			}
			c := contexts[0]
			catalog, err := catalogSource{ddlPath: ddlPath}.load(cmd.Context(), c, root.logger)
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create snapshot: %w", err)
			}
			if err := load.WriteSnapshot(f, catalog); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			root.logger.Info().Str("context", c.ID).Int("tables", catalog.Len()).Str("file", output).Msg("snapshot written")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d tables to %s\n", color.GreenString("wrote"), catalog.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&ddlPath, "ddl", "", "read table metadata from a CREATE TABLE script")
	cmd.Flags().StringVarP(&output, "output", "o", "", "snapshot file to write")
	return cmd
}
