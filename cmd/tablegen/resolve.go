package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/compiler/config"
	"github.com/syssam/tablegen/compiler/gen"
)

type resolveOptions struct {
	source    catalogSource
	workers   int
	keepGoing bool
	skip      []string
	require   []string
	json      bool
	watch     bool
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every configured table into a domain type",
		Long: `Resolve builds the type graph of each context: physical fields from the
introspected columns plus derived fields for the declared relations.

Table metadata is read from a DDL file (--ddl), a catalog snapshot
(--snapshot) or, by default, the database of the context's connection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.source.ddlPath != "" && opts.source.snapshotPath != "" {
				return errors.New("--ddl and --snapshot are mutually exclusive")
			}
			contexts, err := root.contexts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !opts.watch {
				return opts.run(cmd.Context(), root, contexts, out)
			}
			return opts.runWatch(cmd.Context(), root, contexts, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.source.ddlPath, "ddl", "", "read table metadata from a CREATE TABLE script")
	flags.StringVar(&opts.source.snapshotPath, "snapshot", "", "read table metadata from a catalog snapshot")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "tables resolved concurrently (default GOMAXPROCS)")
	flags.BoolVarP(&opts.keepGoing, "keep-going", "k", false, "report every failing table instead of stopping at the first")
	flags.StringSliceVar(&opts.skip, "skip", nil, "tables to leave out of generation")
	flags.StringSliceVar(&opts.require, "require", nil, "only keep tables with these statement features enabled")
	flags.BoolVar(&opts.json, "json", false, "print the graphs as JSON")
	flags.BoolVar(&opts.watch, "watch", false, "resolve again whenever the configuration changes")
	return cmd
}

func (o *resolveOptions) graphOptions(root *rootOptions) []gen.Option {
	opts := []gen.Option{
		gen.WithKeepGoing(o.keepGoing),
		gen.WithLogger(root.logger),
	}
	if o.workers > 0 {
		opts = append(opts, gen.WithWorkers(o.workers))
	}
	var hooks []gen.Hook
	if len(o.skip) > 0 {
		hooks = append(hooks, gen.SkipTables(o.skip...))
	}
	for _, name := range o.require {
		hooks = append(hooks, gen.RequireFeature(name))
	}
	if len(hooks) > 0 {
		opts = append(opts, gen.WithHooks(hooks...))
	}
	return opts
}

// run resolves every context and prints the graphs. Every context is
// attempted; the returned error joins the failures.
func (o *resolveOptions) run(ctx context.Context, root *rootOptions, contexts []*gen.Context, out io.Writer) error {
	var graphs []*gen.Graph
	var errs []error
	for _, c := range contexts {
		logger := root.logger.With().Str("context", c.ID).Logger()
		catalog, err := o.source.load(ctx, c, logger)
		if err != nil {
			errs = append(errs, fmt.Errorf("context %s: %w", c.ID, err))
			continue
		}
		g, err := gen.NewGraph(ctx, c, catalog, o.graphOptions(root)...)
		if err != nil {
			errs = append(errs, fmt.Errorf("context %s: %w", c.ID, err))
		}
		if g != nil {
			logger.Info().Int("types", len(g.Nodes)).Int("vetoed", len(g.Vetoed)).Msg("context resolved")
			graphs = append(graphs, g)
		}
	}
	var perr error
	if o.json {
		perr = printJSON(out, graphs)
	} else {
		printText(out, graphs)
	}
	return errors.Join(append(errs, perr)...)
}

func (o *resolveOptions) runWatch(ctx context.Context, root *rootOptions, contexts []*gen.Context, out io.Writer) error {
	if err := o.run(ctx, root, contexts, out); err != nil {
		root.logger.Error().Err(err).Msg("resolve failed")
	}
	w, err := config.NewWatcher(root.configPath, config.WithWatchLogger(root.logger))
	if err != nil {
		return err
	}
	defer w.Close()
	root.logger.Info().Str("file", root.configPath).Msg("watching for changes")
	err = w.Run(ctx, func(all map[string]*gen.Context, err error) {
		if err != nil {
			return
		}
		contexts, err := root.selectContexts(all)
		if err == nil {
			err = o.run(ctx, root, contexts, out)
		}
		if err != nil {
			root.logger.Error().Err(err).Msg("resolve failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
