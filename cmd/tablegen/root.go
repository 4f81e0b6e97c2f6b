package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/compiler/config"
	"github.com/syssam/tablegen/compiler/gen"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	contextID  string
	verbose    bool
	noColor    bool
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tablegen",
		Short: "Resolve database tables into generation-ready domain types",
		Long: `tablegen reads generation contexts from a YAML or TOML file, introspects
the configured tables and resolves the declared relations into typed fields.

Examples:
  tablegen validate
  tablegen resolve --ddl schema.sql
  tablegen resolve --watch
  tablegen snapshot -o catalog.msgpack
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.noColor {
				color.NoColor = true
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "tablegen.yaml", "configuration file (.yaml, .yml or .toml)")
	flags.StringVar(&opts.contextID, "context", "", "only use the context with this id")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newValidateCmd(opts),
		newResolveCmd(opts),
		newSnapshotCmd(opts),
	)
	return cmd
}

// newLogger returns a console logger tagged with a run id.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	}
	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Str("run", uuid.NewString()[:8]).
		Logger()
}

// contexts loads the configuration and returns the selected contexts in id
// order.
func (o *rootOptions) contexts() ([]*gen.Context, error) {
	all, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	return o.selectContexts(all)
}

func (o *rootOptions) selectContexts(all map[string]*gen.Context) ([]*gen.Context, error) {
	if o.contextID != "" {
		c, ok := all[o.contextID]
		if !ok {
			return nil, fmt.Errorf("context %q not found in %s", o.contextID, o.configPath)
		}
		return []*gen.Context{c}, nil
	}
	ids := lo.Keys(all)
	slices.Sort(ids)
	contexts := make([]*gen.Context, len(ids))
	for i, id := range ids {
		contexts[i] = all[id]
	}
	return contexts, nil
}
