package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/dialect/sql"
	"github.com/syssam/tablegen/dialect/sql/schema"
)

// catalogSource tells where table metadata comes from. At most one of the
// files is set; with neither, the context's connection is introspected.
type catalogSource struct {
	ddlPath      string
	snapshotPath string
}

func (s catalogSource) load(ctx context.Context, c *gen.Context, logger zerolog.Logger) (*load.Catalog, error) {
	switch {
	case s.ddlPath != "":
		data, err := os.ReadFile(s.ddlPath)
		if err != nil {
			return nil, fmt.Errorf("read ddl: %w", err)
		}
		logger.Debug().Str("file", s.ddlPath).Msg("parsing ddl")
		return load.ParseDDL(string(data))
	case s.snapshotPath != "":
		f, err := os.Open(s.snapshotPath)
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		logger.Debug().Str("file", s.snapshotPath).Msg("reading snapshot")
		return load.ReadSnapshot(f)
	default:
		return inspect(ctx, c, logger)
	}
}

func inspect(ctx context.Context, c *gen.Context, logger zerolog.Logger) (*load.Catalog, error) {
	if c.Connection == nil || c.Connection.Driver == "" {
		return nil, gen.NewConfigError("connection", c.ID, "context has no connection; use --ddl or --snapshot")
	}
	drv, err := sql.Open(c.Connection.Driver, c.Connection.DSN)
	if err != nil {
		return nil, err
	}
	defer drv.Close()
	if err := drv.Connect(ctx); err != nil {
		return nil, err
	}
	logger.Debug().Str("dialect", drv.Dialect()).Str("schema", c.Connection.Schema).Msg("inspecting database")
	return schema.Inspect(ctx, drv, c.Connection.Schema)
}
