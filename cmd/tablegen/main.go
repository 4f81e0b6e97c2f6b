// Command tablegen resolves table metadata and relation declarations into
// generation-ready domain types.
//
//	tablegen validate --config tablegen.yaml
//	tablegen resolve --config tablegen.yaml --ddl schema.sql
//	tablegen snapshot --config tablegen.yaml -o catalog.msgpack
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		stop()
		os.Exit(1)
	}
}
