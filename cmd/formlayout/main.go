// Command formlayout inspects, edits and serves edit-view layout
// configurations.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the flags shared by every command.
type options struct {
	out        io.Writer
	configFile string
	schema     string
	component  string
	layout     string
	overflow   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	root := &cobra.Command{
		Use:           "formlayout",
		Short:         "Configure the edit view of content types",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "service configuration file (default formlayout.yaml)")

	root.AddCommand(
		newNormalizeCmd(opts),
		newAvailableCmd(opts),
		newMainFieldsCmd(opts),
		newEditCmd(opts),
		newPreviewCmd(opts),
		newImportCmd(opts),
		newMigrateCmd(opts),
		newLintCmd(opts),
		newHistoryCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// addInputFlags registers the flags locating a schema and its configuration.
func addInputFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.schema, "schema", "", "content-type schema or OpenAPI document (path or URL)")
	cmd.Flags().StringVar(&opts.component, "component", "", "OpenAPI component to import from --schema")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "stored configuration document (default layout when empty)")
	cmd.Flags().StringVar(&opts.overflow, "overflow", "reject", `overflowing rows: "reject" or "clamp"`)
	_ = cmd.MarkFlagRequired("schema")
}
