package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/internal/config"
	"github.com/goliatone/go-formlayout/pkg/validation"
)

var errLintFailed = errors.New("lint: configuration has errors")

func newLintCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a stored configuration against its schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			policy := config.Layout{Overflow: opts.overflow}.OverflowPolicy()
			result := validation.CheckConfiguration(in.schema, in.config, validation.WithOverflowPolicy(policy))
			result.Issues = validation.Sorted(result.Issues)

			if asJSON {
				if err := opts.writeJSON(result); err != nil {
					return err
				}
			} else {
				for _, issue := range result.Issues {
					location := issue.Path
					if issue.Field != "" {
						location += " (" + issue.Field + ")"
					}
					if _, err := fmt.Fprintf(opts.out, "%s: %s -> %s\n", issue.Severity, location, issue.Message); err != nil {
						return err
					}
				}
			}
			if !result.Valid {
				return errLintFailed
			}
			return nil
		},
	}
	addInputFlags(cmd, opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
