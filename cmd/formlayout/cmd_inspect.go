package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNormalizeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print the flattened layout with fillers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, _, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			return opts.writeJSON(session.Rows())
		},
	}
	addInputFlags(cmd, opts)
	return cmd
}

func newAvailableCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "available",
		Short: "List visible attributes that are not placed yet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, _, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range session.Available() {
				if _, err := fmt.Fprintln(opts.out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addInputFlags(cmd, opts)
	return cmd
}

func newMainFieldsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "main-fields",
		Short: "List attributes eligible as entry title",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, _, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			current := session.Settings().MainField
			for _, option := range session.MainFieldOptions() {
				marker := " "
				if option.Value == current {
					marker = "*"
				}
				if _, err := fmt.Fprintf(opts.out, "%s %s\n", marker, option.Value); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addInputFlags(cmd, opts)
	return cmd
}
