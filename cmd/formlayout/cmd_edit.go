package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/editor"
	"github.com/goliatone/go-formlayout/pkg/preview"
)

func newEditCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the layout interactively and print the saved configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, store, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			saved, err := editor.New().Run(cmd.Context(), session)
			if err != nil || !saved {
				return err
			}
			stored, err := store.FetchConfiguration(cmd.Context(), session.UID)
			if err != nil {
				return err
			}
			return writeConfiguration(opts, output, stored)
		},
	}
	addInputFlags(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the saved configuration to a file instead of stdout")
	return cmd
}

func newPreviewCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the layout as an HTML grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, _, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			renderer, err := preview.New()
			if err != nil {
				return err
			}
			html, err := renderer.RenderSession(session)
			if err != nil {
				return err
			}
			if output != "" {
				return os.WriteFile(output, []byte(html), 0o644)
			}
			_, err = opts.out.Write([]byte(html))
			return err
		},
	}
	addInputFlags(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func writeConfiguration(opts *options, output string, cfg configuration.Configuration) error {
	if output == "" {
		return opts.writeJSON(cfg)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	sub := *opts
	sub.out = f
	return sub.writeJSON(cfg)
}
