package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/ustar"
)

func newCreateCommand(opts *rootOptions) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "create PATH...",
		Short: "Create an archive from the given paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(opts); err != nil {
				return err
			}
			buildOpts := buildOptions(opts, owner)

			a, err := ustar.New(args[0], buildOpts...)
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				if err := a.Add(path, buildOpts...); err != nil {
					return err
				}
			}
			n, err := a.WriteFile(opts.file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %d entries)\n", opts.file, n, a.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", os.Getenv("USER"), "owner name recorded in headers")
	return cmd
}

func newAppendCommand(opts *rootOptions) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "append PATH...",
		Short: "Append paths to an existing archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(opts); err != nil {
				return err
			}
			a, err := ustar.OpenFile(opts.file, ustar.OpenWithLogger(opts.logger()))
			if err != nil {
				return err
			}
			buildOpts := buildOptions(opts, owner)
			for _, path := range args {
				if err := a.Add(path, buildOpts...); err != nil {
					return err
				}
			}
			_, err = a.WriteFile(opts.file)
			return err
		},
	}
	cmd.Flags().StringVar(&owner, "owner", os.Getenv("USER"), "owner name recorded in headers")
	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var digests bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archive entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(opts); err != nil {
				return err
			}
			a, err := ustar.OpenFile(opts.file, ustar.OpenWithLogger(opts.logger()))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range a.Inspect().Summaries() {
				if digests {
					fmt.Fprintf(out, "%-8s %10d  %s  %s\n", s.Type, s.Size, s.Digest, s.Name)
					continue
				}
				fmt.Fprintf(out, "%-8s %10d  %s\n", s.Type, s.Size, s.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&digests, "digests", false, "include content digests")
	return cmd
}

func newExtractCommand(opts *rootOptions) *cobra.Command {
	var (
		dest      string
		overwrite bool
		preserve  bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract every entry to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(opts); err != nil {
				return err
			}
			a, err := ustar.OpenFile(opts.file, ustar.OpenWithLogger(opts.logger()))
			if err != nil {
				return err
			}
			return a.Extract(dest,
				ustar.ExtractWithOverwrite(overwrite),
				ustar.ExtractWithPreserveMode(preserve),
				ustar.ExtractWithPreserveTimes(preserve),
			)
		},
	}
	cmd.Flags().StringVarP(&dest, "directory", "C", ".", "destination directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing files")
	cmd.Flags().BoolVar(&preserve, "preserve", false, "preserve modes and times")
	return cmd
}

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove NAME...",
		Short: "Remove the first entry matching each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(opts); err != nil {
				return err
			}
			a, err := ustar.OpenFile(opts.file, ustar.OpenWithLogger(opts.logger()))
			if err != nil {
				return err
			}
			for _, name := range args {
				if !a.Remove(name) {
					return fmt.Errorf("no entry named %q", name)
				}
			}
			_, err = a.WriteFile(opts.file)
			return err
		},
	}
	return cmd
}

func buildOptions(opts *rootOptions, owner string) []ustar.BuildOption {
	buildOpts := []ustar.BuildOption{ustar.BuildWithLogger(opts.logger())}
	if owner != "" {
		buildOpts = append(buildOpts, ustar.BuildWithOwnerName(owner))
	}
	return buildOpts
}
