// Command ustar creates, lists, extracts, and edits USTAR archives.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ustar:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	file    string
	verbose bool
}

func (o *rootOptions) logger() *slog.Logger {
	if !o.verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ustar",
		Short:         "Read and write USTAR tape archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "archive file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	cmd.AddCommand(
		newCreateCommand(opts),
		newAppendCommand(opts),
		newListCommand(opts),
		newExtractCommand(opts),
		newRemoveCommand(opts),
	)
	return cmd
}

func requireFile(opts *rootOptions) error {
	if opts.file == "" {
		return fmt.Errorf("no archive file given (use --file)")
	}
	return nil
}
