// Command regen rewrites the generated regions of Java sources from a game
// registry dump.
//
// Usage:
//
//	regen generate [-c regen.yaml] [--check | --dry-run] [--watch]
//	regen registries [registries.json]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/regen/internal/ctxlog"
)

// rootOptions holds the global flags.
type rootOptions struct {
	verbose   bool
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Rewrite generated enum regions from game registries",
		Long: `regen keeps the generated regions of Java API sources in sync with the
game's registries.

Each region is delimited by "// Start generate - <name>" and
"// End generate - <name>" comments and is filled with one enum constant
per registry entry. Regions are described in a regen.yaml job file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logFormat, opts.verbose)
			if err != nil {
				return err
			}
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(newGenerateCmd(), newRegistriesCmd())
	return cmd
}

// newLogger returns a slog logger writing to w in the given format.
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "regen: %v\n", err)
		stop()
		os.Exit(1)
	}
}
