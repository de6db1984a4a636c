package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/syssam/regen/gen"
	"github.com/syssam/regen/load"
)

type generateOptions struct {
	config  string
	check   bool
	dryRun  bool
	watch   bool
	workers int
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rewrite every region described by the job file",
		Long: `Rewrite every region described by the job file.

With --check nothing is written and the command fails when a region is out
of date, which makes it suitable for CI. With --dry-run the files that
would change are logged. With --watch the job is re-run whenever the job
file, the registry dump or the feature policy changes.

Example:
  regen generate -c regen.yaml
  regen generate --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", load.DefaultJobFile, "Job file")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail if any region is stale instead of writing")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Log the files that would change without writing")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when inputs change")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Files rewritten in parallel (default GOMAXPROCS or the job setting)")
	cmd.MarkFlagsMutuallyExclusive("check", "dry-run")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")
	return cmd
}

func (o *generateOptions) mode() gen.Mode {
	switch {
	case o.check:
		return gen.ModeCheck
	case o.dryRun:
		return gen.ModeDryRun
	}
	return gen.ModeWrite
}

func runGenerate(ctx context.Context, opts *generateOptions) error {
	if opts.watch {
		return watch(ctx, opts.config, func(ctx context.Context) error {
			return generateOnce(ctx, opts)
		})
	}
	return generateOnce(ctx, opts)
}

// generateOnce reads the job from disk and runs it.
func generateOnce(ctx context.Context, opts *generateOptions) error {
	job, err := load.ReadJob(opts.config)
	if err != nil {
		return err
	}
	extra := []gen.Option{gen.WithMode(opts.mode())}
	if opts.workers > 0 {
		extra = append(extra, gen.WithWorkers(opts.workers))
	}
	cfg, err := job.Config(extra...)
	if err != nil {
		return err
	}
	_, err = gen.Generate(ctx, cfg)
	return err
}
