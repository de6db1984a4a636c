package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/regen/load"
)

func newRegistriesCmd() *cobra.Command {
	var config string
	cmd := &cobra.Command{
		Use:   "registries [registries.json]",
		Short: "List the registries of a dump with their entry counts",
		Long: `List the registries of a dump with their entry counts.

The dump defaults to the one named by the job file.

Example:
  regen registries generated/reports/registries.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dumpPath(config, args)
			if err != nil {
				return err
			}
			access, err := load.ReadDump(path, nil)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "REGISTRY\tENTRIES")
			for _, key := range access.Keys() {
				r, _ := access.Untyped(key)
				fmt.Fprintf(tw, "%s\t%d\n", key, r.Len())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", load.DefaultJobFile, "Job file naming the dump")
	return cmd
}

func dumpPath(config string, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	job, err := load.ReadJob(config)
	if err != nil {
		return "", err
	}
	return job.Path(job.Registries), nil
}
