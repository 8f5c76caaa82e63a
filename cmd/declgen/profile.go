package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"declgen/internal/prof"
)

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	pf := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = pf.GetString("cpuprofile"); err != nil {
		return nil, errors.Wrap(err, "failed to get cpuprofile flag")
	}
	if opts.Mem, err = pf.GetString("memprofile"); err != nil {
		return nil, errors.Wrap(err, "failed to get memprofile flag")
	}
	if opts.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return nil, errors.Wrap(err, "failed to get runtime-trace flag")
	}
	return prof.Start(opts)
}
