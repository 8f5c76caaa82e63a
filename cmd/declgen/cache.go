package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"declgen/internal/driver"
)

// openCacheFromFlags returns nil unless --cache is set.
func openCacheFromFlags(cmd *cobra.Command) (*driver.Cache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cache flag")
	}
	if !enabled {
		return nil, nil
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cache-dir flag")
	}
	return driver.OpenCache(dir)
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the output cache",
	}
	clean := &cobra.Command{
		Use:   "clean",
		Short: "Remove every cached document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("cache-dir")
			if err != nil {
				return errors.Wrap(err, "failed to get cache-dir flag")
			}
			cache, err := driver.OpenCache(dir)
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return err
			}
			quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", cache.Dir())
			}
			return nil
		},
	}
	clean.Flags().String("cache-dir", "", "cache directory (default: user cache dir)")
	cmd.AddCommand(clean)
	return cmd
}
