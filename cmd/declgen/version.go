package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"declgen/internal/version"
)

type versionPayload struct {
	Tool        string `json:"tool"`
	Version     string `json:"version"`
	Fingerprint string `json:"fingerprint"`
	GitCommit   string `json:"git_commit,omitempty"`
	BuildDate   string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show declgen build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return errors.Wrap(err, "failed to get format flag")
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "pretty":
				fmt.Fprint(out, version.Long(useColor()))
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(versionPayload{
					Tool:        "declgen",
					Version:     version.Version,
					Fingerprint: version.Fingerprint(),
					GitCommit:   version.GitCommit,
					BuildDate:   version.BuildDate,
				})
			default:
				return errors.Newf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}
