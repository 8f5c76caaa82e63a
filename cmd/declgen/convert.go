package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"declgen/internal/declfile"
	"declgen/internal/source"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert --to <toml|yaml|json|msgpack> <document>",
		Short: "Re-encode a type document in another format",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	cmd.Flags().String("to", "", "target format (toml|yaml|json|msgpack)")
	cmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return errors.Wrap(err, "failed to get to flag")
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return errors.Wrap(err, "failed to get out flag")
	}
	target := declfile.Format(strings.ToLower(strings.TrimSpace(to)))

	fs := source.NewFileSet()
	format, id, err := declfile.Read(fs, args[0])
	if err != nil {
		return err
	}
	doc, err := declfile.Decode(format, fs.Get(id).Content)
	if err != nil {
		return errors.Wrapf(err, "%s", args[0])
	}
	// Only well-formed trees are worth converting.
	if _, err := doc.Build(); err != nil {
		return errors.Wrapf(err, "%s", args[0])
	}
	data, err := declfile.Encode(target, doc)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "write document")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}
	return nil
}
