package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"declgen/internal/diagfmt"
	"declgen/internal/gen"
	"declgen/internal/logger"
	"declgen/internal/project"
)

// runSettings is declgen.toml with command-line overrides applied.
type runSettings struct {
	manifest         *project.Manifest
	config           gen.Config
	inputs           []string
	outDir           string
	jobs             int
	format           diagfmt.Format
	warningsAsErrors bool
	withNotes        bool
	quiet            bool
	timings          bool
}

// addGenerationFlags registers flags shared by gen and diag.
func addGenerationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("project", ".", "directory to start the declgen.toml search from")
	f.Int("jobs", 0, "max parallel documents (0=auto)")
	f.String("format", "pretty", "diagnostics format (pretty|short|json)")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Bool("with-notes", false, "include diagnostic notes in output")
	f.Bool("static-accessors", false, "emit class accessor methods for static fields")
	f.StringSlice("copyable", nil, "extra Java types whose properties default to copy")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.Bool("cache", false, "reuse cached output for unchanged documents")
	f.String("cache-dir", "", "cache directory (default: user cache dir)")
}

// resolveSettings loads the nearest manifest and overlays explicitly set flags.
func resolveSettings(cmd *cobra.Command, args []string) (*runSettings, error) {
	f := cmd.Flags()
	start, err := f.GetString("project")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get project flag")
	}
	manifest, found, err := project.LoadManifest(start)
	if err != nil {
		return nil, err
	}
	cfg := project.Default()
	if found {
		cfg = manifest.Config
	}

	s := &runSettings{
		manifest:         manifest,
		jobs:             cfg.Generate.Jobs,
		format:           diagfmt.Format(cfg.Diagnostics.Format),
		warningsAsErrors: cfg.Diagnostics.WarningsAsErrors,
	}
	if found {
		s.outDir = manifest.OutDir()
		s.inputs = manifest.Inputs()
	}

	if f.Changed("jobs") {
		if s.jobs, err = f.GetInt("jobs"); err != nil {
			return nil, errors.Wrap(err, "failed to get jobs flag")
		}
	}
	if f.Changed("format") {
		format, err := f.GetString("format")
		if err != nil {
			return nil, errors.Wrap(err, "failed to get format flag")
		}
		s.format = diagfmt.Format(strings.ToLower(format))
	}
	if f.Changed("warnings-as-errors") {
		if s.warningsAsErrors, err = f.GetBool("warnings-as-errors"); err != nil {
			return nil, errors.Wrap(err, "failed to get warnings-as-errors flag")
		}
	}
	if f.Changed("static-accessors") {
		if cfg.Generate.StaticAccessorMethods, err = f.GetBool("static-accessors"); err != nil {
			return nil, errors.Wrap(err, "failed to get static-accessors flag")
		}
	}
	if f.Changed("copyable") {
		extra, err := f.GetStringSlice("copyable")
		if err != nil {
			return nil, errors.Wrap(err, "failed to get copyable flag")
		}
		cfg.Generate.CopyableTypes = append(cfg.Generate.CopyableTypes, extra...)
	}
	if f.Lookup("out") != nil && f.Changed("out") {
		if s.outDir, err = f.GetString("out"); err != nil {
			return nil, errors.Wrap(err, "failed to get out flag")
		}
	}
	pf := cmd.Root().PersistentFlags()
	if pf.Changed("max-diagnostics") {
		if cfg.Diagnostics.Max, err = pf.GetInt("max-diagnostics"); err != nil {
			return nil, errors.Wrap(err, "failed to get max-diagnostics flag")
		}
	}
	if s.withNotes, err = f.GetBool("with-notes"); err != nil {
		return nil, errors.Wrap(err, "failed to get with-notes flag")
	}
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, errors.Wrap(err, "failed to get quiet flag")
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return nil, errors.Wrap(err, "failed to get timings flag")
	}

	// Flags and the manifest go through the same checks.
	cfg.Generate.Jobs = s.jobs
	cfg.Diagnostics.Format = string(s.format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.config = cfg.GenConfig()

	if len(args) > 0 {
		s.inputs = args
	}
	if len(s.inputs) == 0 {
		return nil, errors.WithHint(
			errors.New("no input documents"),
			"pass files or directories, or list them in [generate].inputs of "+project.ManifestName)
	}
	return s, nil
}

// newLogger builds the operational logger from the persistent flags.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	pf := cmd.Root().PersistentFlags()
	jsonLogs, err := pf.GetBool("log-json")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get log-json flag")
	}
	verbosity, err := pf.GetCount("verbose")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get verbose flag")
	}
	return logger.New(logger.Options{JSON: jsonLogs, Verbosity: verbosity, Output: cmd.ErrOrStderr()}), nil
}
