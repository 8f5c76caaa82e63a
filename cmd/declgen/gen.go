package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"declgen/internal/diagfmt"
	"declgen/internal/driver"
	"declgen/internal/observ"
	"declgen/internal/ui"
	"declgen/internal/version"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [flags] [document|directory]...",
		Short: "Generate declarations for type documents",
		Long: `Generate header declarations for every .toml, .yaml, .json or .msgpack document.
Without --out (or [generate].out_dir) the declarations are printed to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, args, true)
		},
	}
	addGenerationFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "directory for generated headers")
	return cmd
}

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] [document|directory]...",
		Short: "Report diagnostics without writing declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, args, false)
		},
	}
	addGenerationFlags(cmd)
	return cmd
}

// runGeneration drives both gen and diag. emit selects whether declaration
// text is printed or written; diagnostics are always rendered.
func runGeneration(cmd *cobra.Command, args []string, emit bool) error {
	settings, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	paths, err := driver.ListDocuments(settings.inputs)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if settings.timings {
		timer = observ.NewTimer()
	}
	cache, err := openCacheFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Config:           settings.config,
		Jobs:             settings.jobs,
		Cache:            cache,
		Version:          version.Fingerprint(),
		WarningsAsErrors: settings.warningsAsErrors,
		Logger:           log,
		Timer:            timer,
	}
	if emit {
		opts.OutDir = settings.outDir
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return errors.Wrap(err, "failed to get ui flag")
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	useUI := !settings.quiet && len(paths) > 1 && shouldUseTUI(mode, cmd.ErrOrStderr())

	res, err := generate(cmd.Context(), cmd.ErrOrStderr(), paths, opts, useUI, log)
	if err != nil {
		dumpTraceOnFailure(cmd.ErrOrStderr())
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if emit && opts.OutDir == "" {
		if err := printDeclarations(stdout, res); err != nil {
			return err
		}
	}

	// diag owns stdout; gen keeps it for declarations.
	diagOut := stderr
	if !emit {
		diagOut = stdout
	}
	bag := res.Diagnostics()
	if !settings.quiet || bag.HasErrors() {
		err := diagfmt.Write(diagOut, bag, res.FileSet, diagfmt.Options{
			Format: settings.format,
			Pretty: diagfmt.PrettyOpts{
				Color:     useColor(),
				PathMode:  diagfmt.PathModeRelative,
				ShowNotes: settings.withNotes,
			},
			JSON: diagfmt.JSONOpts{
				PathMode:     diagfmt.PathModeRelative,
				IncludeNotes: settings.withNotes,
			},
		})
		if err != nil {
			return errors.Wrap(err, "render diagnostics")
		}
	}

	if emit && opts.OutDir != "" && !settings.quiet {
		printWritten(stderr, res)
	}
	if timer != nil {
		printTimings(stderr, timer, settings.format)
	}

	if res.HasErrors() {
		dumpTraceOnFailure(stderr)
		return errDiagnostics
	}
	return nil
}

// generate runs the driver, with the progress UI attached when requested.
func generate(ctx context.Context, out io.Writer, paths []string, opts driver.Options, useUI bool, log *zap.Logger) (*driver.Result, error) {
	if !useUI {
		return driver.Generate(ctx, paths, opts)
	}
	events := make(chan driver.Event, 64)
	opts.Progress = driver.ChannelSink{Ch: events}

	var (
		res    *driver.Result
		genErr error
	)
	go func() {
		defer close(events)
		res, genErr = driver.Generate(ctx, paths, opts)
	}()
	if err := ui.RunProgress(ctx, out, "declgen", paths, events); err != nil {
		log.Warn("progress UI stopped", zap.Error(err))
	}
	// Drain whatever the UI did not consume; this also waits for Generate.
	for range events {
	}
	return res, genErr
}

func printDeclarations(w io.Writer, res *driver.Result) error {
	texts := make([]string, 0, len(res.Documents))
	for i := range res.Documents {
		if text := res.Documents[i].Text; text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return nil
	}
	out := strings.Join(texts, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, "write declarations")
	}
	return nil
}

func printWritten(w io.Writer, res *driver.Result) {
	written, cached := 0, 0
	for i := range res.Documents {
		doc := &res.Documents[i]
		if doc.OutputPath == "" {
			continue
		}
		written++
		if doc.Cached {
			cached++
		}
	}
	if cached > 0 {
		fmt.Fprintf(w, "wrote %d headers (%d from cache)\n", written, cached)
		return
	}
	fmt.Fprintf(w, "wrote %d headers\n", written)
}
