package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"declgen/internal/version"
)

// errDiagnostics is returned when a run finished but produced error
// diagnostics; they are already rendered, so main only sets the exit code.
var errDiagnostics = errors.New("generation reported errors")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "declgen",
		Short:         "Generate Objective-C declarations from Java type descriptions",
		Long:          `declgen renders header declarations for translated Java types and reports attribute and memory-semantics diagnostics`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics per document (0=unlimited)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "trace heartbeat interval (0 disables)")
	pf.Bool("log-json", false, "emit operational logs as JSON")
	pf.CountP("verbose", "v", "increase log verbosity (-v, -vv)")
	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := applyColorMode(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		session, err := startProfiling(cmd)
		if err != nil {
			cleanup()
			return err
		}
		runCleanup = func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
			}
			cleanup()
		}
		return nil
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		finishRun()
	}

	root.AddCommand(newGenCmd())
	root.AddCommand(newDiagCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	// PersistentPostRun is skipped when RunE fails.
	finishRun()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errDiagnostics) {
		fmt.Fprintf(stderr, "declgen: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(stderr, "hint: %s\n", hint)
		}
	}
	return 1
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
