// Package prof wraps runtime/pprof and runtime/trace for the CLI profiling flags.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/cockroachdb/errors"
)

// Session owns the files of one profiling run. The zero value profiles nothing.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	memPath   string
}

// Options name output files; empty paths disable the corresponding profile.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Start begins CPU profiling and runtime tracing as requested. The heap
// profile is captured by Stop.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.Mem}
	if opts.CPU != "" {
		f, err := os.Create(opts.CPU)
		if err != nil {
			return nil, errors.Wrapf(err, "create cpu profile %s", opts.CPU)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "start cpu profile")
		}
		s.cpuFile = f
	}
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			s.stopCPU()
			return nil, errors.Wrapf(err, "create runtime trace %s", opts.Trace)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, errors.Wrap(err, "start runtime trace")
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends active profiles and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.stopCPU()
	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}
	if s.memPath == "" {
		return nil
	}
	path := s.memPath
	s.memPath = ""
	return writeMem(path)
}

func (s *Session) stopCPU() {
	if s.cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = s.cpuFile.Close()
	s.cpuFile = nil
}

func writeMem(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create heap profile %s", path)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write heap profile")
	}
	return errors.Wrap(f.Close(), "close heap profile")
}
