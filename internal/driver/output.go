package driver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// HeaderName maps a document path to its output file name: Foo.toml -> Foo.h.
func HeaderName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".h"
}

// writeOutputs writes every document that produced text. Documents with
// error diagnostics still get their partial output; siblings are unaffected.
func writeOutputs(res *Result, dir string, progress ProgressSink) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", dir)
	}
	seen := make(map[string]string, len(res.Documents))
	for i := range res.Documents {
		doc := &res.Documents[i]
		if doc.Text == "" {
			continue
		}
		name := HeaderName(doc.Path)
		if prev, dup := seen[name]; dup {
			return errors.WithHintf(
				errors.Newf("%s and %s both map to %s", prev, doc.Path, name),
				"rename one of the documents or generate them into separate directories")
		}
		seen[name] = doc.Path

		progress.OnEvent(Event{File: doc.Path, Stage: StageWrite, Status: StatusWorking})
		target := filepath.Join(dir, name)
		if err := writeFileAtomic(target, []byte(doc.Text)); err != nil {
			progress.OnEvent(Event{File: doc.Path, Stage: StageWrite, Status: StatusError, Err: err})
			return err
		}
		doc.OutputPath = target
		progress.OnEvent(Event{File: doc.Path, Stage: StageWrite, Status: StatusDone})
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".declgen-*")
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(os.Rename(tmp, path), "write %s", path)
}
