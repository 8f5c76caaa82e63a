package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"

	"declgen/internal/declfile"
)

// ErrNoDocuments is returned when the inputs expand to nothing.
var ErrNoDocuments = errors.New("no declaration documents found")

// ListDocuments expands files and directories into a sorted, duplicate-free
// list of documents. Directories are walked recursively; explicitly named
// files are kept even with an unknown extension so that loading reports them.
func ListDocuments(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			// Missing files surface as IO diagnostics.
			if errors.Is(err, os.ErrNotExist) {
				files = append(files, filepath.Clean(in))
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", in)
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(in))
			continue
		}
		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && declfile.IsDocument(path) {
				files = append(files, filepath.Clean(path))
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", in)
		}
	}
	if len(files) == 0 {
		return nil, ErrNoDocuments
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
