package source

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
)

// FileSet owns the declaration documents loaded for one run. It is safe for
// concurrent use; loaded Files are never modified.
type FileSet struct {
	mu      sync.RWMutex
	files   []File
	baseDir string // база для относительных путей в диагностиках
}

// NewFileSet creates an empty FileSet whose relative paths are computed
// against the working directory.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// NewFileSetWithBase creates an empty FileSet rooted at baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// SetBaseDir changes the directory relative paths are computed against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.mu.Lock()
	fileSet.baseDir = dir
	fileSet.mu.Unlock()
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fileSet *FileSet) BaseDir() string {
	fileSet.mu.RLock()
	dir := fileSet.baseDir
	fileSet.mu.RUnlock()
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return dir
}

// Add stores content under path and returns a new FileID. Adding the same
// path twice keeps both versions.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	file := File{
		Path:    normalizePath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	id, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(errors.Wrap(err, "file count overflow"))
	}
	file.ID = FileID(id)
	fileSet.files = append(fileSet.files, file)
	return file.ID
}

// Load reads a text document from disk, normalizing BOM and CRLF.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalizeText(content)
	return fileSet.Add(path, content, flags), nil
}

// LoadBinary reads a file from disk as is. Binary documents must not be
// rewritten by CRLF or BOM handling.
func (fileSet *FileSet) LoadBinary(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, FileBinary), nil
}

// AddVirtual adds in-memory content with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id, or nil if id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Len returns the number of loaded files.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// FormatPath renders the document path in the given style. baseDir is only
// used by PathRelative; empty means the working directory.
func (f *File) FormatPath(style PathStyle, baseDir string) string {
	switch style {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathRelative:
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBase:
		return filepath.Base(f.Path)
	default:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
