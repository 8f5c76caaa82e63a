package diagfmt

import (
	"declgen/internal/diag"
	"declgen/internal/source"
)

const memoryPath = "<memory>"

// subjectPath formats the document path of a subject.
func subjectPath(s diag.Subject, fs *source.FileSet, mode PathMode) string {
	if fs == nil || !s.HasFile {
		return memoryPath
	}
	f := fs.Get(s.File)
	if f == nil {
		return memoryPath
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath(source.PathAbsolute, "")
	case PathModeRelative:
		return f.FormatPath(source.PathRelative, fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath(source.PathBase, "")
	default:
		return f.FormatPath(source.PathAuto, "")
	}
}
