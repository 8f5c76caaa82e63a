package source

import (
	"bytes"
	"path/filepath"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// normalizeText strips a UTF-8 BOM and turns CRLF into LF. Lone CR bytes are
// kept; codecs reject them where they matter.
func normalizeText(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if trimmed, ok := bytes.CutPrefix(content, bom); ok {
		content = trimmed
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// normalizePath gives one slash-separated spelling per path so that
// diagnostics compare equal across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the absolute, slash-normalized form of p.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns p relative to baseDir.
func RelativePath(p, baseDir string) (string, error) {
	absP, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absP)
	if err != nil {
		return "", err
	}
	return normalizePath(rel), nil
}
