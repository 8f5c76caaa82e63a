package declfile

import (
	"github.com/cockroachdb/errors"

	"declgen/internal/source"
)

// ErrRead marks documents that could not be read from disk.
var ErrRead = errors.New("cannot read declaration document")

// Read registers path in fs without decoding it. Text formats get the
// FileSet's CRLF/BOM normalization; msgpack is kept byte for byte.
func Read(fs *source.FileSet, path string) (Format, source.FileID, error) {
	format, err := FormatOf(path)
	if err != nil {
		return "", 0, err
	}
	var id source.FileID
	if format == FormatMsgpack {
		id, err = fs.LoadBinary(path)
	} else {
		id, err = fs.Load(path)
	}
	if err != nil {
		return "", 0, errors.Mark(errors.Wrapf(err, "read %s", path), ErrRead)
	}
	return format, id, nil
}

// Load reads path into fs, decodes it by extension and builds the unit.
// The returned FileID is valid whenever the file itself was read.
func Load(fs *source.FileSet, path string) (*Unit, source.FileID, error) {
	format, id, err := Read(fs, path)
	if err != nil {
		return nil, 0, err
	}
	unit, err := Parse(format, fs.Get(id).Content)
	if err != nil {
		return nil, id, errors.Wrapf(err, "%s", path)
	}
	return unit, id, nil
}

// Parse decodes and builds an in-memory document.
func Parse(format Format, data []byte) (*Unit, error) {
	doc, err := Decode(format, data)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}
