package source

// FileID identifies one loaded document within a FileSet.
type FileID uint32

// FileFlags records what loading did to a document's bytes.
type FileFlags uint8

const (
	// FileVirtual marks content added from memory rather than read from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileBinary marks content stored without text normalization.
	FileBinary
)

// File is one declaration document as the generator saw it. Hash is the
// SHA-256 of Content and keys the output cache.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
}

// PathStyle selects how FormatPath renders File.Path.
type PathStyle uint8

const (
	// PathAuto keeps short or relative paths and shortens long absolute ones.
	PathAuto PathStyle = iota
	PathAbsolute
	PathRelative
	PathBase
)
