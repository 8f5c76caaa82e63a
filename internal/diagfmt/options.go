package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value onto a PathMode; unknown values mean auto.
func ParsePathMode(s string) PathMode {
	switch s {
	case "absolute":
		return PathModeAbsolute
	case "relative":
		return PathModeRelative
	case "basename":
		return PathModeBasename
	default:
		return PathModeAuto
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	Width     uint8 // максимальная ширина сообщения, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}
