package diag

// Severity orders diagnostics; higher values are more severe.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning never fails a run unless warnings are promoted.
	SevWarning
	// SevError makes the owning document fail.
	SevError
)

// String is the upper-case form used in JSON output.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by golden and pretty output.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
