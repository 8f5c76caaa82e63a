package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"declgen/internal/decl"
)

// Config is passed explicitly into every generation call; the emitter holds
// no process-wide switches.
type Config struct {
	// StaticAccessorMethods enables +getter/+setter methods for statics and
	// enum constants.
	StaticAccessorMethods bool
	// CopyableTypes are extra value-semantic reference types (qualified names)
	// whose readwrite properties become copy.
	CopyableTypes []string
	// MaxDiagnostics bounds the diagnostic bag; <= 0 means unbounded.
	MaxDiagnostics int
}

// Fingerprint identifies the configuration for output caching.
func (c Config) Fingerprint() string {
	copyable := slices.Clone(c.CopyableTypes)
	slices.Sort(copyable)
	h := sha256.New()
	fmt.Fprintf(h, "accessors=%t;copyable=%s;max=%d", c.StaticAccessorMethods, strings.Join(copyable, ","), c.MaxDiagnostics)
	return hex.EncodeToString(h.Sum(nil))
}

// UsageFacts records, per inner, local or anonymous class, whether its body
// references an enclosing instance member. It is computed upstream.
type UsageFacts map[*decl.TypeDecl]bool

// UsesOuter reports whether td needs its enclosing-instance link. A missing
// fact counts as used.
func (u UsageFacts) UsesOuter(td *decl.TypeDecl) bool {
	used, ok := u[td]
	return !ok || used
}
