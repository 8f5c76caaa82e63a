package property

import "strings"

type Ownership uint8

const (
	OwnershipUnset Ownership = iota
	OwnershipWeak
	OwnershipStrong
)

type Mutability uint8

const (
	MutabilityUnset Mutability = iota
	MutabilityReadonly
	MutabilityReadwrite
)

type Atomicity uint8

const (
	// AtomicityDefault is atomic; it is never written out.
	AtomicityDefault Atomicity = iota
	AtomicityAtomic
	AtomicityNonatomic
)

// Attrs is the canonical attribute set of one property. Input token order is
// not kept: rendering always follows ownership, mutability, atomicity, copy,
// getter, setter.
type Attrs struct {
	Ownership  Ownership
	Mutability Mutability
	Atomicity  Atomicity
	Copy       bool
	Getter     string
	Setter     string
}

// Tokens returns the attribute tokens in canonical order.
func (a Attrs) Tokens() []string {
	out := make([]string, 0, 6)
	switch a.Ownership {
	case OwnershipWeak:
		out = append(out, "weak")
	case OwnershipStrong:
		out = append(out, "strong")
	}
	switch a.Mutability {
	case MutabilityReadonly:
		out = append(out, "readonly")
	case MutabilityReadwrite:
		out = append(out, "readwrite")
	}
	if a.Atomicity == AtomicityNonatomic {
		out = append(out, "nonatomic")
	}
	if a.Copy {
		out = append(out, "copy")
	}
	if a.Getter != "" {
		out = append(out, "getter="+a.Getter)
	}
	if a.Setter != "" {
		out = append(out, "setter="+a.Setter)
	}
	return out
}

// String renders "(a, b)", or "" for an empty set.
func (a Attrs) String() string {
	tokens := a.Tokens()
	if len(tokens) == 0 {
		return ""
	}
	return "(" + strings.Join(tokens, ", ") + ")"
}

func (a Attrs) IsEmpty() bool {
	return a == Attrs{}
}
