// Package visibility decides whether static members get accessor methods and
// where those accessors are declared.
package visibility

import "declgen/internal/decl"

// Kind is the set of static accessors a member gets.
type Kind uint8

const (
	KindNone Kind = iota
	KindGetter
	KindGetterSetter
)

func (k Kind) String() string {
	switch k {
	case KindGetter:
		return "getter"
	case KindGetterSetter:
		return "getter+setter"
	}
	return "none"
}

// Destination is the declaration that receives a static accessor.
type Destination uint8

const (
	DestSelf Destination = iota
	// DestCompanion is the class generated next to an interface's protocol.
	DestCompanion
)

// ShouldEmitStaticAccessor reports whether member gets static accessor methods
// when the accessor switch is set to enabled.
func ShouldEmitStaticAccessor(member decl.Member, enabled bool) bool {
	if !enabled {
		return false
	}
	owner := member.Owner()
	if owner == nil || owner.EffectivelyPrivate() {
		return false
	}
	switch m := member.(type) {
	case *decl.Field:
		return m.Static && m.Visibility != decl.VisPrivate
	case *decl.EnumConstant:
		return true
	}
	return false
}

// AccessorKind reports which accessors a static member would get. It does not
// consult the switch or privacy; combine with ShouldEmitStaticAccessor.
func AccessorKind(member decl.Member) Kind {
	switch m := member.(type) {
	case *decl.Field:
		if !m.Static {
			return KindNone
		}
		if m.Final {
			return KindGetter
		}
		return KindGetterSetter
	case *decl.EnumConstant:
		return KindGetter
	}
	return KindNone
}

// Accessors combines ShouldEmitStaticAccessor and AccessorKind.
func Accessors(member decl.Member, enabled bool) Kind {
	if !ShouldEmitStaticAccessor(member, enabled) {
		return KindNone
	}
	return AccessorKind(member)
}

// Route returns where static members of the member's owner are declared.
// Interface protocols cannot hold static storage.
func Route(member decl.Member) Destination {
	if owner := member.Owner(); owner != nil && owner.Kind == decl.KindInterface {
		return DestCompanion
	}
	return DestSelf
}
