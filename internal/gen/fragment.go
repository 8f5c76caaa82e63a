package gen

import "strings"

// FragmentKind classifies a piece of generated declaration text.
type FragmentKind uint8

const (
	FragTypedef FragmentKind = iota
	FragTypeOpen
	FragProperty
	FragStaticAccessor
	FragMethod
	FragTypeClose
	FragCompanionOpen
	FragCompanionClose
	FragFieldSetter
	FragStaticStorage
	FragConstant
	FragEnumConstant
	FragTypeLiteral
)

func (k FragmentKind) String() string {
	switch k {
	case FragTypedef:
		return "typedef"
	case FragTypeOpen:
		return "type-open"
	case FragProperty:
		return "property"
	case FragStaticAccessor:
		return "static-accessor"
	case FragMethod:
		return "method"
	case FragTypeClose:
		return "type-close"
	case FragCompanionOpen:
		return "companion-open"
	case FragCompanionClose:
		return "companion-close"
	case FragFieldSetter:
		return "field-setter"
	case FragStaticStorage:
		return "static-storage"
	case FragConstant:
		return "constant"
	case FragEnumConstant:
		return "enum-constant"
	case FragTypeLiteral:
		return "type-literal"
	}
	return "unknown"
}

// Fragment is one ordered unit of output. Type is the generated type name;
// Member is empty for type-level fragments.
type Fragment struct {
	Kind   FragmentKind
	Type   string
	Member string
	Text   string
}

// Render joins fragments into declaration text, one blank line between them.
func Render(fragments []Fragment) string {
	var b strings.Builder
	for i, f := range fragments {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// ByMember returns the fragments generated for one member of one type.
func ByMember(fragments []Fragment, typeName, member string) []Fragment {
	var out []Fragment
	for _, f := range fragments {
		if f.Type == typeName && f.Member == member {
			out = append(out, f)
		}
	}
	return out
}
