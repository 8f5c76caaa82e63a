package decl

// Kind описывает вид объявления типа.
type Kind uint8

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
	KindAnonymous
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// ParseKind maps a document spelling onto Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "class":
		return KindClass, true
	case "interface":
		return KindInterface, true
	case "enum":
		return KindEnum, true
	case "anonymous":
		return KindAnonymous, true
	}
	return KindClass, false
}

// Visibility описывает доступность типа или члена.
// Нулевое значение означает package-private.
type Visibility uint8

const (
	VisPackage Visibility = iota
	VisPublic
	VisProtected
	VisPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisProtected:
		return "protected"
	case VisPrivate:
		return "private"
	default:
		return "package"
	}
}

func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "", "package":
		return VisPackage, true
	case "public":
		return VisPublic, true
	case "protected":
		return VisProtected, true
	case "private":
		return VisPrivate, true
	}
	return VisPackage, false
}

// Ownership is the per-field ownership annotation.
type Ownership uint8

const (
	OwnershipNone Ownership = iota
	OwnershipWeak
)

func (o Ownership) String() string {
	if o == OwnershipWeak {
		return "weak"
	}
	return "none"
}

func ParseOwnership(s string) (Ownership, bool) {
	switch s {
	case "", "none":
		return OwnershipNone, true
	case "weak":
		return OwnershipWeak, true
	}
	return OwnershipNone, false
}
