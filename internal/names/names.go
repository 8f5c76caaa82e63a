// Package names maps source-model names onto target runtime identifiers:
// class names with camel-cased package prefixes, instance variables,
// static storage symbols and method selectors.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"declgen/internal/decl"
)

const (
	// RootClass is the implicit superclass of every generated class.
	RootClass = "NSObject"
	// RootProtocol is adopted by every generated protocol.
	RootProtocol = "JavaObject"
	// EnumBase is the superclass of generated enum classes.
	EnumBase = "JavaLangEnum"
	// OuterIvar names the hidden enclosing-instance field.
	OuterIvar = "this$0_"
	// OuterParam names the initializer parameter carrying the enclosing instance.
	OuterParam = "outer$"
)

var wellKnown = map[string]string{
	"java.lang.Object": "NSObject",
	"java.lang.String": "NSString",
}

var primitiveTypes = map[string]string{
	"boolean": "jboolean",
	"byte":    "jbyte",
	"char":    "jchar",
	"short":   "jshort",
	"int":     "jint",
	"long":    "jlong",
	"float":   "jfloat",
	"double":  "jdouble",
}

// Binder resolves type variables to concrete bindings; *decl.TypeDecl implements it.
type Binder interface {
	Binding(name string) (decl.TypeRef, bool)
}

// PackagePrefix camel-cases a dotted package name: "java.lang" -> "JavaLang".
func PackagePrefix(pkg string) string {
	if pkg == "" {
		return ""
	}
	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, seg := range strings.Split(pkg, ".") {
		b.WriteString(caser.String(seg))
	}
	return b.String()
}

// ClassName maps a qualified name (pkg.Outer$Inner) onto a class identifier.
func ClassName(qualified string) string {
	if known, ok := wellKnown[qualified]; ok {
		return known
	}
	pkg, simple := "", qualified
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		pkg, simple = qualified[:i], qualified[i+1:]
	}
	return PackagePrefix(pkg) + strings.ReplaceAll(simple, "$", "_")
}

// Declared returns the identifier of a named declaration: package prefix,
// then enclosing names joined with '_'. Anonymous and local types get their
// positional names from the emitter, which passes them as override.
func Declared(td *decl.TypeDecl, override func(*decl.TypeDecl) (string, bool)) string {
	if override != nil {
		if name, ok := override(td); ok {
			return name
		}
	}
	if outer := td.Enclosing(); outer != nil {
		return Declared(outer, override) + "_" + td.Name
	}
	return PackagePrefix(td.Package) + td.Name
}

// EnumClass is the class identifier backing an enum type.
func EnumClass(typeName string) string {
	return typeName + "Enum"
}

// Primitive returns the target spelling of a primitive type.
func Primitive(name string) string {
	return primitiveTypes[name]
}

// Ref renders a type reference as a declaration type, pointer included.
// Type variables resolve through b when bound and erase to id otherwise.
func Ref(ref decl.TypeRef, b Binder) string {
	switch ref.Kind {
	case decl.RefNone, decl.RefVoid:
		return "void"
	case decl.RefPrimitive:
		return Primitive(ref.Name)
	case decl.RefTypeVar:
		if b != nil {
			if bound, ok := b.Binding(ref.Name); ok && bound.Kind != decl.RefTypeVar {
				return Ref(bound, nil)
			}
		}
		return "id"
	case decl.RefInterface:
		return "id<" + ClassName(ref.Name) + ">"
	}
	if ref.Name == "java.lang.Object" {
		return "id"
	}
	return ClassName(ref.Name) + " *"
}

// Keyword is the selector keyword for a parameter of type ref. It always uses
// the erased type: type variables and Object become "Id".
func Keyword(ref decl.TypeRef) string {
	switch ref.Kind {
	case decl.RefPrimitive:
		return Capitalize(ref.Name)
	case decl.RefTypeVar:
		return "Id"
	case decl.RefClass:
		if ref.Name == "java.lang.Object" {
			return "Id"
		}
	}
	return ClassName(ref.Name)
}

// Selector builds a selector from a base name and parameter keywords:
// ("foo", [Int, NSString]) -> "fooWithInt:withNSString:".
func Selector(base string, keywords ...string) string {
	if len(keywords) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	for i, kw := range keywords {
		if i == 0 {
			b.WriteString("With")
		} else {
			b.WriteString("with")
		}
		b.WriteString(kw)
		b.WriteByte(':')
	}
	return b.String()
}

// MethodSelector returns the selector of m as declared, constructors use "init".
func MethodSelector(m *decl.Method) string {
	base := m.Name
	if m.Constructor {
		base = "init"
	}
	keywords := make([]string, len(m.Params))
	for i, p := range m.Params {
		keywords[i] = Keyword(p.Type)
	}
	return Selector(base, keywords...)
}

// SelectorParts splits a selector into keyword pieces, each keeping its colon.
func SelectorParts(sel string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(sel); i++ {
		if sel[i] == ':' {
			parts = append(parts, sel[start:i+1])
			start = i + 1
		}
	}
	if start < len(sel) {
		parts = append(parts, sel[start:])
	}
	return parts
}

func Ivar(field string) string {
	return field + "_"
}

// Static returns the storage symbol of a static member: Test_FOO.
func Static(typeName, member string) string {
	return typeName + "_" + member
}

// Capitalize upper-cases the first rune: "id" -> "Id", "fieldBaz" -> "FieldBaz".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// IsIdentifier reports whether s is a valid target identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Declaration joins a declaration type and a name: "jint x", "NSString *x".
func Declaration(typ, name string) string {
	if strings.HasSuffix(typ, "*") {
		return typ + name
	}
	return typ + " " + name
}
