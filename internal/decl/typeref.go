package decl

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// RefKind classifies a TypeRef.
type RefKind uint8

const (
	// RefNone is the zero value: no type (absent superclass, void return).
	RefNone RefKind = iota
	RefVoid
	RefPrimitive
	RefClass
	RefInterface
	RefTypeVar
)

// TypeRef is a resolved reference to a type. Name holds the primitive name,
// the qualified class or interface name, or the type variable name.
// Nested types use '$' between outer and inner names (pkg.Outer$Inner).
type TypeRef struct {
	Kind RefKind
	Name string
}

var primitives = map[string]struct{}{
	"boolean": {}, "byte": {}, "char": {}, "short": {},
	"int": {}, "long": {}, "float": {}, "double": {},
}

func Void() TypeRef                 { return TypeRef{Kind: RefVoid, Name: "void"} }
func Primitive(name string) TypeRef { return TypeRef{Kind: RefPrimitive, Name: name} }
func Class(qualified string) TypeRef {
	return TypeRef{Kind: RefClass, Name: qualified}
}
func Interface(qualified string) TypeRef {
	return TypeRef{Kind: RefInterface, Name: qualified}
}
func TypeVar(name string) TypeRef { return TypeRef{Kind: RefTypeVar, Name: name} }

// ParseTypeRef decodes the compact document notation:
// primitive names and "void" as is, "interface:pkg.Name", "var:T",
// anything else is a class name.
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return TypeRef{}, nil
	case s == "void":
		return Void(), nil
	case strings.HasPrefix(s, "interface:"):
		name := strings.TrimPrefix(s, "interface:")
		if name == "" {
			return TypeRef{}, errors.Newf("empty interface name in %q", s)
		}
		return Interface(name), nil
	case strings.HasPrefix(s, "var:"):
		name := strings.TrimPrefix(s, "var:")
		if name == "" {
			return TypeRef{}, errors.Newf("empty type variable in %q", s)
		}
		return TypeVar(name), nil
	}
	if _, ok := primitives[s]; ok {
		return Primitive(s), nil
	}
	return Class(s), nil
}

func (t TypeRef) IsZero() bool      { return t.Kind == RefNone }
func (t TypeRef) IsVoid() bool      { return t.Kind == RefNone || t.Kind == RefVoid }
func (t TypeRef) IsPrimitive() bool { return t.Kind == RefPrimitive }
func (t TypeRef) IsBoolean() bool   { return t.Kind == RefPrimitive && t.Name == "boolean" }

// IsReference reports whether values of t are object pointers.
func (t TypeRef) IsReference() bool {
	return t.Kind == RefClass || t.Kind == RefInterface || t.Kind == RefTypeVar
}

// SimpleName returns the last segment of a qualified name.
func (t TypeRef) SimpleName() string {
	name := t.Name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (t TypeRef) String() string {
	switch t.Kind {
	case RefNone:
		return "<none>"
	case RefInterface:
		return "interface:" + t.Name
	case RefTypeVar:
		return "var:" + t.Name
	}
	return t.Name
}

func (t TypeRef) valid() error {
	switch t.Kind {
	case RefPrimitive:
		if _, ok := primitives[t.Name]; !ok {
			return errors.Newf("unknown primitive type %q", t.Name)
		}
	case RefClass, RefInterface, RefTypeVar:
		if t.Name == "" {
			return errors.Newf("empty %s type name", t.Kind)
		}
	}
	return nil
}

func (k RefKind) String() string {
	switch k {
	case RefVoid:
		return "void"
	case RefPrimitive:
		return "primitive"
	case RefClass:
		return "class"
	case RefInterface:
		return "interface"
	case RefTypeVar:
		return "type variable"
	}
	return "none"
}
