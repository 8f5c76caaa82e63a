package decl

import "strings"

// TypeDecl is one resolved type declaration. It is built by Builder and
// must not be mutated afterwards; slice accessors return shared storage.
type TypeDecl struct {
	Kind       Kind
	Name       string
	Package    string
	Visibility Visibility
	// Static marks a nested type that holds no enclosing instance.
	Static bool
	// Local marks a named class declared inside a method body.
	Local bool
	Super TypeRef
	// Protocols lists adopted interface names in declaration order.
	Protocols []string
	// TypeArgs binds type variables fixed by an anonymous subclass.
	TypeArgs map[string]TypeRef
	LineNo   uint32

	members            []Member
	nested             []*TypeDecl
	enclosing          *TypeDecl
	effectivelyPrivate bool
}

// Members returns members in declaration order.
func (t *TypeDecl) Members() []Member { return t.members }

// Nested returns directly nested types in declaration order.
func (t *TypeDecl) Nested() []*TypeDecl { return t.nested }

// Enclosing returns the lexically enclosing type, or nil for a top-level type.
func (t *TypeDecl) Enclosing() *TypeDecl { return t.enclosing }

// EffectivelyPrivate reports whether the type or any of its ancestors is
// private. The flag is fixed when the tree is built.
func (t *TypeDecl) EffectivelyPrivate() bool { return t.effectivelyPrivate }

// TopLevel returns the outermost enclosing type.
func (t *TypeDecl) TopLevel() *TypeDecl {
	cur := t
	for cur.enclosing != nil {
		cur = cur.enclosing
	}
	return cur
}

// Path returns dotted source names from the top-level type, e.g. "Test.Inner1".
// Anonymous types contribute "<anonymous>".
func (t *TypeDecl) Path() string {
	var parts []string
	for cur := t; cur != nil; cur = cur.enclosing {
		name := cur.Name
		if cur.Kind == KindAnonymous && name == "" {
			name = "<anonymous>"
		}
		parts = append(parts, name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// HasImplicitOuter reports whether instances carry an enclosing-instance link
// in the source model: inner member classes, local and anonymous classes.
func (t *TypeDecl) HasImplicitOuter() bool {
	if t.enclosing == nil || t.Static {
		return false
	}
	switch t.Kind {
	case KindInterface, KindEnum:
		return false
	}
	return t.enclosing.Kind != KindInterface
}

// IsAnonymousOrLocal reports whether the type gets a positional name.
func (t *TypeDecl) IsAnonymousOrLocal() bool {
	return t.Kind == KindAnonymous || t.Local
}

func (t *TypeDecl) Fields() []*Field {
	var out []*Field
	for _, m := range t.members {
		if f, ok := m.(*Field); ok {
			out = append(out, f)
		}
	}
	return out
}

func (t *TypeDecl) Methods() []*Method {
	var out []*Method
	for _, m := range t.members {
		if fn, ok := m.(*Method); ok {
			out = append(out, fn)
		}
	}
	return out
}

func (t *TypeDecl) EnumConstants() []*EnumConstant {
	var out []*EnumConstant
	for _, m := range t.members {
		if c, ok := m.(*EnumConstant); ok {
			out = append(out, c)
		}
	}
	return out
}

// FindMethod returns the first method with the given name and arity.
func (t *TypeDecl) FindMethod(name string, arity int) *Method {
	for _, m := range t.members {
		fn, ok := m.(*Method)
		if !ok || fn.Constructor {
			continue
		}
		if fn.Name == name && len(fn.Params) == arity {
			return fn
		}
	}
	return nil
}

// Binding resolves a type variable through TypeArgs of t and its ancestors.
func (t *TypeDecl) Binding(name string) (TypeRef, bool) {
	for cur := t; cur != nil; cur = cur.enclosing {
		if ref, ok := cur.TypeArgs[name]; ok {
			return ref, true
		}
	}
	return TypeRef{}, false
}
