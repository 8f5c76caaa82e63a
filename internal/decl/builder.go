package decl

import (
	"maps"
	"slices"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
)

// ErrInvalidTree marks every structural error reported by Build.
var ErrInvalidTree = errors.New("invalid declaration tree")

// Builder assembles a declaration tree and freezes it in Build.
// Derived facts (enclosing links, effective privacy, enum ordinals) are
// computed once there and never recomputed.
type Builder struct {
	root  *TypeDecl
	err   error
	built bool
}

// TypeBuilder adds members and nested types to one declaration.
type TypeBuilder struct {
	b  *Builder
	td *TypeDecl
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Root starts the top-level declaration. A Builder holds exactly one root.
func (b *Builder) Root(kind Kind, name string) *TypeBuilder {
	td := &TypeDecl{Kind: kind, Name: name}
	if b.root != nil {
		b.fail(errors.Wrapf(ErrInvalidTree, "second root type %q (already have %q)", name, b.root.Name))
	} else {
		b.root = td
	}
	return &TypeBuilder{b: b, td: td}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (t *TypeBuilder) Package(pkg string) *TypeBuilder {
	t.td.Package = pkg
	return t
}

func (t *TypeBuilder) Visibility(v Visibility) *TypeBuilder {
	t.td.Visibility = v
	return t
}

func (t *TypeBuilder) Static() *TypeBuilder {
	t.td.Static = true
	return t
}

func (t *TypeBuilder) Local() *TypeBuilder {
	t.td.Local = true
	return t
}

func (t *TypeBuilder) At(line uint32) *TypeBuilder {
	t.td.LineNo = line
	return t
}

func (t *TypeBuilder) Extends(ref TypeRef) *TypeBuilder {
	t.td.Super = ref
	return t
}

// Implements appends adopted interfaces; duplicates are dropped in Build.
func (t *TypeBuilder) Implements(names ...string) *TypeBuilder {
	t.td.Protocols = append(t.td.Protocols, names...)
	return t
}

// Bind fixes a type variable of the implemented abstraction to a concrete type.
func (t *TypeBuilder) Bind(typeVar string, ref TypeRef) *TypeBuilder {
	if t.td.TypeArgs == nil {
		t.td.TypeArgs = make(map[string]TypeRef)
	}
	t.td.TypeArgs[typeVar] = ref
	return t
}

func (t *TypeBuilder) Field(f Field) *TypeBuilder {
	f.owner = t.td
	if f.Property != nil {
		marker := *f.Property
		f.Property = &marker
	}
	t.td.members = append(t.td.members, &f)
	return t
}

func (t *TypeBuilder) Method(m Method) *TypeBuilder {
	m.owner = t.td
	m.Params = slices.Clone(m.Params)
	t.td.members = append(t.td.members, &m)
	return t
}

// Constant appends an enum constant; ordinals follow declaration order.
func (t *TypeBuilder) Constant(name string, line uint32) *TypeBuilder {
	t.td.members = append(t.td.members, &EnumConstant{Name: name, LineNo: line, owner: t.td})
	return t
}

// Nested declares a type inside this one and returns its builder.
func (t *TypeBuilder) Nested(kind Kind, name string) *TypeBuilder {
	td := &TypeDecl{Kind: kind, Name: name}
	t.td.nested = append(t.td.nested, td)
	return &TypeBuilder{b: t.b, td: td}
}

// Build validates the tree and returns its root. The builder must not be
// used afterwards.
func (b *Builder) Build() (*TypeDecl, error) {
	if b.built {
		return nil, errors.New("decl: Build called twice")
	}
	b.built = true
	if b.err != nil {
		return nil, b.err
	}
	if b.root == nil {
		return nil, errors.Wrap(ErrInvalidTree, "no root type")
	}
	if b.root.Kind == KindAnonymous || b.root.Local {
		return nil, errors.Wrapf(ErrInvalidTree, "top-level type %q cannot be anonymous or local", b.root.Name)
	}
	if err := freeze(b.root, nil); err != nil {
		return nil, err
	}
	return b.root, nil
}

func freeze(td, enclosing *TypeDecl) error {
	td.enclosing = enclosing
	if enclosing != nil {
		td.Package = enclosing.Package
		// интерфейсы, enum и всё, что вложено в интерфейс, статичны неявно
		if td.Kind == KindInterface || td.Kind == KindEnum || enclosing.Kind == KindInterface {
			td.Static = true
		}
	}
	td.effectivelyPrivate = td.Visibility == VisPrivate ||
		(enclosing != nil && enclosing.effectivelyPrivate)

	path := td.Path()
	if td.Kind != KindAnonymous && td.Name == "" {
		return errors.Wrapf(ErrInvalidTree, "%s: %s type without a name", path, td.Kind)
	}
	if td.Kind == KindAnonymous && td.Visibility != VisPackage {
		return errors.Wrapf(ErrInvalidTree, "%s: anonymous type cannot declare visibility", path)
	}
	if err := td.Super.valid(); err != nil {
		return errors.Wrapf(ErrInvalidTree, "%s: superclass: %v", path, err)
	}
	td.Protocols = dedupStrings(td.Protocols)
	for _, name := range slices.Sorted(maps.Keys(td.TypeArgs)) {
		if err := td.TypeArgs[name].valid(); err != nil {
			return errors.Wrapf(ErrInvalidTree, "%s: binding of %s: %v", path, name, err)
		}
	}

	fieldNames := make(map[string]struct{})
	var ordinal int
	for _, m := range td.members {
		switch m := m.(type) {
		case *Field:
			if err := freezeField(td, m, fieldNames); err != nil {
				return errors.Wrapf(ErrInvalidTree, "%s: %v", path, err)
			}
		case *Method:
			if err := freezeMethod(td, m); err != nil {
				return errors.Wrapf(ErrInvalidTree, "%s: %v", path, err)
			}
		case *EnumConstant:
			if td.Kind != KindEnum {
				return errors.Wrapf(ErrInvalidTree, "%s: enum constant %q outside of an enum", path, m.Name)
			}
			if m.Name == "" {
				return errors.Wrapf(ErrInvalidTree, "%s: enum constant without a name", path)
			}
			if _, dup := fieldNames[m.Name]; dup {
				return errors.Wrapf(ErrInvalidTree, "%s: duplicate member %q", path, m.Name)
			}
			fieldNames[m.Name] = struct{}{}
			ord, err := safecast.Conv[uint32](ordinal)
			if err != nil {
				return errors.Wrapf(ErrInvalidTree, "%s: too many enum constants", path)
			}
			m.ordinal = ord
			ordinal++
		}
	}

	for _, nested := range td.nested {
		if err := freeze(nested, td); err != nil {
			return err
		}
	}
	return nil
}

func freezeField(td *TypeDecl, f *Field, seen map[string]struct{}) error {
	if f.Name == "" {
		return errors.New("field without a name")
	}
	if _, dup := seen[f.Name]; dup {
		return errors.Newf("duplicate member %q", f.Name)
	}
	seen[f.Name] = struct{}{}
	if f.Type.IsVoid() {
		return errors.Newf("field %q has no type", f.Name)
	}
	if err := f.Type.valid(); err != nil {
		return errors.Wrapf(err, "field %q", f.Name)
	}
	if td.Kind == KindInterface {
		f.Static = true
		f.Final = true
	}
	if f.HasConstant && !(f.Static && f.Final) {
		return errors.Newf("constant value on non-static-final field %q", f.Name)
	}
	return nil
}

func freezeMethod(td *TypeDecl, m *Method) error {
	if m.Constructor {
		if td.Kind == KindInterface {
			return errors.New("constructor in an interface")
		}
		m.Static = false
		m.Return = TypeRef{}
	} else if m.Name == "" {
		return errors.New("method without a name")
	}
	if m.Return.IsZero() {
		m.Return = Void()
	}
	if td.Kind == KindInterface && !m.Static {
		m.Abstract = true
	}
	if err := m.Return.valid(); err != nil {
		return errors.Wrapf(err, "method %q return", m.Name)
	}
	for i, p := range m.Params {
		if p.Name == "" {
			return errors.Newf("method %q parameter %d without a name", m.Name, i)
		}
		if p.Type.IsVoid() {
			return errors.Newf("method %q parameter %q has no type", m.Name, p.Name)
		}
		if err := p.Type.valid(); err != nil {
			return errors.Wrapf(err, "method %q parameter %q", m.Name, p.Name)
		}
	}
	return nil
}

func dedupStrings(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
