package declfile

import (
	"maps"
	"slices"

	"github.com/cockroachdb/errors"

	"declgen/internal/decl"
	"declgen/internal/gen"
)

// Unit is a decoded compilation unit: frozen type trees plus usage facts.
type Unit struct {
	Package string
	Types   []*decl.TypeDecl
	Facts   gen.UsageFacts
}

// Build converts the wire document into declaration trees. Every structural
// error is marked with decl.ErrInvalidTree.
func (d *Document) Build() (*Unit, error) {
	if len(d.Types) == 0 {
		return nil, errors.Wrap(decl.ErrInvalidTree, "document declares no types")
	}
	unit := &Unit{Package: d.Package, Facts: make(gen.UsageFacts)}
	for i := range d.Types {
		b := decl.NewBuilder()
		kind, err := parseKind(d.Types[i].Kind)
		if err != nil {
			return nil, err
		}
		root := b.Root(kind, d.Types[i].Name).Package(d.Package)
		var facts []factRef
		if err := fillType(root, &d.Types[i], nil, &facts); err != nil {
			return nil, errors.Wrapf(err, "type %q", d.Types[i].Name)
		}
		td, err := b.Build()
		if err != nil {
			return nil, err
		}
		for _, f := range facts {
			unit.Facts[resolvePath(td, f.path)] = f.used
		}
		unit.Types = append(unit.Types, td)
	}
	return unit, nil
}

// factRef locates a nested type by child indices from the root.
type factRef struct {
	path []int
	used bool
}

func resolvePath(td *decl.TypeDecl, path []int) *decl.TypeDecl {
	for _, i := range path {
		td = td.Nested()[i]
	}
	return td
}

func fillType(tb *decl.TypeBuilder, doc *TypeDoc, path []int, facts *[]factRef) error {
	vis, ok := decl.ParseVisibility(doc.Visibility)
	if !ok {
		return errors.Wrapf(decl.ErrInvalidTree, "unknown visibility %q", doc.Visibility)
	}
	tb.Visibility(vis).At(doc.Line)
	if doc.Static {
		tb.Static()
	}
	if doc.Local {
		tb.Local()
	}
	if doc.Extends != "" {
		ref, err := decl.ParseTypeRef(doc.Extends)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "extends"), decl.ErrInvalidTree)
		}
		tb.Extends(ref)
	}
	tb.Implements(doc.Implements...)
	for _, name := range slices.Sorted(maps.Keys(doc.Bindings)) {
		ref, err := decl.ParseTypeRef(doc.Bindings[name])
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "binding %s", name), decl.ErrInvalidTree)
		}
		tb.Bind(name, ref)
	}
	if doc.OuterRef != nil {
		*facts = append(*facts, factRef{path: slices.Clone(path), used: *doc.OuterRef})
	}

	for i := range doc.Members {
		if err := addMember(tb, &doc.Members[i]); err != nil {
			return errors.Wrapf(err, "member %d (%s)", i, doc.Members[i].Name)
		}
	}

	for i := range doc.Nested {
		kind, err := parseKind(doc.Nested[i].Kind)
		if err != nil {
			return err
		}
		child := tb.Nested(kind, doc.Nested[i].Name)
		if err := fillType(child, &doc.Nested[i], append(path, i), facts); err != nil {
			return errors.Wrapf(err, "nested type %q", doc.Nested[i].Name)
		}
	}
	return nil
}

func parseKind(s string) (decl.Kind, error) {
	kind, ok := decl.ParseKind(s)
	if !ok {
		return kind, errors.Wrapf(decl.ErrInvalidTree, "unknown type kind %q", s)
	}
	return kind, nil
}

func addMember(tb *decl.TypeBuilder, m *MemberDoc) error {
	vis, ok := decl.ParseVisibility(m.Visibility)
	if !ok {
		return errors.Wrapf(decl.ErrInvalidTree, "unknown visibility %q", m.Visibility)
	}
	switch m.Kind {
	case "field":
		typ, err := decl.ParseTypeRef(m.Type)
		if err != nil {
			return errors.Mark(err, decl.ErrInvalidTree)
		}
		f := decl.Field{
			Name: m.Name, Type: typ, Visibility: vis,
			Static: m.Static, Final: m.Final, LineNo: m.Line,
		}
		if m.Constant != nil {
			f.Constant, f.HasConstant = *m.Constant, true
		}
		switch {
		case m.Property != nil:
			f.Property = &decl.PropertyMarker{Directive: *m.Property, HasDirective: true}
		case m.Marker:
			f.Property = &decl.PropertyMarker{}
		}
		if m.Weak {
			f.Ownership = decl.OwnershipWeak
		}
		tb.Field(f)
	case "method", "constructor":
		ret, err := decl.ParseTypeRef(m.Returns)
		if err != nil {
			return errors.Mark(err, decl.ErrInvalidTree)
		}
		params := make([]decl.Param, len(m.Params))
		for i, p := range m.Params {
			typ, err := decl.ParseTypeRef(p.Type)
			if err != nil {
				return errors.Mark(errors.Wrapf(err, "parameter %q", p.Name), decl.ErrInvalidTree)
			}
			params[i] = decl.Param{Name: p.Name, Type: typ}
		}
		tb.Method(decl.Method{
			Name: m.Name, Params: params, Return: ret, Visibility: vis,
			Static: m.Static, Abstract: m.Abstract, Synchronized: m.Synchronized,
			Constructor: m.Kind == "constructor", LineNo: m.Line,
		})
	case "constant":
		tb.Constant(m.Name, m.Line)
	default:
		return errors.Wrapf(decl.ErrInvalidTree, "unknown member kind %q", m.Kind)
	}
	return nil
}
