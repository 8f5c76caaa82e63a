package memsem

import (
	"testing"

	"declgen/internal/decl"
	"declgen/internal/diag"
	"declgen/internal/property"
)

func build(t *testing.T, fields ...decl.Field) *decl.TypeDecl {
	t.Helper()
	b := decl.NewBuilder()
	tb := b.Root(decl.KindClass, "Foo")
	for _, f := range fields {
		tb.Field(f)
	}
	td, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return td
}

func marker(directive string) *decl.PropertyMarker {
	return &decl.PropertyMarker{Directive: directive, HasDirective: true}
}

func resolveField(t *testing.T, f *decl.Field) (Result, *diag.Diagnostic) {
	t.Helper()
	attrs, d, _ := property.ForField(f, property.Options{})
	if d != nil {
		t.Fatalf("property diagnostic: %s", d.Message)
	}
	return Resolve(f, attrs)
}

func TestWeakAssignment(t *testing.T) {
	foo := decl.Class("Foo")
	td := build(t,
		decl.Field{Name: "barA", Type: foo, Property: marker("weak")},
		decl.Field{Name: "barB", Type: foo, Property: marker("readonly"), Ownership: decl.OwnershipWeak},
		decl.Field{Name: "barC", Type: foo, Property: marker("weak, readonly"), Ownership: decl.OwnershipWeak},
		decl.Field{Name: "barD", Type: foo, Ownership: decl.OwnershipWeak},
		decl.Field{Name: "barE", Type: foo},
	)
	fields := td.Fields()

	cases := []struct {
		storage Storage
		attrs   string
		helper  bool
	}{
		{StorageWeak, "(weak)", false},
		{StorageWeak, "(weak, readonly)", false},
		{StorageWeak, "(weak, readonly)", false},
		{StorageWeak, "(weak)", false},
		{StorageStrong, "", true},
	}
	for i, want := range cases {
		f := fields[i]
		var (
			res Result
			d   *diag.Diagnostic
		)
		if f.Property != nil {
			res, d = resolveField(t, f)
		} else {
			res, d = Resolve(f, property.Attrs{})
		}
		if d != nil {
			t.Fatalf("%s: unexpected diagnostic %s", f.Name, d.Message)
		}
		if res.Storage != want.storage {
			t.Fatalf("%s: storage %s, want %s", f.Name, res.Storage, want.storage)
		}
		if res.Attrs.String() != want.attrs {
			t.Fatalf("%s: attrs %q, want %q", f.Name, res.Attrs.String(), want.attrs)
		}
		if res.NeedsFieldSetter(f) != want.helper {
			t.Fatalf("%s: helper %v, want %v", f.Name, res.NeedsFieldSetter(f), want.helper)
		}
		if (res.IvarQualifier() == "__weak ") != (want.storage == StorageWeak) {
			t.Fatalf("%s: qualifier %q", f.Name, res.IvarQualifier())
		}
	}
}

func TestWeakWithStrongAttributeConflicts(t *testing.T) {
	foo := decl.Class("Foo")
	td := build(t,
		decl.Field{Name: "barA", Type: foo, Property: marker("strong"), Ownership: decl.OwnershipWeak},
		decl.Field{Name: "barB", Type: foo, Property: marker("strong")},
	)
	res, d := resolveField(t, td.Fields()[0])
	if d == nil || d.Code != diag.MemSemanticConflict {
		t.Fatalf("expected MemSemanticConflict, got %v", d)
	}
	if res != (Result{}) {
		t.Fatalf("no result may accompany a conflict: %+v", res)
	}

	res, d = resolveField(t, td.Fields()[1])
	if d != nil || res.Storage != StorageStrong || res.Attrs.String() != "(strong)" {
		t.Fatalf("sibling field affected: %+v %v", res, d)
	}
}

func TestWeakPrimitiveKeepsStrongStorage(t *testing.T) {
	td := build(t, decl.Field{Name: "fieldReorder", Type: decl.Primitive("int"), Property: marker("nonatomic, readonly, weak")})
	res, d := resolveField(t, td.Fields()[0])
	if d != nil {
		t.Fatalf("unexpected diagnostic %s", d.Message)
	}
	if res.Storage != StorageStrong || res.Attrs.String() != "(weak, readonly, nonatomic)" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.NeedsFieldSetter(td.Fields()[0]) {
		t.Fatalf("primitive fields never need a field setter")
	}
}
