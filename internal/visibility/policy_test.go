package visibility

import (
	"testing"

	"declgen/internal/decl"
)

func staticFields(t *testing.T) *decl.TypeDecl {
	t.Helper()
	b := decl.NewBuilder()
	root := b.Root(decl.KindClass, "Test")
	root.
		Field(decl.Field{Name: "ID", Type: decl.Class("java.lang.String"), Static: true}).
		Field(decl.Field{Name: "i", Type: decl.Primitive("int"), Static: true, Visibility: decl.VisPrivate}).
		Field(decl.Field{Name: "DEFAULT", Type: decl.Class("Test"), Static: true, Final: true}).
		Field(decl.Field{Name: "count", Type: decl.Primitive("int")})
	root.Nested(decl.KindClass, "Inner1").Visibility(decl.VisPrivate).Static().
		Nested(decl.KindClass, "Inner2").Visibility(decl.VisPublic).Static().
		Field(decl.Field{Name: "ID", Type: decl.Class("java.lang.String"), Static: true, Visibility: decl.VisPublic})
	td, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return td
}

func TestStaticAccessors(t *testing.T) {
	td := staticFields(t)
	f := td.Fields()
	cases := []struct {
		member  decl.Member
		enabled bool
		want    Kind
	}{
		{f[0], true, KindGetterSetter},
		{f[1], false, KindNone},
		{f[2], true, KindGetter},
		{f[3], false, KindNone},
	}
	for _, tc := range cases {
		if got := ShouldEmitStaticAccessor(tc.member, true); got != tc.enabled {
			t.Fatalf("%s: enabled switch -> %v, want %v", tc.member.MemberName(), got, tc.enabled)
		}
		if ShouldEmitStaticAccessor(tc.member, false) {
			t.Fatalf("%s: disabled switch must suppress accessors", tc.member.MemberName())
		}
		if got := Accessors(tc.member, true); got != tc.want {
			t.Fatalf("%s: Accessors = %s, want %s", tc.member.MemberName(), got, tc.want)
		}
	}
}

func TestPrivateAncestorSuppresses(t *testing.T) {
	td := staticFields(t)
	inner2 := td.Nested()[0].Nested()[0]
	id := inner2.Fields()[0]
	if ShouldEmitStaticAccessor(id, true) {
		t.Fatalf("static field in a privately nested type must not get accessors")
	}
	if AccessorKind(id) != KindGetterSetter {
		t.Fatalf("AccessorKind ignores privacy")
	}
}

func TestEnumConstantsAndInterfaceRouting(t *testing.T) {
	b := decl.NewBuilder()
	b.Root(decl.KindEnum, "Test").Constant("ONE", 0).Constant("TWO", 0)
	enum, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	one := enum.EnumConstants()[0]
	if Accessors(one, true) != KindGetter || Accessors(one, false) != KindNone {
		t.Fatalf("enum constants get a getter only on request")
	}
	if Route(one) != DestSelf {
		t.Fatalf("enum constants stay in their class")
	}

	b = decl.NewBuilder()
	b.Root(decl.KindInterface, "Test").
		Field(decl.Field{Name: "FOO", Type: decl.Primitive("boolean"), Visibility: decl.VisPublic, Constant: "true", HasConstant: true})
	iface, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	foo := iface.Fields()[0]
	if Route(foo) != DestCompanion {
		t.Fatalf("interface statics go to the companion class")
	}
	if Accessors(foo, true) != KindGetter {
		t.Fatalf("interface constant gets a getter")
	}
}
