package gen

import (
	"strings"
	"testing"

	"declgen/internal/decl"
)

func build(t *testing.T, fill func(b *decl.Builder)) *decl.TypeDecl {
	t.Helper()
	b := decl.NewBuilder()
	fill(b)
	td, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return td
}

func assertTranslation(t *testing.T, text, want string) {
	t.Helper()
	if !strings.Contains(text, want) {
		t.Fatalf("expected %q in translation:\n%s", want, text)
	}
}

func assertNotInTranslation(t *testing.T, text, unwanted string) {
	t.Helper()
	if strings.Contains(text, unwanted) {
		t.Fatalf("did not expect %q in translation:\n%s", unwanted, text)
	}
}

func assertTranslatedLines(t *testing.T, text string, lines ...string) {
	t.Helper()
	assertTranslation(t, text, strings.Join(lines, "\n"))
}

func marker(directive string) *decl.PropertyMarker {
	return &decl.PropertyMarker{Directive: directive, HasDirective: true}
}

func staticFieldsClass(t *testing.T) *decl.TypeDecl {
	return build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "Test").
			Field(decl.Field{Name: "ID", Type: decl.Class("java.lang.String"), Static: true}).
			Field(decl.Field{Name: "i", Type: decl.Primitive("int"), Static: true, Visibility: decl.VisPrivate}).
			Field(decl.Field{Name: "DEFAULT", Type: decl.Class("Test"), Static: true, Final: true})
	})
}
