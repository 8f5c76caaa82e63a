package gen

import (
	"testing"

	"declgen/internal/decl"
	"declgen/internal/diag"
)

func TestAnonymousClassDeclaration(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		root := b.Root(decl.KindClass, "Example").Visibility(decl.VisPublic)
		root.Field(decl.Field{Name: "run", Type: decl.Interface("java.lang.Runnable")})
		root.Nested(decl.KindAnonymous, "").
			Implements("java.lang.Runnable").
			Method(decl.Method{Name: "run", Visibility: decl.VisPublic})
	})
	anon := td.Nested()[0]

	text := Emit(td, Config{}, UsageFacts{anon: false}).Text()
	assertTranslation(t, text, "@interface Example_$1 : NSObject < JavaLangRunnable >")
	assertTranslation(t, text, "- (void)run;")
	// Outer reference is not required.
	assertNotInTranslation(t, text, "Example *this")
	assertNotInTranslation(t, text, "initWithExample:")
	assertTranslation(t, text, "- (instancetype)init;")

	// Without a usage fact the link is kept.
	text = Emit(td, Config{}, nil).Text()
	assertTranslation(t, text, "  Example *this$0_;")
	assertTranslation(t, text, "- (instancetype)initWithExample:(Example *)outer$;")
}

func TestAnonymousConcreteSubclassOfGenericAbstractType(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		root := b.Root(decl.KindClass, "Test").Visibility(decl.VisPublic)
		root.Nested(decl.KindInterface, "FooInterface").
			Method(decl.Method{Name: "foo1", Visibility: decl.VisPublic, Params: []decl.Param{{Name: "t", Type: decl.TypeVar("T")}}}).
			Method(decl.Method{Name: "foo2", Visibility: decl.VisPublic})
		root.Nested(decl.KindClass, "Foo").Static().
			Implements("Test$FooInterface").
			Method(decl.Method{Name: "foo2", Visibility: decl.VisPublic})
		root.Field(decl.Field{Name: "foo", Type: decl.Class("Test$Foo")})
		root.Nested(decl.KindAnonymous, "").
			Extends(decl.Class("Test$Foo")).
			Bind("T", decl.Class("java.lang.Integer")).
			Method(decl.Method{Name: "foo1", Visibility: decl.VisPublic, Params: []decl.Param{{Name: "i", Type: decl.TypeVar("T")}}})
	})
	text := Emit(td, Config{}, nil).Text()
	assertTranslation(t, text, "foo1WithId:(JavaLangInteger *)i")
	assertTranslation(t, text, "@interface Test_$1 : Test_Foo")
	// The abstraction itself stays erased.
	assertTranslation(t, text, "- (void)foo1WithId:(id)t;")
	assertTranslation(t, text, "@protocol Test_FooInterface < JavaObject >")
	assertTranslation(t, text, "@interface Test_Foo : NSObject < Test_FooInterface >")
}

func TestAccessorForStaticPrimitiveConstant(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "Test").
			Field(decl.Field{Name: "FOO", Type: decl.Primitive("int"), Static: true, Final: true, Constant: "1", HasConstant: true})
	})
	res := Emit(td, Config{}, nil)
	text := res.Text()
	assertTranslation(t, text, "#define Test_FOO 1")
	assertTranslation(t, text, "J2OBJC_STATIC_FIELD_GETTER(Test, FOO, jint)")
	assertNotInTranslation(t, text, "+ (jint)FOO")
	assertNotInTranslation(t, text, "+ (void)setFOO")
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestStaticFieldAccessorMethods(t *testing.T) {
	text := Emit(staticFieldsClass(t), Config{StaticAccessorMethods: true}, nil).Text()
	assertTranslation(t, text, "+ (NSString *)ID;")
	assertTranslation(t, text, "+ (void)setID:(NSString *)value;")
	assertTranslation(t, text, "+ (Test *)DEFAULT;")
	assertNotInTranslation(t, text, "+ (jint)i")
	assertNotInTranslation(t, text, "+ (void)setI:(jint)value")
	assertNotInTranslation(t, text, "+ (void)setDEFAULT:(Test *)value")

	assertTranslation(t, text, "FOUNDATION_EXPORT NSString *Test_ID;\nJ2OBJC_STATIC_FIELD_OBJ(Test, ID, NSString *)")
	assertTranslation(t, text, "J2OBJC_STATIC_FIELD_PRIMITIVE(Test, i, jint)")
	assertTranslation(t, text, "J2OBJC_STATIC_FIELD_OBJ_FINAL(Test, DEFAULT, Test *)")
}

func TestNoStaticFieldAccessorMethods(t *testing.T) {
	text := Emit(staticFieldsClass(t), Config{}, nil).Text()
	assertNotInTranslation(t, text, "+ (NSString *)ID")
	assertNotInTranslation(t, text, "+ (void)setID:(NSString *)value")
	assertNotInTranslation(t, text, "+ (Test *)DEFAULT")
	assertNotInTranslation(t, text, "+ (jint)i")
	assertNotInTranslation(t, text, "+ (void)setI:(jint)value")
	assertNotInTranslation(t, text, "+ (void)setDEFAULT:(Test *)value")
}

func TestEnumConstantAccessorMethods(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindEnum, "Test").Constant("ONE", 1).Constant("TWO", 1)
	})
	text := Emit(td, Config{StaticAccessorMethods: true}, nil).Text()
	assertTranslation(t, text, "+ (TestEnum *)ONE;")
	assertTranslation(t, text, "+ (TestEnum *)TWO;")
	assertTranslation(t, text, "@interface TestEnum : JavaLangEnum")
	assertTranslatedLines(t, text,
		"typedef NS_ENUM(NSUInteger, Test_Enum) {",
		"  Test_Enum_ONE = 0,",
		"  Test_Enum_TWO = 1,",
		"};")
	assertTranslation(t, text, "J2OBJC_ENUM_CONSTANT(TestEnum, TWO)")
	assertNotInTranslation(t, text, "- (instancetype)init")
}

func TestNoEnumConstantAccessorMethods(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindEnum, "Test").Constant("ONE", 1).Constant("TWO", 1)
	})
	text := Emit(td, Config{}, nil).Text()
	assertNotInTranslation(t, text, "+ (TestEnum *)ONE")
	assertNotInTranslation(t, text, "+ (TestEnum *)TWO")
}

func TestNoStaticFieldAccessorForPrivateInnerType(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "Test").
			Nested(decl.KindClass, "Inner1").Visibility(decl.VisPrivate).Static().
			Nested(decl.KindClass, "Inner2").Visibility(decl.VisPublic).Static().
			Field(decl.Field{Name: "ID", Type: decl.Class("java.lang.String"), Static: true, Visibility: decl.VisPublic})
	})
	text := Emit(td, Config{StaticAccessorMethods: true}, nil).Text()
	assertNotInTranslation(t, text, "+ (NSString *)ID")
	assertNotInTranslation(t, text, "+ (void)setID:")
	// Storage is still declared.
	assertTranslation(t, text, "J2OBJC_STATIC_FIELD_OBJ(Test_Inner1_Inner2, ID, NSString *)")
}

func TestStaticFieldAccessorInInterfaceType(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindInterface, "Test").
			Field(decl.Field{Name: "FOO", Type: decl.Primitive("boolean"), Visibility: decl.VisPublic, Constant: "true", HasConstant: true})
	})
	text := Emit(td, Config{StaticAccessorMethods: true}, nil).Text()
	// The static accessor must go in the companion class, not the protocol.
	assertTranslatedLines(t, text,
		"@interface Test : NSObject",
		"",
		"+ (jboolean)FOO;")
	assertTranslatedLines(t, text,
		"@protocol Test < JavaObject >",
		"",
		"@end")
	assertTranslation(t, text, "#define Test_FOO true")
}

func fooBarProperties(t *testing.T) *decl.TypeDecl {
	return build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "FooBar").Visibility(decl.VisPublic).
			Field(decl.Field{Name: "fieldBar", Type: decl.Primitive("int"), Visibility: decl.VisPrivate, Property: marker("readonly, nonatomic")}).
			Field(decl.Field{Name: "fieldBaz", Type: decl.Primitive("int"), Visibility: decl.VisPrivate, Property: marker("readonly, nonatomic")}).
			Field(decl.Field{Name: "fieldCopy", Type: decl.Class("java.lang.String"), Visibility: decl.VisPrivate, Property: marker("readwrite")}).
			Field(decl.Field{Name: "fieldBool", Type: decl.Primitive("boolean"), Visibility: decl.VisPrivate, Property: &decl.PropertyMarker{}}).
			Field(decl.Field{Name: "fieldReorder", Type: decl.Primitive("int"), Visibility: decl.VisPrivate, Property: marker("nonatomic, readonly, weak")}).
			Method(decl.Method{Name: "getFieldBaz", Return: decl.Primitive("int"), Visibility: decl.VisPublic}).
			Method(decl.Method{Name: "setFieldNonAtomic", Visibility: decl.VisPublic, Params: []decl.Param{{Name: "value", Type: decl.Primitive("int")}}}).
			Method(decl.Method{Name: "setFieldBaz", Visibility: decl.VisPublic, Params: []decl.Param{
				{Name: "value", Type: decl.Primitive("int")},
				{Name: "option", Type: decl.Primitive("int")},
			}}).
			Method(decl.Method{Name: "isFieldBool", Return: decl.Primitive("boolean"), Visibility: decl.VisPublic})
	})
}

func TestProperties(t *testing.T) {
	res := Emit(fooBarProperties(t), Config{}, nil)
	text := res.Text()
	assertTranslation(t, text, "@property (readonly, nonatomic) jint fieldBar;")
	// fieldBaz picks up the declared getter.
	assertTranslation(t, text, "@property (readonly, nonatomic, getter=getFieldBaz) jint fieldBaz;")
	// Copy for strings, readwrite dropped.
	assertTranslation(t, text, "@property (copy) NSString *fieldCopy;")
	assertTranslation(t, text, "@property (nonatomic, getter=isFieldBool) jboolean fieldBool;")
	// Attributes are reordered.
	assertTranslation(t, text, "@property (weak, readonly, nonatomic) jint fieldReorder;")

	assertTranslation(t, text, "- (void)setFieldBazWithInt:(jint)value withInt:(jint)option;")
	assertTranslation(t, text, "J2OBJC_FIELD_SETTER(FooBar, fieldCopy_, NSString *)")
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestSynchronizedPropertyGetter(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "FooBar").Visibility(decl.VisPublic).
			Field(decl.Field{Name: "fieldBar", Type: decl.Primitive("int"), Visibility: decl.VisPrivate, Property: marker("getter=getfieldBar")}).
			Method(decl.Method{Name: "getFieldBar", Return: decl.Primitive("int"), Visibility: decl.VisPublic, Synchronized: true})
	})
	text := Emit(td, Config{}, nil).Text()
	assertTranslation(t, text, "@property (getter=getfieldBar) jint fieldBar;")
	assertTranslation(t, text, "- (jint)getFieldBar;")
}

func TestPropertyIgnoresStaticAccessorLookalikes(t *testing.T) {
	str := decl.Class("java.lang.String")
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "FooBar").Visibility(decl.VisPublic).
			Field(decl.Field{Name: "fieldX", Type: decl.Primitive("int"), Visibility: decl.VisPrivate, Property: &decl.PropertyMarker{}}).
			Method(decl.Method{Name: "getFieldX", Return: str, Static: true, Visibility: decl.VisPrivate}).
			Method(decl.Method{Name: "setFieldX", Static: true, Visibility: decl.VisPrivate,
				Params: []decl.Param{{Name: "v", Type: str}}})
	})
	res := Emit(td, Config{}, nil)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	text := res.Text()
	assertTranslation(t, text, "@property (nonatomic) jint fieldX;")
	assertNotInTranslation(t, text, "getter=getFieldX")
	assertNotInTranslation(t, text, "setter=setFieldXWithNSString:")
}

func errorCount(t *testing.T, directive string) (int, string) {
	t.Helper()
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "FooBar").Visibility(decl.VisPublic).
			Field(decl.Field{Name: "fieldBar", Type: decl.Primitive("int"), Visibility: decl.VisPrivate, Property: marker(directive)})
	})
	res := Emit(td, Config{}, nil)
	return res.Bag.ErrorCount(), res.Text()
}

func TestBadPropertyAttribute(t *testing.T) {
	n, text := errorCount(t, "cause_exception")
	if n != 1 {
		t.Fatalf("expected 1 error, got %d", n)
	}
	assertNotInTranslation(t, text, "@property")
	assertTranslation(t, text, "jint fieldBar_;")
}

func TestBadPropertySetterSelector(t *testing.T) {
	n, text := errorCount(t, "setter=needs_colon")
	if n != 1 {
		t.Fatalf("expected 1 error, got %d", n)
	}
	assertNotInTranslation(t, text, "setter=")
	assertTranslation(t, text, "jint fieldBar_;")
}

func TestNonexistentPropertySetter(t *testing.T) {
	if n, _ := errorCount(t, "setter=nonexistent:"); n != 1 {
		t.Fatalf("expected 1 error, got %d", n)
	}
}

func TestPropertyWeakAssignment(t *testing.T) {
	foo := decl.Class("Foo")
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "Foo").Visibility(decl.VisPublic).
			Field(decl.Field{Name: "barA", Type: foo, Property: marker("weak")}).
			Field(decl.Field{Name: "barB", Type: foo, Property: marker("readonly"), Ownership: decl.OwnershipWeak}).
			Field(decl.Field{Name: "barC", Type: foo, Property: marker("weak, readonly"), Ownership: decl.OwnershipWeak}).
			Field(decl.Field{Name: "barD", Type: foo, Ownership: decl.OwnershipWeak}).
			Field(decl.Field{Name: "barE", Type: foo})
	})
	text := Emit(td, Config{}, nil).Text()
	assertTranslation(t, text, "__weak Foo *barA_;")
	assertNotInTranslation(t, text, "J2OBJC_FIELD_SETTER(Foo, barA_, Foo *)")
	assertTranslation(t, text, "@property (weak, readonly) Foo *barB;")
	assertNotInTranslation(t, text, "J2OBJC_FIELD_SETTER(Foo, barB_, Foo *)")
	assertTranslation(t, text, "__weak Foo *barC_;")
	assertTranslation(t, text, "@property (weak, readonly) Foo *barC;")
	assertNotInTranslation(t, text, "J2OBJC_FIELD_SETTER(Foo, barC_, Foo *)")
	// Annotation alone: weak storage, no helper, no property line.
	assertTranslation(t, text, "__weak Foo *barD_;")
	assertNotInTranslation(t, text, "J2OBJC_FIELD_SETTER(Foo, barD_, Foo *)")
	assertNotInTranslation(t, text, "Foo *barD;")
	// Plain strong field keeps its helper.
	assertTranslation(t, text, "J2OBJC_FIELD_SETTER(Foo, barE_, Foo *)")
	assertNotInTranslation(t, text, "__weak Foo *barE_;")
}

func TestWeakPropertyWithStrongAttribute(t *testing.T) {
	foo := decl.Class("Foo")
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "Foo").Visibility(decl.VisPublic).
			Field(decl.Field{Name: "barA", Type: foo, Property: marker("strong"), Ownership: decl.OwnershipWeak}).
			Field(decl.Field{Name: "barB", Type: foo, Property: marker("readonly")})
	})
	res := Emit(td, Config{}, nil)
	if res.Bag.ErrorCount() != 1 {
		t.Fatalf("expected 1 error, got %d", res.Bag.ErrorCount())
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.MemSemanticConflict || d.Subject.Member != "barA" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	text := res.Text()
	assertNotInTranslation(t, text, "Foo *barA;")
	assertTranslation(t, text, "Foo *barA_;")
	assertTranslation(t, text, "@property (readonly) Foo *barB;")
}

func TestErrorsDoNotAbortSiblings(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		b.Root(decl.KindClass, "FooBar").
			Field(decl.Field{Name: "a", Type: decl.Primitive("int"), Property: marker("bogus")}).
			Field(decl.Field{Name: "b", Type: decl.Primitive("int"), Property: marker("setter=x")}).
			Field(decl.Field{Name: "c", Type: decl.Primitive("int"), Property: marker("readonly")}).
			Method(decl.Method{Name: "work"})
	})
	res := Emit(td, Config{}, nil)
	if res.Bag.ErrorCount() != 2 {
		t.Fatalf("expected 2 errors, got %d", res.Bag.ErrorCount())
	}
	text := res.Text()
	assertTranslation(t, text, "@property (readonly) jint c;")
	assertTranslation(t, text, "- (void)work;")
	assertTranslation(t, text, "jint a_;")
	assertTranslation(t, text, "jint b_;")
}

func TestMaxDiagnostics(t *testing.T) {
	td := build(t, func(b *decl.Builder) {
		tb := b.Root(decl.KindClass, "FooBar")
		for _, name := range []string{"a", "b", "c"} {
			tb.Field(decl.Field{Name: name, Type: decl.Primitive("int"), Property: marker("bogus")})
		}
	})
	res := Emit(td, Config{MaxDiagnostics: 2}, nil)
	if res.Bag.Len() != 2 || res.Bag.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d", res.Bag.Len(), res.Bag.Dropped())
	}
}
