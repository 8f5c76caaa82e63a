package gen

import (
	"strings"

	"declgen/internal/decl"
	"declgen/internal/memsem"
	"declgen/internal/names"
	"declgen/internal/property"
	"declgen/internal/visibility"
)

// instanceField runs the attribute parser, the memory-semantics resolver and
// the visibility policy for one instance field. A diagnostic drops only the
// facet it concerns; the instance variable is always declared.
func (e *emitter) instanceField(td *decl.TypeDecl, s *typeSections, f *decl.Field) {
	attrs, d, marked := property.ForField(f, e.opts)
	if d != nil {
		e.report(d)
		marked = false
		attrs = property.Attrs{}
	}

	typ := names.Ref(f.Type, td)
	res, md := memsem.Resolve(f, attrs)
	if md != nil {
		e.report(md)
		s.ivars = append(s.ivars, names.Declaration(typ, names.Ivar(f.Name))+";")
		return
	}

	s.ivars = append(s.ivars, res.IvarQualifier()+names.Declaration(typ, names.Ivar(f.Name))+";")
	if marked {
		line := "@property "
		if attrStr := res.Attrs.String(); attrStr != "" {
			line += attrStr + " "
		}
		s.add(FragProperty, f.Name, line+names.Declaration(typ, f.Name)+";")
	}
	if res.NeedsFieldSetter(f) {
		s.addTrailer(FragFieldSetter, f.Name,
			"J2OBJC_FIELD_SETTER("+s.name+", "+names.Ivar(f.Name)+", "+typ+")")
	}
}

// staticField declares storage (or a constant definition) and, when the
// policy allows, class accessor methods.
func (e *emitter) staticField(td *decl.TypeDecl, s *typeSections, f *decl.Field) {
	typ := names.Ref(f.Type, td)
	symbol := names.Static(s.name, f.Name)

	defined := false
	if f.HasConstant {
		literal, ok := constantLiteral(f)
		if ok {
			s.addTrailer(FragConstant, f.Name,
				"#define "+symbol+" "+literal+"\n"+
					"J2OBJC_STATIC_FIELD_GETTER("+s.name+", "+f.Name+", "+typ+")")
			defined = true
		} else if !isStringType(f.Type) {
			e.report(unsupportedConstant(f))
		}
	}
	if !defined {
		s.addTrailer(FragStaticStorage, f.Name,
			"FOUNDATION_EXPORT "+names.Declaration(typ, symbol)+";\n"+
				staticMacro(f)+"("+s.name+", "+f.Name+", "+typ+")")
	}

	kind := visibility.Accessors(f, e.cfg.StaticAccessorMethods)
	if kind == visibility.KindNone {
		return
	}
	add := s.add
	if visibility.Route(f) == visibility.DestCompanion {
		add = s.addCompanion
	}
	add(FragStaticAccessor, f.Name, "+ ("+typ+")"+f.Name+";")
	if kind == visibility.KindGetterSetter {
		add(FragStaticAccessor, f.Name, "+ (void)set"+names.Capitalize(f.Name)+":("+typ+")value;")
	}
}

func staticMacro(f *decl.Field) string {
	macro := "J2OBJC_STATIC_FIELD_OBJ"
	if f.Type.IsPrimitive() {
		macro = "J2OBJC_STATIC_FIELD_PRIMITIVE"
	}
	if f.Final {
		macro += "_FINAL"
	}
	return macro
}

func isStringType(t decl.TypeRef) bool {
	return t.Kind == decl.RefClass && t.Name == "java.lang.String"
}

func (e *emitter) enumConstants(td *decl.TypeDecl, s *typeSections) {
	for _, c := range td.EnumConstants() {
		if visibility.Accessors(c, e.cfg.StaticAccessorMethods) != visibility.KindNone {
			s.add(FragStaticAccessor, c.Name, "+ ("+s.name+" *)"+c.Name+";")
		}
		s.addTrailer(FragEnumConstant, c.Name, "J2OBJC_ENUM_CONSTANT("+s.name+", "+c.Name+")")
	}
	s.add(FragMethod, "values", "+ (IOSObjectArray *)values;")
	s.add(FragMethod, "valueOf", "+ ("+s.name+" *)valueOfWithNSString:(NSString *)name;")
}

func (e *emitter) enumTypedef(td *decl.TypeDecl) string {
	base := e.typeName(td) + "_Enum"
	var b strings.Builder
	b.WriteString("typedef NS_ENUM(NSUInteger, ")
	b.WriteString(base)
	b.WriteString(") {\n")
	for _, c := range td.EnumConstants() {
		b.WriteString("  ")
		b.WriteString(base)
		b.WriteByte('_')
		b.WriteString(c.Name)
		b.WriteString(" = ")
		b.WriteString(formatUint(c.Ordinal()))
		b.WriteString(",\n")
	}
	b.WriteString("};")
	return b.String()
}

type sigParam struct {
	keyword string
	typ     string
	name    string
}

// method declares a method signature. Private methods stay out of the
// declaration; synchronization never affects the output.
func (e *emitter) method(td *decl.TypeDecl, s *typeSections, m *decl.Method) {
	if m.Visibility == decl.VisPrivate {
		return
	}
	if m.Constructor {
		if td.Kind == decl.KindEnum {
			return
		}
		s.add(FragMethod, "init", e.constructorSignature(td, m.Params))
		return
	}

	params := make([]sigParam, len(m.Params))
	for i, p := range m.Params {
		params[i] = sigParam{keyword: names.Keyword(p.Type), typ: names.Ref(p.Type, td), name: p.Name}
	}
	prefix := "- "
	if m.Static {
		prefix = "+ "
	}
	text := signature(prefix, names.Ref(m.Return, td), m.Name, params)
	if m.Static && td.Kind == decl.KindInterface {
		s.addCompanion(FragMethod, m.Name, text)
		return
	}
	s.add(FragMethod, m.Name, text)
}

func (e *emitter) constructorSignature(td *decl.TypeDecl, declared []decl.Param) string {
	params := make([]sigParam, 0, len(declared)+1)
	if e.outerLink(td) {
		outer := e.typeName(td.Enclosing())
		params = append(params, sigParam{keyword: outer, typ: outer + " *", name: names.OuterParam})
	}
	for _, p := range declared {
		params = append(params, sigParam{keyword: names.Keyword(p.Type), typ: names.Ref(p.Type, td), name: p.Name})
	}
	return signature("- ", "instancetype", "init", params)
}

// defaultConstructor declares the implicit no-argument initializer of a class
// that declares none.
func (e *emitter) defaultConstructor(td *decl.TypeDecl, s *typeSections) {
	if td.Kind != decl.KindClass && td.Kind != decl.KindAnonymous {
		return
	}
	for _, m := range td.Methods() {
		if m.Constructor {
			return
		}
	}
	s.add(FragMethod, "init", e.constructorSignature(td, nil))
}

func signature(prefix, ret, base string, params []sigParam) string {
	keywords := make([]string, len(params))
	for i, p := range params {
		keywords[i] = p.keyword
	}
	sel := names.Selector(base, keywords...)
	if len(params) == 0 {
		return prefix + "(" + ret + ")" + sel + ";"
	}
	parts := names.SelectorParts(sel)
	pieces := make([]string, len(params))
	for i, p := range params {
		pieces[i] = parts[i] + "(" + p.typ + ")" + p.name
	}
	return prefix + "(" + ret + ")" + strings.Join(pieces, " ") + ";"
}
