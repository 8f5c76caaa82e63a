package gen

import (
	"strconv"
	"strings"

	"declgen/internal/decl"
	"declgen/internal/diag"
	"declgen/internal/names"
	"declgen/internal/property"
)

// Result is the output of one generation call.
type Result struct {
	Fragments []Fragment
	Bag       *diag.Bag
}

// Text renders the fragments.
func (r Result) Text() string {
	return Render(r.Fragments)
}

// Emit generates declarations for td and all types nested in it, outer type
// first, nested types depth-first. Member diagnostics are collected in the
// result's Bag and never stop generation. Emit holds no state between calls.
func Emit(td *decl.TypeDecl, cfg Config, facts UsageFacts) Result {
	bag := diag.NewBag(cfg.MaxDiagnostics)
	e := &emitter{
		cfg:        cfg,
		facts:      facts,
		opts:       property.Options{CopyableTypes: cfg.CopyableTypes},
		reporter:   diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		positional: make(map[*decl.TypeDecl]string),
	}
	if td != nil {
		e.assignNames(td)
		e.emitType(td)
	}
	return Result{Fragments: e.out, Bag: bag}
}

type emitter struct {
	cfg        Config
	facts      UsageFacts
	opts       property.Options
	reporter   diag.Reporter
	positional map[*decl.TypeDecl]string
	out        []Fragment
}

// typeSections buffers one type's output until its members are walked.
type typeSections struct {
	name      string
	ivars     []string
	body      []Fragment
	companion []Fragment
	trailer   []Fragment
}

func (s *typeSections) add(kind FragmentKind, member, text string) {
	s.body = append(s.body, Fragment{Kind: kind, Type: s.name, Member: member, Text: text})
}

func (s *typeSections) addCompanion(kind FragmentKind, member, text string) {
	s.companion = append(s.companion, Fragment{Kind: kind, Type: s.name, Member: member, Text: text})
}

func (s *typeSections) addTrailer(kind FragmentKind, member, text string) {
	s.trailer = append(s.trailer, Fragment{Kind: kind, Type: s.name, Member: member, Text: text})
}

// assignNames gives anonymous and local classes positional names
// Enclosing_$N, counting from 1 per enclosing type in declaration order.
func (e *emitter) assignNames(td *decl.TypeDecl) {
	n := 0
	for _, nested := range td.Nested() {
		if nested.IsAnonymousOrLocal() {
			n++
			e.positional[nested] = e.typeName(td) + "_$" + strconv.Itoa(n)
		}
		e.assignNames(nested)
	}
}

func (e *emitter) typeName(td *decl.TypeDecl) string {
	return names.Declared(td, e.override)
}

func (e *emitter) override(td *decl.TypeDecl) (string, bool) {
	name, ok := e.positional[td]
	return name, ok
}

func (e *emitter) report(d *diag.Diagnostic) {
	if d != nil {
		diag.Forward(e.reporter, *d)
	}
}

// outerLink reports whether td keeps its enclosing-instance field and
// initializer parameter.
func (e *emitter) outerLink(td *decl.TypeDecl) bool {
	return td.HasImplicitOuter() && e.facts.UsesOuter(td)
}

func (e *emitter) emitType(td *decl.TypeDecl) {
	s := &typeSections{name: e.typeName(td)}
	if td.Kind == decl.KindEnum {
		s.name = names.EnumClass(s.name)
	}

	if e.outerLink(td) {
		outer := e.typeName(td.Enclosing())
		s.ivars = append(s.ivars, names.Declaration(outer+" *", names.OuterIvar)+";")
	}

	if td.Kind == decl.KindEnum {
		e.enumConstants(td, s)
	}
	for _, m := range td.Members() {
		switch m := m.(type) {
		case *decl.Field:
			if m.Static {
				e.staticField(td, s, m)
			} else {
				e.instanceField(td, s, m)
			}
		case *decl.Method:
			e.method(td, s, m)
		}
	}
	e.defaultConstructor(td, s)

	switch td.Kind {
	case decl.KindInterface:
		e.out = append(e.out, Fragment{Kind: FragTypeOpen, Type: s.name, Text: e.protocolHeader(td, s.name)})
		e.out = append(e.out, s.body...)
		e.out = append(e.out, Fragment{Kind: FragTypeClose, Type: s.name, Text: "@end"})
		if len(s.companion) > 0 || hasStatics(td) {
			e.out = append(e.out, Fragment{Kind: FragCompanionOpen, Type: s.name,
				Text: "@interface " + s.name + " : " + names.RootClass})
			e.out = append(e.out, s.companion...)
			e.out = append(e.out, Fragment{Kind: FragCompanionClose, Type: s.name, Text: "@end"})
		}
	default:
		if td.Kind == decl.KindEnum {
			e.out = append(e.out, Fragment{Kind: FragTypedef, Type: s.name, Text: e.enumTypedef(td)})
		}
		e.out = append(e.out, Fragment{Kind: FragTypeOpen, Type: s.name, Text: e.classHeader(td, s)})
		e.out = append(e.out, s.body...)
		e.out = append(e.out, Fragment{Kind: FragTypeClose, Type: s.name, Text: "@end"})
	}
	e.out = append(e.out, s.trailer...)
	e.out = append(e.out, Fragment{Kind: FragTypeLiteral, Type: s.name,
		Text: "J2OBJC_TYPE_LITERAL_HEADER(" + s.name + ")"})

	for _, nested := range td.Nested() {
		e.emitType(nested)
	}
}

func hasStatics(td *decl.TypeDecl) bool {
	for _, m := range td.Members() {
		switch m := m.(type) {
		case *decl.Field:
			if m.Static {
				return true
			}
		case *decl.Method:
			if m.Static {
				return true
			}
		}
	}
	return false
}

func (e *emitter) classHeader(td *decl.TypeDecl, s *typeSections) string {
	var b strings.Builder
	b.WriteString("@interface ")
	b.WriteString(s.name)
	b.WriteString(" : ")
	switch {
	case td.Kind == decl.KindEnum:
		b.WriteString(names.EnumBase)
	case !td.Super.IsZero():
		b.WriteString(names.ClassName(td.Super.Name))
	default:
		b.WriteString(names.RootClass)
	}
	b.WriteString(protocolList(td.Protocols))
	if len(s.ivars) > 0 {
		b.WriteString(" {\n @public\n")
		for _, iv := range s.ivars {
			b.WriteString("  ")
			b.WriteString(iv)
			b.WriteByte('\n')
		}
		b.WriteString("}")
	}
	return b.String()
}

func (e *emitter) protocolHeader(td *decl.TypeDecl, name string) string {
	list := make([]string, 0, len(td.Protocols)+1)
	for _, p := range td.Protocols {
		list = append(list, names.ClassName(p))
	}
	list = append(list, names.RootProtocol)
	return "@protocol " + name + " < " + strings.Join(list, ", ") + " >"
}

func protocolList(protocols []string) string {
	if len(protocols) == 0 {
		return ""
	}
	list := make([]string, len(protocols))
	for i, p := range protocols {
		list[i] = names.ClassName(p)
	}
	return " < " + strings.Join(list, ", ") + " >"
}
