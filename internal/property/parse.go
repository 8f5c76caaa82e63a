package property

import (
	"slices"
	"strings"

	"declgen/internal/decl"
	"declgen/internal/diag"
	"declgen/internal/names"
)

// DefaultCopyable lists value-semantic reference types whose readwrite
// properties are declared copy instead.
var DefaultCopyable = []string{"java.lang.String"}

// Options carries configuration that influences parsing.
type Options struct {
	// CopyableTypes extends DefaultCopyable.
	CopyableTypes []string
}

// BareMarkerDirective is what a property marker without a directive means.
const BareMarkerDirective = "nonatomic"

// ForField parses the property marker of f. It returns ok=false when the
// field has no marker.
func ForField(f *decl.Field, opts Options) (attrs Attrs, d *diag.Diagnostic, ok bool) {
	if f.Property == nil {
		return Attrs{}, nil, false
	}
	directive := BareMarkerDirective
	if f.Property.HasDirective {
		directive = f.Property.Directive
	}
	attrs, d = ParseWith(directive, f, opts)
	return attrs, d, true
}

// Parse parses a directive for f with default options.
func Parse(directive string, f *decl.Field) (Attrs, *diag.Diagnostic) {
	return ParseWith(directive, f, Options{})
}

// ParseWith turns a directive string into a canonical attribute set, or
// returns exactly one diagnostic and no set.
func ParseWith(directive string, f *decl.Field, opts Options) (Attrs, *diag.Diagnostic) {
	var p parser
	p.subject = decl.SubjectOf(f)
	for _, raw := range strings.Split(directive, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if d := p.apply(token); d != nil {
			return Attrs{}, d
		}
	}

	owner := f.Owner()
	if p.attrs.Setter != "" && !hasSelector(owner, p.attrs.Setter) {
		return Attrs{}, diag.Errorf(diag.PrpUnresolvedSelector, p.subject,
			"no method with selector %q for setter of %q", p.attrs.Setter, f.Name)
	}

	applyDefaults(&p.attrs, f, opts)
	return p.attrs, nil
}

type parser struct {
	attrs   Attrs
	subject diag.Subject
	seen    [GroupSetter + 1]string
}

func (p *parser) apply(token string) *diag.Diagnostic {
	name, value, hasValue := strings.Cut(token, "=")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	spec, ok := LookupToken(name)
	if !ok {
		return diag.Errorf(diag.PrpAttributeSyntax, p.subject, "unknown property attribute %q", token)
	}
	if spec.HasFlag(TokenFlagValue) != hasValue {
		if hasValue {
			return diag.Errorf(diag.PrpAttributeSyntax, p.subject, "property attribute %q takes no value", name)
		}
		return diag.Errorf(diag.PrpAttributeSyntax, p.subject, "property attribute %q requires a value", name)
	}

	canonical := name
	if hasValue {
		canonical = name + "=" + value
	}
	if prev := p.seen[spec.Group]; prev != "" && prev != canonical {
		return diag.Errorf(diag.PrpAttributeSyntax, p.subject, "conflicting property attributes %q and %q", prev, canonical)
	}
	p.seen[spec.Group] = canonical

	switch name {
	case "weak":
		p.attrs.Ownership = OwnershipWeak
	case "strong":
		p.attrs.Ownership = OwnershipStrong
	case "readonly":
		p.attrs.Mutability = MutabilityReadonly
	case "readwrite":
		p.attrs.Mutability = MutabilityReadwrite
	case "atomic":
		p.attrs.Atomicity = AtomicityAtomic
	case "nonatomic":
		p.attrs.Atomicity = AtomicityNonatomic
	case "copy":
		p.attrs.Copy = true
	case "getter":
		if !names.IsIdentifier(value) {
			return diag.Errorf(diag.PrpAttributeSyntax, p.subject, "invalid getter name %q", value)
		}
		p.attrs.Getter = value
	case "setter":
		if !validSetter(value) {
			return diag.Errorf(diag.PrpAttributeSyntax, p.subject,
				"invalid setter selector %q: expected a name followed by a single ':'", value)
		}
		p.attrs.Setter = value
	}
	return nil
}

func validSetter(sel string) bool {
	base, ok := strings.CutSuffix(sel, ":")
	return ok && names.IsIdentifier(base)
}

func hasSelector(owner *decl.TypeDecl, sel string) bool {
	if owner == nil {
		return false
	}
	for _, m := range owner.Methods() {
		if accessorCandidate(m) && names.MethodSelector(m) == sel {
			return true
		}
	}
	return false
}

// accessorCandidate reports whether m can back a property accessor: a
// declared instance method. Statics and private methods never reach the
// interface.
func accessorCandidate(m *decl.Method) bool {
	return !m.Constructor && !m.Static && m.Visibility != decl.VisPrivate
}

func inferredGetter(owner *decl.TypeDecl, name string, t decl.TypeRef) *decl.Method {
	for _, m := range owner.Methods() {
		if accessorCandidate(m) && m.Name == name && len(m.Params) == 0 && m.Return == t {
			return m
		}
	}
	return nil
}

func inferredSetter(owner *decl.TypeDecl, name string, t decl.TypeRef) *decl.Method {
	for _, m := range owner.Methods() {
		if accessorCandidate(m) && m.Name == name && len(m.Params) == 1 && m.Params[0].Type == t {
			return m
		}
	}
	return nil
}

func applyDefaults(a *Attrs, f *decl.Field, opts Options) {
	owner := f.Owner()
	capName := names.Capitalize(f.Name)

	if a.Getter == "" {
		switch {
		case f.Type.IsBoolean():
			a.Getter = "is" + capName
		case owner != nil && inferredGetter(owner, "get"+capName, f.Type) != nil:
			a.Getter = "get" + capName
		}
	}

	if a.Setter == "" && a.Mutability != MutabilityReadonly && owner != nil {
		if m := inferredSetter(owner, "set"+capName, f.Type); m != nil {
			a.Setter = names.MethodSelector(m)
		}
	}

	if a.Mutability == MutabilityReadwrite && isCopyable(f.Type, opts) {
		a.Mutability = MutabilityUnset
		a.Copy = true
	}
}

func isCopyable(t decl.TypeRef, opts Options) bool {
	if t.Kind != decl.RefClass {
		return false
	}
	return slices.Contains(DefaultCopyable, t.Name) || slices.Contains(opts.CopyableTypes, t.Name)
}
