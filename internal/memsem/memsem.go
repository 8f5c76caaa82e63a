// Package memsem reconciles a field's ownership annotation with its parsed
// property attributes and decides how the field is stored.
package memsem

import (
	"declgen/internal/decl"
	"declgen/internal/diag"
	"declgen/internal/property"
)

// Storage is the storage qualifier of an instance variable.
type Storage uint8

const (
	StorageStrong Storage = iota
	StorageWeak
)

func (s Storage) String() string {
	if s == StorageWeak {
		return "weak"
	}
	return "strong"
}

// Result is the resolved memory semantics of one field.
type Result struct {
	Storage Storage
	// SuppressOwnershipHelper drops the reference-counted field-assignment
	// helper; weak references are assigned directly.
	SuppressOwnershipHelper bool
	// Attrs is the attribute set with ownership made explicit.
	Attrs property.Attrs
}

// Resolve decides storage for f given its attribute set (empty for fields
// without a property marker). A weak annotation paired with an explicit
// strong attribute yields a diagnostic and no result.
func Resolve(f *decl.Field, attrs property.Attrs) (Result, *diag.Diagnostic) {
	weakAnnotated := f.Ownership == decl.OwnershipWeak

	if weakAnnotated && attrs.Ownership == property.OwnershipStrong {
		return Result{}, diag.Errorf(diag.MemSemanticConflict, decl.SubjectOf(f),
			"field %q is annotated weak but its property is declared strong", f.Name)
	}

	res := Result{Storage: StorageStrong, Attrs: attrs}
	if weakAnnotated {
		res.Attrs.Ownership = property.OwnershipWeak
	}
	if res.Attrs.Ownership == property.OwnershipWeak && f.Type.IsReference() {
		res.Storage = StorageWeak
		res.SuppressOwnershipHelper = true
	}
	return res, nil
}

// IvarQualifier returns the prefix written before the instance variable type.
func (r Result) IvarQualifier() string {
	if r.Storage == StorageWeak {
		return "__weak "
	}
	return ""
}

// NeedsFieldSetter reports whether a reference-counted assignment helper must
// be declared for f.
func (r Result) NeedsFieldSetter(f *decl.Field) bool {
	return !f.Static && f.Type.IsReference() && !r.SuppressOwnershipHelper
}
