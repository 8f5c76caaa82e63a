// Package testkit holds structural checks shared by package tests.
package testkit

import (
	"github.com/cockroachdb/errors"

	"declgen/internal/decl"
	"declgen/internal/gen"
)

// CheckTreeInvariants runs the structural invariants of a built type tree:
// 1) every nested type points back at its parent
// 2) privacy is inherited: a nested type of an effectively private type is effectively private
// 3) only nested types may be static or local
func CheckTreeInvariants(root *decl.TypeDecl) error {
	if root == nil {
		return errors.New("nil type tree")
	}
	if root.Enclosing() != nil {
		return errors.Newf("%s: root has an enclosing type", root.Path())
	}
	return checkType(root)
}

func checkType(td *decl.TypeDecl) error {
	if td.Enclosing() == nil && (td.Static || td.Local) {
		return errors.Newf("%s: top-level type marked static or local", td.Path())
	}
	for _, nested := range td.Nested() {
		if nested.Enclosing() != td {
			return errors.Newf("%s: enclosing link does not point at %s", nested.Path(), td.Path())
		}
		if td.EffectivelyPrivate() && !nested.EffectivelyPrivate() {
			return errors.Newf("%s: nested in a private type but not effectively private", nested.Path())
		}
		if err := checkType(nested); err != nil {
			return err
		}
	}
	return nil
}

// CheckFragmentInvariants verifies the block structure of emitted output:
// 1) @interface/@protocol blocks are opened and closed once per type and never nest
// 2) fragments inside a block belong to the block's type
// 3) every emitted type gets exactly one type-literal header, after its block
// 4) no fragment is empty
func CheckFragmentInvariants(frags []gen.Fragment) error {
	opened := make(map[string]bool)
	literal := make(map[string]bool)
	block, companion := "", ""
	for i, f := range frags {
		if f.Text == "" {
			return errors.Newf("fragment %d (%s %s.%s) is empty", i, f.Kind, f.Type, f.Member)
		}
		switch f.Kind {
		case gen.FragTypeOpen:
			if block != "" || companion != "" {
				return errors.Newf("fragment %d: %s opened inside %s%s", i, f.Type, block, companion)
			}
			if opened[f.Type] {
				return errors.Newf("fragment %d: type %s emitted twice", i, f.Type)
			}
			opened[f.Type] = true
			block = f.Type
		case gen.FragTypeClose:
			if block != f.Type {
				return errors.Newf("fragment %d: close of %s while %q is open", i, f.Type, block)
			}
			block = ""
		case gen.FragCompanionOpen:
			if block != "" || companion != "" || !opened[f.Type] {
				return errors.Newf("fragment %d: companion of %s out of place", i, f.Type)
			}
			companion = f.Type
		case gen.FragCompanionClose:
			if companion != f.Type {
				return errors.Newf("fragment %d: companion close of %s while %q is open", i, f.Type, companion)
			}
			companion = ""
		case gen.FragTypeLiteral:
			if block != "" || companion != "" || !opened[f.Type] {
				return errors.Newf("fragment %d: type literal for %s out of place", i, f.Type)
			}
			if literal[f.Type] {
				return errors.Newf("fragment %d: duplicate type literal for %s", i, f.Type)
			}
			literal[f.Type] = true
		default:
			if cur := block + companion; cur != "" && f.Type != cur {
				return errors.Newf("fragment %d: %s fragment of %s inside %s", i, f.Kind, f.Type, cur)
			}
		}
	}
	if block != "" || companion != "" {
		return errors.Newf("unterminated block for %s%s", block, companion)
	}
	for name := range opened {
		if !literal[name] {
			return errors.Newf("type %s has no type literal header", name)
		}
	}
	return nil
}
