package decl

import "declgen/internal/diag"

// SubjectOf builds the diagnostic subject for a member.
func SubjectOf(m Member) diag.Subject {
	s := diag.Subject{Member: m.MemberName(), Line: m.Line()}
	if owner := m.Owner(); owner != nil {
		s.Type = owner.Path()
	}
	return s
}

// TypeSubject builds the diagnostic subject for a whole declaration.
func TypeSubject(td *TypeDecl) diag.Subject {
	return diag.Subject{Type: td.Path(), Line: td.LineNo}
}
