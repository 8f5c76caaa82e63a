package diag

import (
	"fmt"

	"declgen/internal/source"
)

// Subject points a diagnostic at a member of a declaration tree.
// File is optional: the core works on in-memory trees and the driver fills it in.
type Subject struct {
	File    source.FileID
	HasFile bool
	Type    string
	Member  string
	Line    uint32
}

func (s Subject) String() string {
	switch {
	case s.Type == "" && s.Member == "":
		return "<unknown>"
	case s.Member == "":
		return s.Type
	case s.Type == "":
		return s.Member
	}
	return s.Type + "." + s.Member
}

// InFile returns a copy of s bound to the given file.
func (s Subject) InFile(id source.FileID) Subject {
	s.File = id
	s.HasFile = true
	return s
}

type Note struct {
	Subject Subject
	Msg     string
}

// Diagnostic is an immutable record; builders return modified copies.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Subject  Subject
	Notes    []Note
}

func New(sev Severity, code Code, subject Subject, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Subject:  subject,
		Message:  msg,
	}
}

func NewError(code Code, subject Subject, msg string) Diagnostic {
	return New(SevError, code, subject, msg)
}

// Errorf is a shortcut for error diagnostics with a formatted message.
func Errorf(code Code, subject Subject, format string, args ...any) *Diagnostic {
	d := NewError(code, subject, fmt.Sprintf(format, args...))
	return &d
}

func (d Diagnostic) WithNote(subject Subject, msg string) Diagnostic {
	notes := make([]Note, 0, len(d.Notes)+1)
	notes = append(notes, d.Notes...)
	d.Notes = append(notes, Note{Subject: subject, Msg: msg})
	return d
}

// WithFile returns a copy whose subject and notes are bound to id.
func (d Diagnostic) WithFile(id source.FileID) Diagnostic {
	d.Subject = d.Subject.InFile(id)
	if len(d.Notes) > 0 {
		notes := make([]Note, len(d.Notes))
		for i, n := range d.Notes {
			n.Subject = n.Subject.InFile(id)
			notes[i] = n
		}
		d.Notes = notes
	}
	return d
}
