// Package declfile reads and writes declaration documents: one file per
// compilation unit, holding resolved type trees and outer-reference usage
// facts. TOML, YAML, MessagePack and JSON spellings share one schema.
package declfile

// Document is the wire form of a compilation unit.
type Document struct {
	Package string    `json:"package,omitempty" toml:"package,omitempty" yaml:"package,omitempty" msgpack:"package,omitempty"`
	Types   []TypeDoc `json:"types" toml:"types" yaml:"types" msgpack:"types"`
}

// TypeDoc is one type declaration with its members and nested types.
type TypeDoc struct {
	Kind       string            `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Name       string            `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Visibility string            `json:"visibility,omitempty" toml:"visibility,omitempty" yaml:"visibility,omitempty" msgpack:"visibility,omitempty"`
	Static     bool              `json:"static,omitempty" toml:"static,omitempty" yaml:"static,omitempty" msgpack:"static,omitempty"`
	Local      bool              `json:"local,omitempty" toml:"local,omitempty" yaml:"local,omitempty" msgpack:"local,omitempty"`
	Extends    string            `json:"extends,omitempty" toml:"extends,omitempty" yaml:"extends,omitempty" msgpack:"extends,omitempty"`
	Implements []string          `json:"implements,omitempty" toml:"implements,omitempty" yaml:"implements,omitempty" msgpack:"implements,omitempty"`
	Bindings   map[string]string `json:"bindings,omitempty" toml:"bindings,omitempty" yaml:"bindings,omitempty" msgpack:"bindings,omitempty"`
	Line       uint32            `json:"line,omitempty" toml:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	// OuterRef is the usage fact for inner, local and anonymous classes.
	OuterRef *bool       `json:"outer_ref,omitempty" toml:"outer_ref,omitempty" yaml:"outer_ref,omitempty" msgpack:"outer_ref,omitempty"`
	Members  []MemberDoc `json:"members,omitempty" toml:"members,omitempty" yaml:"members,omitempty" msgpack:"members,omitempty"`
	Nested   []TypeDoc   `json:"nested,omitempty" toml:"nested,omitempty" yaml:"nested,omitempty" msgpack:"nested,omitempty"`
}

// MemberDoc is a flat member record discriminated by Kind:
// field, method, constructor or constant.
type MemberDoc struct {
	Kind       string `json:"kind" toml:"kind" yaml:"kind" msgpack:"kind"`
	Name       string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Type       string `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Visibility string `json:"visibility,omitempty" toml:"visibility,omitempty" yaml:"visibility,omitempty" msgpack:"visibility,omitempty"`
	Static     bool   `json:"static,omitempty" toml:"static,omitempty" yaml:"static,omitempty" msgpack:"static,omitempty"`
	Final      bool   `json:"final,omitempty" toml:"final,omitempty" yaml:"final,omitempty" msgpack:"final,omitempty"`
	Line       uint32 `json:"line,omitempty" toml:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`

	// fields
	Constant *string `json:"constant,omitempty" toml:"constant,omitempty" yaml:"constant,omitempty" msgpack:"constant,omitempty"`
	Property *string `json:"property,omitempty" toml:"property,omitempty" yaml:"property,omitempty" msgpack:"property,omitempty"`
	Marker   bool    `json:"marker,omitempty" toml:"marker,omitempty" yaml:"marker,omitempty" msgpack:"marker,omitempty"`
	Weak     bool    `json:"weak,omitempty" toml:"weak,omitempty" yaml:"weak,omitempty" msgpack:"weak,omitempty"`

	// methods
	Params       []ParamDoc `json:"params,omitempty" toml:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
	Returns      string     `json:"returns,omitempty" toml:"returns,omitempty" yaml:"returns,omitempty" msgpack:"returns,omitempty"`
	Abstract     bool       `json:"abstract,omitempty" toml:"abstract,omitempty" yaml:"abstract,omitempty" msgpack:"abstract,omitempty"`
	Synchronized bool       `json:"synchronized,omitempty" toml:"synchronized,omitempty" yaml:"synchronized,omitempty" msgpack:"synchronized,omitempty"`
}

type ParamDoc struct {
	Name string `json:"name" toml:"name" yaml:"name" msgpack:"name"`
	Type string `json:"type" toml:"type" yaml:"type" msgpack:"type"`
}
