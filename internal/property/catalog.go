package property

import (
	"slices"
)

// Group is the slot a token fills in the canonical attribute order.
type Group uint8

const (
	GroupOwnership Group = iota
	GroupMutability
	GroupAtomicity
	GroupCopy
	GroupGetter
	GroupSetter
)

// TokenFlag captures special parsing rules for a token.
type TokenFlag uint8

const (
	TokenFlagNone TokenFlag = 0

	// TokenFlagValue marks tokens written as name=value.
	TokenFlagValue TokenFlag = 1 << iota
)

// TokenSpec describes one recognized directive token.
type TokenSpec struct {
	Name  string
	Group Group
	Flags TokenFlag
}

func (spec TokenSpec) HasFlag(flag TokenFlag) bool {
	return spec.Flags&flag != 0
}

var tokenRegistry = map[string]TokenSpec{
	"weak":      {Name: "weak", Group: GroupOwnership},
	"strong":    {Name: "strong", Group: GroupOwnership},
	"readonly":  {Name: "readonly", Group: GroupMutability},
	"readwrite": {Name: "readwrite", Group: GroupMutability},
	"atomic":    {Name: "atomic", Group: GroupAtomicity},
	"nonatomic": {Name: "nonatomic", Group: GroupAtomicity},
	"copy":      {Name: "copy", Group: GroupCopy},
	"getter":    {Name: "getter", Group: GroupGetter, Flags: TokenFlagValue},
	"setter":    {Name: "setter", Group: GroupSetter, Flags: TokenFlagValue},
}

// LookupToken returns metadata for a directive token name. Matching is
// case-sensitive: the target dialect is.
func LookupToken(name string) (TokenSpec, bool) {
	if name == "" {
		return TokenSpec{}, false
	}
	spec, ok := tokenRegistry[name]
	return spec, ok
}

// TokenSpecs returns all recognized tokens sorted by name.
func TokenSpecs() []TokenSpec {
	names := make([]string, 0, len(tokenRegistry))
	for name := range tokenRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	result := make([]TokenSpec, 0, len(names))
	for _, name := range names {
		result = append(result, tokenRegistry[name])
	}
	return result
}
