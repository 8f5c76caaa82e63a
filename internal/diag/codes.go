package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Атрибуты свойств
	PrpInfo               Code = 1000
	PrpAttributeSyntax    Code = 1001
	PrpUnresolvedSelector Code = 1002

	// Семантика владения
	MemInfo             Code = 2000
	MemSemanticConflict Code = 2001

	// Генерация объявлений
	GenInfo                Code = 3000
	GenUnsupportedConstant Code = 3001
	GenTruncated           Code = 3002

	// Загрузка документов
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002

	// Дерево объявлений
	DclInfo        Code = 5000
	DclInvalidTree Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		PrpInfo:                "Property attribute information",
		PrpAttributeSyntax:     "Malformed property attribute",
		PrpUnresolvedSelector:  "Setter selector does not name a method",
		MemInfo:                "Memory semantics information",
		MemSemanticConflict:    "Weak reference declared with a strong attribute",
		GenInfo:                "Generation information",
		GenUnsupportedConstant: "Constant value cannot be emitted as a definition",
		GenTruncated:           "Too many diagnostics, output truncated",
		IOInfo:                 "I/O information",
		IOLoadFileError:        "I/O load file error",
		IODecodeError:          "Declaration document cannot be decoded",
		DclInfo:                "Declaration tree information",
		DclInvalidTree:         "Invalid declaration tree",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PRP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MEM%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("DCL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
