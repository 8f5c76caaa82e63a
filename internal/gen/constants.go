package gen

import (
	"math"
	"strconv"
	"strings"

	"declgen/internal/decl"
	"declgen/internal/diag"
)

// constantLiteral renders a primitive constant as a definition value.
func constantLiteral(f *decl.Field) (string, bool) {
	if !f.Type.IsPrimitive() {
		return "", false
	}
	v := strings.TrimSpace(f.Constant)
	switch f.Type.Name {
	case "boolean":
		if v == "true" || v == "false" {
			return v, true
		}
	case "byte":
		return intLiteral(v, 8, "")
	case "short":
		return intLiteral(v, 16, "")
	case "int":
		return intLiteral(v, 32, "")
	case "long":
		v = strings.TrimRight(v, "lL")
		return intLiteral(v, 64, "LL")
	case "char":
		if len(v) >= 3 && v[0] == '\'' && v[len(v)-1] == '\'' {
			if r, _, tail, err := strconv.UnquoteChar(v[1:len(v)-1], '\''); err == nil && tail == "" {
				return strconv.Itoa(int(r)), true
			}
			return "", false
		}
		digits, ok := stripSeparators(v)
		if !ok {
			return "", false
		}
		if n, err := strconv.ParseUint(digits, 0, 16); err == nil {
			return strconv.FormatUint(n, 10), true
		}
	case "float":
		return floatLiteral(strings.TrimRight(v, "fF"), 32, "f")
	case "double":
		return floatLiteral(strings.TrimRight(v, "dD"), 64, "")
	}
	return "", false
}

// intLiteral keeps the source spelling unless it carries digit
// separators; those are re-rendered in decimal.
func intLiteral(v string, bits int, suffix string) (string, bool) {
	digits, ok := stripSeparators(v)
	if !ok {
		return "", false
	}
	n, err := strconv.ParseInt(digits, 0, bits)
	if err != nil {
		return "", false
	}
	if digits != v {
		return strconv.FormatInt(n, 10) + suffix, true
	}
	return v + suffix, true
}

// stripSeparators drops '_' separators. Each one must sit between two
// digits, so "1_" and "0x_1" are rejected.
func stripSeparators(v string) (string, bool) {
	if !strings.Contains(v, "_") {
		return v, true
	}
	isDigit := func(c byte) bool {
		return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' || c == '_'
	}
	for i := 0; i < len(v); i++ {
		if v[i] != '_' {
			continue
		}
		if i == 0 || i == len(v)-1 || !isDigit(v[i-1]) || !isDigit(v[i+1]) {
			return "", false
		}
	}
	return strings.ReplaceAll(v, "_", ""), true
}

func floatLiteral(v string, bits int, suffix string) (string, bool) {
	x, err := strconv.ParseFloat(v, bits)
	if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
		return "", false
	}
	s := strconv.FormatFloat(x, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + suffix, true
}

func unsupportedConstant(f *decl.Field) *diag.Diagnostic {
	d := diag.New(diag.SevWarning, diag.GenUnsupportedConstant, decl.SubjectOf(f),
		"constant "+strconv.Quote(f.Constant)+" of type "+f.Type.String()+
			" cannot be emitted as a definition; declared as static storage")
	return &d
}

func formatUint(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
