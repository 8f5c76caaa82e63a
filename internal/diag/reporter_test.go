package diag

import "testing"

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, PrpAttributeSyntax, Subject{Type: "T", Member: "f"}, "bad token").
		WithNote(Subject{Type: "T"}, "owner")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	s := Subject{Type: "T", Member: "f"}
	r.Report(MemSemanticConflict, SevError, s, "conflict", nil)
	r.Report(MemSemanticConflict, SevError, s, "conflict", nil)
	r.Report(MemSemanticConflict, SevError, Subject{Type: "T", Member: "g"}, "conflict", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		PrpAttributeSyntax:     "PRP1001",
		PrpUnresolvedSelector:  "PRP1002",
		MemSemanticConflict:    "MEM2001",
		GenUnsupportedConstant: "GEN3001",
		IOLoadFileError:        "IO4001",
		DclInvalidTree:         "DCL5001",
		UnknownCode:            "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
